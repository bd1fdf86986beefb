package handler

import (
	"context"
	"net/http"
	"rentalcontracts/cmd/internal/contract"
	"rentalcontracts/cmd/internal/infrastructure/aws/websocket"
	"rentalcontracts/cmd/internal/utils"
	"rentalcontracts/cmd/internal/utils/apierror"
	"rentalcontracts/cmd/internal/utils/uid"
	"strings"

	"github.com/labstack/echo/v4"
)

type ContractService interface {
	RegisterContract(ctx context.Context, sub, connID string, req *contract.ContractRequest) (*contract.ContractResponse, apierror.ErrorResponse)
	GetRun(sub string, id int64) (*contract.RunResponse, apierror.ErrorResponse)
}

type DefaultContractRoute struct {
	ContractService ContractService
}

func NewContractRoute(contractService ContractService) *DefaultContractRoute {
	return &DefaultContractRoute{ContractService: contractService}
}

// RegisterContract runs a whole registration within the request. Progress is
// pushed to the websocket connection named in X-Connection-Id, if any.
func (r *DefaultContractRoute) RegisterContract(c echo.Context) error {
	sub, cerr := utils.GetSubFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.ContractRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	connID := strings.TrimSpace(c.Request().Header.Get(websocket.HeaderConnectionID))
	resp, apierr := r.ContractService.RegisterContract(c.Request().Context(), sub, connID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (r *DefaultContractRoute) GetRun(c echo.Context) error {
	sub, cerr := utils.GetSubFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := uid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
	}

	run, apierr := r.ContractService.GetRun(sub, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, run)
}
