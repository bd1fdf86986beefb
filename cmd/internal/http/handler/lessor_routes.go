package handler

import (
	"context"
	"net/http"
	"rentalcontracts/cmd/internal/contract"
	"rentalcontracts/cmd/internal/utils"
	"rentalcontracts/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type LessorService interface {
	GetLessor(ctx context.Context, sub string) (*contract.LessorResponse, apierror.ErrorResponse)
}

type DefaultLessorRoute struct {
	LessorService LessorService
}

func NewLessorRoute(lessorService LessorService) *DefaultLessorRoute {
	return &DefaultLessorRoute{LessorService: lessorService}
}

func (r *DefaultLessorRoute) GetLessor(c echo.Context) error {
	sub, cerr := utils.GetSubFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	lessor, apierr := r.LessorService.GetLessor(c.Request().Context(), sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, lessor)
}
