package handler

import (
	"context"
	"net/http"
	"rentalcontracts/cmd/internal/contract"
	"rentalcontracts/cmd/internal/utils/apierror"
	"strings"

	"github.com/labstack/echo/v4"
)

type RegistryService interface {
	GetCompanyByCNPJ(ctx context.Context, cnpj string) (*contract.RegistryCompanyResponse, apierror.ErrorResponse)
}

type DefaultRegistryRoute struct {
	RegistryService RegistryService
}

func NewRegistryRoute(registryService RegistryService) *DefaultRegistryRoute {
	return &DefaultRegistryRoute{RegistryService: registryService}
}

func (r *DefaultRegistryRoute) GetCompany(c echo.Context) error {
	cnpj := strings.TrimSpace(c.Param("cnpj"))

	company, apierr := r.RegistryService.GetCompanyByCNPJ(c.Request().Context(), cnpj)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}
