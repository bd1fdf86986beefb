package handler

import (
	"context"
	"net/http"
	"rentalcontracts/cmd/internal/contract"
	"rentalcontracts/cmd/internal/utils/apierror"
	"strconv"

	"github.com/labstack/echo/v4"
)

type QuoteService interface {
	Quote(ctx context.Context, serial, unit string, quantity float64) (*contract.QuoteResponse, apierror.ErrorResponse)
}

type DefaultQuoteRoute struct {
	QuoteService QuoteService
}

func NewQuoteRoute(quoteService QuoteService) *DefaultQuoteRoute {
	return &DefaultQuoteRoute{QuoteService: quoteService}
}

// GetQuote answers /machines/:serial/quote?unit=day&quantity=3. A missing
// quantity counts as zero, just like an empty field on the page.
func (r *DefaultQuoteRoute) GetQuote(c echo.Context) error {
	var quantity float64
	if raw := c.QueryParam("quantity"); raw != "" {
		var err error
		quantity, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("quantity", "number"))
		}
	}

	quote, apierr := r.QuoteService.Quote(c.Request().Context(), c.Param("serial"), c.QueryParam("unit"), quantity)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, quote)
}
