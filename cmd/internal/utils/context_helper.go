package utils

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"rentalcontracts/cmd/internal/utils/apierror"
)

// Context keys set by the auth middleware.
const (
	CtxSubKey   = "sub"
	CtxEmailKey = "email"
)

func GetSubFromContext(c echo.Context) (string, apierror.ErrorResponse) {
	val := c.Get(CtxSubKey)
	if val == nil {
		log.Warnf("route %s attempted to read nil sub from context", c.Request().URL)
		return "", apierror.UnauthorizedError
	}

	sub, ok := val.(string)
	if !ok || sub == "" {
		log.Warnf("expected string at '%s' context key, got %v", CtxSubKey, val)
		return "", apierror.InternalServerError
	}
	return sub, nil
}
