package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"net/http"
	"rentalcontracts/cmd/internal/utils"
	"rentalcontracts/cmd/internal/utils/apierror"
)

// NewAuthMiddleware validates the bearer token and exposes the caller's
// subject, which keys everything we cache per user.
func NewAuthMiddleware(verifier *utils.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := verifier.VerifyCtx(c)
			if err != nil {
				log.Debugf("rejected token on %s: %v", c.Request().URL.Path, err)
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set(utils.CtxSubKey, tokenData.Sub)
			c.Set(utils.CtxEmailKey, tokenData.Email)
			return next(c)
		}
	}
}
