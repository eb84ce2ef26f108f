package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// portalMiddleware rejects authenticated tokens that carry no portal flag.
func portalMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.role() == "" {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}
