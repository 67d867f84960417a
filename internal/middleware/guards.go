package middleware

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireAuth rejects anonymous requests with 401. It assumes the
// Identity middleware already ran.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentIdentity(c) == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "you need to be logged in to do that"})
			}
			return next(c)
		}
	}
}

// RequirePaid rejects authenticated accounts that have not paid the
// registration fee yet, pointing them at the checkout. Anonymous
// requests get the same 401 as RequireAuth so route ordering does not
// matter.
func RequirePaid() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := CurrentIdentity(c)
			if ident == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "you need to be logged in to do that"})
			}
			if !ident.IsPaid {
				return c.JSON(http.StatusPaymentRequired, map[string]string{
					"error":    "please pay the registration fee before continuing",
					"checkout": "/v1/checkout",
				})
			}
			return next(c)
		}
	}
}
