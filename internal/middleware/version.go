package middleware

import "github.com/labstack/echo/v4"

// APIVersion is stamped on every API response and published in the swagger
// document.
const APIVersion = "1.0.0"

// VersionHeader adds the X-API-Version header to responses.
func VersionHeader() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", APIVersion)
			return next(c)
		}
	}
}
