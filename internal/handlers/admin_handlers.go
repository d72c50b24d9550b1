package handlers

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed admin.html
var adminPage []byte

// AdminPanel serves the admin dashboard. The page is a self-contained HTML
// document compiled into the binary; everything it shows comes from the JSON
// API via fetch.
func AdminPanel(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, adminPage)
}
