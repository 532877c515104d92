package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/apperr"
)

// writeError maps the service error taxonomy onto transport status codes
// and a stable {code, message} body. Anything outside the taxonomy, and
// every storage failure, is flattened to a bare 500 so raw error text
// never reaches a caller.
func writeError(c echo.Context, err error) error {
	var status int
	message := err.Error()

	switch apperr.KindOf(err) {
	case apperr.KindAuthentication:
		status = http.StatusUnauthorized
	case apperr.KindAuthorization:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindValidation:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		message = "Internal server error"
	}
	return c.JSON(status, echo.Map{"code": status, "message": message})
}
