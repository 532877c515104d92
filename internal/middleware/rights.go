package middleware

import (
    "net/http" // http package defines standard HTTP status codes
    "strconv"  // path parameter parsing for the owner override

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/iliyamo/user-auth-service/internal/model" // role-to-rights mapping
)

// RequireRights returns a middleware that enforces the required rights
// against the authenticated user's role.  One allowance is made: a caller
// acting on their own user record (the :id path parameter equals their
// own ID) passes even without the blanket capability, so a regular user
// can read and edit themselves while only admins touch other accounts.
// It assumes JWTAuth already placed the user on the context.
func RequireRights(required ...string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            user, ok := CurrentUser(c)
            if !ok {
                // JWTAuth did not run or did not store a user; treat as
                // unauthenticated rather than guessing.
                return c.JSON(http.StatusUnauthorized, echo.Map{"code": http.StatusUnauthorized, "message": "Please authenticate"})
            }
            if len(required) == 0 || model.HasRights(user.Role, required...) {
                return next(c)
            }
            // Owner override: the resource addressed by :id is the caller.
            if idParam := c.Param("id"); idParam != "" {
                if id, err := strconv.ParseUint(idParam, 10, 64); err == nil && id == user.ID {
                    return next(c)
                }
            }
            return c.JSON(http.StatusForbidden, echo.Map{"code": http.StatusForbidden, "message": "Forbidden"})
        }
    }
}
