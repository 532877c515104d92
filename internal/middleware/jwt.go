package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/user-auth-service/internal/model"   // token type enum and user model
    "github.com/iliyamo/user-auth-service/internal/service" // user directory for loading the caller
    "github.com/iliyamo/user-auth-service/internal/utils"   // token codec
)

// userContextKey is where the authenticated user is stored on the echo
// context.  Handlers and the rights middleware read it back with
// CurrentUser.
const userContextKey = "auth_user"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and loads the token's owner into the request context.  Validity is
// proven by signature and expiry alone: access tokens are never persisted,
// so there is no store lookup here.  The token must carry type "access" —
// a refresh or reset token presented on a protected route is rejected
// even though its signature checks out.
func JWTAuth(secret string, users *service.UserService) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header is "Bearer <jwt>".  Anything else means the
            // caller has not authenticated.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"code": http.StatusUnauthorized, "message": "Please authenticate"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            payload, err := utils.DecodeToken(secret, raw)
            if err != nil || payload.Type != model.TokenTypeAccess {
                return c.JSON(http.StatusUnauthorized, echo.Map{"code": http.StatusUnauthorized, "message": "Please authenticate"})
            }

            // Load the subject so downstream checks see the user's current
            // role and existence, not a snapshot baked into the token.  A
            // deleted user's still-unexpired access token dies here.
            user, err := users.GetByID(c.Request().Context(), payload.UserID)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"code": http.StatusUnauthorized, "message": "Please authenticate"})
            }

            c.Set(userContextKey, user)
            return next(c)
        }
    }
}

// CurrentUser returns the authenticated user placed on the context by
// JWTAuth.  The boolean is false when the middleware did not run.
func CurrentUser(c echo.Context) (model.User, bool) {
    u, ok := c.Get(userContextKey).(model.User)
    return u, ok
}
