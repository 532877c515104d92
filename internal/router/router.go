package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/user-auth-service/internal/config"
    "github.com/iliyamo/user-auth-service/internal/handler"    // handlers that implement the endpoints
    "github.com/iliyamo/user-auth-service/internal/middleware" // JWT, rights and rate-limit middleware
    "github.com/iliyamo/user-auth-service/internal/model"
    "github.com/iliyamo/user-auth-service/internal/service"
)

// Register wires every route of the service onto the Echo instance.
//
// Unauthenticated auth operations live under /v1/auth and sit behind the
// redis rate limiter so credential endpoints cannot be brute forced.
// The user directory lives under /v1/users behind JWT authentication and
// the rights middleware: listing requires getUsers, mutation requires
// manageUsers, and reads/updates of a caller's own record pass through
// the owner override.
func Register(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, users *service.UserService, cfg config.Config, rlCfg config.RateLimitConfig, rdb *redis.Client) {
    // Health check for load balancers and monitoring; no auth, no limits.
    e.GET("/healthz", handler.Health)

    limited := middleware.RateLimit(rlCfg, rdb)
    authed := middleware.JWTAuth(cfg.JWTSecret, users)

    g := e.Group("/v1/auth", limited)
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/logout", a.Logout)
    g.POST("/refresh-tokens", a.RefreshTokens)
    g.POST("/forgot-password", a.ForgotPassword)
    g.POST("/reset-password", a.ResetPassword)
    // Issuing a verification mail needs a session; consuming the token
    // from the mail link does not.
    g.POST("/send-verification-email", a.SendVerificationEmail, authed)
    g.POST("/verify-email", a.VerifyEmail)

    usersGroup := e.Group("/v1/users", authed)
    usersGroup.POST("", u.Create, middleware.RequireRights(model.RightManageUsers))
    usersGroup.GET("", u.List, middleware.RequireRights(model.RightGetUsers))
    usersGroup.GET("/:id", u.Get, middleware.RequireRights(model.RightGetUsers))
    usersGroup.PATCH("/:id", u.Update, middleware.RequireRights(model.RightManageUsers))
    usersGroup.DELETE("/:id", u.Delete, middleware.RequireRights(model.RightManageUsers))
}
