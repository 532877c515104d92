package handler

import (
    "context"  // provides context with cancellation for service calls
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities
    "time"     // timeouts for service calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/user-auth-service/internal/middleware" // current-user accessor
    "github.com/iliyamo/user-auth-service/internal/model"      // user model and roles
    "github.com/iliyamo/user-auth-service/internal/queue"      // email job publishing
    "github.com/iliyamo/user-auth-service/internal/service"    // business services
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Tokens    *service.TokenService
	Publisher *queue.Publisher
}

func NewAuthHandler(a *service.AuthService, u *service.UserService, t *service.TokenService, p *queue.Publisher) *AuthHandler {
	return &AuthHandler{Auth: a, Users: u, Tokens: t, Publisher: p}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}
type forgotPasswordReq struct {
	Email string `json:"email"`
}
type resetPasswordReq struct {
	Password string `json:"password"`
}

type authResp struct {
	User   model.User         `json:"user"`
	Tokens service.AuthTokens `json:"tokens"`
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// Register creates an account and returns a session pair immediately.
// Self-registration always produces a regular user; admin accounts are
// created through the user management endpoints.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "name, email and password are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.Create(ctx, service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.RoleUser,
	})
	if err != nil {
		return writeError(c, err)
	}
	tokens, err := h.Tokens.GenerateAuthTokens(ctx, user)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, authResp{User: user, Tokens: tokens})
}

// Login verifies credentials and returns the user with a fresh session
// pair.  Unknown email and wrong password are indistinguishable in the
// response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "email and password are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	tokens, err := h.Tokens.GenerateAuthTokens(ctx, user)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, authResp{User: user, Tokens: tokens})
}

// Logout invalidates the presented refresh token.  Access tokens already
// in the wild stay valid until their own expiry; only future refreshes
// are cut off.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "refreshToken required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Auth.Logout(ctx, strings.TrimSpace(req.RefreshToken)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RefreshTokens rotates the refresh token and returns a new session
// pair.  The presented token is single-use: replaying it after a
// successful rotation fails.
func (h *AuthHandler) RefreshTokens(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "refreshToken required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	tokens, err := h.Auth.RefreshAuth(ctx, strings.TrimSpace(req.RefreshToken))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}

// ForgotPassword issues a reset token for the account and hands an email
// job to the broker.  Delivery is fire-and-forget: a broker outage is
// logged by the publisher but does not fail the request.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "email required"})
	}
	email := strings.TrimSpace(req.Email)

	ctx, cancel := reqCtx(c)
	defer cancel()

	reset, err := h.Tokens.GenerateResetPasswordToken(ctx, email)
	if err != nil {
		return writeError(c, err)
	}
	_ = h.Publisher.PublishEmailJob(ctx, queue.EmailJob{
		Kind:      queue.EmailKindResetPassword,
		To:        email,
		Token:     reset.Token,
		ExpiresAt: reset.Expires.Format(time.RFC3339),
	})
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword consumes a reset token carried in the query string and
// sets the new password from the body.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	token := c.QueryParam("token")
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil || token == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "token and password are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Auth.ResetPassword(ctx, token, req.Password); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SendVerificationEmail issues a verification token for the caller and
// publishes the email job.  Requires an authenticated session.
func (h *AuthHandler) SendVerificationEmail(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": http.StatusUnauthorized, "message": "Please authenticate"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	verify, err := h.Tokens.GenerateVerifyEmailToken(ctx, user)
	if err != nil {
		return writeError(c, err)
	}
	_ = h.Publisher.PublishEmailJob(ctx, queue.EmailJob{
		Kind:      queue.EmailKindVerifyEmail,
		To:        user.Email,
		Name:      user.Name,
		Token:     verify.Token,
		ExpiresAt: verify.Expires.Format(time.RFC3339),
	})
	return c.NoContent(http.StatusNoContent)
}

// VerifyEmail consumes a verification token carried in the query string.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "token required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Auth.VerifyEmail(ctx, token); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
