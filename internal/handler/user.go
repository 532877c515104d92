package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/service"
)

// UserHandler exposes the user directory: CRUD plus the paginated
// listing. Rights enforcement happens in the route middleware; handlers
// only re-validate business invariants through the service.
type UserHandler struct {
	Users *service.UserService
}

func NewUserHandler(u *service.UserService) *UserHandler { return &UserHandler{Users: u} }

type createUserReq struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

type updateUserReq struct {
	Name     *string     `json:"name"`
	Email    *string     `json:"email"`
	Password *string     `json:"password"`
	Role     *model.Role `json:"role"`
}

// Create adds a user with an explicit role. Reachable only with the
// manageUsers right.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "invalid body"})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "name, email and password are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.Create(ctx, service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// List returns one page of users. limit and page silently fall back to
// their defaults on malformed input; sortBy accepts comma-separated
// field:direction pairs.
func (h *UserHandler) List(c echo.Context) error {
	filter := repository.UserFilter{
		Name: c.QueryParam("name"),
		Role: model.Role(c.QueryParam("role")),
	}
	opts := repository.PageOptions{
		SortBy: c.QueryParam("sortBy"),
		Limit:  c.QueryParam("limit"),
		Page:   c.QueryParam("page"),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	page, err := h.Users.Query(ctx, filter, opts)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns a single user by id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "invalid user id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial update to a user.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "invalid user id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.Update(ctx, id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user; their persisted tokens cascade away with the
// row.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": http.StatusBadRequest, "message": "invalid user id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
