package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stmarks-parish/parish-cms/internal/api/metrics"
	"github.com/stmarks-parish/parish-cms/internal/api/middleware"
	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// AuthHandler handles staff authentication and account management.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin moderator"`
}

type setupRequest struct {
	Secret   string `json:"secret"   validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type staffAuthResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Login authenticates a staff account and returns a staff-namespace token.
//
// @Summary      Staff login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("staff", "denied").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("staff", "ok").Inc()

	return respondOK(c, staffAuthResponse{Token: token, User: user})
}

// Setup creates the first admin account, guarded by the setup secret.
//
// @Summary      One-time setup of the first admin account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      setupRequest  true  "Setup secret and admin account details"
// @Success      201   {object}  successResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /setup [post]
func (h *AuthHandler) Setup(c echo.Context) error {
	var req setupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Setup(c.Request().Context(), req.Secret, ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, staffAuthResponse{User: user})
}

// CreateUser registers a new staff account. Admin only; the route carries the
// RequireAdmin gate.
//
// @Summary      Create a staff account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New staff account details"
// @Success      201   {object}  successResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/users [post]
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.auth.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, staffAuthResponse{User: user})
}

// Me returns the authenticated staff principal.
//
// @Summary      Current staff identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return respondOK(c, p)
}

// ChangePassword verifies the current password before setting a new one.
//
// @Summary      Change the staff account password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.Request().Context(), p.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return respondOK(c, nil)
}
