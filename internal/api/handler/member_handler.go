package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stmarks-parish/parish-cms/internal/api/metrics"
	"github.com/stmarks-parish/parish-cms/internal/api/middleware"
	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// MemberHandler handles parishioner accounts: registration, member-namespace
// login and profile management.
type MemberHandler struct {
	members ports.MemberService
}

func NewMemberHandler(members ports.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

type registerMemberRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Language  string `json:"language"   validate:"omitempty,oneof=en es"`
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Language  string `json:"language"   validate:"omitempty,oneof=en es"`
}

type memberAuthResponse struct {
	Token  string         `json:"token,omitempty"`
	Member *domain.Member `json:"member,omitempty"`
}

// Register creates a member account.
//
// @Summary      Register a member account
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        body  body      registerMemberRequest  true  "Member registration details"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /members/register [post]
func (h *MemberHandler) Register(c echo.Context) error {
	var req registerMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	member, err := h.members.Register(c.Request().Context(), ports.RegisterMemberInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Language:  req.Language,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, memberAuthResponse{Member: member})
}

// Login authenticates a member and returns a member-namespace token.
//
// @Summary      Member login
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  errorResponse
// @Router       /members/login [post]
func (h *MemberHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, member, err := h.members.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("member", "denied").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("member", "ok").Inc()

	return respondOK(c, memberAuthResponse{Token: token, Member: member})
}

// Me returns the authenticated member's profile.
//
// @Summary      Current member profile
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Router       /members/me [get]
func (h *MemberHandler) Me(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	member, err := h.members.Get(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	return respondOK(c, member)
}

// UpdateProfile updates the authenticated member's profile fields.
//
// @Summary      Update the member profile
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  errorResponse
// @Router       /members/me [put]
func (h *MemberHandler) UpdateProfile(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	member, err := h.members.UpdateProfile(c.Request().Context(), p.ID, ports.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Language:  req.Language,
	})
	if err != nil {
		return err
	}
	return respondOK(c, member)
}

// ChangePassword verifies the current password before setting a new one.
//
// @Summary      Change the member password
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  errorResponse
// @Router       /members/change-password [post]
func (h *MemberHandler) ChangePassword(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.members.ChangePassword(c.Request().Context(), p.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return respondOK(c, nil)
}

// Deactivate soft-deletes the authenticated member's account. Existing
// tokens stop resolving at the middleware once the account is inactive.
//
// @Summary      Deactivate the member account
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Router       /members/me [delete]
func (h *MemberHandler) Deactivate(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	if err := h.members.Deactivate(c.Request().Context(), p.ID); err != nil {
		return err
	}
	return respondOK(c, nil)
}
