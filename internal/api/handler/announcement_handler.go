package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stmarks-parish/parish-cms/internal/api/metrics"
	"github.com/stmarks-parish/parish-cms/internal/api/middleware"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// AnnouncementHandler handles announcement CRUD and activation.
type AnnouncementHandler struct {
	announcements ports.AnnouncementService
}

func NewAnnouncementHandler(announcements ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

type announcementRequest struct {
	Title     string `json:"title"      validate:"required"`
	TitleEs   string `json:"title_es"`
	Content   string `json:"content"    validate:"required"`
	ContentEs string `json:"content_es"`
	Priority  int    `json:"priority"   validate:"min=0,max=10"`
}

func (r announcementRequest) toInput() ports.AnnouncementInput {
	return ports.AnnouncementInput{
		Title:     r.Title,
		TitleEs:   r.TitleEs,
		Content:   r.Content,
		ContentEs: r.ContentEs,
		Priority:  r.Priority,
	}
}

// GetActive returns the currently active announcement. data is null when
// nothing is active; that is a valid state, not a 404.
//
// @Summary      Get the active announcement
// @Tags         announcements
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /announcements/active [get]
func (h *AnnouncementHandler) GetActive(c echo.Context) error {
	a, err := h.announcements.GetActive(c.Request().Context())
	if err != nil {
		return err
	}
	return respondOK(c, a)
}

// List returns announcements, optionally only active ones (?active=true).
//
// @Summary      List announcements
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool  false  "Only active announcements"
// @Success      200     {object}  successResponse
// @Router       /announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	list, err := h.announcements.List(c.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	return respondOK(c, list)
}

// Create adds a new announcement. New announcements start inactive.
//
// @Summary      Create an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      announcementRequest  true  "Announcement content"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Router       /announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var req announcementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.announcements.Create(c.Request().Context(), req.toInput(), p.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, a)
}

// Update rewrites an announcement's content. Moderators may only touch their
// own announcements; admins may touch any.
//
// @Summary      Update an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Announcement id"
// @Param        body  body      announcementRequest  true  "Announcement content"
// @Success      200   {object}  successResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var req announcementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.announcements.Update(c.Request().Context(), c.Param("id"), req.toInput(), p)
	if err != nil {
		return err
	}
	return respondOK(c, a)
}

// Activate makes this the single active announcement, deactivating all
// others.
//
// @Summary      Activate an announcement
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Announcement id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /announcements/{id}/activate [post]
func (h *AnnouncementHandler) Activate(c echo.Context) error {
	if err := h.announcements.Activate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ActivationsTotal.WithLabelValues("announcement").Inc()
	return respondOK(c, nil)
}

// Deactivate clears the active flag on one announcement.
//
// @Summary      Deactivate an announcement
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Announcement id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /announcements/{id}/deactivate [post]
func (h *AnnouncementHandler) Deactivate(c echo.Context) error {
	if err := h.announcements.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondOK(c, nil)
}

// Delete removes an announcement, subject to the ownership gate.
//
// @Summary      Delete an announcement
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Announcement id"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	if err := h.announcements.Delete(c.Request().Context(), c.Param("id"), p); err != nil {
		return err
	}
	return respondOK(c, nil)
}
