package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stmarks-parish/parish-cms/internal/api/metrics"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// maxBulletinSize caps uploaded bulletin files at 15 MiB.
const maxBulletinSize = 15 << 20

// BulletinHandler handles weekly bulletin upload, activation and download.
type BulletinHandler struct {
	bulletins ports.BulletinService
}

func NewBulletinHandler(bulletins ports.BulletinService) *BulletinHandler {
	return &BulletinHandler{bulletins: bulletins}
}

// GetCurrent returns the current active bulletin metadata. data is null when
// no bulletin is active.
//
// @Summary      Get the current bulletin
// @Tags         bulletins
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /bulletins/current [get]
func (h *BulletinHandler) GetCurrent(c echo.Context) error {
	b, err := h.bulletins.GetCurrent(c.Request().Context())
	if err != nil {
		return err
	}
	return respondOK(c, b)
}

// List returns bulletins newest first, optionally capped with ?limit=.
//
// @Summary      List bulletins
// @Tags         bulletins
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of bulletins"
// @Success      200    {object}  successResponse
// @Router       /bulletins [get]
func (h *BulletinHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	list, err := h.bulletins.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return respondOK(c, list)
}

// Upload accepts a multipart form with the bulletin file and metadata. The
// file part is "file"; "date" is the service day in 2006-01-02 form.
//
// @Summary      Upload a bulletin
// @Tags         bulletins
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file      formData  file    true   "Bulletin file (PDF)"
// @Param        title     formData  string  true   "Title"
// @Param        title_es  formData  string  false  "Spanish title"
// @Param        date      formData  string  true   "Service date (YYYY-MM-DD)"
// @Success      201       {object}  successResponse
// @Failure      400       {object}  errorResponse
// @Router       /bulletins [post]
func (h *BulletinHandler) Upload(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	date, err := time.Parse("2006-01-02", c.FormValue("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxBulletinSize {
		return echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxBulletinSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	if len(data) > maxBulletinSize {
		return echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}

	b, err := h.bulletins.Upload(c.Request().Context(), ports.UploadBulletinInput{
		Title:       title,
		TitleEs:     c.FormValue("title_es"),
		Date:        date,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		metrics.BulletinUploadsTotal.WithLabelValues("store_failed").Inc()
		return err
	}
	metrics.BulletinUploadsTotal.WithLabelValues("ok").Inc()

	return respond(c, http.StatusCreated, b)
}

// Download streams the stored bulletin file.
//
// @Summary      Download a bulletin file
// @Tags         bulletins
// @Produce      application/pdf
// @Param        id  path  string  true  "Bulletin id"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /bulletins/{id}/file [get]
func (h *BulletinHandler) Download(c echo.Context) error {
	data, contentType, err := h.bulletins.File(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, data)
}

// Activate makes this the active bulletin for its week, deactivating its
// week siblings only.
//
// @Summary      Activate a bulletin
// @Tags         bulletins
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Bulletin id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /bulletins/{id}/activate [post]
func (h *BulletinHandler) Activate(c echo.Context) error {
	if err := h.bulletins.Activate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ActivationsTotal.WithLabelValues("bulletin").Inc()
	return respondOK(c, nil)
}

// Deactivate clears the active flag on one bulletin.
//
// @Summary      Deactivate a bulletin
// @Tags         bulletins
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Bulletin id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /bulletins/{id}/deactivate [post]
func (h *BulletinHandler) Deactivate(c echo.Context) error {
	if err := h.bulletins.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondOK(c, nil)
}

// Delete removes the bulletin record and, best-effort, its stored file.
//
// @Summary      Delete a bulletin
// @Tags         bulletins
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Bulletin id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /bulletins/{id} [delete]
func (h *BulletinHandler) Delete(c echo.Context) error {
	if err := h.bulletins.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondOK(c, nil)
}
