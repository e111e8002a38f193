package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stmarks-parish/parish-cms/internal/api/metrics"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// EventHandler handles parish event CRUD and the calendar sync trigger.
type EventHandler struct {
	events ports.EventService
}

func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

type eventRequest struct {
	Title         string    `json:"title"          validate:"required"`
	TitleEs       string    `json:"title_es"`
	Description   string    `json:"description"`
	DescriptionEs string    `json:"description_es"`
	Location      string    `json:"location"`
	StartsAt      time.Time `json:"starts_at"      validate:"required"`
	EndsAt        time.Time `json:"ends_at"`
}

func (r eventRequest) toInput() ports.EventInput {
	return ports.EventInput{
		Title:         r.Title,
		TitleEs:       r.TitleEs,
		Description:   r.Description,
		DescriptionEs: r.DescriptionEs,
		Location:      r.Location,
		StartsAt:      r.StartsAt,
		EndsAt:        r.EndsAt,
	}
}

// ListUpcoming returns events that have not ended yet, soonest first.
//
// @Summary      List upcoming events
// @Tags         events
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of events"
// @Success      200    {object}  successResponse
// @Router       /events [get]
func (h *EventHandler) ListUpcoming(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	list, err := h.events.ListUpcoming(c.Request().Context(), time.Now().UTC(), limit)
	if err != nil {
		return err
	}
	return respondOK(c, list)
}

// Create adds a manually managed event.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventRequest  true  "Event details"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req eventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	e, err := h.events.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, e)
}

// Update rewrites an event.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Event id"
// @Param        body  body      eventRequest  true  "Event details"
// @Success      200   {object}  successResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req eventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	e, err := h.events.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return respondOK(c, e)
}

// Delete removes an event.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Event id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.events.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondOK(c, nil)
}

// Sync pulls the external calendar feed and upserts its entries.
//
// @Summary      Sync events from the external calendar
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      502  {object}  errorResponse
// @Router       /events/sync [post]
func (h *EventHandler) Sync(c echo.Context) error {
	result, err := h.events.SyncCalendar(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "calendar feed unavailable")
	}

	metrics.CalendarSyncEntriesTotal.WithLabelValues("created").Add(float64(result.Created))
	metrics.CalendarSyncEntriesTotal.WithLabelValues("updated").Add(float64(result.Updated))
	metrics.CalendarSyncEntriesTotal.WithLabelValues("skipped").Add(float64(result.Skipped))

	return respondOK(c, result)
}
