package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stmarks-parish/parish-cms/internal/api/metrics"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
)

// SubscriberHandler handles the email subscription list.
type SubscriberHandler struct {
	subscribers ports.SubscriberService
}

func NewSubscriberHandler(subscribers ports.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{subscribers: subscribers}
}

type subscribeRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Language string `json:"language" validate:"omitempty,oneof=en es"`
}

// Subscribe adds an email to the parish mailing list.
//
// @Summary      Subscribe to parish emails
// @Tags         subscribers
// @Accept       json
// @Produce      json
// @Param        body  body      subscribeRequest  true  "Email and language preference"
// @Success      201   {object}  successResponse
// @Failure      409   {object}  errorResponse
// @Router       /subscribe [post]
func (h *SubscriberHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	s, err := h.subscribers.Subscribe(c.Request().Context(), req.Email, req.Language)
	if err != nil {
		return err
	}
	metrics.SubscriptionsTotal.WithLabelValues("subscribe").Inc()

	return respond(c, http.StatusCreated, s)
}

// Unsubscribe removes a subscription by its opaque token, the handle
// embedded in mailing links.
//
// @Summary      Unsubscribe from parish emails
// @Tags         subscribers
// @Produce      json
// @Param        token  path      string  true  "Unsubscribe token"
// @Success      200    {object}  successResponse
// @Failure      404    {object}  errorResponse
// @Router       /unsubscribe/{token} [post]
func (h *SubscriberHandler) Unsubscribe(c echo.Context) error {
	if err := h.subscribers.Unsubscribe(c.Request().Context(), c.Param("token")); err != nil {
		return err
	}
	metrics.SubscriptionsTotal.WithLabelValues("unsubscribe").Inc()

	return respondOK(c, nil)
}

// List returns all subscribers. Admin only.
//
// @Summary      List subscribers
// @Tags         subscribers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Router       /subscribers [get]
func (h *SubscriberHandler) List(c echo.Context) error {
	list, err := h.subscribers.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respondOK(c, list)
}
