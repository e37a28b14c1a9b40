package handler

import (
	"ecodeli/internal/core/apierror"
	"ecodeli/internal/core/auth"
	"ecodeli/internal/features/deliveries/domain"
	"ecodeli/internal/features/deliveries/ports"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// LifecycleHandler serves announcement creation and delivery transitions.
type LifecycleHandler struct {
	service  ports.LifecycleService
	validate *validator.Validate
}

// NewLifecycleHandler creates a new LifecycleHandler.
func NewLifecycleHandler(service ports.LifecycleService) *LifecycleHandler {
	return &LifecycleHandler{
		service:  service,
		validate: newValidator(),
	}
}

// CreateAnnouncement handles POST /announcements.
// @Summary Post an announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Authenticated user id"
// @Param X-User-Role header string true "Authenticated user role" Enums(CLIENT)
// @Param body body CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} apierror.SuccessResponse{data=domain.Announcement}
// @Failure 400 {object} apierror.ErrorResponse
// @Failure 401 {object} apierror.ErrorResponse
// @Failure 500 {object} apierror.ErrorResponse
// @Router /announcements [post]
func (h *LifecycleHandler) CreateAnnouncement(c *fiber.Ctx) error {
	p, _ := auth.FromContext(c)

	var req CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	a, err := h.service.CreateAnnouncement(c.Context(), p.ID, req.toDraft())
	if err != nil {
		return lifecycleError(c, err)
	}
	return apierror.Created(c, "Announcement created", a)
}

// Accept handles POST /announcements/:id/accept.
// @Summary Accept an announcement
// @Description The calling deliverer takes the announcement. The delivery starts ACCEPTED and a pending payment is opened.
// @Tags Deliveries
// @Produce json
// @Param id path string true "Announcement ID"
// @Param X-User-ID header string true "Authenticated user id"
// @Param X-User-Role header string true "Authenticated user role" Enums(DELIVERER)
// @Param X-User-Name header string false "Display name shown to the client"
// @Success 201 {object} apierror.SuccessResponse{data=domain.Delivery}
// @Failure 403 {object} apierror.ErrorResponse
// @Failure 404 {object} apierror.ErrorResponse
// @Failure 409 {object} apierror.ErrorResponse
// @Failure 500 {object} apierror.ErrorResponse
// @Router /announcements/{id}/accept [post]
func (h *LifecycleHandler) Accept(c *fiber.Ctx) error {
	p, _ := auth.FromContext(c)

	d, err := h.service.Accept(c.Context(), c.Params("id"), domain.Deliverer{ID: p.ID, Name: p.Name})
	if err != nil {
		return lifecycleError(c, err)
	}
	return apierror.Created(c, "Announcement accepted", d)
}

// PickUp handles POST /deliveries/:id/pickup.
// @Summary Mark goods as picked up
// @Tags Deliveries
// @Produce json
// @Param id path string true "Delivery ID"
// @Param X-User-ID header string true "Authenticated user id"
// @Param X-User-Role header string true "Authenticated user role" Enums(DELIVERER)
// @Success 200 {object} apierror.SuccessResponse{data=domain.Delivery}
// @Failure 403 {object} apierror.ErrorResponse
// @Failure 404 {object} apierror.ErrorResponse
// @Failure 409 {object} apierror.ErrorResponse
// @Router /deliveries/{id}/pickup [post]
func (h *LifecycleHandler) PickUp(c *fiber.Ctx) error {
	return h.advance(c, domain.EventPickUp)
}

// StartTransit handles POST /deliveries/:id/transit.
// @Summary Mark goods as in transit
// @Description The first move to IN_TRANSIT issues the client's validation code.
// @Tags Deliveries
// @Produce json
// @Param id path string true "Delivery ID"
// @Param X-User-ID header string true "Authenticated user id"
// @Param X-User-Role header string true "Authenticated user role" Enums(DELIVERER)
// @Success 200 {object} apierror.SuccessResponse{data=domain.Delivery}
// @Failure 403 {object} apierror.ErrorResponse
// @Failure 404 {object} apierror.ErrorResponse
// @Failure 409 {object} apierror.ErrorResponse
// @Router /deliveries/{id}/transit [post]
func (h *LifecycleHandler) StartTransit(c *fiber.Ctx) error {
	return h.advance(c, domain.EventStartTransit)
}

// OutForDelivery handles POST /deliveries/:id/out-for-delivery.
// @Summary Mark goods as out for delivery
// @Tags Deliveries
// @Produce json
// @Param id path string true "Delivery ID"
// @Param X-User-ID header string true "Authenticated user id"
// @Param X-User-Role header string true "Authenticated user role" Enums(DELIVERER)
// @Success 200 {object} apierror.SuccessResponse{data=domain.Delivery}
// @Failure 403 {object} apierror.ErrorResponse
// @Failure 404 {object} apierror.ErrorResponse
// @Failure 409 {object} apierror.ErrorResponse
// @Router /deliveries/{id}/out-for-delivery [post]
func (h *LifecycleHandler) OutForDelivery(c *fiber.Ctx) error {
	return h.advance(c, domain.EventOutForDelivery)
}

func (h *LifecycleHandler) advance(c *fiber.Ctx, event domain.DeliveryEvent) error {
	p, _ := auth.FromContext(c)

	d, err := h.service.Advance(c.Context(), c.Params("id"), p.ID, event)
	if err != nil {
		return lifecycleError(c, err)
	}
	return apierror.OK(c, "Delivery updated", d)
}

// Cancel handles POST /deliveries/:id/cancel.
// @Summary Cancel a delivery
// @Description Allowed for the announcement's author and the assigned deliverer. The pending payment fails.
// @Tags Deliveries
// @Produce json
// @Param id path string true "Delivery ID"
// @Param X-User-ID header string true "Authenticated user id"
// @Param X-User-Role header string true "Authenticated user role" Enums(CLIENT, DELIVERER, ADMIN)
// @Success 200 {object} apierror.SuccessResponse{data=domain.Delivery}
// @Failure 403 {object} apierror.ErrorResponse
// @Failure 404 {object} apierror.ErrorResponse
// @Failure 409 {object} apierror.ErrorResponse
// @Router /deliveries/{id}/cancel [post]
func (h *LifecycleHandler) Cancel(c *fiber.Ctx) error {
	p, _ := auth.FromContext(c)

	actor := domain.Actor{ID: p.ID, Role: domain.Role(p.Role)}
	d, err := h.service.Cancel(c.Context(), c.Params("id"), actor)
	if err != nil {
		return lifecycleError(c, err)
	}
	return apierror.OK(c, "Delivery cancelled", d)
}
