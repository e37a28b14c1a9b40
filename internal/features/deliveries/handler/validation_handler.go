package handler

import (
	"ecodeli/internal/core/apierror"
	"ecodeli/internal/core/auth"
	"ecodeli/internal/features/deliveries/ports"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationHandler serves the client side of the validation gate.
type ValidationHandler struct {
	service  ports.ValidationService
	validate *validator.Validate
}

// NewValidationHandler creates a new ValidationHandler.
func NewValidationHandler(service ports.ValidationService) *ValidationHandler {
	return &ValidationHandler{
		service:  service,
		validate: newValidator(),
	}
}

// GetStatus handles GET /announcements/:id/validation-status.
// @Summary Get validation eligibility
// @Description Tells the client whether the delivery of an announcement can be validated now, and what to do otherwise.
// @Tags Validation
// @Produce json
// @Param id path string true "Announcement ID"
// @Param X-User-ID header string true "Authenticated user id"
// @Param X-User-Role header string true "Authenticated user role" Enums(CLIENT)
// @Success 200 {object} apierror.SuccessResponse{data=domain.ValidationStatus}
// @Failure 401 {object} apierror.ErrorResponse
// @Failure 403 {object} apierror.ErrorResponse
// @Failure 500 {object} apierror.ErrorResponse
// @Router /announcements/{id}/validation-status [get]
func (h *ValidationHandler) GetStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	p, _ := auth.FromContext(c)

	status, err := h.service.Status(c.Context(), id, p.ID)
	if err != nil {
		return validationError(c, id, err)
	}
	return apierror.OK(c, "", status)
}

// Validate handles POST /announcements/:id/validate.
// @Summary Validate a delivery
// @Description Confirms receipt with the 6-digit code. On success the delivery is DELIVERED and the payment is released.
// @Tags Validation
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param X-User-ID header string true "Authenticated user id"
// @Param X-User-Role header string true "Authenticated user role" Enums(CLIENT)
// @Param body body ValidateRequest true "Validation code and proof"
// @Success 200 {object} apierror.SuccessResponse{data=domain.ValidationResult}
// @Failure 400 {object} apierror.ErrorResponse
// @Failure 401 {object} apierror.ErrorResponse
// @Failure 403 {object} apierror.ErrorResponse
// @Failure 500 {object} apierror.ErrorResponse
// @Router /announcements/{id}/validate [post]
func (h *ValidationHandler) Validate(c *fiber.Ctx) error {
	id := c.Params("id")
	p, _ := auth.FromContext(c)

	var req ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return invalidBody(c, err)
	}

	result, err := h.service.Validate(c.Context(), req.toInput(id, p.ID))
	if err != nil {
		return validationError(c, id, err)
	}
	return apierror.OK(c, "Delivery validated successfully", result)
}

// RevealCode handles GET /announcements/:id/validation-code.
// @Summary Show the validation code
// @Description Returns the code the client hands to the deliverer. Only available while the delivery is ready for validation.
// @Tags Validation
// @Produce json
// @Param id path string true "Announcement ID"
// @Param X-User-ID header string true "Authenticated user id"
// @Param X-User-Role header string true "Authenticated user role" Enums(CLIENT)
// @Success 200 {object} apierror.SuccessResponse{data=domain.CodeView}
// @Failure 400 {object} apierror.ErrorResponse
// @Failure 403 {object} apierror.ErrorResponse
// @Failure 500 {object} apierror.ErrorResponse
// @Router /announcements/{id}/validation-code [get]
func (h *ValidationHandler) RevealCode(c *fiber.Ctx) error {
	id := c.Params("id")
	p, _ := auth.FromContext(c)

	view, err := h.service.RevealCode(c.Context(), id, p.ID)
	if err != nil {
		return validationError(c, id, err)
	}
	return apierror.OK(c, "", view)
}

// RegenerateCode handles POST /announcements/:id/validation-code/regenerate.
// @Summary Issue a new validation code
// @Description Replaces the current code, typically after it expired.
// @Tags Validation
// @Produce json
// @Param id path string true "Announcement ID"
// @Param X-User-ID header string true "Authenticated user id"
// @Param X-User-Role header string true "Authenticated user role" Enums(CLIENT)
// @Success 200 {object} apierror.SuccessResponse{data=domain.CodeView}
// @Failure 400 {object} apierror.ErrorResponse
// @Failure 403 {object} apierror.ErrorResponse
// @Failure 500 {object} apierror.ErrorResponse
// @Router /announcements/{id}/validation-code/regenerate [post]
func (h *ValidationHandler) RegenerateCode(c *fiber.Ctx) error {
	id := c.Params("id")
	p, _ := auth.FromContext(c)

	view, err := h.service.RegenerateCode(c.Context(), id, p.ID)
	if err != nil {
		return validationError(c, id, err)
	}
	return apierror.OK(c, "A new validation code has been issued", view)
}
