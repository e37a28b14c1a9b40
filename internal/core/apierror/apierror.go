package apierror

import (
	"github.com/gofiber/fiber/v2"
)

// Error codes returned in Body.Code.
const (
	CodeInvalidFormat     = "INVALID_FORMAT"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeIncorrectCode     = "INCORRECT_CODE"
	CodeExpiredCode       = "EXPIRED_CODE"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeIllegalTransition = "ILLEGAL_TRANSITION"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
)

// Action is a follow-up the client can take after an error.
type Action struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Href   string `json:"href"`
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Body is the error object of an error response.
type Body struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Reason   string       `json:"reason,omitempty"`
	NextStep string       `json:"nextStep,omitempty"`
	CanRetry bool         `json:"canRetry"`
	Actions  []Action     `json:"actions,omitempty"`
	Details  []FieldError `json:"details,omitempty"`
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	Success bool `json:"success"`
	Error   Body `json:"error"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// SuccessResponse wraps successful payloads.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// RayID returns the request id set by the requestid middleware, or "".
func RayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// Send writes an error response with the request's Ray ID.
func Send(c *fiber.Ctx, status int, body Body) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   body,
		RayID:   RayID(c),
	})
}

// OK writes a 200 success response.
func OK(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponse{Success: true, Message: message, Data: data})
}

// Created writes a 201 success response.
func Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{Success: true, Message: message, Data: data})
}
