package handler

import (
	"errors"
	"fmt"
	"net/http"

	"ecodeli/internal/core/apierror"
	"ecodeli/internal/core/logger"
	"ecodeli/internal/features/deliveries/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// validationError maps validation gate errors to the API envelope.
// Unknown announcements answer 403 like foreign ones, so ids cannot be probed.
func validationError(c *fiber.Ctx, announcementID string, err error) error {
	var precondition *domain.PreconditionError

	switch {
	case errors.Is(err, domain.ErrInvalidCodeFormat):
		return apierror.Send(c, http.StatusBadRequest, apierror.Body{
			Code:     apierror.CodeInvalidFormat,
			Message:  fmt.Sprintf("The validation code must be exactly %d digits.", domain.CodeLength),
			CanRetry: true,
		})

	case errors.As(err, &precondition):
		g := precondition.Eligibility.Guidance()
		return apierror.Send(c, http.StatusBadRequest, apierror.Body{
			Code:     apierror.CodeValidationFailed,
			Message:  g.Reason,
			Reason:   string(precondition.Eligibility),
			NextStep: g.NextStep,
		})

	case errors.Is(err, domain.ErrIncorrectCode):
		return apierror.Send(c, http.StatusBadRequest, apierror.Body{
			Code:     apierror.CodeIncorrectCode,
			Message:  "The validation code is incorrect.",
			NextStep: "Check the code shown in your account and try again.",
			CanRetry: true,
		})

	case errors.Is(err, domain.ErrExpiredCode):
		return apierror.Send(c, http.StatusBadRequest, apierror.Body{
			Code:     apierror.CodeExpiredCode,
			Message:  "The validation code has expired.",
			NextStep: "Request a new validation code.",
			CanRetry: true,
			Actions: []apierror.Action{{
				Label:  "Request a new code",
				Method: http.MethodPost,
				Href:   fmt.Sprintf("/announcements/%s/validation-code/regenerate", announcementID),
			}},
		})

	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotFound):
		return apierror.Send(c, http.StatusForbidden, apierror.Body{
			Code:    apierror.CodeForbidden,
			Message: "You are not allowed to validate this announcement",
		})
	}

	logger.Get().Error("Validation failed",
		zap.String("announcement_id", announcementID),
		zap.String("ray_id", apierror.RayID(c)),
		zap.Error(err),
	)
	return apierror.Send(c, http.StatusInternalServerError, apierror.Body{
		Code:     apierror.CodeValidationError,
		Message:  "An error occurred while validating the delivery. Please try again.",
		CanRetry: true,
	})
}

// lifecycleError maps announcement and delivery transition errors to the API envelope.
func lifecycleError(c *fiber.Ctx, err error) error {
	var transition *domain.TransitionError

	switch {
	case errors.Is(err, domain.ErrInvalidAnnouncement):
		return apierror.Send(c, http.StatusBadRequest, apierror.Body{
			Code:    apierror.CodeInvalidFormat,
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return apierror.Send(c, http.StatusNotFound, apierror.Body{
			Code:    apierror.CodeNotFound,
			Message: "Resource not found",
		})
	case errors.Is(err, domain.ErrForbidden):
		return apierror.Send(c, http.StatusForbidden, apierror.Body{
			Code:    apierror.CodeForbidden,
			Message: "You are not allowed to perform this action",
		})
	case errors.As(err, &transition):
		return apierror.Send(c, http.StatusConflict, apierror.Body{
			Code:    apierror.CodeIllegalTransition,
			Message: transition.Error(),
			Reason:  string(transition.From),
		})
	case errors.Is(err, domain.ErrAlreadyAssigned), errors.Is(err, domain.ErrAnnouncementClosed):
		return apierror.Send(c, http.StatusConflict, apierror.Body{
			Code:    apierror.CodeConflict,
			Message: err.Error(),
		})
	}

	logger.Get().Error("Lifecycle operation failed",
		zap.String("ray_id", apierror.RayID(c)),
		zap.Error(err),
	)
	return apierror.Send(c, http.StatusInternalServerError, apierror.Body{
		Code:    apierror.CodeInternal,
		Message: "Internal server error",
	})
}

// invalidBody answers 400 INVALID_FORMAT with per-field details.
func invalidBody(c *fiber.Ctx, err error) error {
	return apierror.Send(c, http.StatusBadRequest, apierror.Body{
		Code:     apierror.CodeInvalidFormat,
		Message:  "Invalid request body",
		CanRetry: true,
		Details:  fieldErrors(err),
	})
}
