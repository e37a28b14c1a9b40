package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"ecodeli/internal/core/apierror"
	"ecodeli/internal/features/deliveries/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidateRequest is the body of POST /announcements/{id}/validate.
type ValidateRequest struct {
	// ValidationCode is the 6-digit code received by the client.
	ValidationCode string `json:"validationCode" validate:"required,validationcode" example:"042137"`
	// Location is where the goods were handed over.
	Location *LocationRequest `json:"location" validate:"omitempty"`
	// Signature is a base64 image of the client's signature.
	Signature string `json:"signature" validate:"omitempty,base64"`
	// ProofPhoto is a base64 photo of the delivered goods.
	ProofPhoto string `json:"proofPhoto" validate:"omitempty,base64"`
	// Notes is a free-form comment.
	Notes string `json:"notes" validate:"max=500"`
}

// LocationRequest is a GPS position with an optional address.
type LocationRequest struct {
	Lat     *float64 `json:"lat" validate:"required,latitude" example:"48.8566"`
	Lng     *float64 `json:"lng" validate:"required,longitude" example:"2.3522"`
	Address string   `json:"address" validate:"max=300"`
}

// CreateAnnouncementRequest is the body of POST /announcements.
type CreateAnnouncementRequest struct {
	Title           string          `json:"title" validate:"required,max=200"`
	Description     string          `json:"description" validate:"max=2000"`
	PickupAddress   string          `json:"pickupAddress" validate:"required,max=300"`
	DeliveryAddress string          `json:"deliveryAddress" validate:"required,max=300"`
	ScheduledAt     *time.Time      `json:"scheduledAt"`
	Price           decimal.Decimal `json:"price" swaggertype:"string" example:"20.00"`
	Currency        string          `json:"currency" validate:"omitempty,iso4217" example:"EUR"`
}

func (r ValidateRequest) toInput(announcementID, clientID string) domain.ValidateInput {
	in := domain.ValidateInput{
		AnnouncementID: announcementID,
		ClientID:       clientID,
		Code:           r.ValidationCode,
		Signature:      r.Signature,
		ProofPhoto:     r.ProofPhoto,
		Notes:          r.Notes,
	}
	if r.Location != nil {
		in.Location = &domain.Location{
			Lat:     *r.Location.Lat,
			Lng:     *r.Location.Lng,
			Address: r.Location.Address,
		}
	}
	return in
}

func (r CreateAnnouncementRequest) toDraft() domain.AnnouncementDraft {
	return domain.AnnouncementDraft{
		Title:           r.Title,
		Description:     r.Description,
		PickupAddress:   r.PickupAddress,
		DeliveryAddress: r.DeliveryAddress,
		ScheduledAt:     r.ScheduledAt,
		Price:           r.Price,
		Currency:        r.Currency,
	}
}

// newValidator builds a validator that reports json field names and knows "validationcode".
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("validationcode", func(fl validator.FieldLevel) bool {
		return domain.ValidCodeFormat(fl.Field().String())
	})
	return v
}

// fieldErrors converts validator errors into API field details.
func fieldErrors(err error) []apierror.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apierror.FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apierror.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return out
}

// fieldPath drops the struct name from a validator namespace: "ValidateRequest.location.lat" -> "location.lat".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "validationcode":
		return fmt.Sprintf("must be exactly %d digits", domain.CodeLength)
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "base64":
		return "must be base64 encoded"
	case "latitude":
		return "must be between -90 and 90"
	case "longitude":
		return "must be between -180 and 180"
	case "iso4217":
		return "must be an ISO 4217 currency code"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
