package handler

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ecodeli/internal/core/apierror"
	"ecodeli/internal/features/deliveries/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLifecycleHandler_CreateAnnouncement(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockLifecycleService)
		app := newTestApp(new(MockValidationService), svc)

		scheduled := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
		svc.On("CreateAnnouncement", mock.Anything, "client-1", mock.MatchedBy(func(d domain.AnnouncementDraft) bool {
			return d.Title == "Books" &&
				d.PickupAddress == "1 rue A" &&
				d.DeliveryAddress == "2 rue B" &&
				d.Price.Equal(decimal.RequireFromString("20.50")) &&
				d.Currency == "EUR" &&
				d.ScheduledAt != nil && d.ScheduledAt.Equal(scheduled)
		})).Return(&domain.Announcement{ID: "ann-1", AuthorID: "client-1", Status: domain.AnnouncementOpen}, nil)

		body := `{"title":"Books","pickupAddress":"1 rue A","deliveryAddress":"2 rue B","price":"20.50","currency":"EUR","scheduledAt":"2026-04-02T09:30:00Z"}`
		status, env := call(t, app, fiber.MethodPost, "/announcements", "client-1", "CLIENT", body)

		assert.Equal(t, fiber.StatusCreated, status)
		var a domain.Announcement
		require.NoError(t, json.Unmarshal(env.Data, &a))
		assert.Equal(t, "ann-1", a.ID)
		assert.Equal(t, domain.AnnouncementOpen, a.Status)
		svc.AssertExpectations(t)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		svc := new(MockLifecycleService)
		app := newTestApp(new(MockValidationService), svc)

		status, env := call(t, app, fiber.MethodPost, "/announcements", "client-1", "CLIENT", `{"pickupAddress":"1 rue A","deliveryAddress":"2 rue B","price":"20"}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, apierror.CodeInvalidFormat, env.Error.Code)
		require.NotEmpty(t, env.Error.Details)
		assert.Equal(t, "title", env.Error.Details[0].Field)
		svc.AssertNotCalled(t, "CreateAnnouncement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownCurrency", func(t *testing.T) {
		svc := new(MockLifecycleService)
		app := newTestApp(new(MockValidationService), svc)

		status, env := call(t, app, fiber.MethodPost, "/announcements", "client-1", "CLIENT", `{"title":"Books","pickupAddress":"1 rue A","deliveryAddress":"2 rue B","price":"20","currency":"XXQ"}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		require.NotEmpty(t, env.Error.Details)
		assert.Equal(t, "currency", env.Error.Details[0].Field)
	})

	t.Run("RejectedByDomain", func(t *testing.T) {
		svc := new(MockLifecycleService)
		app := newTestApp(new(MockValidationService), svc)
		svc.On("CreateAnnouncement", mock.Anything, "client-1", mock.Anything).
			Return(nil, errors.Join(domain.ErrInvalidAnnouncement, errors.New("price must be positive")))

		status, env := call(t, app, fiber.MethodPost, "/announcements", "client-1", "CLIENT", `{"title":"Books","pickupAddress":"1 rue A","deliveryAddress":"2 rue B","price":"-1"}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, apierror.CodeInvalidFormat, env.Error.Code)
	})

	t.Run("DelivererCannotCreate", func(t *testing.T) {
		svc := new(MockLifecycleService)
		app := newTestApp(new(MockValidationService), svc)

		status, _ := call(t, app, fiber.MethodPost, "/announcements", "deliverer-1", "DELIVERER", `{"title":"Books"}`)

		assert.Equal(t, fiber.StatusForbidden, status)
	})
}

func TestLifecycleHandler_Accept(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "Success", wantStatus: fiber.StatusCreated},
		{name: "UnknownAnnouncement", err: domain.ErrNotFound, wantStatus: fiber.StatusNotFound, wantCode: apierror.CodeNotFound},
		{name: "OwnAnnouncement", err: domain.ErrForbidden, wantStatus: fiber.StatusForbidden, wantCode: apierror.CodeForbidden},
		{name: "AlreadyAssigned", err: domain.ErrAlreadyAssigned, wantStatus: fiber.StatusConflict, wantCode: apierror.CodeConflict},
		{name: "Closed", err: domain.ErrAnnouncementClosed, wantStatus: fiber.StatusConflict, wantCode: apierror.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLifecycleService)
			app := newTestApp(new(MockValidationService), svc)

			deliverer := domain.Deliverer{ID: "deliverer-1", Name: "Sam"}
			if tt.err != nil {
				svc.On("Accept", mock.Anything, "ann-1", deliverer).Return(nil, tt.err)
			} else {
				svc.On("Accept", mock.Anything, "ann-1", deliverer).
					Return(&domain.Delivery{ID: "del-1", AnnouncementID: "ann-1", Status: domain.StatusAccepted}, nil)
			}

			status, env := call(t, app, fiber.MethodPost, "/announcements/ann-1/accept", "deliverer-1", "DELIVERER", "")

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestLifecycleHandler_Advance(t *testing.T) {
	routes := map[string]domain.DeliveryEvent{
		"/deliveries/del-1/pickup":           domain.EventPickUp,
		"/deliveries/del-1/transit":          domain.EventStartTransit,
		"/deliveries/del-1/out-for-delivery": domain.EventOutForDelivery,
	}

	for path, event := range routes {
		t.Run(string(event), func(t *testing.T) {
			svc := new(MockLifecycleService)
			app := newTestApp(new(MockValidationService), svc)
			svc.On("Advance", mock.Anything, "del-1", "deliverer-1", event).
				Return(&domain.Delivery{ID: "del-1"}, nil)

			status, env := call(t, app, fiber.MethodPost, path, "deliverer-1", "DELIVERER", "")

			assert.Equal(t, fiber.StatusOK, status)
			assert.True(t, env.Success)
			svc.AssertExpectations(t)
		})
	}
}

func TestLifecycleHandler_Advance_Errors(t *testing.T) {
	t.Run("IllegalTransition", func(t *testing.T) {
		svc := new(MockLifecycleService)
		app := newTestApp(new(MockValidationService), svc)
		svc.On("Advance", mock.Anything, "del-1", "deliverer-1", domain.EventOutForDelivery).
			Return(nil, &domain.TransitionError{From: domain.StatusAccepted, Event: domain.EventOutForDelivery})

		status, env := call(t, app, fiber.MethodPost, "/deliveries/del-1/out-for-delivery", "deliverer-1", "DELIVERER", "")

		assert.Equal(t, fiber.StatusConflict, status)
		assert.Equal(t, apierror.CodeIllegalTransition, env.Error.Code)
		assert.Equal(t, "ACCEPTED", env.Error.Reason)
	})

	t.Run("StoreFailureIsGeneric", func(t *testing.T) {
		svc := new(MockLifecycleService)
		app := newTestApp(new(MockValidationService), svc)
		svc.On("Advance", mock.Anything, "del-1", "deliverer-1", domain.EventPickUp).
			Return(nil, errors.New("redis: connection pool timeout"))

		status, env := call(t, app, fiber.MethodPost, "/deliveries/del-1/pickup", "deliverer-1", "DELIVERER", "")

		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, apierror.CodeInternal, env.Error.Code)
		assert.NotContains(t, env.Error.Message, "redis")
	})

	t.Run("ClientCannotAdvance", func(t *testing.T) {
		svc := new(MockLifecycleService)
		app := newTestApp(new(MockValidationService), svc)

		status, _ := call(t, app, fiber.MethodPost, "/deliveries/del-1/pickup", "client-1", "CLIENT", "")

		assert.Equal(t, fiber.StatusForbidden, status)
		svc.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLifecycleHandler_Cancel(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleClient, domain.RoleDeliverer, domain.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			svc := new(MockLifecycleService)
			app := newTestApp(new(MockValidationService), svc)
			svc.On("Cancel", mock.Anything, "del-1", domain.Actor{ID: "user-1", Role: role}).
				Return(&domain.Delivery{ID: "del-1", Status: domain.StatusCancelled}, nil)

			status, env := call(t, app, fiber.MethodPost, "/deliveries/del-1/cancel", "user-1", string(role), "")

			assert.Equal(t, fiber.StatusOK, status)
			var d domain.Delivery
			require.NoError(t, json.Unmarshal(env.Data, &d))
			assert.Equal(t, domain.StatusCancelled, d.Status)
		})
	}

	t.Run("MerchantRejected", func(t *testing.T) {
		svc := new(MockLifecycleService)
		app := newTestApp(new(MockValidationService), svc)

		status, _ := call(t, app, fiber.MethodPost, "/deliveries/del-1/cancel", "merchant-1", "MERCHANT", "")

		assert.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run("AlreadyDelivered", func(t *testing.T) {
		svc := new(MockLifecycleService)
		app := newTestApp(new(MockValidationService), svc)
		svc.On("Cancel", mock.Anything, "del-1", mock.Anything).
			Return(nil, &domain.TransitionError{From: domain.StatusDelivered, Event: domain.EventCancel})

		status, env := call(t, app, fiber.MethodPost, "/deliveries/del-1/cancel", "client-1", "CLIENT", "")

		assert.Equal(t, fiber.StatusConflict, status)
		assert.Equal(t, apierror.CodeIllegalTransition, env.Error.Code)
	})
}
