package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"ecodeli/internal/core/apierror"
	"ecodeli/internal/core/auth"
	"ecodeli/internal/features/deliveries/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockValidationService is a mock implementation of ports.ValidationService.
type MockValidationService struct {
	mock.Mock
}

func (m *MockValidationService) Status(ctx context.Context, announcementID, clientID string) (*domain.ValidationStatus, error) {
	args := m.Called(ctx, announcementID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationStatus), args.Error(1)
}

func (m *MockValidationService) Validate(ctx context.Context, in domain.ValidateInput) (*domain.ValidationResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationResult), args.Error(1)
}

func (m *MockValidationService) RevealCode(ctx context.Context, announcementID, clientID string) (*domain.CodeView, error) {
	args := m.Called(ctx, announcementID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CodeView), args.Error(1)
}

func (m *MockValidationService) RegenerateCode(ctx context.Context, announcementID, clientID string) (*domain.CodeView, error) {
	args := m.Called(ctx, announcementID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CodeView), args.Error(1)
}

// MockLifecycleService is a mock implementation of ports.LifecycleService.
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) CreateAnnouncement(ctx context.Context, clientID string, draft domain.AnnouncementDraft) (*domain.Announcement, error) {
	args := m.Called(ctx, clientID, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Announcement), args.Error(1)
}

func (m *MockLifecycleService) Accept(ctx context.Context, announcementID string, deliverer domain.Deliverer) (*domain.Delivery, error) {
	args := m.Called(ctx, announcementID, deliverer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}

func (m *MockLifecycleService) Advance(ctx context.Context, deliveryID, delivererID string, event domain.DeliveryEvent) (*domain.Delivery, error) {
	args := m.Called(ctx, deliveryID, delivererID, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}

func (m *MockLifecycleService) Cancel(ctx context.Context, deliveryID string, actor domain.Actor) (*domain.Delivery, error) {
	args := m.Called(ctx, deliveryID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}

// envelope decodes both success and error responses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   apierror.Body   `json:"error"`
	RayID   string          `json:"ray_id"`
}

func newTestApp(v *MockValidationService, l *MockLifecycleService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	RegisterRoutes(app, NewValidationHandler(v), NewLifecycleHandler(l))
	return app
}

// call sends a request as the given user. An empty role sends no identity headers.
func call(t *testing.T, app *fiber.App, method, path, userID, role, body string) (int, envelope) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set(auth.HeaderUserID, userID)
		req.Header.Set(auth.HeaderUserRole, role)
		req.Header.Set(auth.HeaderUserName, "Sam")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}
