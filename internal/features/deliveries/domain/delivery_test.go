package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCode(code string) CodeGenerator {
	return func() string { return code }
}

func newTestAnnouncement(t *testing.T) *Announcement {
	t.Helper()
	a, err := NewAnnouncement("client-1", AnnouncementDraft{
		Title:           "Box of books",
		PickupAddress:   "1 rue de Rivoli, Paris",
		DeliveryAddress: "5 avenue Foch, Lyon",
		Price:           decimal.RequireFromString("40.00"),
	}, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return a
}

func TestNewDelivery(t *testing.T) {
	a := newTestAnnouncement(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	d, err := NewDelivery(a, Deliverer{ID: "deliverer-1", Name: "Sam"}, decimal.RequireFromString("0.15"), now)
	require.NoError(t, err)

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, a.ID, d.AnnouncementID)
	assert.Equal(t, StatusAccepted, d.Status)
	require.NotNil(t, d.AssignedAt)
	assert.Equal(t, now, *d.AssignedAt)
	assert.Empty(t, d.ValidationCode, "code is issued on the first IN_TRANSIT")
	assert.True(t, decimal.RequireFromString("6.00").Equal(d.Commission))
	assert.True(t, decimal.RequireFromString("34.00").Equal(d.Earnings()))
}

func TestDelivery_Apply_FullLifecycle(t *testing.T) {
	a := newTestAnnouncement(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	d, err := NewDelivery(a, Deliverer{ID: "deliverer-1"}, decimal.Zero, now)
	require.NoError(t, err)

	require.NoError(t, d.Apply(EventPickUp, now.Add(time.Hour), nil))
	assert.Equal(t, StatusPickedUp, d.Status)
	require.NotNil(t, d.PickedUpAt)
	assert.False(t, CanValidate(d))

	require.NoError(t, d.Apply(EventStartTransit, now.Add(2*time.Hour), fixedCode("482913")))
	assert.Equal(t, StatusInTransit, d.Status)
	assert.Equal(t, "482913", d.ValidationCode)
	require.NotNil(t, d.CodeIssuedAt)
	assert.True(t, CanValidate(d))

	require.NoError(t, d.Apply(EventOutForDelivery, now.Add(3*time.Hour), fixedCode("999999")))
	assert.Equal(t, "482913", d.ValidationCode, "the code is set exactly once")
	assert.True(t, CanValidate(d))

	done := now.Add(4 * time.Hour)
	require.NoError(t, d.Apply(EventConfirmDelivery, done, nil))
	assert.Equal(t, StatusDelivered, d.Status)
	require.NotNil(t, d.CompletedAt)
	assert.Equal(t, done, *d.CompletedAt)
	assert.Empty(t, d.ValidationCode)
	assert.Nil(t, d.CodeIssuedAt)
	assert.False(t, CanValidate(d))
}

func TestDelivery_Apply_IllegalLeavesDeliveryUntouched(t *testing.T) {
	a := newTestAnnouncement(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	d, err := NewDelivery(a, Deliverer{ID: "deliverer-1"}, decimal.Zero, now)
	require.NoError(t, err)
	before := *d

	err = d.Apply(EventConfirmDelivery, now.Add(time.Hour), nil)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, before, *d)
}

func TestDelivery_Apply_CancelClearsCode(t *testing.T) {
	d := &Delivery{ID: "d1", Status: StatusInTransit, ValidationCode: "123456"}
	now := time.Now()

	require.NoError(t, d.Apply(EventCancel, now, nil))
	assert.Equal(t, StatusCancelled, d.Status)
	assert.Empty(t, d.ValidationCode)
	require.NotNil(t, d.CancelledAt)
}

func TestDelivery_RegenerateCode(t *testing.T) {
	issued := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	d := &Delivery{ID: "d1", Status: StatusInTransit, ValidationCode: "111111", CodeIssuedAt: &issued}

	later := issued.Add(time.Hour)
	require.NoError(t, d.RegenerateCode(later, fixedCode("222222")))
	assert.Equal(t, "222222", d.ValidationCode)
	assert.Equal(t, later, *d.CodeIssuedAt)

	accepted := &Delivery{ID: "d2", Status: StatusAccepted}
	err := accepted.RegenerateCode(later, fixedCode("333333"))
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, EligibilityAcceptedNotPickedUp, pe.Eligibility)
	assert.Empty(t, accepted.ValidationCode)
}

func TestDelivery_CodeExpired(t *testing.T) {
	issued := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	d := &Delivery{Status: StatusInTransit, ValidationCode: "111111", CodeIssuedAt: &issued}

	assert.False(t, d.CodeExpired(issued.Add(48*time.Hour), 0), "zero TTL never expires")
	assert.False(t, d.CodeExpired(issued.Add(29*time.Minute), 30*time.Minute))
	assert.True(t, d.CodeExpired(issued.Add(31*time.Minute), 30*time.Minute))

	d.CodeIssuedAt = nil
	assert.False(t, d.CodeExpired(issued.Add(time.Hour), time.Minute))
}
