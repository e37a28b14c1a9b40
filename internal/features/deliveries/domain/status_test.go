package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextState(t *testing.T) {
	tests := []struct {
		name    string
		from    DeliveryStatus
		event   DeliveryEvent
		want    DeliveryStatus
		wantErr bool
	}{
		{name: "Accept", from: StatusPending, event: EventAccept, want: StatusAccepted},
		{name: "PickUp", from: StatusAccepted, event: EventPickUp, want: StatusPickedUp},
		{name: "StartTransit", from: StatusPickedUp, event: EventStartTransit, want: StatusInTransit},
		{name: "OutForDelivery", from: StatusInTransit, event: EventOutForDelivery, want: StatusOutForDelivery},
		{name: "ConfirmFromTransit", from: StatusInTransit, event: EventConfirmDelivery, want: StatusDelivered},
		{name: "ConfirmFromOutForDelivery", from: StatusOutForDelivery, event: EventConfirmDelivery, want: StatusDelivered},
		{name: "CancelPending", from: StatusPending, event: EventCancel, want: StatusCancelled},
		{name: "CancelInTransit", from: StatusInTransit, event: EventCancel, want: StatusCancelled},
		{name: "CancelOutForDelivery", from: StatusOutForDelivery, event: EventCancel, want: StatusCancelled},

		{name: "SkipPickUp", from: StatusAccepted, event: EventStartTransit, wantErr: true},
		{name: "ConfirmBeforeTransit", from: StatusPickedUp, event: EventConfirmDelivery, wantErr: true},
		{name: "ConfirmPending", from: StatusPending, event: EventConfirmDelivery, wantErr: true},
		{name: "Backwards", from: StatusInTransit, event: EventPickUp, wantErr: true},
		{name: "AcceptTwice", from: StatusAccepted, event: EventAccept, wantErr: true},
		{name: "CancelDelivered", from: StatusDelivered, event: EventCancel, wantErr: true},
		{name: "CancelCancelled", from: StatusCancelled, event: EventCancel, wantErr: true},
		{name: "ConfirmDelivered", from: StatusDelivered, event: EventConfirmDelivery, wantErr: true},
		{name: "UnknownStatus", from: DeliveryStatus("LOST"), event: EventCancel, wantErr: true},
		{name: "UnknownEvent", from: StatusPending, event: DeliveryEvent("TELEPORT"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextState(tt.from, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrIllegalTransition)

				var te *TransitionError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, tt.from, te.From)
				assert.Equal(t, tt.event, te.Event)
				assert.Equal(t, tt.from, got, "rejected transitions must not change the status")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeliveryStatus_Predicates(t *testing.T) {
	all := []DeliveryStatus{StatusPending, StatusAccepted, StatusPickedUp, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusCancelled}

	for _, s := range all {
		assert.True(t, s.IsValid(), s)
		assert.Equal(t, s == StatusDelivered || s == StatusCancelled, s.IsTerminal(), s)
		assert.Equal(t, s == StatusInTransit || s == StatusOutForDelivery, s.IsValidatable(), s)
	}
	assert.False(t, DeliveryStatus("in_transit").IsValid())
}
