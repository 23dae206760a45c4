package events

import (
	"encoding/json"
	"errors"
	"testing"

	"medibook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishSubscribe(t *testing.T) {
	bus := NewEventBus()

	var got []*Event
	bus.Subscribe(EventBookingCreated, func(e *Event) error {
		got = append(got, e)
		return nil
	})

	bus.Publish(&Event{Type: EventBookingCreated})
	bus.Publish(&Event{Type: EventBookingStatusChanged})

	require.Len(t, got, 1)
	assert.Equal(t, EventBookingCreated, got[0].Type)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	handler := func(e *Event) error {
		calls++
		return nil
	}
	bus.Subscribe(EventBookingStatusChanged, handler)
	bus.Subscribe(EventBookingStatusChanged, handler)

	bus.Publish(&Event{Type: EventBookingStatusChanged})
	assert.Equal(t, 2, calls)
}

func TestPublishJSON(t *testing.T) {
	bus := NewEventBus()

	var payload BookingEventPayload
	bus.Subscribe(EventBookingStatusChanged, func(e *Event) error {
		return json.Unmarshal(e.Payload, &payload)
	})

	err := bus.PublishJSON(EventBookingStatusChanged, BookingEventPayload{
		BookingID:  7,
		HospitalID: 2,
		Status:     models.StatusAccepted,
		ChangedBy:  "hospital",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), payload.BookingID)
	assert.Equal(t, models.StatusAccepted, payload.Status)
}

func TestPublishJSONUnserializablePayload(t *testing.T) {
	bus := NewEventBus()

	err := bus.PublishJSON(EventBookingCreated, make(chan int))
	assert.Error(t, err)
}

func TestHandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewEventBus()

	second := false
	bus.Subscribe(EventBookingsPurged, func(e *Event) error { return errors.New("boom") })
	bus.Subscribe(EventBookingsPurged, func(e *Event) error {
		second = true
		return nil
	})

	bus.Publish(&Event{Type: EventBookingsPurged})
	assert.True(t, second)
}
