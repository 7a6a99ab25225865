package nats

import (
	"testing"

	"hotel-booking-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEventMsg(t *testing.T) {
	event, err := decodeEventMsg("events.BOOKING_CANCELLED", []byte(`{"reference_code":"HB-1234","refund_amount":150}`))
	require.NoError(t, err)

	assert.Equal(t, events.TypeBookingCancelled, event.EventType())
	assert.Equal(t, "HB-1234", event.Payload()["reference_code"])
	assert.Equal(t, 150.0, event.Payload()["refund_amount"])
}

func TestDecodeEventMsg_ForeignSubject(t *testing.T) {
	_, err := decodeEventMsg("orders.created", []byte(`{}`))
	assert.Error(t, err)
}

func TestDecodeEventMsg_BadPayload(t *testing.T) {
	_, err := decodeEventMsg("events.BOOKING_CREATED", []byte(`not-json`))
	assert.Error(t, err)
}
