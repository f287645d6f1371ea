package rabbitmq

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/booking-slot-discovery/internal/adapters/out/logger"
	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
)

type mockCachePort struct {
	invalidated []string
	purgedAll   bool
}

func (m *mockCachePort) GetDoctors(ctx context.Context) ([]domain.Doctor, bool) {
	return nil, false
}

func (m *mockCachePort) StoreDoctors(ctx context.Context, doctors []domain.Doctor) {}

func (m *mockCachePort) GetDoctorSlots(ctx context.Context, doctorID string) ([]domain.Slot, bool) {
	return nil, false
}

func (m *mockCachePort) StoreDoctorSlots(ctx context.Context, doctorID string, slots []domain.Slot) {
}

func (m *mockCachePort) InvalidateDoctorSlots(ctx context.Context, doctorID string) {
	m.invalidated = append(m.invalidated, doctorID)
}

func (m *mockCachePort) InvalidateAll(ctx context.Context) {
	m.purgedAll = true
}

func newTestListener(cache *mockCachePort) *BookingListener {
	listener := &BookingListener{logger: logger.NewNopLogger()}
	if cache != nil {
		listener.cachePort = cache
	}
	return listener
}

func TestProcessBookingMessage_InvalidatesDoctorSlots(t *testing.T) {
	cache := &mockCachePort{}
	listener := newTestListener(cache)

	err := listener.processBookingMessage(context.Background(), amqp.Delivery{
		Body: []byte(`{"slotId": "s1", "doctorId": "d1", "status": "confirmed"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, cache.invalidated)
	assert.False(t, cache.purgedAll)
}

func TestProcessBookingMessage_NoDoctorInvalidatesAll(t *testing.T) {
	cache := &mockCachePort{}
	listener := newTestListener(cache)

	err := listener.processBookingMessage(context.Background(), amqp.Delivery{
		Body: []byte(`{"slotId": "s1", "status": "confirmed"}`),
	})

	require.NoError(t, err)
	assert.Empty(t, cache.invalidated)
	assert.True(t, cache.purgedAll)
}

func TestProcessBookingMessage_InvalidJson(t *testing.T) {
	listener := newTestListener(&mockCachePort{})

	err := listener.processBookingMessage(context.Background(), amqp.Delivery{
		Body: []byte(`not json`),
	})

	assert.Error(t, err)
}

func TestProcessBookingMessage_NilCacheIsNoop(t *testing.T) {
	listener := newTestListener(nil)

	err := listener.processBookingMessage(context.Background(), amqp.Delivery{
		Body: []byte(`{"slotId": "s1", "doctorId": "d1"}`),
	})

	assert.NoError(t, err)
}
