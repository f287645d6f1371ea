package schedule_snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/booking-slot-discovery/internal/adapters/out/logger"
	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/json_types"
)

type mockSchedulePort struct {
	doctors      []domain.Doctor
	doctorsErr   error
	doctorsCalls int
	slots        map[string][]domain.Slot
	slotsErr     map[string]error
	slotsCalls   int
}

func (m *mockSchedulePort) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	m.doctorsCalls++
	if m.doctorsErr != nil {
		return nil, m.doctorsErr
	}
	return m.doctors, nil
}

func (m *mockSchedulePort) ListDoctorSlots(ctx context.Context, doctorID string) ([]domain.Slot, error) {
	m.slotsCalls++
	if err, exists := m.slotsErr[doctorID]; exists {
		return nil, err
	}
	return m.slots[doctorID], nil
}

func (m *mockSchedulePort) GetSlot(ctx context.Context, slotID string) (*domain.Slot, error) {
	return nil, errors.New("not implemented")
}

type mockCachePort struct {
	doctors      []domain.Doctor
	doctorSlots  map[string][]domain.Slot
	storedSlots  map[string][]domain.Slot
	invalidated  []string
	purgedAll    bool
}

func (m *mockCachePort) GetDoctors(ctx context.Context) ([]domain.Doctor, bool) {
	if m.doctors == nil {
		return nil, false
	}
	return m.doctors, true
}

func (m *mockCachePort) StoreDoctors(ctx context.Context, doctors []domain.Doctor) {
	m.doctors = doctors
}

func (m *mockCachePort) GetDoctorSlots(ctx context.Context, doctorID string) ([]domain.Slot, bool) {
	slots, exists := m.doctorSlots[doctorID]
	return slots, exists
}

func (m *mockCachePort) StoreDoctorSlots(ctx context.Context, doctorID string, slots []domain.Slot) {
	if m.storedSlots == nil {
		m.storedSlots = make(map[string][]domain.Slot)
	}
	m.storedSlots[doctorID] = slots
}

func (m *mockCachePort) InvalidateDoctorSlots(ctx context.Context, doctorID string) {
	m.invalidated = append(m.invalidated, doctorID)
}

func (m *mockCachePort) InvalidateAll(ctx context.Context) {
	m.purgedAll = true
}

func makeSlot(id, doctorID string) domain.Slot {
	return domain.Slot{
		ID:             id,
		DoctorID:       doctorID,
		StartTime:      json_types.DateTime{Date: time.Date(2026, 3, 3, 10, 0, 0, 0, time.Local)},
		TotalSeats:     5,
		AvailableSeats: 5,
	}
}

func TestLoad_UnionsSlotsAcrossDoctors(t *testing.T) {
	port := &mockSchedulePort{
		doctors: []domain.Doctor{{ID: "d1", Specialty: "Cardiology"}, {ID: "d2", Specialty: "Neurology"}},
		slots: map[string][]domain.Slot{
			"d1": {makeSlot("s1", "d1")},
			"d2": {makeSlot("s2", "d2"), makeSlot("s3", "d2")},
		},
	}

	snapshot, err := NewLoader(port, nil, logger.NewNopLogger()).Load(context.Background(), domain.DoctorFilterAll)

	require.NoError(t, err)
	assert.Len(t, snapshot.Doctors, 2)
	assert.Len(t, snapshot.Slots, 3)
	assert.Equal(t, 2, snapshot.Specialties())
	assert.Empty(t, snapshot.FailedDoctorIDs)
}

func TestLoad_SingleDoctorFilterFetchesOnlyThatDoctor(t *testing.T) {
	port := &mockSchedulePort{
		doctors: []domain.Doctor{{ID: "d1"}, {ID: "d2"}},
		slots: map[string][]domain.Slot{
			"d1": {makeSlot("s1", "d1")},
			"d2": {makeSlot("s2", "d2")},
		},
	}

	snapshot, err := NewLoader(port, nil, logger.NewNopLogger()).Load(context.Background(), domain.DoctorFilter("d1"))

	require.NoError(t, err)
	require.Len(t, snapshot.Slots, 1)
	assert.Equal(t, "s1", snapshot.Slots[0].ID)
	assert.Equal(t, 1, port.slotsCalls)
}

func TestLoad_IsolatesPerDoctorFailure(t *testing.T) {
	port := &mockSchedulePort{
		doctors: []domain.Doctor{{ID: "d1"}, {ID: "d2"}},
		slots: map[string][]domain.Slot{
			"d2": {makeSlot("s2", "d2")},
		},
		slotsErr: map[string]error{"d1": errors.New("timeout")},
	}

	snapshot, err := NewLoader(port, nil, logger.NewNopLogger()).Load(context.Background(), domain.DoctorFilterAll)

	require.NoError(t, err)
	// Ошибка одного врача не отменяет и не искажает результаты остальных
	require.Len(t, snapshot.Slots, 1)
	assert.Equal(t, "s2", snapshot.Slots[0].ID)
	assert.Equal(t, []string{"d1"}, snapshot.FailedDoctorIDs)
}

func TestLoad_DoctorListFailureIsFatal(t *testing.T) {
	port := &mockSchedulePort{doctorsErr: errors.New("connection refused")}

	snapshot, err := NewLoader(port, nil, logger.NewNopLogger()).Load(context.Background(), domain.DoctorFilterAll)

	require.Error(t, err)
	assert.Nil(t, snapshot)
}

func TestLoad_UsesCacheWhenPresent(t *testing.T) {
	port := &mockSchedulePort{}
	cache := &mockCachePort{
		doctors: []domain.Doctor{{ID: "d1"}},
		doctorSlots: map[string][]domain.Slot{
			"d1": {makeSlot("s1", "d1")},
		},
	}

	snapshot, err := NewLoader(port, cache, logger.NewNopLogger()).Load(context.Background(), domain.DoctorFilterAll)

	require.NoError(t, err)
	assert.Len(t, snapshot.Slots, 1)
	// Все данные пришли из кэша, порт не трогали
	assert.Equal(t, 0, port.doctorsCalls)
	assert.Equal(t, 0, port.slotsCalls)
}

func TestLoad_StoresFetchedDataInCache(t *testing.T) {
	port := &mockSchedulePort{
		doctors: []domain.Doctor{{ID: "d1"}},
		slots:   map[string][]domain.Slot{"d1": {makeSlot("s1", "d1")}},
	}
	cache := &mockCachePort{}

	_, err := NewLoader(port, cache, logger.NewNopLogger()).Load(context.Background(), domain.DoctorFilterAll)

	require.NoError(t, err)
	assert.Len(t, cache.doctors, 1)
	assert.Len(t, cache.storedSlots["d1"], 1)
}
