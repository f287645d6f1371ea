package schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/booking-slot-discovery/internal/adapters/out/logger"
	"github.com/suchimauz/booking-slot-discovery/internal/config"
)

func newTestAdapter(serverURL, username, password string) *ScheduleAdapter {
	cfg := &config.Config{}
	cfg.ScheduleAPI.URL = serverURL
	cfg.ScheduleAPI.Username = username
	cfg.ScheduleAPI.Password = password
	return NewScheduleAdapter(cfg, logger.NewNopLogger())
}

func TestListDoctors_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/doctors", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id": "d1", "name": "Dr. Sarah Chen", "specialty": "Cardiology"},
			{"_id": "d2", "name": "Dr. Michael Park", "specialty": "Neurology"}
		]`))
	}))
	defer server.Close()

	doctors, err := newTestAdapter(server.URL, "", "").ListDoctors(context.Background())

	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "d1", doctors[0].ID)
	assert.Equal(t, "Dr. Sarah Chen", doctors[0].Name)
	assert.Equal(t, "Neurology", doctors[1].Specialty)
}

func TestListDoctors_SendsBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client", username)
		assert.Equal(t, "secret", password)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := newTestAdapter(server.URL, "client", "secret").ListDoctors(context.Background())

	require.NoError(t, err)
}

func TestListDoctors_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	doctors, err := newTestAdapter(server.URL, "", "").ListDoctors(context.Background())

	require.Error(t, err)
	assert.Nil(t, doctors)
}

func TestListDoctorSlots_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/doctors/d1/slots", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id": "s1", "doctorId": "d1", "startTime": "2026-03-03T10:00:00Z",
			 "endTime": "2026-03-03T10:30:00Z", "totalSeats": 5, "availableSeats": 2}
		]`))
	}))
	defer server.Close()

	slots, err := newTestAdapter(server.URL, "", "").ListDoctorSlots(context.Background(), "d1")

	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "s1", slots[0].ID)
	assert.Equal(t, "d1", slots[0].DoctorID)
	assert.Equal(t, 10, slots[0].StartTime.Date.UTC().Hour())
	assert.Equal(t, 5, slots[0].TotalSeats)
	assert.Equal(t, 2, slots[0].AvailableSeats)
}

func TestListDoctorSlots_EmptyListIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	slots, err := newTestAdapter(server.URL, "", "").ListDoctorSlots(context.Background(), "d1")

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetSlot_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/slots/s1", r.URL.Path)
		w.Write([]byte(`{"_id": "s1", "doctorId": "d1", "totalSeats": 3, "availableSeats": 1}`))
	}))
	defer server.Close()

	slot, err := newTestAdapter(server.URL, "", "").GetSlot(context.Background(), "s1")

	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, "s1", slot.ID)
	assert.True(t, slot.IsBookable())
}

func TestGetSlot_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	slot, err := newTestAdapter(server.URL, "", "").GetSlot(context.Background(), "missing")

	require.Error(t, err)
	assert.Nil(t, slot)
}
