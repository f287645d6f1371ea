package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/suchimauz/booking-slot-discovery/internal/config"
	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
)

// ScheduleAdapter - клиент удаленного сервиса расписания.
// Адаптер только читает: врачей, слоты врача и отдельный слот.
type ScheduleAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

func NewScheduleAdapter(cfg *config.Config, logger out.LoggerPort) *ScheduleAdapter {
	return &ScheduleAdapter{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.ScheduleAPI.URL,
		username: cfg.ScheduleAPI.Username,
		password: cfg.ScheduleAPI.Password,
		logger:   logger,
	}
}

func (a *ScheduleAdapter) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	a.logger.Info("schedule.doctors.fetch", out.LogFields{})

	url := fmt.Sprintf("%s/doctors", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Error("schedule.doctors.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("schedule.doctors.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("schedule.doctors.fetch_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var doctors []domain.Doctor
	if err := json.NewDecoder(resp.Body).Decode(&doctors); err != nil {
		a.logger.Error("schedule.doctors.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("schedule.doctors.fetch_success", out.LogFields{
		"count": len(doctors),
	})

	return doctors, nil
}

func (a *ScheduleAdapter) ListDoctorSlots(ctx context.Context, doctorID string) ([]domain.Slot, error) {
	a.logger.Info("schedule.doctor_slots.fetch", out.LogFields{
		"doctorId": doctorID,
	})

	url := fmt.Sprintf("%s/doctors/%s/slots", a.baseURL, doctorID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Error("schedule.doctor_slots.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("schedule.doctor_slots.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("schedule.doctor_slots.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Пустой список слотов - нормальный ответ
	var slots []domain.Slot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		a.logger.Error("schedule.doctor_slots.decode_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("schedule.doctor_slots.fetch_success", out.LogFields{
		"doctorId": doctorID,
		"count":    len(slots),
	})

	return slots, nil
}

func (a *ScheduleAdapter) GetSlot(ctx context.Context, slotID string) (*domain.Slot, error) {
	url := fmt.Sprintf("%s/slots/%s", a.baseURL, slotID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var slot domain.Slot
	if err := json.NewDecoder(resp.Body).Decode(&slot); err != nil {
		return nil, err
	}

	return &slot, nil
}

func (a *ScheduleAdapter) authorize(req *http.Request) {
	if a.username != "" {
		req.SetBasicAuth(a.username, a.password)
	}
}
