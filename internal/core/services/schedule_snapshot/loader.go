package schedule_snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
)

// Snapshot - снимок врачей и их слотов за один проход.
// Снимок только для чтения, каждый проход работает со своей копией.
type Snapshot struct {
	Doctors     []domain.Doctor
	DoctorsByID map[string]domain.Doctor
	Slots       []domain.Slot

	// Врачи, у которых не удалось получить слоты; их слоты заменены пустым набором
	FailedDoctorIDs []string
}

// Specialties - количество различных специальностей среди врачей снимка
func (s *Snapshot) Specialties() int {
	specialties := make(map[string]struct{})
	for _, doctor := range s.Doctors {
		specialties[doctor.Specialty] = struct{}{}
	}
	return len(specialties)
}

type Loader struct {
	schedulePort out.SchedulePort
	cachePort    out.CachePort
	logger       out.LoggerPort
}

func NewLoader(schedulePort out.SchedulePort, cachePort out.CachePort, logger out.LoggerPort) *Loader {
	return &Loader{
		schedulePort: schedulePort,
		cachePort:    cachePort,
		logger:       logger.WithModule("SnapshotLoader"),
	}
}

// Load собирает снимок под фильтром врача.
// Ошибка получения списка врачей фатальна для прохода.
// Ошибка получения слотов одного врача изолируется: его набор заменяется пустым,
// остальные ветки не отменяются и не искажаются.
func (l *Loader) Load(ctx context.Context, filter domain.DoctorFilter) (*Snapshot, error) {
	doctors, err := l.listDoctors(ctx)
	if err != nil {
		l.logger.Error("snapshot.doctors.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("snapshot.doctors.fetch_failed: %w", err)
	}

	snapshot := &Snapshot{
		Doctors:     doctors,
		DoctorsByID: make(map[string]domain.Doctor, len(doctors)),
	}
	for _, doctor := range doctors {
		snapshot.DoctorsByID[doctor.ID] = doctor
	}

	// Под фильтром конкретного врача запрашиваем слоты только для него
	fetchIDs := make([]string, 0, len(doctors))
	if filter.IsAll() {
		for _, doctor := range doctors {
			fetchIDs = append(fetchIDs, doctor.ID)
		}
	} else {
		fetchIDs = append(fetchIDs, string(filter))
	}

	// Используем мьютекс для безопасного доступа к снимку
	// И группу ожидания для ожидания завершения всех горутин
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, id := range fetchIDs {
		wg.Add(1)
		go func(doctorID string) {
			defer wg.Done()

			slots, err := l.listDoctorSlots(ctx, doctorID)
			if err != nil {
				// Изолированная ошибка: слоты этого врача считаются пустыми
				l.logger.Warn("snapshot.slots.fetch_failed", out.LogFields{
					"doctorId": doctorID,
					"error":    err.Error(),
				})

				mu.Lock()
				snapshot.FailedDoctorIDs = append(snapshot.FailedDoctorIDs, doctorID)
				mu.Unlock()
				return
			}

			mu.Lock()
			snapshot.Slots = append(snapshot.Slots, slots...)
			mu.Unlock()
		}(id)
	}

	wg.Wait()

	l.logger.Debug("snapshot.load.completed", out.LogFields{
		"doctorsCount": len(snapshot.Doctors),
		"slotsCount":   len(snapshot.Slots),
		"failedCount":  len(snapshot.FailedDoctorIDs),
	})

	return snapshot, nil
}

func (l *Loader) listDoctors(ctx context.Context) ([]domain.Doctor, error) {
	// Проверяем кэш только если он включен
	if l.cachePort != nil {
		if doctors, exists := l.cachePort.GetDoctors(ctx); exists {
			return doctors, nil
		}
	}

	doctors, err := l.schedulePort.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}

	if l.cachePort != nil {
		l.cachePort.StoreDoctors(ctx, doctors)
	}

	return doctors, nil
}

func (l *Loader) listDoctorSlots(ctx context.Context, doctorID string) ([]domain.Slot, error) {
	if l.cachePort != nil {
		if slots, exists := l.cachePort.GetDoctorSlots(ctx, doctorID); exists {
			return slots, nil
		}
	}

	slots, err := l.schedulePort.ListDoctorSlots(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if l.cachePort != nil {
		l.cachePort.StoreDoctorSlots(ctx, doctorID, slots)
	}

	return slots, nil
}
