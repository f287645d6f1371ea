package out

import (
	"context"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
)

type CachePort interface {
	// Кэширование списка врачей
	GetDoctors(ctx context.Context) ([]domain.Doctor, bool)
	StoreDoctors(ctx context.Context, doctors []domain.Doctor)

	// Кэширование слотов по врачу
	GetDoctorSlots(ctx context.Context, doctorID string) ([]domain.Slot, bool)
	StoreDoctorSlots(ctx context.Context, doctorID string, slots []domain.Slot)
	InvalidateDoctorSlots(ctx context.Context, doctorID string)
	InvalidateAll(ctx context.Context)
}
