package out

import (
	"context"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
)

// SchedulePort - чтение снимков из удаленного сервиса расписания, только чтение
type SchedulePort interface {
	// Список всех врачей в порядке поступления
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)

	// Слоты одного врача, может быть пустым
	ListDoctorSlots(ctx context.Context, doctorID string) ([]domain.Slot, error)

	// Один слот по идентификатору
	GetSlot(ctx context.Context, slotID string) (*domain.Slot, error)
}
