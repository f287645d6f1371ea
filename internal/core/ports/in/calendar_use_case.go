package in

import (
	"context"
	"time"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
)

type CalendarUseCase interface {
	// Построение сетки календаря для окна вокруг опорной даты под фильтром врача
	BuildGrid(ctx context.Context, filter domain.DoctorFilter, view domain.CalendarViewMode, anchor time.Time) (*domain.CalendarGrid, error)
}
