package calendar_service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
	"github.com/suchimauz/booking-slot-discovery/internal/core/services/schedule_snapshot"
)

type CalendarService struct {
	loader *schedule_snapshot.Loader
	logger out.LoggerPort
}

func NewCalendarService(loader *schedule_snapshot.Loader, logger out.LoggerPort) *CalendarService {
	return &CalendarService{
		loader: loader,
		logger: logger.WithModule("CalendarService"),
	}
}

// BuildGrid раскладывает слоты снимка по корзинам (день, час) активного окна.
// Сетка - чистая функция от (окно, фильтр, снимок): одинаковые входы дают одинаковую сетку.
func (s *CalendarService) BuildGrid(ctx context.Context, filter domain.DoctorFilter, view domain.CalendarViewMode, anchor time.Time) (*domain.CalendarGrid, error) {
	s.logger.Info("calendar.build.started", out.LogFields{
		"filter": filter,
		"view":   view,
		"anchor": anchor,
	})

	snapshot, err := s.loader.Load(ctx, filter)
	if err != nil {
		s.logger.Error("calendar.snapshot.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("calendar.snapshot.failed: %w", err)
	}

	window := ComputeWindow(view, anchor)
	grid := domain.NewCalendarGrid(window, filter)

	for _, slot := range snapshot.Slots {
		start := slot.StartTime.Date

		// Слоты вне окна отбрасываются, граница конца окна исключается
		if !window.Contains(start) {
			continue
		}

		day := dayKey(view, start)
		hour := start.Hour()

		// Часы вне видимого диапазона 08:00 - 19:00 вычисляются, но в ячейку не попадают
		if hour < domain.CalendarHourFirst || hour > domain.CalendarHourLast {
			continue
		}

		grid.Place(day, hour, slot)
	}

	// Детерминированный порядок слотов внутри ячейки
	for _, cell := range grid.Cells {
		sortCellSlots(cell.Slots)
	}

	s.logger.Debug("calendar.build.completed", out.LogFields{
		"cellsCount": len(grid.Cells),
		"windowFrom": window.Start,
		"windowTo":   window.End,
	})

	return grid, nil
}

// dayKey - индекс дня недели 0-6 в недельном режиме, число месяца в месячном
func dayKey(view domain.CalendarViewMode, start time.Time) int {
	if view == domain.CalendarViewMonth {
		return start.Day()
	}
	return int(start.Weekday())
}

func sortCellSlots(slots []domain.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].StartTime.Date.Equal(slots[j].StartTime.Date) {
			return slots[i].StartTime.Date.Before(slots[j].StartTime.Date)
		}
		return slots[i].ID < slots[j].ID
	})
}
