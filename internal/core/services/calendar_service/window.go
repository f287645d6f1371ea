package calendar_service

import (
	"time"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/utils"
)

// ComputeWindow вычисляет активное окно календаря вокруг опорной даты.
// Неделя начинается с воскресенья до опорной даты включительно и длится ровно 7 дней.
// Месяц начинается с первого числа и заканчивается первым числом следующего месяца.
func ComputeWindow(view domain.CalendarViewMode, anchor time.Time) domain.CalendarWindow {
	if view == domain.CalendarViewMonth {
		start := utils.StartOfMonth(anchor)
		return domain.CalendarWindow{
			Start: start,
			End:   start.AddDate(0, 1, 0),
			View:  view,
		}
	}

	start := utils.StartOfWeek(anchor)
	return domain.CalendarWindow{
		Start: start,
		End:   start.AddDate(0, 0, 7),
		View:  domain.CalendarViewWeek,
	}
}

// ShiftAnchor сдвигает опорную дату на один период в направлении direction (+1 или -1).
func ShiftAnchor(view domain.CalendarViewMode, anchor time.Time, direction int) time.Time {
	if view == domain.CalendarViewMonth {
		return anchor.AddDate(0, direction, 0)
	}
	return anchor.AddDate(0, 0, 7*direction)
}
