package utils

import (
	"fmt"
	"time"

	"github.com/suchimauz/booking-slot-discovery/internal/config"
)

// StartCurrentDay возвращает новую дату с временем 00:00, таймзона остается прежней.
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek возвращает ближайшее воскресенье до даты включительно, время 00:00.
func StartOfWeek(t time.Time) time.Time {
	// Weekday: воскресенье = 0
	dayOffset := int(t.Weekday())
	return StartCurrentDay(t.AddDate(0, 0, -dayOffset))
}

// StartOfMonth возвращает первый день месяца даты, время 00:00.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ParseDate парсит дату из строки в формате RFC3339, если не удается, то пробует парсить дату со временем, но без таймзоны
func ParseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	// Если не удалось пробуем дату со временем, но без таймзоны
	// По дефолту ставим таймзону из конфига
	if err != nil {
		location := config.TimeZone
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, location)
		if err != nil {
			// Если не удалось, пробуем как дату без времени
			parsedDate, err = time.ParseInLocation("2006-01-02", str, location)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}
