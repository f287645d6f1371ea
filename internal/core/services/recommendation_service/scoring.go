package recommendation_service

import (
	"strings"
	"time"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
)

const (
	availabilityWeight = 30.0
	optimalTimingScore = 25.0
	soonTimingScore    = 15.0
	weekdayScore       = 20.0
	businessHoursScore = 15.0
	diversityScore     = 10.0

	businessHourFirst = 9
	businessHourLast  = 17

	reasonSeparator = " • "
)

// scoreSlot считает аддитивную оценку слота из независимых факторов.
// Порядок причин соответствует порядку вычисления факторов.
func scoreSlot(slot domain.Slot, specialties int, now time.Time) (float64, string) {
	var score float64
	reasons := make([]string, 0, 4)

	// Фактор 1: доля свободных мест
	score += float64(slot.AvailableSeats) / float64(slot.TotalSeats) * availabilityWeight
	if slot.AvailableSeats == slot.TotalSeats {
		reasons = append(reasons, "Fully available")
	}

	// Фактор 2: близость по времени, скоро - лучше, но не слишком скоро
	hoursUntil := slot.StartTime.Date.Sub(now).Hours()
	if hoursUntil >= 24 && hoursUntil <= 72 {
		score += optimalTimingScore
		reasons = append(reasons, "Optimal timing")
	} else if hoursUntil >= 2 && hoursUntil < 24 {
		score += soonTimingScore
		reasons = append(reasons, "Available soon")
	}

	// Фактор 3: будний день
	weekday := slot.StartTime.Date.Weekday()
	if weekday >= time.Monday && weekday <= time.Friday {
		score += weekdayScore
		reasons = append(reasons, "Weekday slot")
	}

	// Фактор 4: рабочие часы
	hour := slot.StartTime.Date.Hour()
	if hour >= businessHourFirst && hour <= businessHourLast {
		score += businessHoursScore
		reasons = append(reasons, "Business hours")
	}

	// Фактор 5: разнообразие специальностей, без причины
	if specialties > 1 {
		score += diversityScore
	}

	return score, strings.Join(reasons, reasonSeparator)
}
