package domain

import (
	"github.com/suchimauz/booking-slot-discovery/internal/core/json_types"
)

type Slot struct {
	ID             string              `json:"_id"`
	DoctorID       string              `json:"doctorId"`
	StartTime      json_types.DateTime `json:"startTime"`
	EndTime        json_types.DateTime `json:"endTime"`
	TotalSeats     int                 `json:"totalSeats"`
	AvailableSeats int                 `json:"availableSeats"`
}

// IsBookable - слот можно рекомендовать только если есть свободные места
func (s Slot) IsBookable() bool {
	return s.AvailableSeats > 0
}
