package domain

import (
	"time"

	"github.com/google/uuid"
)

type ActivityAction string

const (
	ActivityActionViewing ActivityAction = "viewing"
	ActivityActionBooking ActivityAction = "booking"
)

// ActivityEvent - синтетическое событие присутствия для одного слота.
// Удаляется либо вытеснением по лимиту, либо собственным таймером истечения.
type ActivityEvent struct {
	ID        uuid.UUID      `json:"id"`
	SlotID    string         `json:"slotId"`
	UserName  string         `json:"userName"`
	Action    ActivityAction `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
	ExpiresAt time.Time      `json:"-"`
}

// AgeSeconds - возраст события в целых секундах, вычисляется при чтении
func (e ActivityEvent) AgeSeconds(now time.Time) int {
	return int(now.Sub(e.Timestamp).Seconds())
}

// ActivityEventView - событие с вычисленным возрастом для отображения
type ActivityEventView struct {
	ActivityEvent
	AgeSeconds int `json:"ageSeconds"`
}
