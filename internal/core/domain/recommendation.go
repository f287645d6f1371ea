package domain

import "math"

// Recommendation - оцененный слот с объяснением, пересчитывается на каждом проходе
type Recommendation struct {
	Slot   Slot    `json:"slot"`
	Doctor Doctor  `json:"doctor"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// RoundedScore - округленная оценка для отображения
func (r Recommendation) RoundedScore() int {
	return int(math.Round(r.Score))
}
