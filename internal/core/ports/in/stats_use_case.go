package in

import (
	"context"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
)

type StatsUseCase interface {
	// Агрегированные показатели по всем врачам и слотам
	CollectStats(ctx context.Context) (*domain.Stats, error)
}
