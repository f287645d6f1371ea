package stats_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
	"github.com/suchimauz/booking-slot-discovery/internal/core/services/schedule_snapshot"
)

type StatsService struct {
	loader *schedule_snapshot.Loader
	logger out.LoggerPort
}

func NewStatsService(loader *schedule_snapshot.Loader, logger out.LoggerPort) *StatsService {
	return &StatsService{
		loader: loader,
		logger: logger.WithModule("StatsService"),
	}
}

// CollectStats считает агрегаты по тому же снимку врачей и слотов,
// что и рекомендации: количество врачей, слотов и сумма свободных мест
func (s *StatsService) CollectStats(ctx context.Context) (*domain.Stats, error) {
	snapshot, err := s.loader.Load(ctx, domain.DoctorFilterAll)
	if err != nil {
		s.logger.Error("stats.snapshot.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("stats.snapshot.failed: %w", err)
	}

	stats := &domain.Stats{
		TotalDoctors: len(snapshot.Doctors),
		TotalSlots:   len(snapshot.Slots),
	}
	for _, slot := range snapshot.Slots {
		stats.AvailableSeats += slot.AvailableSeats
	}

	return stats, nil
}
