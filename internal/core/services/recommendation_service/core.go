package recommendation_service

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
	"github.com/suchimauz/booking-slot-discovery/internal/core/services/schedule_snapshot"
)

const maxRecommendations = 3

type RecommendationService struct {
	loader *schedule_snapshot.Loader
	logger out.LoggerPort

	// Подменяется в тестах
	now func() time.Time
}

func NewRecommendationService(loader *schedule_snapshot.Loader, logger out.LoggerPort) *RecommendationService {
	return &RecommendationService{
		loader: loader,
		logger: logger.WithModule("RecommendationService"),
		now:    time.Now,
	}
}

func (s *RecommendationService) Recommend(ctx context.Context) ([]domain.Recommendation, error) {
	s.logger.Info("recommendations.started", out.LogFields{})

	snapshot, err := s.loader.Load(ctx, domain.DoctorFilterAll)
	if err != nil {
		s.logger.Error("recommendations.snapshot.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("recommendations.snapshot.failed: %w", err)
	}

	now := s.now()
	specialties := snapshot.Specialties()

	recommendations := make([]domain.Recommendation, 0)
	for _, slot := range snapshot.Slots {
		// Слоты без мест никогда не рекомендуются
		if !slot.IsBookable() {
			continue
		}

		// Слот с неизвестным врачом исключается, проход не прерывается
		doctor, exists := snapshot.DoctorsByID[slot.DoctorID]
		if !exists {
			s.logger.Warn("recommendations.slot.unknown_doctor", out.LogFields{
				"slotId":   slot.ID,
				"doctorId": slot.DoctorID,
			})
			continue
		}

		score, reason := scoreSlot(slot, specialties, now)
		if score <= 0 {
			continue
		}

		recommendations = append(recommendations, domain.Recommendation{
			Slot:   slot,
			Doctor: doctor,
			Score:  score,
			Reason: reason,
		})
	}

	recommendations = RecommendationSlice(recommendations).quickSort()
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	s.logger.Info("recommendations.completed", out.LogFields{
		"count": len(recommendations),
	})

	return recommendations, nil
}
