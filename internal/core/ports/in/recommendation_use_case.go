package in

import (
	"context"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
)

type RecommendationUseCase interface {
	// Ранжированный список рекомендаций, не более трех
	Recommend(ctx context.Context) ([]domain.Recommendation, error)
}
