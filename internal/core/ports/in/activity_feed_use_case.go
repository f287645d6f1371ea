package in

import (
	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
)

type ActivityFeedUseCase interface {
	// Запуск генерации событий для слота, повторный запуск без эффекта
	StartFeed(slotID string)

	// Остановка ленты и отмена всех ее таймеров
	StopFeed(slotID string)

	// Текущие живые события с вычисленным возрастом, nil если лента не запущена
	Events(slotID string) []domain.ActivityEventView
}
