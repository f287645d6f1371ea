package activity_feed_service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
)

// ActivityFeedService - реестр лент присутствия по слотам.
// Лента локальная симуляция, не транспорт: события синтезируются
// и живут только внутри процесса.
type ActivityFeedService struct {
	logger out.LoggerPort

	mu    sync.Mutex
	feeds map[string]*feed

	// Источник случайности внедряется, чтобы поведение ленты
	// было воспроизводимым в тестах
	newRand func() *rand.Rand
	clock   func() time.Time

	generateInterval time.Duration
	eventLifetime    time.Duration
}

func NewActivityFeedService(logger out.LoggerPort) *ActivityFeedService {
	return &ActivityFeedService{
		logger: logger.WithModule("ActivityFeedService"),
		feeds:  make(map[string]*feed),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		clock:            time.Now,
		generateInterval: defaultGenerateInterval,
		eventLifetime:    defaultEventLifetime,
	}
}

func (s *ActivityFeedService) StartFeed(slotID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.feeds[slotID]; exists {
		return
	}

	f := newFeed(slotID, s.newRand(), s.clock, s.generateInterval, s.eventLifetime)
	s.feeds[slotID] = f
	go f.run()

	s.logger.Debug("activity.feed.started", out.LogFields{
		"slotId": slotID,
	})
}

func (s *ActivityFeedService) StopFeed(slotID string) {
	s.mu.Lock()
	f, exists := s.feeds[slotID]
	if exists {
		delete(s.feeds, slotID)
	}
	s.mu.Unlock()

	if !exists {
		return
	}

	f.stop()

	s.logger.Debug("activity.feed.stopped", out.LogFields{
		"slotId": slotID,
	})
}

func (s *ActivityFeedService) Events(slotID string) []domain.ActivityEventView {
	s.mu.Lock()
	f, exists := s.feeds[slotID]
	s.mu.Unlock()

	if !exists {
		return nil
	}

	return f.snapshot()
}

// Shutdown останавливает все ленты и их таймеры при завершении приложения
func (s *ActivityFeedService) Shutdown() {
	s.mu.Lock()
	feeds := make([]*feed, 0, len(s.feeds))
	for slotID, f := range s.feeds {
		feeds = append(feeds, f)
		delete(s.feeds, slotID)
	}
	s.mu.Unlock()

	for _, f := range feeds {
		f.stop()
	}
}
