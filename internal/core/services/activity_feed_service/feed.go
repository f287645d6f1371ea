package activity_feed_service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
)

const (
	// Одно синтетическое событие каждые 3 секунды
	defaultGenerateInterval = 3 * time.Second
	// Каждое событие живет 5 секунд независимо от вытеснения по лимиту
	defaultEventLifetime = 5 * time.Second
	// Не более 5 событий на момент вставки
	maxEvents = 5
)

var actorNames = []string{"User A", "User B", "User C", "User D"}

var actorActions = []domain.ActivityAction{
	domain.ActivityActionViewing,
	domain.ActivityActionBooking,
}

// feed - лента присутствия одного слота.
// Все таймеры ленты (генератор и таймеры истечения событий) отменяются вместе
// при остановке, после остановки ни один таймер не меняет состояние.
type feed struct {
	slotID string

	mu     sync.Mutex
	events []domain.ActivityEvent
	timers map[uuid.UUID]*time.Timer

	rng   *rand.Rand
	clock func() time.Time

	generateInterval time.Duration
	eventLifetime    time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
}

func newFeed(slotID string, rng *rand.Rand, clock func() time.Time, generateInterval, eventLifetime time.Duration) *feed {
	return &feed{
		slotID:           slotID,
		timers:           make(map[uuid.UUID]*time.Timer),
		rng:              rng,
		clock:            clock,
		generateInterval: generateInterval,
		eventLifetime:    eventLifetime,
		stopCh:           make(chan struct{}),
	}
}

func (f *feed) run() {
	ticker := time.NewTicker(f.generateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.stopCh:
			return
		case <-ticker.C:
			f.generate()
		}
	}
}

// generate синтезирует одно событие: имя и действие выбираются равновероятно,
// событие добавляется в начало, список усекается до лимита при вставке
func (f *feed) generate() {
	f.mu.Lock()
	defer f.mu.Unlock()

	select {
	case <-f.stopCh:
		// Лента уже остановлена, тик генератора мог успеть сработать
		return
	default:
	}

	now := f.clock()
	event := domain.ActivityEvent{
		ID:        uuid.New(),
		SlotID:    f.slotID,
		UserName:  actorNames[f.rng.Intn(len(actorNames))],
		Action:    actorActions[f.rng.Intn(len(actorActions))],
		Timestamp: now,
		ExpiresAt: now.Add(f.eventLifetime),
	}

	f.events = append([]domain.ActivityEvent{event}, f.events...)

	// Вытесненные по лимиту события теряют и свои таймеры истечения
	if len(f.events) > maxEvents {
		for _, dropped := range f.events[maxEvents:] {
			if timer, exists := f.timers[dropped.ID]; exists {
				timer.Stop()
				delete(f.timers, dropped.ID)
			}
		}
		f.events = f.events[:maxEvents]
	}

	// Истечение удаляет только это событие по идентификатору
	f.timers[event.ID] = time.AfterFunc(f.eventLifetime, func() {
		f.expire(event.ID)
	})
}

func (f *feed) expire(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.timers, id)

	for i, event := range f.events {
		if event.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return
		}
	}
}

// snapshot - копия живых событий с возрастом, вычисленным на момент чтения
func (f *feed) snapshot() []domain.ActivityEventView {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.clock()
	views := make([]domain.ActivityEventView, 0, len(f.events))
	for _, event := range f.events {
		views = append(views, domain.ActivityEventView{
			ActivityEvent: event,
			AgeSeconds:    event.AgeSeconds(now),
		})
	}

	return views
}

// stop отменяет генератор и все ожидающие таймеры истечения разом
func (f *feed) stop() {
	f.stopOnce.Do(func() {
		close(f.stopCh)

		f.mu.Lock()
		defer f.mu.Unlock()

		for id, timer := range f.timers {
			timer.Stop()
			delete(f.timers, id)
		}
		f.events = nil
	})
}
