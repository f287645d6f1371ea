package calendar_service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/in"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
)

// Периодическое обновление активного вида каждые 10 секунд
const defaultRefreshInterval = 10 * time.Second

// CalendarRefresher держит активный вид календаря и обновляет его по таймеру
// и по действиям пользователя (навигация, смена фильтра или режима).
//
// Таймерное обновление и навигация могут гоняться: каждый запрос получает
// монотонно возрастающий токен, и ответ применяется только пока его токен
// остается последним выданным. Устаревший ответ отбрасывается.
type CalendarRefresher struct {
	useCase in.CalendarUseCase
	logger  out.LoggerPort

	mu     sync.Mutex
	filter domain.DoctorFilter
	view   domain.CalendarViewMode
	anchor time.Time
	grid   *domain.CalendarGrid

	token atomic.Uint64

	refreshInterval time.Duration
	stopCh          chan struct{}
	stopOnce        sync.Once
}

func NewCalendarRefresher(useCase in.CalendarUseCase, logger out.LoggerPort) *CalendarRefresher {
	return &CalendarRefresher{
		useCase:         useCase,
		logger:          logger.WithModule("CalendarRefresher"),
		filter:          domain.DoctorFilterAll,
		view:            domain.CalendarViewWeek,
		anchor:          time.Now(),
		refreshInterval: defaultRefreshInterval,
		stopCh:          make(chan struct{}),
	}
}

// Start запускает периодическое обновление. Остановка через Stop или отмену контекста.
func (r *CalendarRefresher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				// Обновление по тику использует текущие фильтр и окно
				if err := r.Refresh(ctx); err != nil {
					r.logger.Warn("calendar.refresh.tick_failed", out.LogFields{
						"error": err.Error(),
					})
				}
			}
		}
	}()
}

func (r *CalendarRefresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
}

// Grid возвращает последнюю успешно построенную сетку, nil до первого обновления
func (r *CalendarRefresher) Grid() *domain.CalendarGrid {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grid
}

// Navigate сдвигает опорную дату на период вперед или назад и обновляет вид
func (r *CalendarRefresher) Navigate(ctx context.Context, direction int) error {
	r.mu.Lock()
	r.anchor = ShiftAnchor(r.view, r.anchor, direction)
	r.mu.Unlock()

	return r.Refresh(ctx)
}

// SetFilter меняет фильтр врача и обновляет вид
func (r *CalendarRefresher) SetFilter(ctx context.Context, filter domain.DoctorFilter) error {
	r.mu.Lock()
	r.filter = filter
	r.mu.Unlock()

	return r.Refresh(ctx)
}

// SetViewMode меняет режим недели или месяца и обновляет вид
func (r *CalendarRefresher) SetViewMode(ctx context.Context, view domain.CalendarViewMode) error {
	r.mu.Lock()
	r.view = view
	r.mu.Unlock()

	return r.Refresh(ctx)
}

// Refresh перестраивает сетку для текущих параметров с дисциплиной
// "последний запрос побеждает"
func (r *CalendarRefresher) Refresh(ctx context.Context) error {
	token := r.beginRefresh()

	r.mu.Lock()
	filter, view, anchor := r.filter, r.view, r.anchor
	r.mu.Unlock()

	grid, err := r.useCase.BuildGrid(ctx, filter, view, anchor)
	if err != nil {
		// Последняя успешная сетка остается видимой
		return err
	}

	r.applyGrid(token, grid)
	return nil
}

func (r *CalendarRefresher) beginRefresh() uint64 {
	return r.token.Add(1)
}

// applyGrid применяет результат, только если его токен все еще последний выданный
func (r *CalendarRefresher) applyGrid(token uint64, grid *domain.CalendarGrid) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token != r.token.Load() {
		r.logger.Debug("calendar.refresh.stale_discarded", out.LogFields{
			"token":  token,
			"latest": r.token.Load(),
		})
		return false
	}

	r.grid = grid
	return true
}
