package cache

import (
	"context"
	"sync"
	"time"

	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
)

type doctorsCache struct {
	mu        sync.RWMutex
	doctors   []domain.Doctor
	timestamp time.Time
	ttl       time.Duration
}

// Кэширование списка врачей

func (c *CacheAdapter) GetDoctors(ctx context.Context) ([]domain.Doctor, bool) {
	c.doctorsCache.mu.RLock()
	defer c.doctorsCache.mu.RUnlock()

	if c.doctorsCache.doctors == nil || time.Since(c.doctorsCache.timestamp) > c.doctorsCache.ttl {
		c.logger.Debug("cache.doctors.get.miss", out.LogFields{})
		return nil, false
	}

	c.logger.Debug("cache.doctors.get.hit", out.LogFields{
		"doctorsCount": len(c.doctorsCache.doctors),
	})
	return c.doctorsCache.doctors, true
}

func (c *CacheAdapter) StoreDoctors(ctx context.Context, doctors []domain.Doctor) {
	c.doctorsCache.mu.Lock()
	defer c.doctorsCache.mu.Unlock()

	c.doctorsCache.doctors = doctors
	c.doctorsCache.timestamp = time.Now()
}
