package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/booking-slot-discovery/internal/core/domain"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
)

type slotsCacheEntry struct {
	Slots    []domain.Slot
	StoredAt time.Time
}

type slotsCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *slotsCacheEntry]
	ttl   time.Duration
}

// Кэширование слотов по врачу

func (c *CacheAdapter) GetDoctorSlots(ctx context.Context, doctorID string) ([]domain.Slot, bool) {
	c.slotsCache.mu.RLock()
	defer c.slotsCache.mu.RUnlock()

	entry, exists := c.slotsCache.cache.Get(doctorID)
	if !exists {
		c.logger.Debug("cache.slots.get.miss", out.LogFields{
			"doctorId": doctorID,
		})
		return nil, false
	}

	// Протухшая запись равносильна промаху
	if time.Since(entry.StoredAt) > c.slotsCache.ttl {
		c.logger.Debug("cache.slots.get.expired", out.LogFields{
			"doctorId": doctorID,
			"storedAt": entry.StoredAt,
		})
		return nil, false
	}

	c.logger.Debug("cache.slots.get.hit", out.LogFields{
		"doctorId":   doctorID,
		"slotsCount": len(entry.Slots),
	})
	return entry.Slots, true
}

func (c *CacheAdapter) StoreDoctorSlots(ctx context.Context, doctorID string, slots []domain.Slot) {
	c.slotsCache.mu.Lock()
	defer c.slotsCache.mu.Unlock()

	c.logger.Debug("cache.slots.store", out.LogFields{
		"doctorId":   doctorID,
		"slotsCount": len(slots),
	})

	c.slotsCache.cache.Add(doctorID, &slotsCacheEntry{
		Slots:    slots,
		StoredAt: time.Now(),
	})
}

func (c *CacheAdapter) InvalidateDoctorSlots(ctx context.Context, doctorID string) {
	c.slotsCache.mu.Lock()
	defer c.slotsCache.mu.Unlock()

	c.slotsCache.cache.Remove(doctorID)

	c.logger.Debug("cache.slots.invalidate", out.LogFields{
		"doctorId": doctorID,
	})
}
