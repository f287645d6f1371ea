package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/booking-slot-discovery/internal/config"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
)

type CacheAdapter struct {
	slotsCache   *slotsCache
	doctorsCache *doctorsCache
	logger       out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruSlotsCache, err := lru.New[string, *slotsCacheEntry](cfg.Cache.SlotsSize)
	if err != nil {
		logger.Error("cache.slots.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SlotsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		slotsCache: &slotsCache{
			cache: lruSlotsCache,
			ttl:   cfg.SlotsCacheTTL(),
		},
		doctorsCache: &doctorsCache{
			ttl: cfg.DoctorsCacheTTL(),
		},
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.slotsCache.mu.Lock()
	c.slotsCache.cache.Purge()
	c.slotsCache.mu.Unlock()

	c.doctorsCache.mu.Lock()
	c.doctorsCache.doctors = nil
	c.doctorsCache.timestamp = time.Time{}
	c.doctorsCache.mu.Unlock()

	c.logger.Debug("cache.invalidate_all", out.LogFields{})
}
