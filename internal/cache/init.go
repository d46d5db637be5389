package cache

import (
	"github.com/gestia/gestia/internal/config"
	"github.com/gestia/gestia/internal/logger"
)

// Initialize initializes the cache system and sets the global instance
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	globalCache = NewInMemoryCache(cfg.Cache.Enabled)
	log.Infow("cache system initialized", "enabled", cfg.Cache.Enabled)
	return globalCache
}
