// Package cache keeps the admin dashboard counters in Redis so repeated
// dashboard loads skip the aggregate query.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/docutrack/internal/config"
	"github.com/iliyamo/docutrack/internal/logger"
	"github.com/iliyamo/docutrack/internal/metrics"
	"github.com/iliyamo/docutrack/internal/model"
)

// NoGeneration is returned by Get when the cache cannot be used. Set ignores
// it.
const NoGeneration int64 = -1

// Stats caches model.Stats under a generation-scoped key. Invalidate bumps
// the generation, so a value computed before a write can only be stored
// under a key no reader will look at again.
//
// A nil client or a disabled config turns every method into a no-op, and
// Redis errors are treated as misses so the database stays the source of
// truth.
type Stats struct {
	rdb *redis.Client
	key string
	ttl time.Duration
	log *logger.Logger
}

func NewStats(cfg config.StatsCacheConfig, rdb *redis.Client, log *logger.Logger) *Stats {
	if !cfg.Enabled {
		rdb = nil
	}
	return &Stats{rdb: rdb, key: cfg.Key, ttl: cfg.TTL, log: log}
}

func (s *Stats) genKey() string { return s.key + ":gen" }

func (s *Stats) valueKey(gen int64) string { return s.key + ":" + strconv.FormatInt(gen, 10) }

// Get returns the cached counters for the current generation. The returned
// generation must be read before the database is queried and handed back to
// Set on a miss.
func (s *Stats) Get(ctx context.Context) (model.Stats, int64, bool) {
	if s == nil || s.rdb == nil {
		return model.Stats{}, NoGeneration, false
	}
	gen, err := s.rdb.Get(ctx, s.genKey()).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		gen = 0
	case err != nil:
		s.log.Warn("stats cache generation read failed", "error", err)
		metrics.CacheResult(false)
		return model.Stats{}, NoGeneration, false
	}

	b, err := s.rdb.Get(ctx, s.valueKey(gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("stats cache get failed", "error", err)
		}
		metrics.CacheResult(false)
		return model.Stats{}, gen, false
	}
	var st model.Stats
	if err := json.Unmarshal(b, &st); err != nil {
		metrics.CacheResult(false)
		return model.Stats{}, gen, false
	}
	metrics.CacheResult(true)
	return st, gen, true
}

// Set stores st for generation gen with the configured TTL.
func (s *Stats) Set(ctx context.Context, gen int64, st model.Stats) {
	if s == nil || s.rdb == nil || gen < 0 {
		return
	}
	b, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, s.valueKey(gen), b, s.ttl).Err(); err != nil {
		s.log.Warn("stats cache set failed", "error", err)
	}
}

// Invalidate starts a new generation. Called after any write that changes
// the counters.
func (s *Stats) Invalidate(ctx context.Context) {
	if s == nil || s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, s.genKey()).Err(); err != nil {
		s.log.Warn("stats cache invalidate failed", "error", err)
	}
}
