package weather

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// TTL bounds how long a cached weather payload is served before a fresh
// fetch.
const TTL = 300 * time.Second

// ErrNoAPIKey means neither the race config nor the environment provided
// an OpenWeatherMap key.
var ErrNoAPIKey = errors.New("no OpenWeatherMap API key set")

// Fetcher is the external weather provider.
type Fetcher interface {
	FetchCurrent(ctx context.Context, lat, lon float64, apiKey string) (json.RawMessage, error)
}

type cacheKey struct {
	lat, lon float64
}

type cacheEntry struct {
	payload   json.RawMessage
	fetchedAt time.Time
}

// Service is a read-through cache in front of the weather provider, keyed
// by coordinate pair. Entries expire on read after TTL; fetch failures are
// never cached, so the next call retries. Key growth is unbounded, which
// is fine at one key per distinct circuit queried.
type Service struct {
	fetcher Fetcher
	clock   clockwork.Clock

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
}

func NewService(fetcher Fetcher, clock clockwork.Clock) *Service {
	return &Service{
		fetcher: fetcher,
		clock:   clock,
		cache:   make(map[cacheKey]cacheEntry),
	}
}

// Current returns the current conditions for a coordinate pair, served
// from cache when the entry is younger than TTL. The boolean reports a
// cache hit.
func (s *Service) Current(ctx context.Context, lat, lon float64, apiKey string) (json.RawMessage, bool, error) {
	if apiKey == "" {
		return nil, false, ErrNoAPIKey
	}

	key := cacheKey{lat: lat, lon: lon}
	now := s.clock.Now()

	s.mu.Lock()
	entry, ok := s.cache[key]
	s.mu.Unlock()
	if ok && now.Sub(entry.fetchedAt) < TTL {
		return entry.payload, true, nil
	}

	payload, err := s.fetcher.FetchCurrent(ctx, lat, lon, apiKey)
	if err != nil {
		log.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("weather fetch failed")
		return nil, false, err
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{payload: payload, fetchedAt: now}
	s.mu.Unlock()

	return payload, false, nil
}
