// Package marketvalue turns a player's raw market value token into a number.
// Tokens come from a snapshot file or the player's profile page.
package marketvalue

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/senseiyukisan/sports-analytics/internal/models"
	"github.com/senseiyukisan/sports-analytics/pkg/config"
)

// Resolver looks up and parses market values. Any failure yields 0 plus the reason.
type Resolver struct {
	source Source
}

func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

func (r *Resolver) SourceName() string { return r.source.Name() }

// Resolve returns the player's market value. On error the value is 0.
func (r *Resolver) Resolve(ctx context.Context, player models.Player) (float64, error) {
	token, err := r.source.FetchToken(ctx, player)
	if err != nil {
		return 0, fmt.Errorf("player %d: %w", player.ID, err)
	}
	value, err := ParseToken(token)
	if err != nil {
		return 0, fmt.Errorf("player %d: %w", player.ID, err)
	}
	return value, nil
}

// CollectTokens fetches the raw token of every player. Players without a token are counted, not stored.
func CollectTokens(ctx context.Context, source Source, players []models.Player, logger *logrus.Logger) (map[int64]string, int, error) {
	tokens := make(map[int64]string, len(players))
	missing := 0
	for i, p := range players {
		if err := ctx.Err(); err != nil {
			return nil, missing, err
		}
		token, err := source.FetchToken(ctx, p)
		if err != nil {
			missing++
			logger.WithFields(logrus.Fields{"player_id": p.ID}).Debugf("No market value token: %v", err)
			continue
		}
		tokens[p.ID] = token
		if (i+1)%100 == 0 {
			logger.Infof("Collected market values for %d/%d players", i+1, len(players))
		}
	}
	return tokens, missing, nil
}

// NewSource builds the configured token source, wrapped in a cache for remote lookups.
// The returned close func releases the cache connection.
func NewSource(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (Source, func(), error) {
	noop := func() {}
	switch cfg.MarketValueSource {
	case "none":
		return DisabledSource{}, noop, nil
	case "file":
		src, err := LoadFileSource(cfg.MarketValuesFile)
		if err != nil {
			return nil, noop, err
		}
		logger.WithField("players", src.Len()).Info("Loaded market value snapshot")
		return src, noop, nil
	case "transfermarkt":
		src := NewTransfermarktSource(TransfermarktOptions{
			UserAgent:        cfg.TransfermarktUA,
			RequestsPerSec:   cfg.FetchRateLimit,
			Timeout:          cfg.FetchTimeout,
			MaxRetries:       cfg.FetchMaxRetries,
			RetryBackoff:     cfg.FetchRetryBackoff,
			BreakerThreshold: cfg.CircuitBreakerThreshold,
			BreakerTimeout:   cfg.CircuitBreakerTimeout,
		}, logger)
		if cfg.RedisURL == "" {
			return NewCachedSource(src, NewMemoryCache(), cfg.MarketValueCacheTTL, logger), noop, nil
		}
		cache, err := NewRedisCacheFromURL(ctx, cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, using in-process market value cache")
			return NewCachedSource(src, NewMemoryCache(), cfg.MarketValueCacheTTL, logger), noop, nil
		}
		return NewCachedSource(src, cache, cfg.MarketValueCacheTTL, logger), func() { cache.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unknown market value source %q", cfg.MarketValueSource)
}
