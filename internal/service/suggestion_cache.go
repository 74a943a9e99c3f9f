package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pageza/dishdash/backend/internal/metrics"
	"github.com/pageza/dishdash/backend/internal/types"
)

// SuggestionCache keeps generated suggestion lists for a while. Failures are
// logged by the implementation and reported as misses.
type SuggestionCache interface {
	Get(ctx context.Context, key string) ([]types.RecipeSuggestion, bool)
	Set(ctx context.Context, key string, suggestions []types.RecipeSuggestion)
}

const suggestionKeyPrefix = "recipe:suggestions:"

// suggestionCacheKey hashes the criteria after folding case, trimming and
// sorting the list fields, so equivalent requests share an entry.
func suggestionCacheKey(req types.RecipeGenerateRequest) string {
	normalized := struct {
		Ingredients         []string `json:"i"`
		CookingTime         *int     `json:"t,omitempty"`
		Difficulty          *int     `json:"d,omitempty"`
		Servings            int      `json:"s"`
		DietaryRestrictions []string `json:"r,omitempty"`
		CuisinePreferences  []string `json:"c,omitempty"`
		Allergies           []string `json:"a,omitempty"`
	}{
		Ingredients:         normalizeList(req.Ingredients),
		CookingTime:         req.CookingTime,
		Difficulty:          req.Difficulty,
		Servings:            req.ServingsOrDefault(),
		DietaryRestrictions: normalizeList(req.DietaryRestrictions),
		CuisinePreferences:  normalizeList(req.CuisinePreferences),
		Allergies:           normalizeList(req.Allergies),
	}

	data, _ := json.Marshal(normalized)
	sum := sha256.Sum256(data)
	return suggestionKeyPrefix + hex.EncodeToString(sum[:])
}

func normalizeList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}

// RedisSuggestionCache shares suggestions between instances.
type RedisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logrus.FieldLogger
}

func NewRedisSuggestionCache(client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *RedisSuggestionCache {
	return &RedisSuggestionCache{
		client: client,
		ttl:    ttl,
		log:    log.WithField("component", "suggestion_cache"),
	}
}

func (c *RedisSuggestionCache) Get(ctx context.Context, key string) ([]types.RecipeSuggestion, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).Warn("Failed to read suggestions from Redis")
		}
		metrics.SuggestionCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var suggestions []types.RecipeSuggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		c.log.WithError(err).Warn("Discarding malformed cached suggestions")
		metrics.SuggestionCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.SuggestionCacheLookups.WithLabelValues("hit").Inc()
	return suggestions, true
}

func (c *RedisSuggestionCache) Set(ctx context.Context, key string, suggestions []types.RecipeSuggestion) {
	data, err := json.Marshal(suggestions)
	if err != nil {
		c.log.WithError(err).Warn("Failed to encode suggestions")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("Failed to write suggestions to Redis")
	}
}

// LRUSuggestionCache is the in-process fallback used without Redis.
type LRUSuggestionCache struct {
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

type lruEntry struct {
	suggestions []types.RecipeSuggestion
	expiresAt   time.Time
}

func NewLRUSuggestionCache(size int, ttl time.Duration) (*LRUSuggestionCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &LRUSuggestionCache{cache: cache, ttl: ttl, now: time.Now}, nil
}

func (c *LRUSuggestionCache) Get(_ context.Context, key string) ([]types.RecipeSuggestion, bool) {
	value, ok := c.cache.Get(key)
	if !ok {
		metrics.SuggestionCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	entry := value.(lruEntry)
	if c.now().After(entry.expiresAt) {
		c.cache.Remove(key)
		metrics.SuggestionCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.SuggestionCacheLookups.WithLabelValues("hit").Inc()
	return append([]types.RecipeSuggestion(nil), entry.suggestions...), true
}

func (c *LRUSuggestionCache) Set(_ context.Context, key string, suggestions []types.RecipeSuggestion) {
	c.cache.Add(key, lruEntry{
		suggestions: append([]types.RecipeSuggestion(nil), suggestions...),
		expiresAt:   c.now().Add(c.ttl),
	})
}
