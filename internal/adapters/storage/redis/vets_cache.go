package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"petclinic/internal/domain/vets"
	"petclinic/internal/platform/metrics"
	"petclinic/internal/platform/pagination"
)

const cacheName = "vets"

// VetsCache envuelve un vets.Repository y cachea sus lecturas con TTL.
// Si Redis falla se sirve directo del repositorio.
type VetsCache struct {
	next   vets.Repository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewVetsCache(next vets.Repository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *VetsCache {
	return &VetsCache{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "vets_cache").Logger(),
	}
}

func (c *VetsCache) FindAll(ctx context.Context) ([]vets.Vet, error) {
	var out []vets.Vet
	if c.get(ctx, "vets:all", &out) {
		return out, nil
	}

	out, err := c.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, "vets:all", out)
	return out, nil
}

func (c *VetsCache) FindPage(ctx context.Context, page pagination.Request) (pagination.Page[vets.Vet], error) {
	key := fmt.Sprintf("vets:page:%d:%d", page.Number, page.Size)

	var out pagination.Page[vets.Vet]
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.next.FindPage(ctx, page)
	if err != nil {
		return out, err
	}
	c.set(ctx, key, out)
	return out, nil
}

func (c *VetsCache) get(ctx context.Context, key string, dst any) bool {
	b, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.CacheLookupsTotal.WithLabelValues(cacheName, "miss").Inc()
		return false
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues(cacheName, "error").Inc()
		c.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}

	if err := json.Unmarshal(b, dst); err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(cacheName, "error").Inc()
		c.log.Warn().Err(err).Str("key", key).Msg("cache decode failed")
		return false
	}
	metrics.CacheLookupsTotal.WithLabelValues(cacheName, "hit").Inc()
	return true
}

func (c *VetsCache) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}
