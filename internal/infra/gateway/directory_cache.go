package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/patrickmn/go-cache"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/usecase"
)

const (
	professionalsKey = "directory:professionals"
	scoresKey        = "directory:scores"
	directoryTTL     = 60 // seconds, memcached side
)

// DirectoryCache is a read-through cache in front of the directory
// repository. The hot search inputs (active professionals and their
// scores) live in memcached so every node shares one copy; the small
// category list stays in-process.
type DirectoryCache struct {
	inner usecase.DirectoryRepository
	mc    *memcache.Client
	local *cache.Cache
}

func NewDirectoryCache(inner usecase.DirectoryRepository, mc *memcache.Client) *DirectoryCache {
	return &DirectoryCache{
		inner: inner,
		mc:    mc,
		local: cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (g *DirectoryCache) ListActiveProfessionals(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if g.fetch(professionalsKey, &users) {
		return users, nil
	}

	users, err := g.inner.ListActiveProfessionals(ctx)
	if err != nil {
		return nil, err
	}
	g.store(professionalsKey, users)
	return users, nil
}

func (g *DirectoryCache) ScoresByProfessional(ctx context.Context) (map[string][]int, error) {
	var scores map[string][]int
	if g.fetch(scoresKey, &scores) {
		return scores, nil
	}

	scores, err := g.inner.ScoresByProfessional(ctx)
	if err != nil {
		return nil, err
	}
	g.store(scoresKey, scores)
	return scores, nil
}

func (g *DirectoryCache) DistinctCategories(ctx context.Context) ([]string, error) {
	if cached, found := g.local.Get("categories"); found {
		return cached.([]string), nil
	}

	categories, err := g.inner.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	g.local.Set("categories", categories, cache.DefaultExpiration)
	return categories, nil
}

// Invalidate drops the cached directory after a profile or rating write.
func (g *DirectoryCache) Invalidate() {
	g.local.Flush()
	if g.mc != nil {
		_ = g.mc.Delete(professionalsKey)
		_ = g.mc.Delete(scoresKey)
	}
}

// The remaining lookups are per-entity and cheap; they pass straight
// through.

func (g *DirectoryCache) Get(ctx context.Context, id string) (domain.User, error) {
	return g.inner.Get(ctx, id)
}

func (g *DirectoryCache) CountCompletedRequests(ctx context.Context, professionalID string) (int64, error) {
	return g.inner.CountCompletedRequests(ctx, professionalID)
}

func (g *DirectoryCache) CountRequests(ctx context.Context) (int64, error) {
	return g.inner.CountRequests(ctx)
}

func (g *DirectoryCache) RecentCompletedRequests(ctx context.Context, limit int) ([]domain.ServiceRequest, error) {
	return g.inner.RecentCompletedRequests(ctx, limit)
}

func (g *DirectoryCache) fetch(key string, dest any) bool {
	if g.mc == nil {
		return false
	}
	item, err := g.mc.Get(key)
	if err != nil {
		return false
	}
	return json.Unmarshal(item.Value, dest) == nil
}

func (g *DirectoryCache) store(key string, value any) {
	if g.mc == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = g.mc.Set(&memcache.Item{Key: key, Value: raw, Expiration: directoryTTL})
}

var _ usecase.DirectoryRepository = (*DirectoryCache)(nil)
