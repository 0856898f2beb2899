package referrals

import (
	"context"
	"testing"
	"time"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/redis"
)

type stubLookup struct {
	affiliates map[string]*models.Affiliate
}

func (s *stubLookup) LookupByCode(_ context.Context, code string) (*models.Affiliate, error) {
	return s.affiliates[code], nil
}

type stubCache struct {
	values map[string]string
	sets   int
}

func (s *stubCache) Get(_ context.Context, key string) (string, error) {
	if value, ok := s.values[key]; ok {
		return value, nil
	}
	return "", redis.ErrNotFound
}

func (s *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.values[key] = value.(string)
	s.sets++
	return nil
}

func (s *stubCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *stubCache) ReferralKey(sessionID string) string {
	return "referral:" + sessionID
}

func newTestResolver(t *testing.T, lookup *stubLookup, cache *stubCache) *Resolver {
	t.Helper()
	resolver, err := NewResolver(ResolverParams{
		Affiliates: lookup,
		Cache:      cache,
		SessionTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return resolver
}

func TestResolveExplicitCodeCaches(t *testing.T) {
	affiliate := &models.Affiliate{Name: "Maria", ReferralCode: "maria1"}
	lookup := &stubLookup{affiliates: map[string]*models.Affiliate{"maria1": affiliate}}
	cache := &stubCache{values: map[string]string{}}
	resolver := newTestResolver(t, lookup, cache)

	result, err := resolver.Resolve(context.Background(), "sess-1", "maria1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Affiliate == nil || result.Affiliate.Name != "Maria" {
		t.Fatal("expected affiliate resolution")
	}
	if result.FromCache {
		t.Fatal("explicit code must not report cache hit")
	}
	if cache.values["referral:sess-1"] != "maria1" {
		t.Fatal("expected code to be cached for the session")
	}
}

func TestResolveFallsBackToCachedCode(t *testing.T) {
	affiliate := &models.Affiliate{Name: "Maria", ReferralCode: "maria1"}
	lookup := &stubLookup{affiliates: map[string]*models.Affiliate{"maria1": affiliate}}
	cache := &stubCache{values: map[string]string{"referral:sess-1": "maria1"}}
	resolver := newTestResolver(t, lookup, cache)

	result, err := resolver.Resolve(context.Background(), "sess-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Affiliate == nil || !result.FromCache {
		t.Fatal("expected cached resolution")
	}
	if cache.sets != 0 {
		t.Fatal("cache hit must not rewrite the cached code")
	}
}

func TestResolveUnknownCodeIsEmptyResolution(t *testing.T) {
	lookup := &stubLookup{affiliates: map[string]*models.Affiliate{}}
	cache := &stubCache{values: map[string]string{}}
	resolver := newTestResolver(t, lookup, cache)

	result, err := resolver.Resolve(context.Background(), "sess-1", "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Affiliate != nil {
		t.Fatal("unknown code must resolve to no affiliate")
	}
	if len(cache.values) != 0 {
		t.Fatal("unknown code must not be cached")
	}
}

func TestResolveDropsStaleCachedCode(t *testing.T) {
	lookup := &stubLookup{affiliates: map[string]*models.Affiliate{}}
	cache := &stubCache{values: map[string]string{"referral:sess-1": "retired"}}
	resolver := newTestResolver(t, lookup, cache)

	result, err := resolver.Resolve(context.Background(), "sess-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Affiliate != nil {
		t.Fatal("retired code must resolve to no affiliate")
	}
	if _, ok := cache.values["referral:sess-1"]; ok {
		t.Fatal("stale cached code must be dropped")
	}
}

func TestClearRemovesSessionAttribution(t *testing.T) {
	lookup := &stubLookup{affiliates: map[string]*models.Affiliate{}}
	cache := &stubCache{values: map[string]string{"referral:sess-1": "maria1"}}
	resolver := newTestResolver(t, lookup, cache)

	if err := resolver.Clear(context.Background(), "sess-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.values) != 0 {
		t.Fatal("expected cache entry to be cleared")
	}
}
