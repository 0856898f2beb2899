package referrals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/redis"
)

type codeLookup interface {
	LookupByCode(ctx context.Context, code string) (*models.Affiliate, error)
}

type codeCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ReferralKey(sessionID string) string
}

// Resolution is the outcome of resolving a visitor's referral attribution.
type Resolution struct {
	Affiliate *models.Affiliate
	Code      string
	FromCache bool
}

// Resolver resolves referral codes for a visitor session. A code arriving on
// the URL wins over the cached one; once resolved it sticks to the session so
// the attribution survives page loads until checkout.
type Resolver struct {
	affiliates codeLookup
	cache      codeCache
	ttl        time.Duration
}

// ResolverParams groups dependencies for the resolver.
type ResolverParams struct {
	Affiliates codeLookup
	Cache      codeCache
	SessionTTL time.Duration
}

// NewResolver constructs a referral resolver.
func NewResolver(params ResolverParams) (*Resolver, error) {
	if params.Affiliates == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "affiliate lookup required")
	}
	if params.Cache == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "referral cache required")
	}
	ttl := params.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Resolver{affiliates: params.Affiliates, cache: params.Cache, ttl: ttl}, nil
}

// Resolve attributes the session. An explicit code is validated and cached;
// with no explicit code the cached one is revalidated. Unknown or inactive
// codes resolve to an empty attribution without error.
func (r *Resolver) Resolve(ctx context.Context, sessionID, code string) (*Resolution, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	code = strings.TrimSpace(code)
	fromCache := false
	if code == "" {
		cached, err := r.cache.Get(ctx, r.cache.ReferralKey(sessionID))
		if err != nil {
			if !errors.Is(err, redis.ErrNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cached referral code")
			}
			return &Resolution{}, nil
		}
		code = cached
		fromCache = true
	}
	if code == "" {
		return &Resolution{}, nil
	}

	affiliate, err := r.affiliates.LookupByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		// A stale cached code for a deactivated partner gets dropped.
		if fromCache {
			if err := r.cache.Del(ctx, r.cache.ReferralKey(sessionID)); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drop stale referral code")
			}
		}
		return &Resolution{}, nil
	}

	if !fromCache {
		if err := r.cache.Set(ctx, r.cache.ReferralKey(sessionID), code, r.ttl); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache referral code")
		}
	}

	return &Resolution{Affiliate: affiliate, Code: code, FromCache: fromCache}, nil
}

// Clear drops the session's cached attribution, typically after checkout.
func (r *Resolver) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := r.cache.Del(ctx, r.cache.ReferralKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear referral code")
	}
	return nil
}
