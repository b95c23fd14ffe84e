package chart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	keyPrefix = "chart"
	// missingMarker is cached for account numbers the backing resolver does not know.
	missingMarker = "-"

	defaultLookupTimeout = 5 * time.Second
)

// CachedResolver is a read-through Redis cache in front of another resolver.
// Cache failures are logged and fall back to the backing resolver.
type CachedResolver struct {
	next          portsrepo.AccountResolver
	client        *redis.Client
	ttl           time.Duration
	negativeTTL   time.Duration
	lookupTimeout time.Duration
	logger        *slog.Logger
	group         singleflight.Group
}

var _ portsrepo.AccountResolver = (*CachedResolver)(nil)

// CachedResolverOption configures a CachedResolver.
type CachedResolverOption func(*CachedResolver)

// WithNegativeTTL sets how long unknown account numbers are remembered.
func WithNegativeTTL(ttl time.Duration) CachedResolverOption {
	return func(c *CachedResolver) {
		c.negativeTTL = ttl
	}
}

// WithLookupTimeout bounds how long a backing lookup shared by concurrent callers may run.
func WithLookupTimeout(timeout time.Duration) CachedResolverOption {
	return func(c *CachedResolver) {
		c.lookupTimeout = timeout
	}
}

// WithLogger sets the logger used for cache failures.
func WithLogger(logger *slog.Logger) CachedResolverOption {
	return func(c *CachedResolver) {
		c.logger = logger
	}
}

// NewCachedResolver wraps next with a Redis cache whose entries live for ttl.
func NewCachedResolver(next portsrepo.AccountResolver, client *redis.Client, ttl time.Duration, options ...CachedResolverOption) *CachedResolver {
	c := &CachedResolver{
		next:          next,
		client:        client,
		ttl:           ttl,
		negativeTTL:   ttl / 4,
		lookupTimeout: defaultLookupTimeout,
		logger:        slog.Default(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func cacheKey(regimeCode, accountNumber string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, regimeCode, accountNumber)
}

func (c *CachedResolver) ResolveAccount(ctx context.Context, accountNumber, regimeCode string) (*domain.ChartAccount, error) {
	k := cacheKey(regimeCode, accountNumber)

	payload, err := c.client.Get(ctx, k).Result()
	switch {
	case err == nil:
		if account, ok := c.decode(k, payload); ok {
			if account == nil {
				return nil, apperrors.ErrNotFound
			}
			return account, nil
		}
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Chart cache read failed", slog.String("key", k), slog.String("error", err.Error()))
	}

	// Callers joining the flight must not inherit the first caller's cancellation.
	shared := context.WithoutCancel(ctx)
	res := c.group.DoChan(k, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(shared, c.lookupTimeout)
		defer cancel()

		account, err := c.next.ResolveAccount(lookupCtx, accountNumber, regimeCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.store(lookupCtx, k, nil)
			}
			return nil, err
		}
		c.store(lookupCtx, k, account)
		return account, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-res:
		if r.Err != nil {
			return nil, r.Err
		}
		account := *r.Val.(*domain.ChartAccount)
		return &account, nil
	}
}

func (c *CachedResolver) ResolveAccounts(ctx context.Context, accountNumbers []string, regimeCode string) (map[string]domain.ChartAccount, error) {
	out := make(map[string]domain.ChartAccount, len(accountNumbers))
	if len(accountNumbers) == 0 {
		return out, nil
	}

	keys := make([]string, len(accountNumbers))
	for i, n := range accountNumbers {
		keys[i] = cacheKey(regimeCode, n)
	}

	misses := accountNumbers
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn("Chart cache batch read failed", slog.Int("keys", len(keys)), slog.String("error", err.Error()))
	} else {
		misses = misses[:0:0]
		for i, v := range values {
			payload, ok := v.(string)
			if !ok {
				misses = append(misses, accountNumbers[i])
				continue
			}
			account, ok := c.decode(keys[i], payload)
			switch {
			case !ok:
				misses = append(misses, accountNumbers[i])
			case account != nil:
				out[accountNumbers[i]] = *account
			}
		}
	}
	if len(misses) == 0 {
		return out, nil
	}

	resolved, err := c.next.ResolveAccounts(ctx, misses, regimeCode)
	if err != nil {
		return nil, err
	}

	pipe := c.client.Pipeline()
	for _, n := range misses {
		k := cacheKey(regimeCode, n)
		if account, ok := resolved[n]; ok {
			out[n] = account
			raw, _ := json.Marshal(account)
			pipe.Set(ctx, k, raw, c.ttl)
			continue
		}
		pipe.Set(ctx, k, missingMarker, c.negativeTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("Chart cache batch write failed", slog.Int("keys", len(misses)), slog.String("error", err.Error()))
	}
	return out, nil
}

// Invalidate drops the cached entry for one account.
func (c *CachedResolver) Invalidate(ctx context.Context, accountNumber, regimeCode string) error {
	return c.client.Del(ctx, cacheKey(regimeCode, accountNumber)).Err()
}

// decode returns (nil, true) for a cached miss and (nil, false) for an unreadable entry.
func (c *CachedResolver) decode(key, payload string) (*domain.ChartAccount, bool) {
	if payload == missingMarker {
		return nil, true
	}
	var account domain.ChartAccount
	if err := json.Unmarshal([]byte(payload), &account); err != nil {
		c.logger.Warn("Chart cache entry unreadable", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	return &account, true
}

func (c *CachedResolver) store(ctx context.Context, key string, account *domain.ChartAccount) {
	var (
		value any = missingMarker
		ttl       = c.negativeTTL
	)
	if account != nil {
		raw, err := json.Marshal(account)
		if err != nil {
			return
		}
		value, ttl = raw, c.ttl
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("Chart cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
