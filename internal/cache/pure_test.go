package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIP(t *testing.T) {
	t.Parallel()

	ips := []string{"192.168.1.1", "192.168.1.2", "127.0.0.1", "::1", "2001:db8::1", ""}
	seen := make(map[string]string, len(ips))

	for _, ip := range ips {
		h := hashIP(ip)
		assert.Len(t, h, 16, "hashIP(%q)", ip)
		assert.Equal(t, h, hashIP(ip), "hashIP(%q) is not deterministic", ip)

		if other, dup := seen[h]; dup {
			t.Errorf("hashIP collision between %q and %q", ip, other)
		}
		seen[h] = ip
	}
}

func TestIPRateLimitKey(t *testing.T) {
	t.Parallel()

	key := ipRateLimitKey("auth", "10.0.0.1")

	assert.Equal(t, rateLimitIPPrefix+"auth:"+hashIP("10.0.0.1"), key)
	assert.NotContains(t, key, "10.0.0.1", "raw IP must not appear in the Redis key")
	assert.NotEqual(t, key, ipRateLimitKey("other", "10.0.0.1"), "scopes must not share buckets")
}

func TestRateLimit_ZeroRateSkipsRedis(t *testing.T) {
	t.Parallel()

	// A nil client would panic if the limiter reached Redis.
	c := &Cache{}

	res, err := c.CheckUserRateLimit(context.Background(), "user-1", 0, 5)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.EqualValues(t, 5, res.Remaining)

	res, err = c.CheckIPRateLimit(context.Background(), "auth", "10.0.0.1", 0, 5)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	assert.Positive(t, opts.PoolSize)
	assert.LessOrEqual(t, opts.MinIdleConns, opts.PoolSize)
}

func TestNew_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), "not-a-redis-url", DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse Redis URL")
}
