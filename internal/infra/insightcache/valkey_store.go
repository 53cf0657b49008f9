package insightcache

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/care-moments/internal/domain/textgen"
)

// ValkeyStore persists generated text in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "care-moments"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements textgen.Cache.
func (s *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return payload, true, nil
}

// Set implements textgen.Cache. Sub-second TTLs are rounded up to one second.
func (s *ValkeyStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(value)
	var cmd valkey.Completed
	if ex, ok := expiry(ttl); ok {
		cmd = builder.Ex(ex).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

// expiry maps a cache TTL onto SET EX; non-positive TTLs store without expiry.
func expiry(ttl time.Duration) (time.Duration, bool) {
	if ttl <= 0 {
		return 0, false
	}
	if ttl < time.Second {
		return time.Second, true
	}
	return ttl, true
}

func (s *ValkeyStore) entryKey(key string) string {
	return s.prefix + ":text:" + key
}

var _ textgen.Cache = (*ValkeyStore)(nil)
