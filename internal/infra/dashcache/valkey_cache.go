package dashcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
	"github.com/yanqian/wellness-hub/internal/domain/wellness"
)

// ValkeyCache stores dashboards as JSON in a Valkey-compatible database.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "wellness"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

func (c *ValkeyCache) Get(ctx context.Context, userID int64) (metrics.Dashboard, bool, error) {
	cmd := c.client.B().Get().Key(c.key(userID)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return metrics.Dashboard{}, false, nil
		}
		return metrics.Dashboard{}, false, err
	}
	var dashboard metrics.Dashboard
	if err := json.Unmarshal([]byte(payload), &dashboard); err != nil {
		return metrics.Dashboard{}, false, err
	}
	return dashboard, true, nil
}

func (c *ValkeyCache) Set(ctx context.Context, userID int64, dashboard metrics.Dashboard, ttl time.Duration) error {
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.key(userID)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) Invalidate(ctx context.Context, userID int64) error {
	return c.client.Do(ctx, c.client.B().Del().Key(c.key(userID)).Build()).Error()
}

func (c *ValkeyCache) key(userID int64) string {
	return fmt.Sprintf("%s:dashboard:%d", c.prefix, userID)
}

var _ wellness.DashboardCache = (*ValkeyCache)(nil)
