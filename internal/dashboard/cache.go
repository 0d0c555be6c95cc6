package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"clientportal/internal/model"
	"clientportal/pkg/metrics"
)

// ViewCache keeps assembled dashboard views in Redis for a short TTL.
// Keys are scoped per project and per user since visibility differs
// between users. Cache failures degrade to a repository load, never to an
// error for the caller.
type ViewCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewViewCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *ViewCache {
	return &ViewCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func viewKey(projectID, userID model.FlexID) string {
	return fmt.Sprintf("dashboard:view:%s:%s", projectID, userID)
}

func (c *ViewCache) Get(ctx context.Context, projectID, userID model.FlexID) (*View, bool) {
	data, err := c.rdb.Get(ctx, viewKey(projectID, userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			metrics.DashboardCacheCount.WithLabelValues("error").Inc()
			c.logger.Warn("Dashboard cache read failed", zap.Error(err))
		} else {
			metrics.DashboardCacheCount.WithLabelValues("miss").Inc()
		}
		return nil, false
	}

	var view View
	if err := json.Unmarshal(data, &view); err != nil {
		metrics.DashboardCacheCount.WithLabelValues("error").Inc()
		c.logger.Warn("Dashboard cache entry corrupt", zap.Error(err))
		return nil, false
	}

	metrics.DashboardCacheCount.WithLabelValues("hit").Inc()
	return &view, true
}

func (c *ViewCache) Set(ctx context.Context, projectID, userID model.FlexID, view *View) {
	data, err := json.Marshal(view)
	if err != nil {
		c.logger.Warn("Dashboard cache marshal failed", zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, viewKey(projectID, userID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Dashboard cache write failed", zap.Error(err))
	}
}

// InvalidateProject drops every cached view of a project, for all users.
// Called after a task completion or an admin edit.
func (c *ViewCache) InvalidateProject(ctx context.Context, projectID model.FlexID) {
	pattern := fmt.Sprintf("dashboard:view:%s:*", projectID)
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("Dashboard cache invalidation failed",
				zap.String("key", iter.Val()),
				zap.Error(err),
			)
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Dashboard cache scan failed", zap.Error(err))
	}
}
