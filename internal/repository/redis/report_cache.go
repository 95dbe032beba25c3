package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/connectn/internal/service/benchmark"
	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "benchmark:report:"

// ReportCache keeps finished benchmark reports as JSON with a TTL.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

func reportKey(id string) string { return reportKeyPrefix + id }

func (c *ReportCache) SetReport(ctx context.Context, rep *benchmark.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return c.client.Set(ctx, reportKey(rep.ID), data, c.ttl).Err()
}

// GetReport returns (nil, nil) on a miss.
func (c *ReportCache) GetReport(ctx context.Context, id string) (*benchmark.Report, error) {
	data, err := c.client.Get(ctx, reportKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rep benchmark.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &rep, nil
}

func (c *ReportCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, reportKey(id)).Err()
}
