package redisstats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

const (
	keyTotalDeals       = "stats:total_deals"
	keyDisputesResolved = "stats:disputes_resolved"
)

// Repo keeps the public counters in redis.
type Repo struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Repo {
	return &Repo{rdb: rdb}
}

func (r *Repo) IncrTotalDeals(ctx context.Context) (int64, error) {
	n, err := r.rdb.Incr(ctx, keyTotalDeals).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", keyTotalDeals, err)
	}
	return n, nil
}

func (r *Repo) Totals(ctx context.Context) (domain.Stats, error) {
	vals, err := r.rdb.MGet(ctx, keyTotalDeals, keyDisputesResolved).Result()
	if err != nil {
		return domain.Stats{}, fmt.Errorf("mget stats: %w", err)
	}
	return domain.Stats{
		TotalDeals:       parseCounter(vals[0]),
		DisputesResolved: parseCounter(vals[1]),
	}, nil
}

func parseCounter(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
