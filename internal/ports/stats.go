package ports

import (
	"context"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

// StatsRepo keeps the public bot counters.
type StatsRepo interface {
	IncrTotalDeals(ctx context.Context) (int64, error)
	Totals(ctx context.Context) (domain.Stats, error)
}
