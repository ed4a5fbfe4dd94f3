package ports

import (
	"context"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
)

// DealStore records created deals for later dispute handling.
type DealStore interface {
	Save(ctx context.Context, deal *domain.Deal) error

	// Get returns domain.ErrDealNotFound for unknown ids.
	Get(ctx context.Context, id string) (*domain.Deal, error)
}
