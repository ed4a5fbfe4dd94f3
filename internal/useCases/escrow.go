package useCases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
	"github.com/Devashishswamii/tgescrowbot/internal/ports"
)

const groupAbout = "Secure escrow deal. Follow the pinned instructions."

// EscrowService creates deal groups on behalf of the stored operator
// session. It consumes the auth core's output and never touches login
// state itself.
type EscrowService struct {
	auth        *AuthService
	deals       ports.DealStore
	stats       ports.StatsRepo
	botUsername string
	log         *slog.Logger
}

func NewEscrowService(auth *AuthService, deals ports.DealStore, stats ports.StatsRepo, botUsername string, log *slog.Logger) *EscrowService {
	return &EscrowService{
		auth:        auth,
		deals:       deals,
		stats:       stats,
		botUsername: strings.TrimPrefix(botUsername, "@"),
		log:         log,
	}
}

// CreateDealGroup creates a fresh supergroup for one deal and returns its
// invite link. operatorPhone may be empty to use the latest stored session.
func (e *EscrowService) CreateDealGroup(ctx context.Context, operatorPhone string) (*domain.Deal, error) {
	dealID := newDealID()

	handle, err := e.auth.GetHandleForPhone(ctx, operatorPhone)
	if err != nil {
		return nil, err
	}
	defer handle.Close()

	group, err := handle.CreateSupergroup(ctx, fmt.Sprintf("Escrow Group #%s", dealID), groupAbout)
	if err != nil {
		e.log.Error("create group failed", "deal_id", dealID, "error", err)
		return nil, err
	}

	link, err := handle.ExportInviteLink(ctx, group)
	if err != nil {
		e.log.Error("export invite failed", "deal_id", dealID, "group_id", group.ID, "error", err)
		return nil, err
	}

	deal := &domain.Deal{ID: dealID, GroupID: group.ID, InviteLink: link}
	if e.deals != nil {
		if err := e.deals.Save(ctx, deal); err != nil {
			e.log.Error("deal record save failed", "deal_id", dealID, "error", err)
			return nil, err
		}
	}

	// The bot joining is best effort: the group is already usable via the
	// invite link.
	if e.botUsername != "" {
		if err := handle.InviteUser(ctx, group, e.botUsername); err != nil {
			e.log.Warn("bot invite failed", "deal_id", dealID, "bot", e.botUsername, "error", err)
		}
	}

	if e.stats != nil {
		if _, err := e.stats.IncrTotalDeals(ctx); err != nil {
			e.log.Warn("deal counter bump failed", "deal_id", dealID, "error", err)
		}
	}

	e.log.Info("escrow group created", "deal_id", dealID, "group_id", group.ID)
	return deal, nil
}

// Stats reports the public counters.
func (e *EscrowService) Stats(ctx context.Context) (domain.Stats, error) {
	if e.stats == nil {
		return domain.Stats{}, nil
	}
	return e.stats.Totals(ctx)
}

// Deal ids stay short so they read well in group titles. Collisions are
// acceptable at this volume.
func newDealID() string {
	return uuid.NewString()[:5]
}
