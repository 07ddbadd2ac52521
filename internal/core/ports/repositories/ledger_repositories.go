package repositories

import (
	"context"

	"github.com/crickclub/club_funds_app/internal/core/domain"
)

// LedgerRepository is the port to the external document store holding the
// shared ledger document. The store only supports fetching and fully
// replacing one named document; there is no partial update and no version
// token.
type LedgerRepository interface {
	// GetDocument fetches the whole ledger document. A store without a
	// document yet yields an empty document with zeroed totals.
	GetDocument(ctx context.Context) (*domain.LedgerDocument, error)

	// UpdateDocument runs one read-whole -> mutate-in-memory -> replace-whole
	// cycle. Implementations serialize concurrent callers so that in-process
	// writers cannot lose each other's updates; the store itself offers no
	// such guarantee across processes. If mutate returns an error, nothing is
	// written and the error is returned unchanged.
	UpdateDocument(ctx context.Context, mutate func(doc *domain.LedgerDocument) error) (*domain.LedgerDocument, error)
}

// RosterRepository reads the externally owned roster document. The roster is
// the source of player ids and display names; this subsystem never writes it.
type RosterRepository interface {
	GetRoster(ctx context.Context) ([]domain.Player, error)
}

// RepositoryProvider bundles all repository implementations handed to the
// service container.
type RepositoryProvider struct {
	LedgerRepo LedgerRepository
	RosterRepo RosterRepository
}
