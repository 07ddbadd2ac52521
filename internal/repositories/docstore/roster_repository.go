package docstore

import (
	"context"
	"fmt"

	"github.com/crickclub/club_funds_app/internal/apperrors"
	"github.com/crickclub/club_funds_app/internal/core/domain"
)

// rosterDocument is the wire shape of the externally owned roster document.
type rosterDocument struct {
	Players []domain.Player `json:"players"`
}

// RosterRepository reads the roster document. This subsystem never writes it.
type RosterRepository struct {
	client     *Client
	documentID string
}

// NewRosterRepository builds the roster port over the store client.
func NewRosterRepository(client *Client, documentID string) *RosterRepository {
	return &RosterRepository{client: client, documentID: documentID}
}

// GetRoster fetches the roster players. A missing roster document yields an
// empty roster.
func (r *RosterRepository) GetRoster(ctx context.Context) ([]domain.Player, error) {
	doc := &rosterDocument{}
	found, err := r.client.getDocument(ctx, r.documentID, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	if !found {
		return []domain.Player{}, nil
	}
	return doc.Players, nil
}
