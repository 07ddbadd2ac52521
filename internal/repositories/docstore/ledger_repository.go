package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/crickclub/club_funds_app/internal/apperrors"
	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository reads and replaces the single shared ledger document.
type LedgerRepository struct {
	client     *Client
	documentID string

	// mu serializes update cycles so in-process writers cannot lose each
	// other's changes. The store itself has no version token, so this is the
	// only write serialization the system gets; cross-process writers remain
	// a documented single-writer assumption.
	mu sync.Mutex
}

// NewLedgerRepository builds the ledger port over the store client.
func NewLedgerRepository(client *Client, documentID string) *LedgerRepository {
	return &LedgerRepository{client: client, documentID: documentID}
}

// GetDocument fetches the whole ledger document. A store with no document yet
// yields an empty one with zeroed totals.
func (r *LedgerRepository) GetDocument(ctx context.Context) (*domain.LedgerDocument, error) {
	doc := emptyDocument()
	found, err := r.client.getDocument(ctx, r.documentID, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	if !found {
		return emptyDocument(), nil
	}
	normalize(doc)
	return doc, nil
}

// UpdateDocument runs one read-modify-replace cycle against the store. A
// mutate error aborts the cycle with nothing written.
func (r *LedgerRepository) UpdateDocument(ctx context.Context, mutate func(doc *domain.LedgerDocument) error) (*domain.LedgerDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.GetDocument(ctx)
	if err != nil {
		return nil, err
	}
	if err := mutate(doc); err != nil {
		return nil, err
	}
	if err := r.client.replaceDocument(ctx, r.documentID, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStore, err)
	}
	return doc, nil
}

func emptyDocument() *domain.LedgerDocument {
	return &domain.LedgerDocument{
		TotalBalance: decimal.Zero,
		TotalExpense: decimal.Zero,
	}
}

// normalize repairs nil collections a hand-edited or older stored document
// may carry, so the services can index them without nil checks.
func normalize(doc *domain.LedgerDocument) {
	for i := range doc.FundList {
		if doc.FundList[i].Payments == nil {
			doc.FundList[i].Payments = map[string]domain.PaymentStatus{}
		}
	}
	for i := range doc.MatchExpenseList {
		if doc.MatchExpenseList[i].PlayerFees == nil {
			doc.MatchExpenseList[i].PlayerFees = map[string]decimal.Decimal{}
		}
	}
}
