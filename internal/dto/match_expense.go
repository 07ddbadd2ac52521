package dto

import (
	"time"

	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveMatchExpenseRequest creates a match expense, or modifies one when ID is
// present.
type SaveMatchExpenseRequest struct {
	MatchExpenseID string          `json:"id,omitempty"`
	Description    string          `json:"description" binding:"required"`
	MatchFees      decimal.Decimal `json:"matchFees" binding:"required,decimalgt0"`
	DueDate        string          `json:"dueDate,omitempty"` // YYYY-MM-DD, optional
	Players        []string        `json:"players" binding:"required,min=1"`
	PaidBy         string          `json:"paidBy" binding:"required"`
}

// DeleteMatchExpenseRequest removes a match expense by id.
type DeleteMatchExpenseRequest struct {
	MatchExpenseID string `json:"id" binding:"required"`
}

// FoodItemPayload is one ordered item in a settlement draft.
type FoodItemPayload struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
}

// ParticipantPayload is one person in a settlement draft.
type ParticipantPayload struct {
	ID            string            `json:"id" binding:"required"`
	Name          string            `json:"name"`
	IsSquad       bool              `json:"isSquad"`
	MatchFeeShare decimal.Decimal   `json:"matchFeeShare,omitempty"`
	FoodItems     []FoodItemPayload `json:"foodItems"`
	Paid          decimal.Decimal   `json:"paid,omitempty"`
	Settled       bool              `json:"settled,omitempty"`
}

// SettlementPayload is the playersExpensesDetails blob as sent by clients.
type SettlementPayload struct {
	Participants []ParticipantPayload `json:"participants"`
	TempPlayers  []ParticipantPayload `json:"tempPlayers"`
	PayerID      string               `json:"payerId"`
	PaidAmount   decimal.Decimal      `json:"paidAmount"`
	Misc         decimal.Decimal      `json:"misc,omitempty"`
	Summary      []domain.SummaryRow  `json:"summary,omitempty"`
}

// SaveSettlementRequest replaces only the playersExpensesDetails field of the
// targeted match expense.
type SaveSettlementRequest struct {
	MatchExpenseID         string            `json:"matchExpenseId" binding:"required"`
	PlayersExpensesDetails SettlementPayload `json:"playersExpensesDetails" binding:"required"`
}

// ComputeSettlementRequest runs the settlement calculator over a draft
// without persisting anything.
type ComputeSettlementRequest struct {
	MatchExpenseID         string            `json:"matchExpenseId" binding:"required"`
	PlayersExpensesDetails SettlementPayload `json:"playersExpensesDetails" binding:"required"`
}

// ComputeSettlementResponse is the recomputed table.
type ComputeSettlementResponse struct {
	Misc    decimal.Decimal     `json:"misc"`
	Summary []domain.SummaryRow `json:"summary"`
}

// SuccessResponse acknowledges a mutation with no payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MatchExpenseResponse mirrors a domain match expense on the wire.
type MatchExpenseResponse struct {
	MatchExpenseID         string                     `json:"id"`
	Description            string                     `json:"description"`
	MatchFees              decimal.Decimal            `json:"matchFees"`
	DueDate                *time.Time                 `json:"dueDate,omitempty"`
	Players                []string                   `json:"players"`
	PaidBy                 string                     `json:"paidBy"`
	PlayerFees             map[string]decimal.Decimal `json:"playerFees"`
	PlayersExpensesDetails *domain.Settlement         `json:"playersExpensesDetails,omitempty"`
	CreatedDate            time.Time                  `json:"createdDate"`
}

// MatchExpenseListResponse is returned by match expense mutations.
type MatchExpenseListResponse struct {
	MatchExpenseList []MatchExpenseResponse `json:"matchExpenseList"`
}

// ToMatchExpenseResponse converts a domain.MatchExpense to its wire form.
func ToMatchExpenseResponse(m *domain.MatchExpense) MatchExpenseResponse {
	return MatchExpenseResponse{
		MatchExpenseID:         m.MatchExpenseID,
		Description:            m.Description,
		MatchFees:              m.MatchFees,
		DueDate:                m.DueDate,
		Players:                m.Players,
		PaidBy:                 m.PaidBy,
		PlayerFees:             m.PlayerFees,
		PlayersExpensesDetails: m.PlayersExpensesDetails,
		CreatedDate:            m.CreatedDate,
	}
}

// ToMatchExpenseResponses converts a slice of domain match expenses.
func ToMatchExpenseResponses(matchExpenses []domain.MatchExpense) []MatchExpenseResponse {
	responses := make([]MatchExpenseResponse, len(matchExpenses))
	for i := range matchExpenses {
		responses[i] = ToMatchExpenseResponse(&matchExpenses[i])
	}
	return responses
}

// ToDomainSettlement converts a settlement payload into its domain form.
func (p SettlementPayload) ToDomainSettlement() domain.Settlement {
	return domain.Settlement{
		Participants: toDomainParticipants(p.Participants),
		TempPlayers:  toDomainParticipants(p.TempPlayers),
		PayerID:      p.PayerID,
		PaidAmount:   p.PaidAmount,
		Misc:         p.Misc,
		Summary:      p.Summary,
	}
}

func toDomainParticipants(payloads []ParticipantPayload) []domain.Participant {
	participants := make([]domain.Participant, len(payloads))
	for i, p := range payloads {
		items := make([]domain.FoodItem, len(p.FoodItems))
		for j, item := range p.FoodItems {
			items[j] = domain.FoodItem{Name: item.Name, Price: item.Price, Quantity: item.Quantity}
		}
		participants[i] = domain.Participant{
			ID:            p.ID,
			Name:          p.Name,
			IsSquad:       p.IsSquad,
			MatchFeeShare: p.MatchFeeShare,
			FoodItems:     items,
			Paid:          p.Paid,
			Settled:       p.Settled,
		}
	}
	return participants
}
