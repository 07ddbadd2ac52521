package dto

import (
	"time"

	"github.com/crickclub/club_funds_app/internal/core/domain"
)

// LoginRequest exchanges a member id and the club password for a role token.
type LoginRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT and the resolved role.
type LoginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PlayerResponse mirrors a roster player on the wire.
type PlayerResponse struct {
	PlayerID string `json:"id"`
	Name     string `json:"name"`
}

// RosterResponse lists the roster.
type RosterResponse struct {
	Players []PlayerResponse `json:"players"`
}

// ToRosterResponse converts domain players to their wire form.
func ToRosterResponse(players []domain.Player) RosterResponse {
	responses := make([]PlayerResponse, len(players))
	for i, p := range players {
		responses[i] = PlayerResponse{PlayerID: p.PlayerID, Name: p.Name}
	}
	return RosterResponse{Players: responses}
}
