package domain

// Player is a roster member. Player IDs are issued by the roster document,
// not by this subsystem; funds and match expenses reference them as foreign
// identifiers.
type Player struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// Role is the authorization level a login resolves to. Fund mutations need
// admin or the configured fund manager; match-expense mutations need admin or
// the configured match fund manager.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleFundManager      Role = "fund-manager"
	RoleMatchFundManager Role = "match-fund-manager"
	RoleMember           Role = "member"
)

