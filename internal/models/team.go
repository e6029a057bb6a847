package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership binds a user to a team with a role. At most one row exists per
// (team_id, user_id) pair, enforced by the database.
type Membership struct {
	ID       uuid.UUID `json:"id"`
	TeamID   uuid.UUID `json:"team_id"`
	UserID   uuid.UUID `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
	User     *User     `json:"user,omitempty"`
}

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}
