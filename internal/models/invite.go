package models

import (
	"time"

	"github.com/google/uuid"
)

// Invite grants a one-time capability to join a team, keyed by an
// unguessable token. The token is the sole proof required to accept; the
// email field records who the invite was sent to but is not matched against
// the accepting account.
type Invite struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	TeamID     uuid.UUID  `json:"team_id"`
	InviterID  uuid.UUID  `json:"inviter_id"`
	Token      string     `json:"token"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)
