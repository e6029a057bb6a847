package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInviteRequest struct {
	Email     string `json:"email"`
	TeamID    string `json:"team_id"`
	InviterID string `json:"inviter_id"`
}

type AcceptInviteRequest struct {
	Token string `json:"token"`
}

type InviteResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	TeamID     uuid.UUID  `json:"team_id"`
	InviterID  uuid.UUID  `json:"inviter_id"`
	Token      string     `json:"token,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	TeamName   string     `json:"team_name,omitempty"`
}

type CreateInviteResponse struct {
	Invite     InviteResponse `json:"invite"`
	InviteLink string         `json:"invite_link"`
}
