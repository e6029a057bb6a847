package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role"`
}

type TeamResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role,omitempty"`
}

type MembershipResponse struct {
	ID       uuid.UUID     `json:"id"`
	TeamID   uuid.UUID     `json:"team_id"`
	UserID   uuid.UUID     `json:"user_id"`
	Role     string        `json:"role"`
	JoinedAt time.Time     `json:"joined_at"`
	User     *UserResponse `json:"user,omitempty"`
}
