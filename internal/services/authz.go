package services

import (
	"context"

	"github.com/circleshq/circles-api/internal/database"
	"github.com/circleshq/circles-api/internal/models"
	"github.com/google/uuid"
)

// AuthzService answers whether an actor may invite, change roles, or remove
// members. It only reads membership state; callers apply the mutation.
type AuthzService struct {
	db *database.DB
}

func NewAuthzService(db *database.DB) *AuthzService {
	return &AuthzService{db: db}
}

func (s *AuthzService) CanInvite(ctx context.Context, userID, teamID uuid.UUID) (bool, error) {
	return s.isAdmin(ctx, userID, teamID)
}

// CanChangeRole denies an admin acting on their own membership, so a single
// careless request cannot demote the last admin. It does not prevent one
// admin from demoting another.
func (s *AuthzService) CanChangeRole(ctx context.Context, actorID uuid.UUID, target *models.Membership) (bool, error) {
	if target.UserID == actorID {
		return false, nil
	}
	return s.isAdmin(ctx, actorID, target.TeamID)
}

func (s *AuthzService) CanRemove(ctx context.Context, actorID uuid.UUID, target *models.Membership) (bool, error) {
	if target.UserID == actorID {
		return false, nil
	}
	return s.isAdmin(ctx, actorID, target.TeamID)
}

func (s *AuthzService) isAdmin(ctx context.Context, userID, teamID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM team_members
			WHERE team_id = $1 AND user_id = $2 AND role = $3
		)
	`, teamID, userID, models.RoleAdmin).Scan(&exists)
	return exists, err
}
