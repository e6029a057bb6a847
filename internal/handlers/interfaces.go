package handlers

import (
	"context"

	"github.com/circleshq/circles-api/internal/models"
	"github.com/google/uuid"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Create(ctx context.Context, email, firstName, lastName string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, firstName, lastName string) (*models.User, error)
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, name string, creatorID uuid.UUID) (*models.Team, error)
	GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
	GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []string, error)
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	GetMembers(ctx context.Context, teamID uuid.UUID) ([]models.Membership, error)
	GetUserMemberships(ctx context.Context, userID uuid.UUID) ([]models.Membership, error)
	GetMembership(ctx context.Context, membershipID uuid.UUID) (*models.Membership, error)
	UpdateMemberRole(ctx context.Context, membershipID uuid.UUID, role string) (*models.Membership, error)
	RemoveMember(ctx context.Context, membershipID uuid.UUID) error
}

// AuthzServiceInterface defines the methods used by handlers from AuthzService
type AuthzServiceInterface interface {
	CanInvite(ctx context.Context, userID, teamID uuid.UUID) (bool, error)
	CanChangeRole(ctx context.Context, actorID uuid.UUID, target *models.Membership) (bool, error)
	CanRemove(ctx context.Context, actorID uuid.UUID, target *models.Membership) (bool, error)
}

// InviteServiceInterface defines the methods used by handlers from InviteService
type InviteServiceInterface interface {
	CreateInvite(ctx context.Context, email string, teamID, inviterID uuid.UUID) (*models.Invite, string, error)
	GetByToken(ctx context.Context, token string) (*models.Invite, error)
	AcceptInvite(ctx context.Context, token string, userID uuid.UUID) (*models.Membership, error)
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	IsConfigured() bool
	SendTeamInvite(to, teamName, inviterName, inviteLink string) error
}
