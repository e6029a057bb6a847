package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/circleshq/circles-api/internal/database"
	"github.com/circleshq/circles-api/internal/models"
	"github.com/circleshq/circles-api/internal/token"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:     fmt.Sprintf("user%d@example.com", f.counter),
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, first_name, last_name)
		VALUES ($1, $2, $3)
		RETURNING id, email, first_name, last_name, created_at, updated_at
	`, user.Email, user.FirstName, user.LastName).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's first and last name
func WithName(first, last string) UserOption {
	return func(u *models.User) {
		u.FirstName = first
		u.LastName = last
	}
}

// CreateTeam creates a test team with the creator as its admin member
func (f *Fixtures) CreateTeam(t *testing.T, creator *models.User, opts ...TeamOption) *models.Team {
	t.Helper()
	f.counter++

	team := &models.Team{
		Name: fmt.Sprintf("Test Team %d", f.counter),
	}

	for _, opt := range opts {
		opt(team)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`, team.Name).Scan(&team.ID, &team.Name, &team.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`, team.ID, creator.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("failed to add creator as admin: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return team
}

// TeamOption configures a test team
type TeamOption func(*models.Team)

// WithTeamName sets the team's name
func WithTeamName(name string) TeamOption {
	return func(t *models.Team) {
		t.Name = name
	}
}

// AddTeamMember adds a member to a team with the given role and returns the membership
func (f *Fixtures) AddTeamMember(t *testing.T, team *models.Team, user *models.User, role string) *models.Membership {
	t.Helper()
	ctx := context.Background()

	var member models.Membership
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, team_id, user_id, role, joined_at
	`, team.ID, user.ID, role).Scan(
		&member.ID, &member.TeamID, &member.UserID, &member.Role, &member.JoinedAt,
	)
	if err != nil {
		t.Fatalf("failed to add team member: %v", err)
	}

	return &member
}

// CreateInvite creates a pending invite for email on the team
func (f *Fixtures) CreateInvite(t *testing.T, team *models.Team, inviter *models.User, email string) *models.Invite {
	t.Helper()
	ctx := context.Background()

	tok, err := token.Generate()
	if err != nil {
		t.Fatalf("failed to generate invite token: %v", err)
	}

	var invite models.Invite
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO invites (email, team_id, inviter_id, token)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, team_id, inviter_id, token, status, created_at, accepted_at
	`, email, team.ID, inviter.ID, tok).Scan(
		&invite.ID, &invite.Email, &invite.TeamID, &invite.InviterID,
		&invite.Token, &invite.Status, &invite.CreatedAt, &invite.AcceptedAt,
	)
	if err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}

	return &invite
}
