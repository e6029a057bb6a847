package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/circleshq/circles-api/internal/database"
	"github.com/circleshq/circles-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidRole    = errors.New("invalid role")
)

type TeamService struct {
	db *database.DB
}

func NewTeamService(db *database.DB) *TeamService {
	return &TeamService{db: db}
}

// Create inserts the team and the creator's admin membership in one
// transaction; a team never exists without its first admin.
func (s *TeamService) Create(ctx context.Context, name string, creatorID uuid.UUID) (*models.Team, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var team models.Team
	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`, name).Scan(&team.ID, &team.Name, &team.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`, team.ID, creatorID, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to add creator as admin: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &team, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM teams WHERE id = $1
	`, teamID).Scan(&team.ID, &team.Name, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []string, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT t.id, t.name, t.created_at, tm.role
		FROM teams t
		JOIN team_members tm ON t.id = tm.team_id
		WHERE tm.user_id = $1
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var teams []models.Team
	var roles []string
	for rows.Next() {
		var team models.Team
		var role string
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt, &role); err != nil {
			return nil, nil, err
		}
		teams = append(teams, team)
		roles = append(roles, role)
	}
	return teams, roles, rows.Err()
}

func (s *TeamService) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)
	`, teamID, userID).Scan(&exists)
	return exists, err
}

func (s *TeamService) GetMembers(ctx context.Context, teamID uuid.UUID) ([]models.Membership, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT tm.id, tm.team_id, tm.user_id, tm.role, tm.joined_at,
		       u.id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at
		FROM team_members tm
		JOIN users u ON tm.user_id = u.id
		WHERE tm.team_id = $1
		ORDER BY tm.joined_at ASC
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Membership
	for rows.Next() {
		var member models.Membership
		var user models.User
		if err := rows.Scan(
			&member.ID, &member.TeamID, &member.UserID, &member.Role, &member.JoinedAt,
			&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		member.User = &user
		members = append(members, member)
	}
	return members, rows.Err()
}

func (s *TeamService) GetUserMemberships(ctx context.Context, userID uuid.UUID) ([]models.Membership, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, team_id, user_id, role, joined_at
		FROM team_members
		WHERE user_id = $1
		ORDER BY joined_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Membership
	for rows.Next() {
		var member models.Membership
		if err := rows.Scan(&member.ID, &member.TeamID, &member.UserID, &member.Role, &member.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (s *TeamService) GetMembership(ctx context.Context, membershipID uuid.UUID) (*models.Membership, error) {
	var member models.Membership
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, team_id, user_id, role, joined_at
		FROM team_members WHERE id = $1
	`, membershipID).Scan(&member.ID, &member.TeamID, &member.UserID, &member.Role, &member.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (s *TeamService) UpdateMemberRole(ctx context.Context, membershipID uuid.UUID, role string) (*models.Membership, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	var member models.Membership
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE team_members SET role = $1
		WHERE id = $2
		RETURNING id, team_id, user_id, role, joined_at
	`, role, membershipID).Scan(&member.ID, &member.TeamID, &member.UserID, &member.Role, &member.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (s *TeamService) RemoveMember(ctx context.Context, membershipID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM team_members WHERE id = $1
	`, membershipID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}
