package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/circleshq/circles-api/internal/database"
	"github.com/circleshq/circles-api/internal/models"
	"github.com/circleshq/circles-api/internal/token"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInviteNotFound   = errors.New("invalid or expired invite")
	ErrInviteNotPending = errors.New("invite has already been accepted")
	ErrAlreadyMember    = errors.New("user is already a team member")
	ErrNotTeamAdmin     = errors.New("only a team admin can invite members")
	ErrTokenExhausted   = errors.New("could not allocate a unique invite token")
)

// Token collisions are vanishingly unlikely at 32 bytes of entropy; the
// bounded retry exists so a duplicate insert surfaces as a conflict instead
// of looping forever.
const maxTokenAttempts = 3

// InviteService drives the invite lifecycle: a pending record is minted by
// an admin and consumed exactly once, transitioning the accepting user into
// the team.
type InviteService struct {
	db      *database.DB
	authz   *AuthzService
	baseURL string

	// Swapped out in tests to force collisions.
	generateToken func() (string, error)
}

func NewInviteService(db *database.DB, authz *AuthzService, baseURL string) *InviteService {
	return &InviteService{
		db:            db,
		authz:         authz,
		baseURL:       baseURL,
		generateToken: token.Generate,
	}
}

// CreateInvite persists a pending invite for email on the team and returns
// it with the acceptance link the delivery collaborator should send.
func (s *InviteService) CreateInvite(ctx context.Context, email string, teamID, inviterID uuid.UUID) (*models.Invite, string, error) {
	ok, err := s.authz.CanInvite(ctx, inviterID, teamID)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrNotTeamAdmin
	}

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		tok, err := s.generateToken()
		if err != nil {
			return nil, "", err
		}

		var invite models.Invite
		err = s.db.Pool.QueryRow(ctx, `
			INSERT INTO invites (email, team_id, inviter_id, token)
			VALUES ($1, $2, $3, $4)
			RETURNING id, email, team_id, inviter_id, token, status, created_at, accepted_at
		`, email, teamID, inviterID, tok).Scan(
			&invite.ID, &invite.Email, &invite.TeamID, &invite.InviterID,
			&invite.Token, &invite.Status, &invite.CreatedAt, &invite.AcceptedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				continue
			}
			return nil, "", fmt.Errorf("failed to create invite: %w", err)
		}

		return &invite, s.InviteLink(invite.Token), nil
	}

	return nil, "", ErrTokenExhausted
}

func (s *InviteService) GetByToken(ctx context.Context, tok string) (*models.Invite, error) {
	var invite models.Invite
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, team_id, inviter_id, token, status, created_at, accepted_at
		FROM invites WHERE token = $1
	`, tok).Scan(
		&invite.ID, &invite.Email, &invite.TeamID, &invite.InviterID,
		&invite.Token, &invite.Status, &invite.CreatedAt, &invite.AcceptedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

// AcceptInvite consumes the invite and creates the membership as one atomic
// unit. The row lock on the invite serializes concurrent accepts of the same
// token; the losers observe a non-pending status. If the accepting user is
// already a member the transaction rolls back and the invite stays pending.
func (s *InviteService) AcceptInvite(ctx context.Context, tok string, userID uuid.UUID) (*models.Membership, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var invite models.Invite
	err = tx.QueryRow(ctx, `
		SELECT id, team_id, status FROM invites WHERE token = $1 FOR UPDATE
	`, tok).Scan(&invite.ID, &invite.TeamID, &invite.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}

	if invite.Status != models.InviteStatusPending {
		return nil, ErrInviteNotPending
	}

	var member models.Membership
	err = tx.QueryRow(ctx, `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, team_id, user_id, role, joined_at
	`, invite.TeamID, userID, models.RoleMember).Scan(
		&member.ID, &member.TeamID, &member.UserID, &member.Role, &member.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	result, err := tx.Exec(ctx, `
		UPDATE invites SET status = $1, accepted_at = NOW()
		WHERE id = $2 AND status = $3
	`, models.InviteStatusAccepted, invite.ID, models.InviteStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to mark invite accepted: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrInviteNotPending
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &member, nil
}

func (s *InviteService) InviteLink(tok string) string {
	return fmt.Sprintf("%s/invite/accept?token=%s", s.baseURL, tok)
}
