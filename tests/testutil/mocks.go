package testutil

import (
	"context"

	"github.com/circleshq/circles-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, email, firstName, lastName string) (*models.User, error) {
	args := m.Called(ctx, email, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, firstName, lastName string) (*models.User, error) {
	args := m.Called(ctx, id, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, name string, creatorID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, name, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Team), args.Get(1).([]string), args.Error(2)
}

func (m *MockTeamService) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamService) GetMembers(ctx context.Context, teamID uuid.UUID) ([]models.Membership, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]models.Membership), args.Error(1)
}

func (m *MockTeamService) GetUserMemberships(ctx context.Context, userID uuid.UUID) ([]models.Membership, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Membership), args.Error(1)
}

func (m *MockTeamService) GetMembership(ctx context.Context, membershipID uuid.UUID) (*models.Membership, error) {
	args := m.Called(ctx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}

func (m *MockTeamService) UpdateMemberRole(ctx context.Context, membershipID uuid.UUID, role string) (*models.Membership, error) {
	args := m.Called(ctx, membershipID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}

func (m *MockTeamService) RemoveMember(ctx context.Context, membershipID uuid.UUID) error {
	args := m.Called(ctx, membershipID)
	return args.Error(0)
}

// MockAuthzService mocks the AuthzService
type MockAuthzService struct {
	mock.Mock
}

func (m *MockAuthzService) CanInvite(ctx context.Context, userID, teamID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, teamID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthzService) CanChangeRole(ctx context.Context, actorID uuid.UUID, target *models.Membership) (bool, error) {
	args := m.Called(ctx, actorID, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthzService) CanRemove(ctx context.Context, actorID uuid.UUID, target *models.Membership) (bool, error) {
	args := m.Called(ctx, actorID, target)
	return args.Bool(0), args.Error(1)
}

// MockInviteService mocks the InviteService
type MockInviteService struct {
	mock.Mock
}

func (m *MockInviteService) CreateInvite(ctx context.Context, email string, teamID, inviterID uuid.UUID) (*models.Invite, string, error) {
	args := m.Called(ctx, email, teamID, inviterID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.Invite), args.String(1), args.Error(2)
}

func (m *MockInviteService) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invite), args.Error(1)
}

func (m *MockInviteService) AcceptInvite(ctx context.Context, token string, userID uuid.UUID) (*models.Membership, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEmailService) SendTeamInvite(to, teamName, inviterName, inviteLink string) error {
	args := m.Called(to, teamName, inviterName, inviteLink)
	return args.Error(0)
}
