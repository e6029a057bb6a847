package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/circleshq/circles-api/internal/middleware"
	"github.com/circleshq/circles-api/internal/models"
	"github.com/circleshq/circles-api/internal/services"
	"github.com/circleshq/circles-api/pkg/dto"
	"github.com/circleshq/circles-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupInviteTest(t *testing.T) (*testutil.MockInviteService, *testutil.MockTeamService, *testutil.MockUserService, *testutil.MockEmailService, *InviteHandler, *services.JWTService) {
	t.Helper()
	mockInviteService := new(testutil.MockInviteService)
	mockTeamService := new(testutil.MockTeamService)
	mockUserService := new(testutil.MockUserService)
	mockEmailService := new(testutil.MockEmailService)
	handler := NewInviteHandler(mockInviteService, mockTeamService, mockUserService, mockEmailService)
	jwtSvc := services.NewJWTService("test-secret-key", 15*time.Minute)
	return mockInviteService, mockTeamService, mockUserService, mockEmailService, handler, jwtSvc
}

func newInviteApp(handler *InviteHandler, jwtSvc *services.JWTService) http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Get("/invite/accept", handler.ViewInvite)

	api := app.Group("/api/v1")
	protected := api.Group("")
	protected.Use(middleware.Auth(jwtSvc))
	protected.Post("/invites", handler.Create)
	protected.Get("/invites/token/:token", handler.GetByToken)
	protected.Post("/invites/accept", handler.Accept)
	return app
}

func TestInviteHandler_Create_Success(t *testing.T) {
	mockInviteService, _, _, mockEmailService, handler, jwtSvc := setupInviteTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	inviterID := uuid.New()
	now := time.Now()

	invite := &models.Invite{
		ID:        uuid.New(),
		Email:     "b@x.com",
		TeamID:    teamID,
		InviterID: inviterID,
		Token:     "tok1",
		Status:    models.InviteStatusPending,
		CreatedAt: now,
	}
	inviteLink := "http://localhost:8080/invite/accept?token=tok1"

	mockInviteService.On("CreateInvite", mock.Anything, "b@x.com", teamID, inviterID).Return(invite, inviteLink, nil)
	mockEmailService.On("IsConfigured").Return(false)

	app := newInviteApp(handler, jwtSvc)

	body := dto.CreateInviteRequest{
		Email:     "b@x.com",
		TeamID:    teamID.String(),
		InviterID: inviterID.String(),
	}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "admin@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invites", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.CreateInviteResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, invite.ID, response.Invite.ID)
	assert.Equal(t, "tok1", response.Invite.Token)
	assert.Equal(t, models.InviteStatusPending, response.Invite.Status)
	assert.Equal(t, inviteLink, response.InviteLink)

	mockInviteService.AssertExpectations(t)
	mockEmailService.AssertExpectations(t)
}

func TestInviteHandler_Create_MissingFields(t *testing.T) {
	_, _, _, _, handler, jwtSvc := setupInviteTest(t)

	app := newInviteApp(handler, jwtSvc)

	body := dto.CreateInviteRequest{Email: "b@x.com"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "admin@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invites", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email, team_id and inviter_id are required")
}

func TestInviteHandler_Create_NonAdmin(t *testing.T) {
	mockInviteService, _, _, _, handler, jwtSvc := setupInviteTest(t)

	teamID := uuid.New()
	inviterID := uuid.New()

	mockInviteService.On("CreateInvite", mock.Anything, "b@x.com", teamID, inviterID).
		Return(nil, "", services.ErrNotTeamAdmin)

	app := newInviteApp(handler, jwtSvc)

	body := dto.CreateInviteRequest{
		Email:     "b@x.com",
		TeamID:    teamID.String(),
		InviterID: inviterID.String(),
	}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, inviterID, "member@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invites", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockInviteService.AssertExpectations(t)
}

func TestInviteHandler_Create_SendsEmailWhenConfigured(t *testing.T) {
	mockInviteService, mockTeamService, mockUserService, mockEmailService, handler, jwtSvc := setupInviteTest(t)

	teamID := uuid.New()
	inviterID := uuid.New()
	now := time.Now()

	invite := &models.Invite{
		ID:        uuid.New(),
		Email:     "b@x.com",
		TeamID:    teamID,
		InviterID: inviterID,
		Token:     "tok1",
		Status:    models.InviteStatusPending,
		CreatedAt: now,
	}
	inviteLink := "http://localhost:8080/invite/accept?token=tok1"

	mockInviteService.On("CreateInvite", mock.Anything, "b@x.com", teamID, inviterID).Return(invite, inviteLink, nil)
	mockEmailService.On("IsConfigured").Return(true)
	mockTeamService.On("GetByID", mock.Anything, teamID).Return(&models.Team{ID: teamID, Name: "Test Team"}, nil)
	mockUserService.On("GetByID", mock.Anything, inviterID).Return(&models.User{ID: inviterID, FirstName: "Alice"}, nil)
	mockEmailService.On("SendTeamInvite", "b@x.com", "Test Team", "Alice", inviteLink).Return(nil)

	app := newInviteApp(handler, jwtSvc)

	body := dto.CreateInviteRequest{
		Email:     "b@x.com",
		TeamID:    teamID.String(),
		InviterID: inviterID.String(),
	}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, inviterID, "admin@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invites", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockEmailService.AssertExpectations(t)
}

func TestInviteHandler_GetByToken_Success(t *testing.T) {
	mockInviteService, mockTeamService, _, _, handler, jwtSvc := setupInviteTest(t)

	teamID := uuid.New()
	now := time.Now()

	invite := &models.Invite{
		ID:        uuid.New(),
		Email:     "b@x.com",
		TeamID:    teamID,
		InviterID: uuid.New(),
		Token:     "tok1",
		Status:    models.InviteStatusPending,
		CreatedAt: now,
	}

	mockInviteService.On("GetByToken", mock.Anything, "tok1").Return(invite, nil)
	mockTeamService.On("GetByID", mock.Anything, teamID).Return(&models.Team{ID: teamID, Name: "Test Team"}, nil)

	app := newInviteApp(handler, jwtSvc)

	token := generateTestToken(t, jwtSvc, uuid.New(), "b@x.com")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invites/token/tok1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.InviteResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, invite.ID, response.ID)
	assert.Equal(t, "Test Team", response.TeamName)
	assert.Empty(t, response.Token)

	mockInviteService.AssertExpectations(t)
}

func TestInviteHandler_GetByToken_NotFound(t *testing.T) {
	mockInviteService, _, _, _, handler, jwtSvc := setupInviteTest(t)

	mockInviteService.On("GetByToken", mock.Anything, "nope").Return(nil, services.ErrInviteNotFound)

	app := newInviteApp(handler, jwtSvc)

	token := generateTestToken(t, jwtSvc, uuid.New(), "b@x.com")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invites/token/nope", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockInviteService.AssertExpectations(t)
}

func TestInviteHandler_Accept_Success(t *testing.T) {
	mockInviteService, _, _, _, handler, jwtSvc := setupInviteTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	now := time.Now()

	member := &models.Membership{
		ID:       uuid.New(),
		TeamID:   teamID,
		UserID:   userID,
		Role:     models.RoleMember,
		JoinedAt: now,
	}

	mockInviteService.On("AcceptInvite", mock.Anything, "tok1", userID).Return(member, nil)

	app := newInviteApp(handler, jwtSvc)

	body := dto.AcceptInviteRequest{Token: "tok1"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "b@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invites/accept", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.MembershipResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, teamID, response.TeamID)
	assert.Equal(t, userID, response.UserID)
	assert.Equal(t, models.RoleMember, response.Role)

	mockInviteService.AssertExpectations(t)
}

func TestInviteHandler_Accept_UnknownToken(t *testing.T) {
	mockInviteService, _, _, _, handler, jwtSvc := setupInviteTest(t)

	userID := uuid.New()

	mockInviteService.On("AcceptInvite", mock.Anything, "nope", userID).Return(nil, services.ErrInviteNotFound)

	app := newInviteApp(handler, jwtSvc)

	body := dto.AcceptInviteRequest{Token: "nope"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "b@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invites/accept", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockInviteService.AssertExpectations(t)
}

func TestInviteHandler_Accept_AlreadyAccepted(t *testing.T) {
	mockInviteService, _, _, _, handler, jwtSvc := setupInviteTest(t)

	userID := uuid.New()

	mockInviteService.On("AcceptInvite", mock.Anything, "tok1", userID).Return(nil, services.ErrInviteNotPending)

	app := newInviteApp(handler, jwtSvc)

	body := dto.AcceptInviteRequest{Token: "tok1"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "b@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invites/accept", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already been accepted")
	mockInviteService.AssertExpectations(t)
}

func TestInviteHandler_Accept_AlreadyMember(t *testing.T) {
	mockInviteService, _, _, _, handler, jwtSvc := setupInviteTest(t)

	userID := uuid.New()

	mockInviteService.On("AcceptInvite", mock.Anything, "tok1", userID).Return(nil, services.ErrAlreadyMember)

	app := newInviteApp(handler, jwtSvc)

	body := dto.AcceptInviteRequest{Token: "tok1"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "b@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invites/accept", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already a member")
	mockInviteService.AssertExpectations(t)
}

func TestInviteHandler_ViewInvite_Success(t *testing.T) {
	mockInviteService, mockTeamService, mockUserService, _, handler, jwtSvc := setupInviteTest(t)

	teamID := uuid.New()
	inviterID := uuid.New()
	now := time.Now()

	invite := &models.Invite{
		ID:        uuid.New(),
		Email:     "b@x.com",
		TeamID:    teamID,
		InviterID: inviterID,
		Token:     "tok1",
		Status:    models.InviteStatusPending,
		CreatedAt: now,
	}

	mockInviteService.On("GetByToken", mock.Anything, "tok1").Return(invite, nil)
	mockTeamService.On("GetByID", mock.Anything, teamID).Return(&models.Team{ID: teamID, Name: "Test Team"}, nil)
	mockUserService.On("GetByID", mock.Anything, inviterID).Return(&models.User{ID: inviterID, FirstName: "Alice"}, nil)

	app := newInviteApp(handler, jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/invite/accept?token=tok1", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Test Team")
	assert.Contains(t, rec.Body.String(), "Alice")
	assert.Contains(t, rec.Body.String(), "Team Invitation")

	mockInviteService.AssertExpectations(t)
	mockTeamService.AssertExpectations(t)
	mockUserService.AssertExpectations(t)
}

func TestInviteHandler_ViewInvite_MissingToken(t *testing.T) {
	_, _, _, _, handler, jwtSvc := setupInviteTest(t)

	app := newInviteApp(handler, jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/invite/accept", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid invite link")
}

func TestInviteHandler_ViewInvite_AlreadyAccepted(t *testing.T) {
	mockInviteService, _, _, _, handler, jwtSvc := setupInviteTest(t)

	invite := &models.Invite{
		ID:        uuid.New(),
		Email:     "b@x.com",
		TeamID:    uuid.New(),
		InviterID: uuid.New(),
		Token:     "tok1",
		Status:    models.InviteStatusAccepted,
		CreatedAt: time.Now(),
	}

	mockInviteService.On("GetByToken", mock.Anything, "tok1").Return(invite, nil)

	app := newInviteApp(handler, jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/invite/accept?token=tok1", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "This invite has already been accepted")

	mockInviteService.AssertExpectations(t)
}
