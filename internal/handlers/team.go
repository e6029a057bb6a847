package handlers

import (
	"context"
	"errors"

	"github.com/circleshq/circles-api/internal/middleware"
	"github.com/circleshq/circles-api/internal/models"
	"github.com/circleshq/circles-api/internal/services"
	"github.com/circleshq/circles-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type TeamHandler struct {
	teamService  TeamServiceInterface
	authzService AuthzServiceInterface
}

func NewTeamHandler(teamService TeamServiceInterface, authzService AuthzServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService:  teamService,
		authzService: authzService,
	}
}

func (h *TeamHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	team, err := h.teamService.Create(context.Background(), req.Name, userID)
	if err != nil {
		c.InternalServerError("failed to create team")
		return
	}

	_ = c.JSON(201, dto.TeamResponse{
		ID:   team.ID,
		Name: team.Name,
		Role: models.RoleAdmin,
	})
}

func (h *TeamHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teams, roles, err := h.teamService.GetUserTeams(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get teams")
		return
	}

	response := make([]dto.TeamResponse, len(teams))
	for i, team := range teams {
		response[i] = dto.TeamResponse{
			ID:   team.ID,
			Name: team.Name,
			Role: roles[i],
		}
	}

	_ = c.JSON(200, response)
}

func (h *TeamHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	isMember, err := h.teamService.IsMember(context.Background(), teamID, userID)
	if err != nil || !isMember {
		c.NotFound("team not found")
		return
	}

	team, err := h.teamService.GetByID(context.Background(), teamID)
	if err != nil {
		c.NotFound("team not found")
		return
	}

	_ = c.JSON(200, dto.TeamResponse{
		ID:   team.ID,
		Name: team.Name,
	})
}

func (h *TeamHandler) GetMembers(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	isMember, err := h.teamService.IsMember(context.Background(), teamID, userID)
	if err != nil || !isMember {
		c.NotFound("team not found")
		return
	}

	members, err := h.teamService.GetMembers(context.Background(), teamID)
	if err != nil {
		c.InternalServerError("failed to get members")
		return
	}

	response := make([]dto.MembershipResponse, len(members))
	for i, m := range members {
		response[i] = dto.MembershipResponse{
			ID:       m.ID,
			TeamID:   m.TeamID,
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
			User: &dto.UserResponse{
				ID:        m.User.ID,
				Email:     m.User.Email,
				FirstName: m.User.FirstName,
				LastName:  m.User.LastName,
			},
		}
	}

	_ = c.JSON(200, response)
}

func (h *TeamHandler) UpdateMemberRole(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid member id")
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if !models.ValidRole(req.Role) {
		c.BadRequest("role must be admin or member")
		return
	}

	target, err := h.teamService.GetMembership(context.Background(), memberID)
	if err != nil || target.TeamID != teamID {
		c.NotFound("member not found")
		return
	}

	allowed, err := h.authzService.CanChangeRole(context.Background(), userID, target)
	if err != nil {
		c.InternalServerError("failed to check permissions")
		return
	}
	if !allowed {
		c.Forbidden("not allowed to change this member's role")
		return
	}

	updated, err := h.teamService.UpdateMemberRole(context.Background(), memberID, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			c.NotFound("member not found")
			return
		}
		c.InternalServerError("failed to update role")
		return
	}

	_ = c.JSON(200, dto.MembershipResponse{
		ID:       updated.ID,
		TeamID:   updated.TeamID,
		UserID:   updated.UserID,
		Role:     updated.Role,
		JoinedAt: updated.JoinedAt,
	})
}

func (h *TeamHandler) RemoveMember(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid member id")
		return
	}

	target, err := h.teamService.GetMembership(context.Background(), memberID)
	if err != nil || target.TeamID != teamID {
		c.NotFound("member not found")
		return
	}

	allowed, err := h.authzService.CanRemove(context.Background(), userID, target)
	if err != nil {
		c.InternalServerError("failed to check permissions")
		return
	}
	if !allowed {
		c.Forbidden("not allowed to remove this member")
		return
	}

	if err := h.teamService.RemoveMember(context.Background(), memberID); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			c.NotFound("member not found")
			return
		}
		c.InternalServerError("failed to remove member")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "member removed"})
}
