package handlers

import (
	"context"
	"errors"

	"github.com/circleshq/circles-api/internal/middleware"
	"github.com/circleshq/circles-api/internal/services"
	"github.com/circleshq/circles-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type UserHandler struct {
	userService UserServiceInterface
	teamService TeamServiceInterface
}

func NewUserHandler(userService UserServiceInterface, teamService TeamServiceInterface) *UserHandler {
	return &UserHandler{userService: userService, teamService: teamService}
}

// Create provisions a user record on behalf of the identity collaborator.
// Route is guarded by the service-key middleware, not user auth.
func (h *UserHandler) Create(c *drift.Context) {
	var req dto.CreateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.FirstName == "" {
		c.BadRequest("email and first_name are required")
		return
	}

	user, err := h.userService.Create(context.Background(), req.Email, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			_ = c.JSON(409, map[string]string{"error": "a user with this email already exists"})
			return
		}
		c.InternalServerError("failed to create user")
		return
	}

	_ = c.JSON(201, dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func (h *UserHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.FirstName == "" {
		c.BadRequest("first_name is required")
		return
	}

	user, err := h.userService.Update(context.Background(), userID, req.FirstName, req.LastName)
	if err != nil {
		c.InternalServerError("failed to update user")
		return
	}

	_ = c.JSON(200, dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func (h *UserHandler) GetMyMemberships(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	members, err := h.teamService.GetUserMemberships(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get memberships")
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
		}
	}

	_ = c.JSON(200, response)
}
