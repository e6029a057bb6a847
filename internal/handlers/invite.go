package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/circleshq/circles-api/internal/middleware"
	"github.com/circleshq/circles-api/internal/services"
	"github.com/circleshq/circles-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type InviteHandler struct {
	inviteService InviteServiceInterface
	teamService   TeamServiceInterface
	userService   UserServiceInterface
	emailService  EmailServiceInterface
}

func NewInviteHandler(inviteService InviteServiceInterface, teamService TeamServiceInterface, userService UserServiceInterface, emailService EmailServiceInterface) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
		teamService:   teamService,
		userService:   userService,
		emailService:  emailService,
	}
}

func (h *InviteHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateInviteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.TeamID == "" || req.InviterID == "" {
		c.BadRequest("email, team_id and inviter_id are required")
		return
	}

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	inviterID, err := uuid.Parse(req.InviterID)
	if err != nil {
		c.BadRequest("invalid inviter id")
		return
	}

	invite, inviteLink, err := h.inviteService.CreateInvite(context.Background(), req.Email, teamID, inviterID)
	if err != nil {
		if errors.Is(err, services.ErrNotTeamAdmin) {
			c.Forbidden("only a team admin can invite members")
			return
		}
		if errors.Is(err, services.ErrTokenExhausted) {
			_ = c.JSON(409, map[string]string{"error": "could not allocate an invite token, try again"})
			return
		}
		c.InternalServerError("failed to create invite")
		return
	}

	h.deliverInvite(invite.Email, invite.TeamID, invite.InviterID, inviteLink)

	_ = c.JSON(201, dto.CreateInviteResponse{
		Invite: dto.InviteResponse{
			ID:         invite.ID,
			Email:      invite.Email,
			TeamID:     invite.TeamID,
			InviterID:  invite.InviterID,
			Token:      invite.Token,
			Status:     invite.Status,
			CreatedAt:  invite.CreatedAt,
			AcceptedAt: invite.AcceptedAt,
		},
		InviteLink: inviteLink,
	})
}

// deliverInvite emails the invite link when SMTP is configured. Delivery is
// best-effort: the invite is already persisted and the link is returned to
// the caller either way.
func (h *InviteHandler) deliverInvite(email string, teamID, inviterID uuid.UUID, inviteLink string) {
	if !h.emailService.IsConfigured() {
		return
	}

	teamName := "a team"
	if team, err := h.teamService.GetByID(context.Background(), teamID); err == nil {
		teamName = team.Name
	}

	inviterName := "Someone"
	if inviter, err := h.userService.GetByID(context.Background(), inviterID); err == nil {
		inviterName = inviter.FirstName
	}

	_ = h.emailService.SendTeamInvite(email, teamName, inviterName, inviteLink)
}

func (h *InviteHandler) GetByToken(c *drift.Context) {
	tok := c.Param("token")
	if tok == "" {
		c.BadRequest("token is required")
		return
	}

	invite, err := h.inviteService.GetByToken(context.Background(), tok)
	if err != nil {
		c.NotFound("invalid or expired invite")
		return
	}

	response := dto.InviteResponse{
		ID:         invite.ID,
		Email:      invite.Email,
		TeamID:     invite.TeamID,
		InviterID:  invite.InviterID,
		Status:     invite.Status,
		CreatedAt:  invite.CreatedAt,
		AcceptedAt: invite.AcceptedAt,
	}

	if team, err := h.teamService.GetByID(context.Background(), invite.TeamID); err == nil {
		response.TeamName = team.Name
	}

	_ = c.JSON(200, response)
}

func (h *InviteHandler) Accept(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.AcceptInviteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Token == "" {
		c.BadRequest("token is required")
		return
	}

	member, err := h.inviteService.AcceptInvite(context.Background(), req.Token, userID)
	if err != nil {
		if errors.Is(err, services.ErrInviteNotFound) {
			c.NotFound("invalid or expired invite")
			return
		}
		if errors.Is(err, services.ErrInviteNotPending) {
			_ = c.JSON(409, map[string]string{"error": "invite has already been accepted"})
			return
		}
		if errors.Is(err, services.ErrAlreadyMember) {
			_ = c.JSON(409, map[string]string{"error": "you are already a member of this team"})
			return
		}
		c.InternalServerError("failed to accept invite")
		return
	}

	_ = c.JSON(200, dto.MembershipResponse{
		ID:       member.ID,
		TeamID:   member.TeamID,
		UserID:   member.UserID,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	})
}

// ViewInvite renders the public landing page behind the emailed link. It
// only displays the invite; acceptance happens through the authenticated
// API once the visitor has signed in.
func (h *InviteHandler) ViewInvite(c *drift.Context) {
	tok := c.QueryParam("token")
	if tok == "" {
		h.renderError(c, "Invalid invite link")
		return
	}

	invite, err := h.inviteService.GetByToken(context.Background(), tok)
	if err != nil {
		h.renderError(c, "Invalid or expired invite.")
		return
	}

	if invite.Status != "pending" {
		h.renderMessage(c, "This invite has already been "+invite.Status)
		return
	}

	teamName := "a team"
	if team, err := h.teamService.GetByID(context.Background(), invite.TeamID); err == nil {
		teamName = team.Name
	}

	inviterName := "Someone"
	if inviter, err := h.userService.GetByID(context.Background(), invite.InviterID); err == nil {
		inviterName = inviter.FirstName
	}

	h.renderInvitePage(c, teamName, inviterName, invite.Email)
}

func (h *InviteHandler) renderInvitePage(c *drift.Context, teamName, inviterName, email string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Team Invitation</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 400px; margin: 50px auto; padding: 20px; text-align: center; }
        h1 { color: #333; }
        p { color: #666; margin: 20px 0; }
        .team-name { font-weight: bold; color: #333; }
    </style>
</head>
<body>
    <h1>Team Invitation</h1>
    <p><strong>%s</strong> has invited %s to join</p>
    <p class="team-name">%s</p>
    <p>Sign in to circles with your account to accept this invitation.</p>
</body>
</html>`, inviterName, email, teamName)

	_ = c.HTML(200, html)
}

func (h *InviteHandler) renderMessage(c *drift.Context, message string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Team Invitation</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 400px; margin: 50px auto; padding: 20px; text-align: center; }
        h1 { color: #22c55e; }
        p { color: #666; }
    </style>
</head>
<body>
    <h1>%s</h1>
</body>
</html>`, message)

	_ = c.HTML(200, html)
}

func (h *InviteHandler) renderError(c *drift.Context, message string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Error</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 400px; margin: 50px auto; padding: 20px; text-align: center; }
        h1 { color: #ef4444; }
        p { color: #666; }
    </style>
</head>
<body>
    <h1>Error</h1>
    <p>%s</p>
</body>
</html>`, message)

	_ = c.HTML(400, html)
}
