package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ideavault/vault_go_server/internal/api/middleware"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/pkg/response"
	"github.com/ideavault/vault_go_server/internal/service"
)

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// Invite 邀请成员
// POST /api/v1/team/members
func (h *TeamHandler) Invite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	member, err := h.teamService.Invite(userID, &req)
	if err != nil {
		var limitErr *service.TeamLimitError
		switch {
		case errors.As(err, &limitErr):
			response.UpgradeError(c, limitErr.Error())
		case errors.Is(err, service.ErrMemberExists):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "invitation sent", member)
}

// List 成员列表
// GET /api/v1/team/members
func (h *TeamHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	members, err := h.teamService.List(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{
		"members": members,
	})
}

// Remove 移除成员
// DELETE /api/v1/team/members/:id
func (h *TeamHandler) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	memberID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid member id")
		return
	}

	if err := h.teamService.Remove(userID, memberID); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "member removed", nil)
}
