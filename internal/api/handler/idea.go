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

type IdeaHandler struct {
	ideaService *service.IdeaService
}

func NewIdeaHandler(ideaService *service.IdeaService) *IdeaHandler {
	return &IdeaHandler{
		ideaService: ideaService,
	}
}

// Create 创建点子
// POST /api/v1/ideas
func (h *IdeaHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	idea, err := h.ideaService.Create(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, idea)
}

// Get 获取点子详情
// GET /api/v1/ideas/:id
func (h *IdeaHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	ideaID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid idea id")
		return
	}

	idea, err := h.ideaService.Get(userID, ideaID)
	if err != nil {
		h.dispatchError(c, err)
		return
	}

	response.Success(c, idea)
}

// List 点子列表
// GET /api/v1/ideas
func (h *IdeaHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.ListIdeasRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	ideas, total, err := h.ideaService.List(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, req.Page, req.PageSize, ideas)
}

// Update 更新点子
// PUT /api/v1/ideas/:id
func (h *IdeaHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	ideaID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid idea id")
		return
	}

	var req dto.UpdateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	idea, err := h.ideaService.Update(userID, ideaID, &req)
	if err != nil {
		h.dispatchError(c, err)
		return
	}

	response.SuccessWithMessage(c, "idea updated", idea)
}

// Delete 删除点子
// DELETE /api/v1/ideas/:id
func (h *IdeaHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	ideaID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid idea id")
		return
	}

	if err := h.ideaService.Delete(userID, ideaID); err != nil {
		h.dispatchError(c, err)
		return
	}

	response.SuccessWithMessage(c, "idea deleted", nil)
}

func (h *IdeaHandler) dispatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrIdeaNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrIdeaPermission):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
