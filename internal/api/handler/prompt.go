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

type PromptHandler struct {
	promptService *service.PromptService
}

func NewPromptHandler(promptService *service.PromptService) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
	}
}

// Generate 发起提示词生成（异步，结果走 WebSocket 推送）
// POST /api/v1/prompts
func (h *PromptHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.GeneratePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.promptService.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		var entErr *service.EntitlementError
		switch {
		case errors.As(err, &entErr):
			code := response.CodeQuotaExceeded
			if entErr.Result.UpgradeRequired {
				code = response.CodeUpgradeRequired
			}
			response.ErrorWithData(c, code, entErr.Result.Reason, entErr.Result)
		case errors.Is(err, service.ErrModelDenied):
			response.PermissionError(c, err.Error())
		case errors.Is(err, service.ErrModelUnknown):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrIdeaNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrIdeaPermission):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "prompt generation started", resp)
}

// Get 获取提示词详情
// GET /api/v1/prompts/:id
func (h *PromptHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	promptID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid prompt id")
		return
	}

	prompt, err := h.promptService.Get(userID, promptID)
	if err != nil {
		h.dispatchError(c, err)
		return
	}

	response.Success(c, prompt)
}

// List 提示词列表
// GET /api/v1/prompts
func (h *PromptHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.ListPromptsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	prompts, total, err := h.promptService.List(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, req.Page, req.PageSize, prompts)
}

// Delete 删除提示词
// DELETE /api/v1/prompts/:id
func (h *PromptHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	promptID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid prompt id")
		return
	}

	if err := h.promptService.Delete(userID, promptID); err != nil {
		h.dispatchError(c, err)
		return
	}

	response.SuccessWithMessage(c, "prompt deleted", nil)
}

func (h *PromptHandler) dispatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromptNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrPromptPermission):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
