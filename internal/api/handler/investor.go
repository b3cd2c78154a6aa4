package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ideavault/vault_go_server/internal/api/middleware"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/pkg/response"
	"github.com/ideavault/vault_go_server/internal/service"
)

type InvestorHandler struct {
	investorService *service.InvestorService
}

func NewInvestorHandler(investorService *service.InvestorService) *InvestorHandler {
	return &InvestorHandler{
		investorService: investorService,
	}
}

// Create 新建投资人记录
// POST /api/v1/investors
func (h *InvestorHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	investor, err := h.investorService.Create(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, investor)
}

// Get 获取投资人详情
// GET /api/v1/investors/:id
func (h *InvestorHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	investorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid investor id")
		return
	}

	investor, err := h.investorService.Get(userID, investorID)
	if err != nil {
		h.dispatchError(c, err)
		return
	}

	response.Success(c, investor)
}

// List 投资人列表
// GET /api/v1/investors
func (h *InvestorHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.ListInvestorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	investors, total, err := h.investorService.List(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, req.Page, req.PageSize, investors)
}

// Update 更新投资人记录
// PUT /api/v1/investors/:id
func (h *InvestorHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	investorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid investor id")
		return
	}

	var req dto.UpdateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	investor, err := h.investorService.Update(userID, investorID, &req)
	if err != nil {
		h.dispatchError(c, err)
		return
	}

	response.SuccessWithMessage(c, "investor updated", investor)
}

// Delete 删除投资人记录
// DELETE /api/v1/investors/:id
func (h *InvestorHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	investorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid investor id")
		return
	}

	if err := h.investorService.Delete(userID, investorID); err != nil {
		h.dispatchError(c, err)
		return
	}

	response.SuccessWithMessage(c, "investor deleted", nil)
}

// UploadDeck 上传 pitch deck
// POST /api/v1/investors/:id/deck
func (h *InvestorHandler) UploadDeck(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	investorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid investor id")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.ParamError(c, "missing file")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.ServerError(c, "failed to read file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.ServerError(c, "failed to read file")
		return
	}

	resp, err := h.investorService.UploadDeck(userID, investorID, file.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeckTooLarge):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrDeckBadFormat):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrStorageUnavailable):
			response.ServerError(c, err.Error())
		default:
			h.dispatchError(c, err)
		}
		return
	}

	response.SuccessWithMessage(c, "deck uploaded", resp)
}

func (h *InvestorHandler) dispatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvestorNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrInvestorPermission):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
