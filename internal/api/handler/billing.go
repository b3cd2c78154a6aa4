package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ideavault/vault_go_server/internal/api/middleware"
	"github.com/ideavault/vault_go_server/internal/catalog"
	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/pkg/response"
	"github.com/ideavault/vault_go_server/internal/service"
)

type BillingHandler struct {
	subService    *service.SubscriptionService
	usageService  *service.UsageService
	entitleSvc    *service.EntitlementService
}

func NewBillingHandler(
	subService *service.SubscriptionService,
	usageService *service.UsageService,
	entitleSvc *service.EntitlementService,
) *BillingHandler {
	return &BillingHandler{
		subService:   subService,
		usageService: usageService,
		entitleSvc:   entitleSvc,
	}
}

// ListPlans 套餐目录（公开）
// GET /api/v1/billing/plans
func (h *BillingHandler) ListPlans(c *gin.Context) {
	response.Success(c, gin.H{
		"plans": catalog.AllPlans(),
	})
}

// GetSubscription 获取当前订阅
// GET /api/v1/billing/subscription
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.subService.GetInfo(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}

// UpdateSubscription 升级/切换套餐
// PUT /api/v1/billing/subscription
func (h *BillingHandler) UpdateSubscription(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.subService.Update(userID, req.PlanID, model.SubStatusActive); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	info, err := h.subService.GetInfo(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "subscription updated", info)
}

// CancelSubscription 取消订阅
// POST /api/v1/billing/subscription/cancel
func (h *BillingHandler) CancelSubscription(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.subService.Cancel(userID, req.Immediate); err != nil {
		if errors.Is(err, service.ErrNoSubscription) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "subscription cancelled", nil)
}

// StartTrial 开通免费试用
// POST /api/v1/billing/trial
func (h *BillingHandler) StartTrial(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.subService.StartFreeTrial(userID); err != nil {
		response.ServerError(c, "")
		return
	}

	info, err := h.subService.GetInfo(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "trial started", info)
}

// GetUsage 当期用量
// GET /api/v1/billing/usage
func (h *BillingHandler) GetUsage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.usageService.GetUsageInfo(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}

// CheckEntitlement 预检某操作是否被套餐允许（前端置灰按钮用）
// GET /api/v1/billing/entitlement?action=create_idea
func (h *BillingHandler) CheckEntitlement(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	action, err := service.ParseAction(c.Query("action"))
	if err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result := h.entitleSvc.CanPerformAction(userID, action)
	response.Success(c, dto.EntitlementResponse{
		Action:          string(action),
		Allowed:         result.Allowed,
		Reason:          result.Reason,
		UpgradeRequired: result.UpgradeRequired,
	})
}
