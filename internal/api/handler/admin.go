package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ideavault/vault_go_server/internal/pkg/response"
	"github.com/ideavault/vault_go_server/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats 平台统计数据
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.GetStats()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, stats)
}

// RecentUsers 最近注册用户
// GET /api/v1/admin/users/recent?limit=20
func (h *AdminHandler) RecentUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.adminService.ListRecentUsers(limit)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{
		"users": users,
	})
}
