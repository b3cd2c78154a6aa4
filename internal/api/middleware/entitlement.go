package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ideavault/vault_go_server/internal/pkg/response"
	"github.com/ideavault/vault_go_server/internal/service"
)

// Entitle 套餐额度检查中间件，挂在消耗额度的写接口上。
// 拒绝时把检查结果整体返回，前端据此决定报错还是弹升级引导。
func Entitle(entitleSvc *service.EntitlementService, action service.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		result := entitleSvc.CanPerformAction(userID, action)
		if !result.Allowed {
			code := response.CodeQuotaExceeded
			if result.UpgradeRequired {
				code = response.CodeUpgradeRequired
			}
			response.ErrorWithData(c, code, result.Reason, result)
			c.Abort()
			return
		}

		c.Next()
	}
}
