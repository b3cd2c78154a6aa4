package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/pkg/response"
)

// RequireAdmin 管理员校验中间件，必须挂在 Auth 之后
func RequireAdmin(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			response.ServerError(c, "")
			c.Abort()
			return
		}
		if user == nil || !user.IsAdmin {
			response.PermissionError(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
