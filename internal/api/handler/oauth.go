package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ideavault/vault_go_server/internal/pkg/oauth"
	"github.com/ideavault/vault_go_server/internal/pkg/response"
	"github.com/ideavault/vault_go_server/internal/service"
)

type OAuthHandler struct {
	authService *service.AuthService
	stateStore  *oauth.StateStore
}

func NewOAuthHandler(authService *service.AuthService, stateStore *oauth.StateStore) *OAuthHandler {
	return &OAuthHandler{
		authService: authService,
		stateStore:  stateStore,
	}
}

// GithubAuth 获取 GitHub 授权跳转地址
// GET /api/v1/auth/github
func (h *OAuthHandler) GithubAuth(c *gin.Context) {
	redirectURI := c.Query("redirect_uri")

	state, err := h.stateStore.GenerateState(c.Request.Context(), redirectURI)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{
		"auth_url": h.authService.GetGithubAuthURL(state),
	})
}

// GithubCallback GitHub 授权回调
// GET /api/v1/auth/github/callback
func (h *OAuthHandler) GithubCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" {
		response.ParamError(c, "missing authorization code")
		return
	}

	if _, err := h.stateStore.ValidateState(c.Request.Context(), state); err != nil {
		response.AuthError(c, "invalid or expired state")
		return
	}

	resp, err := h.authService.GithubCallback(c.Request.Context(), code)
	if err != nil {
		response.AuthError(c, "github login failed")
		return
	}

	response.Success(c, resp)
}
