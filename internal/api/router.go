package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ideavault/vault_go_server/config"
	"github.com/ideavault/vault_go_server/internal/api/handler"
	"github.com/ideavault/vault_go_server/internal/api/middleware"
	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/service"
)

type Router struct {
	authHandler      *handler.AuthHandler
	oauthHandler     *handler.OAuthHandler
	userHandler      *handler.UserHandler
	ideaHandler      *handler.IdeaHandler
	promptHandler    *handler.PromptHandler
	billingHandler   *handler.BillingHandler
	investorHandler  *handler.InvestorHandler
	teamHandler      *handler.TeamHandler
	modelsHandler    *handler.ModelsHandler
	websocketHandler *handler.WebSocketHandler
	adminHandler     *handler.AdminHandler
	entitleService   *service.EntitlementService
	userRepo         *repository.UserRepository
	cfg              *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	oauthHandler *handler.OAuthHandler,
	userHandler *handler.UserHandler,
	ideaHandler *handler.IdeaHandler,
	promptHandler *handler.PromptHandler,
	billingHandler *handler.BillingHandler,
	investorHandler *handler.InvestorHandler,
	teamHandler *handler.TeamHandler,
	modelsHandler *handler.ModelsHandler,
	websocketHandler *handler.WebSocketHandler,
	adminHandler *handler.AdminHandler,
	entitleService *service.EntitlementService,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:      authHandler,
		oauthHandler:     oauthHandler,
		userHandler:      userHandler,
		ideaHandler:      ideaHandler,
		promptHandler:    promptHandler,
		billingHandler:   billingHandler,
		investorHandler:  investorHandler,
		teamHandler:      teamHandler,
		modelsHandler:    modelsHandler,
		websocketHandler: websocketHandler,
		adminHandler:     adminHandler,
		entitleService:   entitleService,
		userRepo:         userRepo,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/verify-email", r.authHandler.VerifyEmail)
			auth.GET("/github", r.oauthHandler.GithubAuth)
			auth.GET("/github/callback", r.oauthHandler.GithubCallback)
		}

		// 公开接口 - 模型与套餐
		api.GET("/models", r.modelsHandler.List)
		api.GET("/billing/plans", r.billingHandler.ListPlans)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/avatar", r.userHandler.UploadAvatar)
			}

			// 创业想法
			ideas := authenticated.Group("/ideas")
			{
				ideas.POST("", middleware.Entitle(r.entitleService, service.ActionCreateIdea), r.ideaHandler.Create)
				ideas.GET("", r.ideaHandler.List)
				ideas.GET("/:id", r.ideaHandler.Get)
				ideas.PUT("/:id", r.ideaHandler.Update)
				ideas.DELETE("/:id", r.ideaHandler.Delete)
			}

			// 提示词生成
			prompts := authenticated.Group("/prompts")
			{
				prompts.POST("", middleware.Entitle(r.entitleService, service.ActionGeneratePrompt), r.promptHandler.Generate)
				prompts.GET("", r.promptHandler.List)
				prompts.GET("/:id", r.promptHandler.Get)
				prompts.DELETE("/:id", r.promptHandler.Delete)
			}

			// 订阅与用量
			billing := authenticated.Group("/billing")
			{
				billing.GET("/subscription", r.billingHandler.GetSubscription)
				billing.PUT("/subscription", r.billingHandler.UpdateSubscription)
				billing.POST("/subscription/cancel", r.billingHandler.CancelSubscription)
				billing.POST("/trial", r.billingHandler.StartTrial)
				billing.GET("/usage", r.billingHandler.GetUsage)
				billing.GET("/entitlement", r.billingHandler.CheckEntitlement)
			}

			// 投资人管理
			investors := authenticated.Group("/investors")
			{
				investors.POST("", r.investorHandler.Create)
				investors.GET("", r.investorHandler.List)
				investors.GET("/:id", r.investorHandler.Get)
				investors.PUT("/:id", r.investorHandler.Update)
				investors.DELETE("/:id", r.investorHandler.Delete)
				investors.POST("/:id/deck", r.investorHandler.UploadDeck)
			}

			// 团队成员
			team := authenticated.Group("/team")
			{
				team.POST("/members", r.teamHandler.Invite)
				team.GET("/members", r.teamHandler.List)
				team.DELETE("/members/:id", r.teamHandler.Remove)
			}
		}

		// 管理后台
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(r.cfg.JWT.Secret))
		admin.Use(middleware.RequireAdmin(r.userRepo))
		{
			admin.GET("/stats", r.adminHandler.Stats)
			admin.GET("/users/recent", r.adminHandler.RecentUsers)
		}
	}

	return engine
}
