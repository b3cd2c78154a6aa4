package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ideavault/vault_go_server/config"
	"github.com/ideavault/vault_go_server/internal/api"
	"github.com/ideavault/vault_go_server/internal/api/handler"
	"github.com/ideavault/vault_go_server/internal/database"
	"github.com/ideavault/vault_go_server/internal/pkg/cron"
	"github.com/ideavault/vault_go_server/internal/pkg/email"
	"github.com/ideavault/vault_go_server/internal/pkg/oauth"
	"github.com/ideavault/vault_go_server/internal/pkg/oss"
	"github.com/ideavault/vault_go_server/internal/pkg/pubsub"
	"github.com/ideavault/vault_go_server/internal/pkg/queue"
	"github.com/ideavault/vault_go_server/internal/pkg/ws"
	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 Queue 和 Pub/Sub
	jobQueue := queue.NewQueue(rdb, cfg.Queue.PromptQueue)
	subscriber := pubsub.NewSubscriber(rdb)
	stateStore := oauth.NewStateStore(rdb)

	// 初始化 OSS（可选）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	// 初始化 WebSocket Hub，并把进度消息转发给在线用户
	wsHub := ws.NewHub()
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.ProgressMessage) {
			wsHub.SendToUser(msg.UserID, &ws.Message{Type: msg.Type, Data: msg})
		})
		if err != nil {
			log.Printf("Progress subscriber stopped: %v", err)
		}
	}()
	log.Println("WebSocket hub started")

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	promptRepo := repository.NewPromptRepository(db)
	jobRepo := repository.NewPromptJobRepository(db)
	investorRepo := repository.NewInvestorRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	// 初始化 Service
	emailSvc := email.NewService(&cfg.Email)
	entitleSvc := service.NewEntitlementService(subRepo, usageRepo)
	usageSvc := service.NewUsageService(usageRepo, entitleSvc)
	subSvc := service.NewSubscriptionService(subRepo)
	authSvc := service.NewAuthService(userRepo, emailSvc, cfg)
	userSvc := service.NewUserService(userRepo, entitleSvc, ossClient)
	ideaSvc := service.NewIdeaService(ideaRepo, usageSvc)
	promptSvc := service.NewPromptService(promptRepo, jobRepo, ideaRepo, entitleSvc, usageSvc, jobQueue, cfg)
	investorSvc := service.NewInvestorService(investorRepo, usageSvc, ossClient, cfg)
	teamSvc := service.NewTeamService(teamRepo, entitleSvc)
	adminSvc := service.NewAdminService(userRepo, ideaRepo, promptRepo, subRepo)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authSvc)
	oauthHandler := handler.NewOAuthHandler(authSvc, stateStore)
	userHandler := handler.NewUserHandler(userSvc)
	ideaHandler := handler.NewIdeaHandler(ideaSvc)
	promptHandler := handler.NewPromptHandler(promptSvc)
	billingHandler := handler.NewBillingHandler(subSvc, usageSvc, entitleSvc)
	investorHandler := handler.NewInvestorHandler(investorSvc)
	teamHandler := handler.NewTeamHandler(teamSvc)
	modelsHandler := handler.NewModelsHandler(cfg)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)
	adminHandler := handler.NewAdminHandler(adminSvc)

	// 启动后台巡检（用量重置、订阅过期、僵尸任务）
	cronSvc := cron.NewService(usageSvc, subSvc, jobRepo, time.Hour)
	cronSvc.Start()
	defer cronSvc.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		oauthHandler,
		userHandler,
		ideaHandler,
		promptHandler,
		billingHandler,
		investorHandler,
		teamHandler,
		modelsHandler,
		websocketHandler,
		adminHandler,
		entitleSvc,
		userRepo,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
