package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ideavault/vault_go_server/config"
	"github.com/ideavault/vault_go_server/internal/database"
	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/service"
)

var (
	resetUsage    = flag.Bool("reset-usage", true, "Reset usage counters whose period has ended")
	expireSubs    = flag.Bool("expire-subs", true, "Expire subscriptions past their period end")
	failStaleJobs = flag.Bool("fail-stale-jobs", true, "Mark stuck prompt jobs as failed")
	staleAgeHours = flag.Int("stale-age", 1, "Hours before a queued/processing job counts as stuck")
)

func main() {
	flag.Parse()

	log.Println("🧹 Starting maintenance task...")

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 连接数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	subRepo := repository.NewSubscriptionRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	jobRepo := repository.NewPromptJobRepository(db)

	entitleSvc := service.NewEntitlementService(subRepo, usageRepo)
	usageSvc := service.NewUsageService(usageRepo, entitleSvc)
	subSvc := service.NewSubscriptionService(subRepo)

	var usageResets, subsExpired, staleJobs int64

	// 1. 重置到期的用量周期
	if *resetUsage {
		log.Println("\n📊 Resetting expired usage periods...")
		usageResets, err = usageSvc.ResetExpired()
		if err != nil {
			log.Printf("  ❌ Failed to reset usage: %v", err)
		} else {
			log.Printf("  Reset %d usage rows", usageResets)
		}
	}

	// 2. 过期的订阅落状态
	if *expireSubs {
		log.Println("\n💳 Expiring lapsed subscriptions...")
		subsExpired, err = subSvc.ExpireLapsed()
		if err != nil {
			log.Printf("  ❌ Failed to expire subscriptions: %v", err)
		} else {
			log.Printf("  Expired %d subscriptions", subsExpired)
		}
	}

	// 3. 僵尸任务标记失败
	if *failStaleJobs {
		log.Printf("\n⏱  Failing jobs stuck for more than %d hour(s)...", *staleAgeHours)
		before := time.Now().Add(-time.Duration(*staleAgeHours) * time.Hour)
		staleJobs, err = jobRepo.MarkStaleFailed(before)
		if err != nil {
			log.Printf("  ❌ Failed to mark stale jobs: %v", err)
		} else {
			log.Printf("  Marked %d jobs failed", staleJobs)
		}
	}

	// 输出统计
	log.Println("\n" + strings.Repeat("=", 60))
	log.Println("📊 Maintenance Summary")
	log.Println(strings.Repeat("=", 60))
	log.Printf("Usage resets: %d", usageResets)
	log.Printf("Subscriptions expired: %d", subsExpired)
	log.Printf("Stale jobs failed: %d", staleJobs)
	log.Println("\n✅ Maintenance completed!")
	log.Println(strings.Repeat("=", 60))
}
