package cron

import (
	"log"
	"time"

	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/service"
)

type Service struct {
	usageService *service.UsageService
	subService   *service.SubscriptionService
	jobRepo      *repository.PromptJobRepository
	staleJobAge  time.Duration
	stopChan     chan struct{}
}

func NewService(
	usageService *service.UsageService,
	subService *service.SubscriptionService,
	jobRepo *repository.PromptJobRepository,
	staleJobAge time.Duration,
) *Service {
	if staleJobAge <= 0 {
		staleJobAge = time.Hour
	}
	return &Service{
		usageService: usageService,
		subService:   subService,
		jobRepo:      jobRepo,
		staleJobAge:  staleJobAge,
		stopChan:     make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runHourlySweep()
	log.Println("Cron service started (usage reset + subscription expiry + stale jobs)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runHourlySweep 每小时执行一次全量巡检
func (s *Service) runHourlySweep() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweepAll()
		}
	}
}

// sweepAll 执行所有巡检任务
func (s *Service) sweepAll() {
	resets := s.sweepUsage()
	expired := s.sweepSubscriptions()
	stale := s.sweepStaleJobs()

	if resets+expired+stale > 0 {
		log.Printf("Sweep summary: usage_resets=%d, subs_expired=%d, stale_jobs=%d", resets, expired, stale)
	}
}

// sweepUsage 重置已跨过月度周期的用量计数
func (s *Service) sweepUsage() int64 {
	if s.usageService == nil {
		return 0
	}
	n, err := s.usageService.ResetExpired()
	if err != nil {
		log.Printf("Sweep usage: failed to reset expired periods: %v", err)
		return 0
	}
	return n
}

// sweepSubscriptions 将已过期的订阅置为终态
func (s *Service) sweepSubscriptions() int64 {
	if s.subService == nil {
		return 0
	}
	n, err := s.subService.ExpireLapsed()
	if err != nil {
		log.Printf("Sweep subscriptions: failed to expire lapsed: %v", err)
		return 0
	}
	return n
}

// sweepStaleJobs 将卡死的生成任务标记为失败
func (s *Service) sweepStaleJobs() int64 {
	if s.jobRepo == nil {
		return 0
	}
	n, err := s.jobRepo.MarkStaleFailed(time.Now().Add(-s.staleJobAge))
	if err != nil {
		log.Printf("Sweep jobs: failed to mark stale jobs: %v", err)
		return 0
	}
	return n
}

// RunNow 立即执行一次巡检（用于测试或手动触发）
func (s *Service) RunNow() {
	log.Println("Manual sweep triggered...")
	s.sweepAll()
}
