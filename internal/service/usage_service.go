package service

import (
	"log"
	"time"

	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/repository"
)

type UsageService struct {
	usageRepo  *repository.UsageRepository
	entitleSvc *EntitlementService
}

func NewUsageService(usageRepo *repository.UsageRepository, entitleSvc *EntitlementService) *UsageService {
	return &UsageService{
		usageRepo:  usageRepo,
		entitleSvc: entitleSvc,
	}
}

// TrackUsage 给操作对应的计数器记账。
// 失败只记日志并返回 false，调用方不该因为记账失败回滚
// 已经完成的操作。
func (s *UsageService) TrackUsage(userID int64, action Action, amount int64) bool {
	column, ok := counterForAction(action)
	if !ok {
		log.Printf("Track usage: unknown action %q for user %d", action, userID)
		return false
	}
	return s.increment(userID, column, amount)
}

// TrackStorage 记录存储用量（字节）
func (s *UsageService) TrackStorage(userID int64, bytes int64) bool {
	return s.increment(userID, repository.CounterStorageUsed, bytes)
}

func (s *UsageService) increment(userID int64, column string, amount int64) bool {
	now := time.Now()

	stats, err := s.usageRepo.GetByUserID(userID)
	if err != nil {
		log.Printf("Track usage: failed to load usage for user %d: %v", userID, err)
		return false
	}

	if stats == nil {
		stats = &model.UsageStats{
			UserID:  userID,
			ResetAt: nextPeriodStart(now),
		}
		if err := s.usageRepo.Create(stats); err != nil {
			log.Printf("Track usage: failed to create usage row for user %d: %v", userID, err)
			return false
		}
	} else if !now.Before(stats.ResetAt) {
		// 周期已过，先落盘重置再记账
		if err := s.usageRepo.Reset(userID, nextPeriodStart(now)); err != nil {
			log.Printf("Track usage: failed to reset usage for user %d: %v", userID, err)
			return false
		}
	}

	if err := s.usageRepo.Increment(userID, column, amount); err != nil {
		log.Printf("Track usage: failed to increment %s for user %d: %v", column, userID, err)
		return false
	}
	return true
}

// GetUsageInfo 当期用量及套餐额度。
// 周期已过但还没被写路径重置的行，计数按 0 返回。
func (s *UsageService) GetUsageInfo(userID int64) (*dto.UsageInfo, error) {
	plan, err := s.entitleSvc.PlanForUser(userID)
	if err != nil {
		return nil, err
	}

	info := &dto.UsageInfo{
		Tier:         string(plan.Tier),
		IdeasLimit:   plan.Limits.Ideas,
		PromptsLimit: plan.Limits.Prompts,
		AICallsLimit: plan.Limits.AICalls,
	}

	stats, err := s.usageRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return info, nil
	}

	if time.Now().Before(stats.ResetAt) {
		info.IdeasCreated = stats.IdeasCreated
		info.PromptsGenerated = stats.PromptsGenerated
		info.AICallsMade = stats.AICallsMade
		info.StorageUsed = stats.StorageUsed
	}
	info.ResetAt = stats.ResetAt.Format(time.RFC3339)

	return info, nil
}

// ResetExpired 批量重置过期的用量行（cron/cleanup 调用）
func (s *UsageService) ResetExpired() (int64, error) {
	now := time.Now()
	return s.usageRepo.ResetExpired(now, nextPeriodStart(now))
}

func counterForAction(action Action) (string, bool) {
	switch action {
	case ActionCreateIdea:
		return repository.CounterIdeasCreated, true
	case ActionGeneratePrompt:
		return repository.CounterPromptsGenerated, true
	case ActionMakeAICall:
		return repository.CounterAICallsMade, true
	default:
		return "", false
	}
}

// nextPeriodStart 用量周期按自然月滚动，返回下月月初（UTC）
func nextPeriodStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}
