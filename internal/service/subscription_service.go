package service

import (
	"errors"
	"time"

	"github.com/ideavault/vault_go_server/internal/catalog"
	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/repository"
)

var (
	ErrPlanNotFound   = errors.New("plan not found")
	ErrNoSubscription = errors.New("no subscription to cancel")
)

// TrialDays 试用期时长
const TrialDays = 7

// TrialPlanID 试用挂在 Pro 月付套餐上
const TrialPlanID = "pro_monthly"

type SubscriptionService struct {
	subRepo *repository.SubscriptionRepository
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo}
}

// GetInfo 订阅信息。无订阅记录按免费档返回。
// status 一律返回推导后的有效状态。
func (s *SubscriptionService) GetInfo(userID int64) (*dto.SubscriptionInfo, error) {
	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if sub == nil {
		free := catalog.FreePlan()
		return &dto.SubscriptionInfo{
			PlanID:   free.ID,
			PlanName: free.Name,
			Tier:     string(free.Tier),
			Status:   model.SubStatusActive,
		}, nil
	}

	now := time.Now()
	info := &dto.SubscriptionInfo{
		PlanID:             sub.PlanID,
		Tier:               sub.Tier,
		Status:             sub.EffectiveStatus(now),
		CurrentPeriodStart: sub.CurrentPeriodStart.Format(time.RFC3339),
		CurrentPeriodEnd:   sub.CurrentPeriodEnd.Format(time.RFC3339),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}

	if plan := catalog.GetPlan(sub.PlanID); plan != nil {
		info.PlanName = plan.Name
	}
	if sub.TrialEndsAt != nil {
		info.TrialEndsAt = sub.TrialEndsAt.Format(time.RFC3339)
		info.TrialDaysRemaining = daysRemaining(*sub.TrialEndsAt, now)
	}

	return info, nil
}

// Update 切换套餐。周期从当前时刻整段重置，不做按比例折算。
func (s *SubscriptionService) Update(userID int64, planID, status string) error {
	plan := catalog.GetPlan(planID)
	if plan == nil {
		return ErrPlanNotFound
	}

	now := time.Now()
	periodEnd := now.AddDate(0, 1, 0)
	if plan.Interval == catalog.IntervalYearly {
		periodEnd = now.AddDate(1, 0, 0)
	}

	sub := &model.Subscription{
		UserID:             userID,
		PlanID:             plan.ID,
		Tier:               string(plan.Tier),
		Status:             status,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   periodEnd,
		TrialEndsAt:        nil,
		CancelAtPeriodEnd:  false,
	}
	return s.subRepo.Upsert(sub)
}

// Cancel 取消订阅。immediate 立即生效，否则只打周期末取消标记，
// 实际转 cancelled 由 cleanup 扫描和 EffectiveStatus 推导兜底。
func (s *SubscriptionService) Cancel(userID int64, immediate bool) error {
	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrNoSubscription
	}

	if immediate {
		return s.subRepo.UpdateFields(userID, map[string]interface{}{
			"status": model.SubStatusCancelled,
		})
	}
	return s.subRepo.UpdateFields(userID, map[string]interface{}{
		"cancel_at_period_end": true,
	})
}

// StartFreeTrial 开通 7 天 Pro 试用。无条件 upsert：
// 不查之前是否用过试用，重复开通不做限制（与产品现状一致）。
func (s *SubscriptionService) StartFreeTrial(userID int64) error {
	plan := catalog.GetPlan(TrialPlanID)
	if plan == nil {
		return ErrPlanNotFound
	}

	now := time.Now()
	trialEnd := now.AddDate(0, 0, TrialDays)

	sub := &model.Subscription{
		UserID:             userID,
		PlanID:             plan.ID,
		Tier:               string(plan.Tier),
		Status:             model.SubStatusTrial,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   trialEnd,
		TrialEndsAt:        &trialEnd,
		CancelAtPeriodEnd:  false,
	}
	return s.subRepo.Upsert(sub)
}

// IsOnTrial 是否在有效试用期内（status=trial 且 trial_ends_at 严格在未来）
func (s *SubscriptionService) IsOnTrial(userID int64) (bool, error) {
	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		return false, err
	}
	if sub == nil || sub.Status != model.SubStatusTrial {
		return false, nil
	}
	return sub.TrialEndsAt != nil && time.Now().Before(*sub.TrialEndsAt), nil
}

// TrialDaysRemaining 试用剩余天数（向上取整，最小 0）
func (s *SubscriptionService) TrialDaysRemaining(userID int64) (int, error) {
	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		return 0, err
	}
	if sub == nil || sub.Status != model.SubStatusTrial || sub.TrialEndsAt == nil {
		return 0, nil
	}
	return daysRemaining(*sub.TrialEndsAt, time.Now()), nil
}

// ExpireLapsed 把周期已过的订阅落账（cron/cleanup 调用）
func (s *SubscriptionService) ExpireLapsed() (int64, error) {
	return s.subRepo.ExpireLapsed(time.Now())
}

func daysRemaining(end, now time.Time) int {
	remaining := end.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}
