package service

import (
	"fmt"
	"log"
	"time"

	"github.com/ideavault/vault_go_server/internal/catalog"
	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/repository"
)

// Action 受额度约束的操作。封闭集合：新增操作必须同时给
// limitForAction 增加分支，未识别的值一律拒绝，不存在默认放行。
type Action string

const (
	ActionCreateIdea     Action = "create_idea"
	ActionGeneratePrompt Action = "generate_prompt"
	ActionMakeAICall     Action = "make_ai_call"
)

// ParseAction 在 API 边界解析操作名，未知操作直接报错
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionCreateIdea, ActionGeneratePrompt, ActionMakeAICall:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown action: %s", s)
	}
}

// CheckResult 权限检查结果。拒绝时带可读原因，
// UpgradeRequired 提示前端展示升级引导而不是普通报错。
type CheckResult struct {
	Allowed         bool   `json:"allowed"`
	Reason          string `json:"reason,omitempty"`
	UpgradeRequired bool   `json:"upgrade_required,omitempty"`
}

type EntitlementService struct {
	subRepo   *repository.SubscriptionRepository
	usageRepo *repository.UsageRepository
}

func NewEntitlementService(
	subRepo *repository.SubscriptionRepository,
	usageRepo *repository.UsageRepository,
) *EntitlementService {
	return &EntitlementService{
		subRepo:   subRepo,
		usageRepo: usageRepo,
	}
}

// CanPerformAction 判断用户当前能否执行某操作。
// 纯读路径，不写任何状态；所有异常都折叠成结构化拒绝，不向上抛。
//
// 注意：这里的检查和之后的用量自增不在一个事务里，两个并发请求
// 可能同时读到 limit-1 并双双放行，超额一次。计数器本身是原子
// UPDATE 不会损坏，检查-执行间隙是已知并接受的竞态。
func (s *EntitlementService) CanPerformAction(userID int64, action Action) *CheckResult {
	now := time.Now()

	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		log.Printf("Entitlement check: failed to load subscription for user %d: %v", userID, err)
		return &CheckResult{Allowed: false, Reason: "Error checking permissions"}
	}

	// 没有订阅记录按免费档处理，检查是只读的，不在这里补建记录
	plan := catalog.FreePlan()
	if sub != nil {
		plan = catalog.GetPlan(sub.PlanID)
		if plan == nil {
			// 订阅指向已下架的套餐，不自动降级到免费档
			return &CheckResult{Allowed: false, Reason: "Invalid subscription plan"}
		}

		if sub.IsTrialExpired(now) {
			return &CheckResult{Allowed: false, Reason: "Trial has expired", UpgradeRequired: true}
		}

		switch sub.EffectiveStatus(now) {
		case model.SubStatusActive, model.SubStatusTrial:
			// 继续额度检查
		default:
			return &CheckResult{Allowed: false, Reason: "Subscription is not active", UpgradeRequired: true}
		}
	}

	stats, err := s.usageRepo.GetByUserID(userID)
	if err != nil {
		log.Printf("Entitlement check: failed to load usage for user %d: %v", userID, err)
		return &CheckResult{Allowed: false, Reason: "Error checking permissions"}
	}
	if stats == nil {
		// 还没有用量记录：首次使用放行，记录由第一次 TrackUsage 补建
		return &CheckResult{Allowed: true}
	}

	limit, used, noun, err := limitForAction(action, plan, stats, now)
	if err != nil {
		// 封闭集合之外的操作：拒绝而不是放行
		return &CheckResult{Allowed: false, Reason: err.Error()}
	}

	if limit == catalog.Unlimited {
		return &CheckResult{Allowed: true}
	}

	if used >= limit {
		return &CheckResult{
			Allowed:         false,
			Reason:          fmt.Sprintf("You've reached your limit of %d %s", limit, noun),
			UpgradeRequired: true,
		}
	}

	return &CheckResult{Allowed: true}
}

// PlanForUser 返回用户当前生效的套餐（无订阅按免费档）。
// 订阅指向未知套餐时返回错误。
func (s *EntitlementService) PlanForUser(userID int64) (*catalog.Plan, error) {
	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return catalog.FreePlan(), nil
	}

	plan := catalog.GetPlan(sub.PlanID)
	if plan == nil {
		return nil, fmt.Errorf("subscription references unknown plan: %s", sub.PlanID)
	}
	return plan, nil
}

// limitForAction 解析操作对应的套餐额度和当前计数。
// 用量行的周期已过但还没被写路径重置时，计数按 0 读（推导重置，
// 不在读路径落盘）。
func limitForAction(action Action, plan *catalog.Plan, stats *model.UsageStats, now time.Time) (limit, used int, noun string, err error) {
	stale := !now.Before(stats.ResetAt)

	count := func(v int) int {
		if stale {
			return 0
		}
		return v
	}

	switch action {
	case ActionCreateIdea:
		return plan.Limits.Ideas, count(stats.IdeasCreated), "ideas", nil
	case ActionGeneratePrompt:
		return plan.Limits.Prompts, count(stats.PromptsGenerated), "prompts", nil
	case ActionMakeAICall:
		return plan.Limits.AICalls, count(stats.AICallsMade), "AI calls", nil
	default:
		return 0, 0, "", fmt.Errorf("unknown action: %s", action)
	}
}
