// Package catalog 定义套餐目录。套餐在编译期写死，不存数据库，
// 进程内不可变。
package catalog

// Tier 套餐档位
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Interval 计费周期
type Interval string

const (
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
)

// Unlimited 额度哨兵值，表示该资源不限量
const Unlimited = -1

// Limits 套餐各资源额度，Unlimited 表示不限量
type Limits struct {
	Ideas       int `json:"ideas"`
	Prompts     int `json:"prompts"`
	AICalls     int `json:"ai_calls"`
	TeamMembers int `json:"team_members"`
}

// Plan 套餐
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Tier     Tier     `json:"tier"`
	Price    float64  `json:"price"`
	Interval Interval `json:"interval"`
	Limits   Limits   `json:"limits"`
}

// plans 按作者排序的全量目录
var plans = []Plan{
	{
		ID:       "free",
		Name:     "Free",
		Tier:     TierFree,
		Price:    0,
		Interval: IntervalMonthly,
		Limits:   Limits{Ideas: 3, Prompts: 10, AICalls: 20, TeamMembers: 1},
	},
	{
		ID:       "pro_monthly",
		Name:     "Pro",
		Tier:     TierPro,
		Price:    19,
		Interval: IntervalMonthly,
		Limits:   Limits{Ideas: Unlimited, Prompts: Unlimited, AICalls: 1000, TeamMembers: 5},
	},
	{
		ID:       "pro_yearly",
		Name:     "Pro (Yearly)",
		Tier:     TierPro,
		Price:    190,
		Interval: IntervalYearly,
		Limits:   Limits{Ideas: Unlimited, Prompts: Unlimited, AICalls: 1000, TeamMembers: 5},
	},
	{
		ID:       "enterprise_monthly",
		Name:     "Enterprise",
		Tier:     TierEnterprise,
		Price:    99,
		Interval: IntervalMonthly,
		Limits:   Limits{Ideas: Unlimited, Prompts: Unlimited, AICalls: Unlimited, TeamMembers: Unlimited},
	},
	{
		ID:       "enterprise_yearly",
		Name:     "Enterprise (Yearly)",
		Tier:     TierEnterprise,
		Price:    990,
		Interval: IntervalYearly,
		Limits:   Limits{Ideas: Unlimited, Prompts: Unlimited, AICalls: Unlimited, TeamMembers: Unlimited},
	},
}

// currentByTier 每个档位用于匹配的默认套餐（每档位有且仅有一个）
var currentByTier = map[Tier]string{
	TierFree:       "free",
	TierPro:        "pro_monthly",
	TierEnterprise: "enterprise_monthly",
}

// GetPlan 按 ID 精确查找套餐，不存在返回 nil
func GetPlan(id string) *Plan {
	for i := range plans {
		if plans[i].ID == id {
			p := plans[i]
			return &p
		}
	}
	return nil
}

// AllPlans 返回全量目录（拷贝，调用方修改不影响目录）
func AllPlans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// PlansByTier 按档位过滤，一个档位可能有多个套餐（月付/年付）
func PlansByTier(tier Tier) []Plan {
	var out []Plan
	for _, p := range plans {
		if p.Tier == tier {
			out = append(out, p)
		}
	}
	return out
}

// CurrentPlanForTier 返回档位的默认套餐
func CurrentPlanForTier(tier Tier) *Plan {
	id, ok := currentByTier[tier]
	if !ok {
		return nil
	}
	return GetPlan(id)
}

// FreePlan 免费套餐（无订阅记录用户的兜底）
func FreePlan() *Plan {
	return GetPlan("free")
}
