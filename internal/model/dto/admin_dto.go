package dto

// AdminStats 管理后台统计
type AdminStats struct {
	TotalUsers          int64            `json:"total_users"`
	TotalIdeas          int64            `json:"total_ideas"`
	TotalPrompts        int64            `json:"total_prompts"`
	ActiveSubscriptions int64            `json:"active_subscriptions"`
	TrialSubscriptions  int64            `json:"trial_subscriptions"`
	SignupsLast7Days    int64            `json:"signups_last_7_days"`
	SubscriptionsByTier map[string]int64 `json:"subscriptions_by_tier"`
}
