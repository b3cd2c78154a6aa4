package dto

// SubscriptionInfo 订阅信息
type SubscriptionInfo struct {
	PlanID             string `json:"plan_id"`
	PlanName           string `json:"plan_name"`
	Tier               string `json:"tier"`
	Status             string `json:"status"` // 推导后的有效状态
	CurrentPeriodStart string `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   string `json:"current_period_end,omitempty"`
	TrialEndsAt        string `json:"trial_ends_at,omitempty"`
	TrialDaysRemaining int    `json:"trial_days_remaining,omitempty"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
}

// UsageInfo 当期用量
type UsageInfo struct {
	Tier             string `json:"tier"`
	IdeasCreated     int    `json:"ideas_created"`
	IdeasLimit       int    `json:"ideas_limit"` // -1 表示不限量
	PromptsGenerated int    `json:"prompts_generated"`
	PromptsLimit     int    `json:"prompts_limit"`
	AICallsMade      int    `json:"ai_calls_made"`
	AICallsLimit     int    `json:"ai_calls_limit"`
	StorageUsed      int64  `json:"storage_used"`
	ResetAt          string `json:"reset_at,omitempty"`
}

// UpdateSubscriptionRequest 升级/切换套餐请求
type UpdateSubscriptionRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

// CancelSubscriptionRequest 取消订阅请求
type CancelSubscriptionRequest struct {
	Immediate bool `json:"immediate"`
}

// EntitlementResponse 操作权限检查结果
type EntitlementResponse struct {
	Action          string `json:"action"`
	Allowed         bool   `json:"allowed"`
	Reason          string `json:"reason,omitempty"`
	UpgradeRequired bool   `json:"upgrade_required,omitempty"`
}
