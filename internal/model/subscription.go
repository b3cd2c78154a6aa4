package model

import (
	"time"
)

// 订阅状态。status 字段可能滞后于时间戳，读取时一律走 EffectiveStatus
const (
	SubStatusActive    = "active"
	SubStatusInactive  = "inactive"
	SubStatusTrial     = "trial"
	SubStatusExpired   = "expired"
	SubStatusCancelled = "cancelled"
)

// Subscription 用户订阅，每用户一条
type Subscription struct {
	ID                 int64      `gorm:"primaryKey" json:"id"`
	UserID             int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	PlanID             string     `gorm:"size:50;not null" json:"plan_id"`
	Tier               string     `gorm:"size:20;not null" json:"tier"` // free, pro, enterprise
	Status             string     `gorm:"size:20;default:active;index" json:"status"`
	CurrentPeriodStart time.Time  `gorm:"not null" json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `gorm:"not null;index" json:"current_period_end"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
	CancelAtPeriodEnd  bool       `gorm:"default:false" json:"cancel_at_period_end"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// EffectiveStatus 由时间戳推导出的真实状态。
// 存储的 status 字段可能漂移（试用到期、周期结束时没有任何写入），
// 所有读路径都应该用这里的结果而不是直接信 status。
func (s *Subscription) EffectiveStatus(now time.Time) string {
	switch s.Status {
	case SubStatusCancelled, SubStatusExpired, SubStatusInactive:
		return s.Status
	case SubStatusTrial:
		if s.TrialEndsAt == nil || !now.Before(*s.TrialEndsAt) {
			return SubStatusExpired
		}
		return SubStatusTrial
	case SubStatusActive:
		if now.After(s.CurrentPeriodEnd) {
			if s.CancelAtPeriodEnd {
				return SubStatusCancelled
			}
			return SubStatusExpired
		}
		return SubStatusActive
	default:
		return s.Status
	}
}

// IsTrialExpired 试用是否已到期（仅对 status=trial 有意义）
func (s *Subscription) IsTrialExpired(now time.Time) bool {
	return s.Status == SubStatusTrial && (s.TrialEndsAt == nil || !now.Before(*s.TrialEndsAt))
}
