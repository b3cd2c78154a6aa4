package model

import (
	"time"
)

// UsageStats 用户当期用量计数，每用户一条。
// 计数器在周期内单调递增，只通过原子 UPDATE 自增，
// 周期滚动后清零（懒重置 + cleanup 扫描兜底）。
type UsageStats struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	UserID           int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	IdeasCreated     int       `gorm:"default:0" json:"ideas_created"`
	PromptsGenerated int       `gorm:"default:0" json:"prompts_generated"`
	AICallsMade      int       `gorm:"column:ai_calls_made;default:0" json:"ai_calls_made"`
	StorageUsed      int64     `gorm:"default:0" json:"storage_used"`
	ResetAt          time.Time `gorm:"not null;index" json:"reset_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (UsageStats) TableName() string {
	return "usage_stats"
}
