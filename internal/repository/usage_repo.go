package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/internal/model"
)

// 用量计数器列名白名单，Increment 只接受这里的列
const (
	CounterIdeasCreated     = "ideas_created"
	CounterPromptsGenerated = "prompts_generated"
	CounterAICallsMade      = "ai_calls_made"
	CounterStorageUsed      = "storage_used"
)

var counterColumns = map[string]struct{}{
	CounterIdeasCreated:     {},
	CounterPromptsGenerated: {},
	CounterAICallsMade:      {},
	CounterStorageUsed:      {},
}

type UsageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// GetByUserID 查用户用量。没有记录不算错误，返回 (nil, nil)。
func (r *UsageRepository) GetByUserID(userID int64) (*model.UsageStats, error) {
	var stats model.UsageStats
	err := r.db.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

func (r *UsageRepository) Create(stats *model.UsageStats) error {
	return r.db.Create(stats).Error
}

// Increment 单条原子自增：UPDATE ... SET col = col + amount。
// 绝不在客户端读改写，计数器本身不会因并发损坏。
func (r *UsageRepository) Increment(userID int64, column string, amount int64) error {
	if _, ok := counterColumns[column]; !ok {
		return fmt.Errorf("unknown usage counter: %s", column)
	}

	result := r.db.Model(&model.UsageStats{}).Where("user_id = ?", userID).
		Update(column, gorm.Expr(column+" + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Reset 清零单个用户的计数器并设置下次重置时间
func (r *UsageRepository) Reset(userID int64, nextResetAt time.Time) error {
	return r.db.Model(&model.UsageStats{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"ideas_created":     0,
		"prompts_generated": 0,
		"ai_calls_made":     0,
		"storage_used":      0,
		"reset_at":          nextResetAt,
	}).Error
}

// ResetExpired 批量重置所有已过周期的用量行，返回影响的行数
func (r *UsageRepository) ResetExpired(now, nextResetAt time.Time) (int64, error) {
	result := r.db.Model(&model.UsageStats{}).Where("reset_at <= ?", now).Updates(map[string]interface{}{
		"ideas_created":     0,
		"prompts_generated": 0,
		"ai_calls_made":     0,
		"storage_used":      0,
		"reset_at":          nextResetAt,
	})
	return result.RowsAffected, result.Error
}
