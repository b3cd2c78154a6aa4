package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ideavault/vault_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetByUserID 查用户订阅。没有记录不算错误，返回 (nil, nil)，
// 调用方按免费档处理。
func (r *SubscriptionRepository) GetByUserID(userID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// Upsert 按 user_id 插入或整体替换订阅
func (r *SubscriptionRepository) Upsert(sub *model.Subscription) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan_id", "tier", "status",
			"current_period_start", "current_period_end",
			"trial_ends_at", "cancel_at_period_end", "updated_at",
		}),
	}).Create(sub).Error
}

func (r *SubscriptionRepository) UpdateFields(userID int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Subscription{}).Where("user_id = ?", userID).Updates(fields).Error
}

// ExpireLapsed 把周期已结束却还挂着 active/trial 的订阅落账：
// 标记了 cancel_at_period_end 的转 cancelled，其余转 expired。
// 返回影响的行数。
func (r *SubscriptionRepository) ExpireLapsed(now time.Time) (int64, error) {
	cancelled := r.db.Model(&model.Subscription{}).
		Where("status IN ? AND current_period_end < ? AND cancel_at_period_end = ?",
			[]string{model.SubStatusActive, model.SubStatusTrial}, now, true).
		Update("status", model.SubStatusCancelled)
	if cancelled.Error != nil {
		return 0, cancelled.Error
	}

	expired := r.db.Model(&model.Subscription{}).
		Where("status IN ? AND current_period_end < ?",
			[]string{model.SubStatusActive, model.SubStatusTrial}, now).
		Update("status", model.SubStatusExpired)
	if expired.Error != nil {
		return cancelled.RowsAffected, expired.Error
	}

	return cancelled.RowsAffected + expired.RowsAffected, nil
}

func (r *SubscriptionRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *SubscriptionRepository) CountByTier() (map[string]int64, error) {
	type row struct {
		Tier  string
		Count int64
	}
	var rows []row
	err := r.db.Model(&model.Subscription{}).
		Select("tier, COUNT(*) as count").
		Group("tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Tier] = r.Count
	}
	return out, nil
}
