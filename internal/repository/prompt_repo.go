package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/internal/model"
)

type PromptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

func (r *PromptRepository) Create(prompt *model.Prompt) error {
	return r.db.Create(prompt).Error
}

func (r *PromptRepository) GetByID(id int64) (*model.Prompt, error) {
	var prompt model.Prompt
	err := r.db.Where("id = ?", id).First(&prompt).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r *PromptRepository) ListByUser(userID int64, status string, page, pageSize int) ([]model.Prompt, int64, error) {
	query := r.db.Model(&model.Prompt{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var prompts []model.Prompt
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&prompts).Error
	return prompts, total, err
}

func (r *PromptRepository) Update(prompt *model.Prompt) error {
	return r.db.Save(prompt).Error
}

func (r *PromptRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.Prompt{}).Where("id = ?", id).Update("status", status).Error
}

func (r *PromptRepository) Delete(id int64) error {
	return r.db.Delete(&model.Prompt{}, id).Error
}

func (r *PromptRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Prompt{}).Count(&count).Error
	return count, err
}

type PromptJobRepository struct {
	db *gorm.DB
}

func NewPromptJobRepository(db *gorm.DB) *PromptJobRepository {
	return &PromptJobRepository{db: db}
}

func (r *PromptJobRepository) Create(job *model.PromptJob) error {
	return r.db.Create(job).Error
}

func (r *PromptJobRepository) GetByID(id int64) (*model.PromptJob, error) {
	var job model.PromptJob
	err := r.db.Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *PromptJobRepository) Update(job *model.PromptJob) error {
	return r.db.Save(job).Error
}

// MarkStaleFailed 把卡死的任务标记失败（worker 崩溃后的兜底）。
// 返回影响的行数。
func (r *PromptJobRepository) MarkStaleFailed(before time.Time) (int64, error) {
	result := r.db.Model(&model.PromptJob{}).
		Where("status IN ? AND created_at < ?", []string{model.JobStatusQueued, model.JobStatusProcessing}, before).
		Updates(map[string]interface{}{
			"status":        model.JobStatusFailed,
			"error_message": "job timed out",
		})
	return result.RowsAffected, result.Error
}
