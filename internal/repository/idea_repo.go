package repository

import (
	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/internal/model"
)

type IdeaRepository struct {
	db *gorm.DB
}

func NewIdeaRepository(db *gorm.DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

func (r *IdeaRepository) Create(idea *model.Idea) error {
	return r.db.Create(idea).Error
}

func (r *IdeaRepository) GetByID(id int64) (*model.Idea, error) {
	var idea model.Idea
	err := r.db.Where("id = ?", id).First(&idea).Error
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// ListByUser 分页查询用户的点子，支持按阶段和收藏过滤
func (r *IdeaRepository) ListByUser(userID int64, stage string, favoriteOnly bool, page, pageSize int) ([]model.Idea, int64, error) {
	query := r.db.Model(&model.Idea{}).Where("user_id = ?", userID)
	if stage != "" {
		query = query.Where("stage = ?", stage)
	}
	if favoriteOnly {
		query = query.Where("is_favorite = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ideas []model.Idea
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&ideas).Error
	return ideas, total, err
}

func (r *IdeaRepository) Update(idea *model.Idea) error {
	return r.db.Save(idea).Error
}

func (r *IdeaRepository) Delete(id int64) error {
	return r.db.Delete(&model.Idea{}, id).Error
}

func (r *IdeaRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Idea{}).Count(&count).Error
	return count, err
}
