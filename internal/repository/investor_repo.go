package repository

import (
	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/internal/model"
)

type InvestorRepository struct {
	db *gorm.DB
}

func NewInvestorRepository(db *gorm.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

func (r *InvestorRepository) Create(investor *model.Investor) error {
	return r.db.Create(investor).Error
}

func (r *InvestorRepository) GetByID(id int64) (*model.Investor, error) {
	var investor model.Investor
	err := r.db.Where("id = ?", id).First(&investor).Error
	if err != nil {
		return nil, err
	}
	return &investor, nil
}

func (r *InvestorRepository) ListByUser(userID int64, stage string, page, pageSize int) ([]model.Investor, int64, error) {
	query := r.db.Model(&model.Investor{}).Where("user_id = ?", userID)
	if stage != "" {
		query = query.Where("stage = ?", stage)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var investors []model.Investor
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&investors).Error
	return investors, total, err
}

func (r *InvestorRepository) Update(investor *model.Investor) error {
	return r.db.Save(investor).Error
}

func (r *InvestorRepository) Delete(id int64) error {
	return r.db.Delete(&model.Investor{}, id).Error
}
