package repository

import (
	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/internal/model"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(member *model.TeamMember) error {
	return r.db.Create(member).Error
}

func (r *TeamRepository) GetByID(id int64) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.db.Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *TeamRepository) ListByOwner(ownerID int64) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&members).Error
	return members, err
}

// CountByOwner 工作区当前成员数（含待接受的邀请，都占额度）
func (r *TeamRepository) CountByOwner(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.TeamMember{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *TeamRepository) ExistsByOwnerAndEmail(ownerID int64, email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.TeamMember{}).
		Where("owner_id = ? AND email = ?", ownerID, email).Count(&count).Error
	return count > 0, err
}

func (r *TeamRepository) Delete(id int64) error {
	return r.db.Delete(&model.TeamMember{}, id).Error
}
