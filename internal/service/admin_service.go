package service

import (
	"time"

	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/repository"
)

type AdminService struct {
	userRepo   *repository.UserRepository
	ideaRepo   *repository.IdeaRepository
	promptRepo *repository.PromptRepository
	subRepo    *repository.SubscriptionRepository
}

func NewAdminService(
	userRepo *repository.UserRepository,
	ideaRepo *repository.IdeaRepository,
	promptRepo *repository.PromptRepository,
	subRepo *repository.SubscriptionRepository,
) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		ideaRepo:   ideaRepo,
		promptRepo: promptRepo,
		subRepo:    subRepo,
	}
}

// GetStats 管理后台汇总统计
func (s *AdminService) GetStats() (*dto.AdminStats, error) {
	stats := &dto.AdminStats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalIdeas, err = s.ideaRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalPrompts, err = s.promptRepo.Count(); err != nil {
		return nil, err
	}
	if stats.ActiveSubscriptions, err = s.subRepo.CountByStatus(model.SubStatusActive); err != nil {
		return nil, err
	}
	if stats.TrialSubscriptions, err = s.subRepo.CountByStatus(model.SubStatusTrial); err != nil {
		return nil, err
	}
	if stats.SignupsLast7Days, err = s.userRepo.CountCreatedSince(time.Now().AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	if stats.SubscriptionsByTier, err = s.subRepo.CountByTier(); err != nil {
		return nil, err
	}

	return stats, nil
}

// ListRecentUsers 最近注册的用户
func (s *AdminService) ListRecentUsers(limit int) ([]*dto.UserInfo, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	users, err := s.userRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}

	infos := make([]*dto.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, buildUserInfo(&users[i]))
	}
	return infos, nil
}
