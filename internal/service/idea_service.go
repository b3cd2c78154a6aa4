package service

import (
	"errors"

	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/repository"
)

var (
	ErrIdeaNotFound   = errors.New("idea not found")
	ErrIdeaPermission = errors.New("not allowed to access this idea")
)

type IdeaService struct {
	ideaRepo *repository.IdeaRepository
	usageSvc *UsageService
}

func NewIdeaService(ideaRepo *repository.IdeaRepository, usageSvc *UsageService) *IdeaService {
	return &IdeaService{
		ideaRepo: ideaRepo,
		usageSvc: usageSvc,
	}
}

// Create 创建点子。权限检查在路由中间件做，这里只负责落库和记账。
// 记账失败不影响已创建的点子。
func (s *IdeaService) Create(userID int64, req *dto.CreateIdeaRequest) (*model.Idea, error) {
	idea := &model.Idea{
		UserID:   userID,
		Title:    req.Title,
		Summary:  req.Summary,
		Problem:  req.Problem,
		Solution: req.Solution,
		Market:   req.Market,
		Stage:    req.Stage,
		Tags:     req.Tags,
	}
	if idea.Stage == "" {
		idea.Stage = "concept"
	}

	if err := s.ideaRepo.Create(idea); err != nil {
		return nil, err
	}

	s.usageSvc.TrackUsage(userID, ActionCreateIdea, 1)

	return idea, nil
}

func (s *IdeaService) Get(userID, ideaID int64) (*model.Idea, error) {
	idea, err := s.ideaRepo.GetByID(ideaID)
	if err != nil {
		return nil, ErrIdeaNotFound
	}
	if idea.UserID != userID {
		return nil, ErrIdeaPermission
	}
	return idea, nil
}

func (s *IdeaService) List(userID int64, req *dto.ListIdeasRequest) ([]model.Idea, int64, error) {
	return s.ideaRepo.ListByUser(userID, req.Stage, req.Favorite, req.Page, req.PageSize)
}

func (s *IdeaService) Update(userID, ideaID int64, req *dto.UpdateIdeaRequest) (*model.Idea, error) {
	idea, err := s.Get(userID, ideaID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		idea.Title = *req.Title
	}
	if req.Summary != nil {
		idea.Summary = *req.Summary
	}
	if req.Problem != nil {
		idea.Problem = *req.Problem
	}
	if req.Solution != nil {
		idea.Solution = *req.Solution
	}
	if req.Market != nil {
		idea.Market = *req.Market
	}
	if req.Stage != nil {
		idea.Stage = *req.Stage
	}
	if req.Tags != nil {
		idea.Tags = *req.Tags
	}
	if req.IsFavorite != nil {
		idea.IsFavorite = *req.IsFavorite
	}

	if err := s.ideaRepo.Update(idea); err != nil {
		return nil, err
	}
	return idea, nil
}

func (s *IdeaService) Delete(userID, ideaID int64) error {
	if _, err := s.Get(userID, ideaID); err != nil {
		return err
	}
	return s.ideaRepo.Delete(ideaID)
}
