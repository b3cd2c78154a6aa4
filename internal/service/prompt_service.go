package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ideavault/vault_go_server/config"
	"github.com/ideavault/vault_go_server/internal/catalog"
	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/pkg/queue"
	"github.com/ideavault/vault_go_server/internal/repository"
)

var (
	ErrPromptNotFound   = errors.New("prompt not found")
	ErrPromptPermission = errors.New("not allowed to access this prompt")
	ErrModelDenied      = errors.New("your plan does not include this model")
	ErrModelUnknown     = errors.New("unknown model")
)

// EntitlementError 带结构化检查结果的拒绝，handler 转成升级引导
type EntitlementError struct {
	Result *CheckResult
}

func (e *EntitlementError) Error() string {
	return e.Result.Reason
}

type PromptService struct {
	promptRepo *repository.PromptRepository
	jobRepo    *repository.PromptJobRepository
	ideaRepo   *repository.IdeaRepository
	entitleSvc *EntitlementService
	usageSvc   *UsageService
	jobQueue   *queue.Queue
	cfg        *config.Config
}

func NewPromptService(
	promptRepo *repository.PromptRepository,
	jobRepo *repository.PromptJobRepository,
	ideaRepo *repository.IdeaRepository,
	entitleSvc *EntitlementService,
	usageSvc *UsageService,
	jobQueue *queue.Queue,
	cfg *config.Config,
) *PromptService {
	return &PromptService{
		promptRepo: promptRepo,
		jobRepo:    jobRepo,
		ideaRepo:   ideaRepo,
		entitleSvc: entitleSvc,
		usageSvc:   usageSvc,
		jobQueue:   jobQueue,
		cfg:        cfg,
	}
}

// Generate 发起提示词生成。generate_prompt 在路由中间件检查过，
// 这里再检查 make_ai_call 额度和模型权限，然后建任务入队。
func (s *PromptService) Generate(ctx context.Context, userID int64, req *dto.GeneratePromptRequest) (*dto.GeneratePromptResponse, error) {
	if result := s.entitleSvc.CanPerformAction(userID, ActionMakeAICall); !result.Allowed {
		return nil, &EntitlementError{Result: result}
	}

	plan, err := s.entitleSvc.PlanForUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkModelAccess(plan.Tier, req.ModelName); err != nil {
		return nil, err
	}

	// 关联点子时校验归属
	if req.IdeaID != nil {
		idea, err := s.ideaRepo.GetByID(*req.IdeaID)
		if err != nil {
			return nil, ErrIdeaNotFound
		}
		if idea.UserID != userID {
			return nil, ErrIdeaPermission
		}
	}

	prompt := &model.Prompt{
		UserID:    userID,
		IdeaID:    req.IdeaID,
		Title:     req.Title,
		Objective: req.Objective,
		Audience:  req.Audience,
		Tone:      req.Tone,
		ModelName: req.ModelName,
		Status:    model.PromptStatusPending,
	}
	if err := s.promptRepo.Create(prompt); err != nil {
		return nil, err
	}

	job := &model.PromptJob{
		PromptID:  prompt.ID,
		UserID:    userID,
		ModelName: req.ModelName,
		Status:    model.JobStatusQueued,
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}

	if err := s.jobQueue.Push(ctx, &queue.JobMessage{
		JobID:     job.ID,
		PromptID:  prompt.ID,
		UserID:    userID,
		ModelName: req.ModelName,
	}); err != nil {
		job.Status = model.JobStatusFailed
		job.ErrorMessage = "failed to enqueue"
		s.jobRepo.Update(job)
		s.promptRepo.UpdateStatus(prompt.ID, model.PromptStatusFailed)
		return nil, fmt.Errorf("failed to enqueue prompt job: %w", err)
	}

	// 记账失败不回滚已入队的任务
	s.usageSvc.TrackUsage(userID, ActionGeneratePrompt, 1)

	return &dto.GeneratePromptResponse{
		PromptID: prompt.ID,
		JobID:    job.ID,
	}, nil
}

func (s *PromptService) Get(userID, promptID int64) (*model.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(promptID)
	if err != nil {
		return nil, ErrPromptNotFound
	}
	if prompt.UserID != userID {
		return nil, ErrPromptPermission
	}
	return prompt, nil
}

func (s *PromptService) List(userID int64, req *dto.ListPromptsRequest) ([]model.Prompt, int64, error) {
	return s.promptRepo.ListByUser(userID, req.Status, req.Page, req.PageSize)
}

func (s *PromptService) Delete(userID, promptID int64) error {
	if _, err := s.Get(userID, promptID); err != nil {
		return err
	}
	return s.promptRepo.Delete(promptID)
}

// checkModelAccess 档位是否够用指定模型。
// free 只能用 free 模型，pro 可用 free/pro，enterprise 不限。
func (s *PromptService) checkModelAccess(tier catalog.Tier, modelName string) error {
	var modelCfg *config.ModelConfig
	for i := range s.cfg.Models {
		if s.cfg.Models[i].Name == modelName {
			modelCfg = &s.cfg.Models[i]
			break
		}
	}
	if modelCfg == nil {
		return ErrModelUnknown
	}

	switch tier {
	case catalog.TierEnterprise:
		return nil
	case catalog.TierPro:
		if modelCfg.RequiredTier == string(catalog.TierEnterprise) {
			return ErrModelDenied
		}
		return nil
	default:
		if modelCfg.RequiredTier != string(catalog.TierFree) {
			return ErrModelDenied
		}
		return nil
	}
}
