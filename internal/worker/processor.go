package worker

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ideavault/vault_go_server/config"
	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/pkg/ai"
	"github.com/ideavault/vault_go_server/internal/pkg/pubsub"
	"github.com/ideavault/vault_go_server/internal/pkg/queue"
	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/service"
)

// Processor 提示词生成任务处理器
type Processor struct {
	jobRepo      *repository.PromptJobRepository
	promptRepo   *repository.PromptRepository
	ideaRepo     *repository.IdeaRepository
	usageService *service.UsageService
	publisher    *pubsub.Publisher
	cfg          *config.Config
}

// NewProcessor 创建任务处理器
func NewProcessor(
	jobRepo *repository.PromptJobRepository,
	promptRepo *repository.PromptRepository,
	ideaRepo *repository.IdeaRepository,
	usageService *service.UsageService,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *Processor {
	return &Processor{
		jobRepo:      jobRepo,
		promptRepo:   promptRepo,
		ideaRepo:     ideaRepo,
		usageService: usageService,
		publisher:    publisher,
		cfg:          cfg,
	}
}

// Process 处理一条生成任务
func (p *Processor) Process(ctx context.Context, msg *queue.JobMessage) error {
	job, err := p.jobRepo.GetByID(msg.JobID)
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}

	// 更新状态为处理中
	now := time.Now()
	job.Status = model.JobStatusProcessing
	job.StartedAt = &now
	p.jobRepo.Update(job)
	p.promptRepo.UpdateStatus(msg.PromptID, model.PromptStatusGenerating)

	// 定义进度推送辅助函数
	publishProgress := func(step, status string, errMsg string) {
		p.publisher.PublishProgress(ctx, &pubsub.ProgressMessage{
			UserID:   msg.UserID,
			PromptID: msg.PromptID,
			JobID:    msg.JobID,
			Status:   status,
			Step:     step,
			Error:    errMsg,
		})
	}

	// 定义失败处理函数
	handleError := func(step string, err error) error {
		errMsg := err.Error()
		job.Status = model.JobStatusFailed
		job.ErrorMessage = errMsg
		job.CurrentStep = pubsub.StepMessages[step]
		completedAt := time.Now()
		job.CompletedAt = &completedAt
		job.ElapsedSeconds = int(completedAt.Sub(*job.StartedAt).Seconds())
		p.jobRepo.Update(job)
		p.promptRepo.UpdateStatus(msg.PromptID, model.PromptStatusFailed)
		publishProgress(step, "failed", errMsg)
		return err
	}

	// Step 1: 加载提示词请求和想法上下文
	log.Printf("Job %d: preparing context", job.ID)
	job.CurrentStep = pubsub.StepMessages[pubsub.StepPreparing]
	p.jobRepo.Update(job)
	publishProgress(pubsub.StepPreparing, "processing", "")

	prompt, err := p.promptRepo.GetByID(msg.PromptID)
	if err != nil {
		return handleError(pubsub.StepPreparing, fmt.Errorf("failed to get prompt: %w", err))
	}

	var idea *model.Idea
	if prompt.IdeaID != nil {
		idea, err = p.ideaRepo.GetByID(*prompt.IdeaID)
		if err != nil {
			return handleError(pubsub.StepPreparing, fmt.Errorf("failed to get idea: %w", err))
		}
	}

	// Step 2: 调用 AI 生成
	log.Printf("Job %d: generating with model %s", job.ID, msg.ModelName)
	job.CurrentStep = pubsub.StepMessages[pubsub.StepGenerating]
	p.jobRepo.Update(job)
	publishProgress(pubsub.StepGenerating, "processing", "")

	apiKey, apiBase := p.getModelConfig(msg.ModelName)
	client := ai.NewClient(apiKey, apiBase)

	systemPrompt, userPrompt := buildPrompts(prompt, idea)
	content, err := client.Complete(ctx, msg.ModelName, systemPrompt, userPrompt)
	if err != nil {
		return handleError(pubsub.StepGenerating, fmt.Errorf("generation failed: %w", err))
	}

	// Step 3: 保存结果
	log.Printf("Job %d: saving result", job.ID)
	job.CurrentStep = pubsub.StepMessages[pubsub.StepSaving]
	p.jobRepo.Update(job)
	publishProgress(pubsub.StepSaving, "processing", "")

	prompt.Content = content
	prompt.Status = model.PromptStatusCompleted
	if err := p.promptRepo.Update(prompt); err != nil {
		return handleError(pubsub.StepSaving, fmt.Errorf("failed to save prompt: %w", err))
	}

	// 更新 Job
	job.Status = model.JobStatusCompleted
	job.CurrentStep = pubsub.StepMessages[pubsub.StepDone]
	completedAt := time.Now()
	job.CompletedAt = &completedAt
	job.ElapsedSeconds = int(completedAt.Sub(*job.StartedAt).Seconds())
	p.jobRepo.Update(job)

	// AI 调用计入用量
	p.usageService.TrackUsage(msg.UserID, service.ActionMakeAICall, 1)

	// 推送完成消息
	publishProgress(pubsub.StepDone, "completed", "")

	log.Printf("Job %d: completed in %d seconds", job.ID, job.ElapsedSeconds)

	return nil
}

// getModelConfig 根据模型名获取 API 配置
func (p *Processor) getModelConfig(modelName string) (apiKey, apiBase string) {
	for _, m := range p.cfg.Models {
		if m.Name == modelName {
			return m.APIKey, m.APIBase
		}
	}
	return "", ""
}

// buildPrompts 根据提示词请求和想法上下文拼装 system/user 消息
func buildPrompts(prompt *model.Prompt, idea *model.Idea) (string, string) {
	system := "You are an expert prompt engineer helping startup founders. " +
		"Write a single, ready-to-use AI prompt that the founder can paste into an AI assistant. " +
		"Output only the prompt text, without commentary."

	var b strings.Builder
	fmt.Fprintf(&b, "Create a prompt titled %q.\n", prompt.Title)
	if prompt.Objective != "" {
		fmt.Fprintf(&b, "Objective: %s\n", prompt.Objective)
	}
	if prompt.Audience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", prompt.Audience)
	}
	if prompt.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", prompt.Tone)
	}

	if idea != nil {
		b.WriteString("\nStartup idea context:\n")
		fmt.Fprintf(&b, "- Idea: %s\n", idea.Title)
		if idea.Summary != "" {
			fmt.Fprintf(&b, "- Summary: %s\n", idea.Summary)
		}
		if idea.Problem != "" {
			fmt.Fprintf(&b, "- Problem: %s\n", idea.Problem)
		}
		if idea.Solution != "" {
			fmt.Fprintf(&b, "- Solution: %s\n", idea.Solution)
		}
		if idea.Market != "" {
			fmt.Fprintf(&b, "- Market: %s\n", idea.Market)
		}
	}

	return system, b.String()
}
