package model

import (
	"time"
)

// 提示词状态
const (
	PromptStatusPending    = "pending"
	PromptStatusGenerating = "generating"
	PromptStatusCompleted  = "completed"
	PromptStatusFailed     = "failed"
)

// 生成任务状态
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Prompt AI 提示词，由 worker 异步生成
type Prompt struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	IdeaID    *int64    `gorm:"index" json:"idea_id,omitempty"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Objective string    `gorm:"type:text" json:"objective"`
	Audience  string    `gorm:"size:200" json:"audience"`
	Tone      string    `gorm:"size:50" json:"tone"`
	Content   string    `gorm:"type:text" json:"content"`
	ModelName string    `gorm:"size:50" json:"model_name"`
	Status    string    `gorm:"size:20;default:pending;index" json:"status"` // pending, generating, completed, failed
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Prompt) TableName() string {
	return "prompts"
}

// PromptJob 提示词生成任务
type PromptJob struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	PromptID       int64      `gorm:"not null;index" json:"prompt_id"`
	UserID         int64      `gorm:"not null;index" json:"user_id"`
	ModelName      string     `gorm:"size:50" json:"model_name"`
	Status         string     `gorm:"size:20;default:queued;index" json:"status"` // queued, processing, completed, failed
	CurrentStep    string     `gorm:"size:100" json:"current_step"`
	ErrorMessage   string     `gorm:"type:text" json:"error_message,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ElapsedSeconds int        `json:"elapsed_seconds"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (PromptJob) TableName() string {
	return "prompt_jobs"
}
