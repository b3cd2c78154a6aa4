package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	email := fmt.Sprintf("test_%d@example.com", time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:      fmt.Sprintf("testuser_%d", time.Now().UnixNano()%100000),
		Email:         &email,
		PasswordHash:  &passwordHash,
		EmailVerified: true,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithAdmin 设置管理员
func WithAdmin() func(*model.User) {
	return func(u *model.User) {
		u.IsAdmin = true
	}
}

// TestSubscription 创建测试订阅
func TestSubscription(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	now := time.Now()
	sub := &model.Subscription{
		UserID:             userID,
		PlanID:             "pro_monthly",
		Tier:               "pro",
		Status:             model.SubStatusActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithPlan 设置套餐
func WithPlan(planID, tier string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.PlanID = planID
		s.Tier = tier
	}
}

// WithStatus 设置订阅状态
func WithStatus(status string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = status
	}
}

// WithTrial 设置试用（到期时间相对当前时刻）
func WithTrial(endsIn time.Duration) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = model.SubStatusTrial
		ends := time.Now().Add(endsIn)
		s.TrialEndsAt = &ends
		s.CurrentPeriodEnd = ends
	}
}

// WithPeriodEnd 设置周期结束时间
func WithPeriodEnd(end time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.CurrentPeriodEnd = end
	}
}

// WithCancelAtPeriodEnd 标记期末取消
func WithCancelAtPeriodEnd() func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.CancelAtPeriodEnd = true
	}
}

// TestUsage 创建测试用量记录
func TestUsage(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.UsageStats)) *model.UsageStats {
	t.Helper()

	now := time.Now().UTC()
	stats := &model.UsageStats{
		UserID:  userID,
		ResetAt: time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, opt := range opts {
		opt(stats)
	}

	if err := db.Create(stats).Error; err != nil {
		t.Fatalf("Failed to create test usage stats: %v", err)
	}

	return stats
}

// WithIdeasCreated 设置已创建点子数
func WithIdeasCreated(n int) func(*model.UsageStats) {
	return func(s *model.UsageStats) {
		s.IdeasCreated = n
	}
}

// WithPromptsGenerated 设置已生成提示词数
func WithPromptsGenerated(n int) func(*model.UsageStats) {
	return func(s *model.UsageStats) {
		s.PromptsGenerated = n
	}
}

// WithAICallsMade 设置已用 AI 调用数
func WithAICallsMade(n int) func(*model.UsageStats) {
	return func(s *model.UsageStats) {
		s.AICallsMade = n
	}
}

// WithResetAt 设置周期重置时间
func WithResetAt(at time.Time) func(*model.UsageStats) {
	return func(s *model.UsageStats) {
		s.ResetAt = at
	}
}

// TestIdea 创建测试点子
func TestIdea(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Idea)) *model.Idea {
	t.Helper()

	idea := &model.Idea{
		UserID:  userID,
		Title:   fmt.Sprintf("Test Idea %d", time.Now().UnixNano()%100000),
		Summary: "A test idea",
		Stage:   "concept",
	}

	for _, opt := range opts {
		opt(idea)
	}

	if err := db.Create(idea).Error; err != nil {
		t.Fatalf("Failed to create test idea: %v", err)
	}

	return idea
}

// WithIdeaTitle 设置点子标题
func WithIdeaTitle(title string) func(*model.Idea) {
	return func(i *model.Idea) {
		i.Title = title
	}
}

// WithIdeaStage 设置点子阶段
func WithIdeaStage(stage string) func(*model.Idea) {
	return func(i *model.Idea) {
		i.Stage = stage
	}
}

// WithFavorite 标记收藏
func WithFavorite() func(*model.Idea) {
	return func(i *model.Idea) {
		i.IsFavorite = true
	}
}

// TestPrompt 创建测试提示词
func TestPrompt(t *testing.T, db *gorm.DB, userID int64, status string) *model.Prompt {
	t.Helper()

	prompt := &model.Prompt{
		UserID:    userID,
		Title:     fmt.Sprintf("Test Prompt %d", time.Now().UnixNano()%100000),
		Objective: "Test objective",
		ModelName: "gpt-4o-mini",
		Status:    status,
	}

	if err := db.Create(prompt).Error; err != nil {
		t.Fatalf("Failed to create test prompt: %v", err)
	}

	return prompt
}

// TestPromptJob 创建测试生成任务
func TestPromptJob(t *testing.T, db *gorm.DB, userID, promptID int64, status string) *model.PromptJob {
	t.Helper()

	job := &model.PromptJob{
		PromptID:  promptID,
		UserID:    userID,
		ModelName: "gpt-4o-mini",
		Status:    status,
	}

	if err := db.Create(job).Error; err != nil {
		t.Fatalf("Failed to create test job: %v", err)
	}

	return job
}

// TestInvestor 创建测试投资人
func TestInvestor(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Investor)) *model.Investor {
	t.Helper()

	investor := &model.Investor{
		UserID: userID,
		Name:   fmt.Sprintf("Test Investor %d", time.Now().UnixNano()%100000),
		Firm:   "Test Capital",
		Stage:  "researching",
	}

	for _, opt := range opts {
		opt(investor)
	}

	if err := db.Create(investor).Error; err != nil {
		t.Fatalf("Failed to create test investor: %v", err)
	}

	return investor
}

// WithInvestorStage 设置投资人阶段
func WithInvestorStage(stage string) func(*model.Investor) {
	return func(i *model.Investor) {
		i.Stage = stage
	}
}

// TestTeamMember 创建测试团队成员
func TestTeamMember(t *testing.T, db *gorm.DB, ownerID int64, email string) *model.TeamMember {
	t.Helper()

	member := &model.TeamMember{
		OwnerID:   ownerID,
		Email:     email,
		Role:      "member",
		Status:    "invited",
		InvitedAt: time.Now(),
	}

	if err := db.Create(member).Error; err != nil {
		t.Fatalf("Failed to create test team member: %v", err)
	}

	return member
}
