package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/testutil"
)

func setupUsageService(t *testing.T) (*UsageService, *repository.UsageRepository, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	subRepo := repository.NewSubscriptionRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	entitleSvc := NewEntitlementService(subRepo, usageRepo)

	return NewUsageService(usageRepo, entitleSvc), usageRepo, db
}

func TestTrackUsage_CreatesRowOnFirstUse(t *testing.T) {
	svc, usageRepo, db := setupUsageService(t)

	user := testutil.TestUser(t, db)

	ok := svc.TrackUsage(user.ID, ActionCreateIdea, 1)
	assert.True(t, ok)

	stats, err := usageRepo.GetByUserID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.IdeasCreated)
	assert.True(t, stats.ResetAt.After(time.Now()))
}

func TestTrackUsage_Increments(t *testing.T) {
	svc, usageRepo, db := setupUsageService(t)

	user := testutil.TestUser(t, db)
	testutil.TestUsage(t, db, user.ID, testutil.WithPromptsGenerated(4))

	ok := svc.TrackUsage(user.ID, ActionGeneratePrompt, 1)
	assert.True(t, ok)

	stats, err := usageRepo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.PromptsGenerated)
}

func TestTrackUsage_LazyResetOnStalePeriod(t *testing.T) {
	svc, usageRepo, db := setupUsageService(t)

	user := testutil.TestUser(t, db)
	testutil.TestUsage(t, db, user.ID,
		testutil.WithIdeasCreated(3),
		testutil.WithPromptsGenerated(10),
		testutil.WithResetAt(time.Now().Add(-time.Hour)))

	ok := svc.TrackUsage(user.ID, ActionCreateIdea, 1)
	assert.True(t, ok)

	// 过期行先清零再记账，其他计数器一并归零
	stats, err := usageRepo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.IdeasCreated)
	assert.Equal(t, 0, stats.PromptsGenerated)
	assert.True(t, stats.ResetAt.After(time.Now()))
}

func TestTrackUsage_UnknownAction(t *testing.T) {
	svc, usageRepo, db := setupUsageService(t)

	user := testutil.TestUser(t, db)

	ok := svc.TrackUsage(user.ID, Action("launch_rocket"), 1)
	assert.False(t, ok)

	stats, err := usageRepo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestTrackStorage(t *testing.T) {
	svc, usageRepo, db := setupUsageService(t)

	user := testutil.TestUser(t, db)

	ok := svc.TrackStorage(user.ID, 1024)
	assert.True(t, ok)
	ok = svc.TrackStorage(user.ID, 2048)
	assert.True(t, ok)

	stats, err := usageRepo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3072), stats.StorageUsed)
}

func TestGetUsageInfo_NoRow(t *testing.T) {
	svc, _, db := setupUsageService(t)

	user := testutil.TestUser(t, db)

	info, err := svc.GetUsageInfo(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "free", info.Tier)
	assert.Equal(t, 3, info.IdeasLimit)
	assert.Equal(t, 10, info.PromptsLimit)
	assert.Equal(t, 20, info.AICallsLimit)
	assert.Equal(t, 0, info.IdeasCreated)
}

func TestGetUsageInfo_WithCounts(t *testing.T) {
	svc, _, db := setupUsageService(t)

	user := testutil.TestUser(t, db)
	testutil.TestSubscription(t, db, user.ID)
	testutil.TestUsage(t, db, user.ID,
		testutil.WithIdeasCreated(7),
		testutil.WithAICallsMade(42))

	info, err := svc.GetUsageInfo(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "pro", info.Tier)
	assert.Equal(t, -1, info.IdeasLimit)
	assert.Equal(t, 7, info.IdeasCreated)
	assert.Equal(t, 42, info.AICallsMade)
	assert.NotEmpty(t, info.ResetAt)
}

func TestGetUsageInfo_StalePeriodReadsZero(t *testing.T) {
	svc, _, db := setupUsageService(t)

	user := testutil.TestUser(t, db)
	testutil.TestUsage(t, db, user.ID,
		testutil.WithIdeasCreated(3),
		testutil.WithResetAt(time.Now().Add(-time.Minute)))

	info, err := svc.GetUsageInfo(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, info.IdeasCreated)
}

func TestResetExpired(t *testing.T) {
	svc, usageRepo, db := setupUsageService(t)

	fresh := testutil.TestUser(t, db)
	stale := testutil.TestUser(t, db)
	testutil.TestUsage(t, db, fresh.ID, testutil.WithIdeasCreated(2))
	testutil.TestUsage(t, db, stale.ID,
		testutil.WithIdeasCreated(3),
		testutil.WithResetAt(time.Now().Add(-time.Hour)))

	n, err := svc.ResetExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	staleStats, err := usageRepo.GetByUserID(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, staleStats.IdeasCreated)

	freshStats, err := usageRepo.GetByUserID(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, freshStats.IdeasCreated)
}

func TestNextPeriodStart(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	next := nextPeriodStart(now)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), next)

	// 12 月滚到次年 1 月
	dec := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nextPeriodStart(dec))
}

func TestCounterForAction(t *testing.T) {
	tests := []struct {
		action Action
		column string
		ok     bool
	}{
		{ActionCreateIdea, repository.CounterIdeasCreated, true},
		{ActionGeneratePrompt, repository.CounterPromptsGenerated, true},
		{ActionMakeAICall, repository.CounterAICallsMade, true},
		{Action("unknown"), "", false},
	}

	for _, tt := range tests {
		column, ok := counterForAction(tt.action)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.column, column)
	}
}
