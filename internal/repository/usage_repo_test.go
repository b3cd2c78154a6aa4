package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/internal/testutil"
)

func TestUsageRepository_GetByUserID_NoRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUsageRepository(db)

	stats, err := repo.GetByUserID(12345)
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestUsageRepository_Increment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUsageRepository(db)
	user := testutil.TestUser(t, db)
	testutil.TestUsage(t, db, user.ID)

	err := repo.Increment(user.ID, CounterIdeasCreated, 1)
	require.NoError(t, err)
	err = repo.Increment(user.ID, CounterIdeasCreated, 1)
	require.NoError(t, err)

	stats, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.IdeasCreated)
	assert.Equal(t, 0, stats.PromptsGenerated)
}

func TestUsageRepository_Increment_UnknownColumn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUsageRepository(db)
	user := testutil.TestUser(t, db)
	testutil.TestUsage(t, db, user.ID)

	err := repo.Increment(user.ID, "password_hash", 1)
	assert.Error(t, err)
}

func TestUsageRepository_Increment_NoRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUsageRepository(db)

	err := repo.Increment(12345, CounterIdeasCreated, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUsageRepository_Reset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUsageRepository(db)
	user := testutil.TestUser(t, db)
	testutil.TestUsage(t, db, user.ID,
		testutil.WithIdeasCreated(3),
		testutil.WithPromptsGenerated(7),
	)

	next := time.Now().AddDate(0, 1, 0)
	err := repo.Reset(user.ID, next)
	require.NoError(t, err)

	stats, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.IdeasCreated)
	assert.Equal(t, 0, stats.PromptsGenerated)
	assert.WithinDuration(t, next, stats.ResetAt, time.Second)
}

func TestUsageRepository_ResetExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUsageRepository(db)

	// 周期已过的行
	u1 := testutil.TestUser(t, db, testutil.WithEmail("u1@example.com"), testutil.WithUsername("u1"))
	testutil.TestUsage(t, db, u1.ID,
		testutil.WithIdeasCreated(5),
		testutil.WithResetAt(time.Now().Add(-time.Hour)),
	)

	// 周期未过的行
	u2 := testutil.TestUser(t, db, testutil.WithEmail("u2@example.com"), testutil.WithUsername("u2"))
	testutil.TestUsage(t, db, u2.ID,
		testutil.WithIdeasCreated(2),
		testutil.WithResetAt(time.Now().AddDate(0, 1, 0)),
	)

	n, err := repo.ResetExpired(time.Now(), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	s1, _ := repo.GetByUserID(u1.ID)
	assert.Equal(t, 0, s1.IdeasCreated)

	s2, _ := repo.GetByUserID(u2.ID)
	assert.Equal(t, 2, s2.IdeasCreated)
}
