package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideavault/vault_go_server/internal/testutil"
)

func TestIdeaRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewIdeaRepository(db)
	user := testutil.TestUser(t, db)

	idea := testutil.TestIdea(t, db, user.ID, testutil.WithIdeaTitle("AI meal planner"))

	found, err := repo.GetByID(idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "AI meal planner", found.Title)
	assert.Equal(t, user.ID, found.UserID)
}

func TestIdeaRepository_ListByUser_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewIdeaRepository(db)
	user := testutil.TestUser(t, db)

	testutil.TestIdea(t, db, user.ID, testutil.WithIdeaStage("concept"))
	testutil.TestIdea(t, db, user.ID, testutil.WithIdeaStage("building"))
	testutil.TestIdea(t, db, user.ID, testutil.WithIdeaStage("building"), testutil.WithFavorite())

	// 全量
	_, total, err := repo.ListByUser(user.ID, "", false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// 按阶段
	_, total, err = repo.ListByUser(user.ID, "building", false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// 只看收藏
	ideas, total, err := repo.ListByUser(user.ID, "", true, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.True(t, ideas[0].IsFavorite)
}

func TestIdeaRepository_ListByUser_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewIdeaRepository(db)
	user := testutil.TestUser(t, db)

	for i := 0; i < 5; i++ {
		testutil.TestIdea(t, db, user.ID)
	}

	ideas, total, err := repo.ListByUser(user.ID, "", false, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, ideas, 2)
}

func TestIdeaRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewIdeaRepository(db)
	user := testutil.TestUser(t, db)
	idea := testutil.TestIdea(t, db, user.ID)

	err := repo.Delete(idea.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(idea.ID)
	assert.Error(t, err)
}
