package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideavault/vault_go_server/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	_ = NewUserRepository(db)

	email := "founder@example.com"
	user := testutil.TestUser(t, db, testutil.WithEmail(email))

	assert.NotZero(t, user.ID)
	assert.Equal(t, email, *user.Email)
}

func TestUserRepository_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	created := testutil.TestUser(t, db)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.Username, found.Username)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	_, err := repo.GetByID(99999)
	assert.Error(t, err)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	email := "unique@example.com"
	testutil.TestUser(t, db, testutil.WithEmail(email))

	found, err := repo.GetByEmail(email)
	require.NoError(t, err)
	assert.Equal(t, email, *found.Email)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	testutil.TestUser(t, db, testutil.WithEmail("exists@example.com"))

	exists, err := repo.ExistsByEmail("exists@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	testutil.TestUser(t, db, testutil.WithUsername("taken"))

	exists, err := repo.ExistsByUsername("taken")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername("available")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdateFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	user := testutil.TestUser(t, db)

	err := repo.UpdateFields(user.ID, map[string]interface{}{
		"company": "Acme Inc",
	})
	require.NoError(t, err)

	found, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", found.Company)
}

func TestUserRepository_CountCreatedSince(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	old := testutil.TestUser(t, db, testutil.WithEmail("old@example.com"))
	testutil.TestUser(t, db, testutil.WithEmail("new@example.com"), testutil.WithUsername("newuser"))

	// 把一个用户的注册时间改到 30 天前
	err := db.Model(old).Update("created_at", time.Now().AddDate(0, 0, -30)).Error
	require.NoError(t, err)

	count, err := repo.CountCreatedSince(time.Now().AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_ListRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	testutil.TestUser(t, db, testutil.WithEmail("a@example.com"), testutil.WithUsername("usera"))
	testutil.TestUser(t, db, testutil.WithEmail("b@example.com"), testutil.WithUsername("userb"))
	testutil.TestUser(t, db, testutil.WithEmail("c@example.com"), testutil.WithUsername("userc"))

	users, err := repo.ListRecent(2)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
