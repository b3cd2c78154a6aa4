package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/testutil"
)

func setupUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	entitleSvc := NewEntitlementService(subRepo, usageRepo)

	return NewUserService(userRepo, entitleSvc, nil), db
}

func TestUserService_GetProfile(t *testing.T) {
	svc, db := setupUserService(t)

	user := testutil.TestUser(t, db, testutil.WithUsername("founder"))

	info, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "founder", info.Username)
	assert.Equal(t, "free", info.Tier)
}

func TestUserService_GetProfile_ProTier(t *testing.T) {
	svc, db := setupUserService(t)

	user := testutil.TestUser(t, db)
	testutil.TestSubscription(t, db, user.ID)

	info, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "pro", info.Tier)
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, db := setupUserService(t)

	user := testutil.TestUser(t, db)

	newUsername := "renamed"
	newCompany := "Acme Ventures"
	info, err := svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Username: &newUsername,
		Company:  &newCompany,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", info.Username)
	assert.Equal(t, "Acme Ventures", info.Company)
}

func TestUserService_UpdateProfile_UsernameTaken(t *testing.T) {
	svc, db := setupUserService(t)

	testutil.TestUser(t, db, testutil.WithUsername("taken"))
	user := testutil.TestUser(t, db)

	taken := "taken"
	_, err := svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestUserService_UploadAvatar_BadFormat(t *testing.T) {
	svc, db := setupUserService(t)

	user := testutil.TestUser(t, db)

	// OSS 未配置时先报存储不可用
	_, err := svc.UploadAvatar(user.ID, []byte("data"), ".png")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
