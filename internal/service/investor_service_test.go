package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ideavault/vault_go_server/config"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/testutil"
)

func setupInvestorService(t *testing.T) (*InvestorService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	investorRepo := repository.NewInvestorRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	entitleSvc := NewEntitlementService(subRepo, usageRepo)
	usageSvc := NewUsageService(usageRepo, entitleSvc)

	cfg := &config.Config{
		Deck: config.DeckConfig{
			MaxSize:           10 * 1024 * 1024,
			AllowedExtensions: []string{".pdf", ".ppt", ".pptx"},
		},
	}

	return NewInvestorService(investorRepo, usageSvc, nil, cfg), db
}

func TestInvestorService_Create(t *testing.T) {
	svc, db := setupInvestorService(t)

	user := testutil.TestUser(t, db)

	investor, err := svc.Create(user.ID, &dto.CreateInvestorRequest{
		Name:      "Jordan Lee",
		Firm:      "Seed Capital",
		Email:     "jordan@seedcap.com",
		CheckSize: "$100k-500k",
	})
	require.NoError(t, err)
	assert.NotZero(t, investor.ID)
	assert.Equal(t, "researching", investor.Stage)
}

func TestInvestorService_GetPermission(t *testing.T) {
	svc, db := setupInvestorService(t)

	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	investor := testutil.TestInvestor(t, db, owner.ID)

	got, err := svc.Get(owner.ID, investor.ID)
	require.NoError(t, err)
	assert.Equal(t, investor.ID, got.ID)

	_, err = svc.Get(other.ID, investor.ID)
	assert.ErrorIs(t, err, ErrInvestorPermission)

	_, err = svc.Get(owner.ID, 99999)
	assert.ErrorIs(t, err, ErrInvestorNotFound)
}

func TestInvestorService_List_StageFilter(t *testing.T) {
	svc, db := setupInvestorService(t)

	user := testutil.TestUser(t, db)
	testutil.TestInvestor(t, db, user.ID)
	testutil.TestInvestor(t, db, user.ID, testutil.WithInvestorStage("contacted"))

	_, total, err := svc.List(user.ID, &dto.ListInvestorsRequest{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	investors, total, err := svc.List(user.ID, &dto.ListInvestorsRequest{Page: 1, PageSize: 20, Stage: "contacted"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "contacted", investors[0].Stage)
}

func TestInvestorService_Update(t *testing.T) {
	svc, db := setupInvestorService(t)

	user := testutil.TestUser(t, db)
	investor := testutil.TestInvestor(t, db, user.ID)

	newStage := "committed"
	notes := "Met at demo day"
	updated, err := svc.Update(user.ID, investor.ID, &dto.UpdateInvestorRequest{
		Stage: &newStage,
		Notes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "committed", updated.Stage)
	assert.Equal(t, "Met at demo day", updated.Notes)
	assert.Equal(t, investor.Name, updated.Name)
}

func TestInvestorService_Delete(t *testing.T) {
	svc, db := setupInvestorService(t)

	user := testutil.TestUser(t, db)
	investor := testutil.TestInvestor(t, db, user.ID)

	require.NoError(t, svc.Delete(user.ID, investor.ID))

	_, err := svc.Get(user.ID, investor.ID)
	assert.ErrorIs(t, err, ErrInvestorNotFound)
}

func TestInvestorService_UploadDeck_Validation(t *testing.T) {
	svc, db := setupInvestorService(t)

	user := testutil.TestUser(t, db)
	testutil.TestInvestor(t, db, user.ID)

	// OSS 未配置
	_, err := svc.UploadDeck(user.ID, 1, "deck.pdf", []byte("data"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestInvestorService_ExtAllowed(t *testing.T) {
	svc, _ := setupInvestorService(t)

	assert.True(t, svc.extAllowed(".pdf"))
	assert.True(t, svc.extAllowed(".pptx"))
	assert.False(t, svc.extAllowed(".exe"))
	assert.False(t, svc.extAllowed(""))
}
