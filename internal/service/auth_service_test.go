package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideavault/vault_go_server/config"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/repository"
	"github.com/ideavault/vault_go_server/internal/testutil"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-for-testing",
			ExpireHours: 24,
		},
		OAuth: config.OAuthConfig{
			Github: config.GithubOAuthConfig{
				ClientID:     "test-client-id",
				ClientSecret: "test-client-secret",
				RedirectURI:  "http://localhost:8080/callback",
			},
		},
	}
}

func setupAuthService(t *testing.T) (*AuthService, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)

	service := NewAuthService(userRepo, nil, authTestConfig())

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, cleanup
}

func TestAuthService_Register_Success(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterRequest{
		Email:    "founder@example.com",
		Username: "founder",
		Password: "password123",
		Company:  "IdeaVault Inc",
	}

	resp, err := service.Register(req)
	require.NoError(t, err)
	assert.NotZero(t, resp.UserID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterRequest{
		Email:    "duplicate@example.com",
		Username: "user1",
		Password: "password123",
	}
	_, err := service.Register(req)
	require.NoError(t, err)

	req2 := &dto.RegisterRequest{
		Email:    "duplicate@example.com",
		Username: "user2",
		Password: "password123",
	}
	_, err = service.Register(req2)
	assert.Equal(t, ErrEmailExists, err)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterRequest{
		Email:    "user1@example.com",
		Username: "sameusername",
		Password: "password123",
	}
	_, err := service.Register(req)
	require.NoError(t, err)

	req2 := &dto.RegisterRequest{
		Email:    "user2@example.com",
		Username: "sameusername",
		Password: "password123",
	}
	_, err = service.Register(req2)
	assert.Equal(t, ErrUsernameExists, err)
}

func TestAuthService_Login_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	cfg := authTestConfig()
	cfg.Server.Mode = "debug" // 注册后自动验证邮箱
	service := NewAuthService(userRepo, nil, cfg)

	_, err := service.Register(&dto.RegisterRequest{
		Email:    "verified@example.com",
		Username: "verified",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := service.Login(&dto.LoginRequest{
		Email:    "verified@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "verified", resp.User.Username)
}

func TestAuthService_Login_EmailNotVerified(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Register(&dto.RegisterRequest{
		Email:    "unverified@example.com",
		Username: "unverified",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Login(&dto.LoginRequest{
		Email:    "unverified@example.com",
		Password: "password123",
	})
	assert.Equal(t, ErrEmailNotVerified, err)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	cfg := authTestConfig()
	cfg.Server.Mode = "debug"
	service := NewAuthService(userRepo, nil, cfg)

	_, err := service.Register(&dto.RegisterRequest{
		Email:    "founder@example.com",
		Username: "founder",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Login(&dto.LoginRequest{
		Email:    "founder@example.com",
		Password: "wrongpassword",
	})
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Login(&dto.LoginRequest{
		Email:    "nonexistent@example.com",
		Password: "password123",
	})
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_VerifyEmail_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	service := NewAuthService(userRepo, nil, authTestConfig())

	user := testutil.TestUser(t, db)

	verifyCode := "testverifycode123456789012"
	expiresAt := time.Now().Add(24 * time.Hour)
	db.Model(user).Updates(map[string]interface{}{
		"email_verified":          false,
		"verification_code":       verifyCode,
		"verification_expires_at": expiresAt,
	})

	resp, err := service.VerifyEmail(verifyCode)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotNil(t, resp.User)
}

func TestAuthService_VerifyEmail_ExpiredCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	service := NewAuthService(userRepo, nil, authTestConfig())

	user := testutil.TestUser(t, db)

	verifyCode := "expiredverifycode12345678901"
	expiresAt := time.Now().Add(-time.Hour)
	db.Model(user).Updates(map[string]interface{}{
		"email_verified":          false,
		"verification_code":       verifyCode,
		"verification_expires_at": expiresAt,
	})

	_, err := service.VerifyEmail(verifyCode)
	assert.Equal(t, ErrInvalidVerifyCode, err)
}

func TestAuthService_VerifyEmail_InvalidCode(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.VerifyEmail("invalidcode")
	assert.Equal(t, ErrInvalidVerifyCode, err)
}

func TestAuthService_GetUserByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	service := NewAuthService(userRepo, nil, authTestConfig())

	user := testutil.TestUser(t, db, testutil.WithUsername("founder"))

	found, err := service.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "founder", found.Username)
}

func TestAuthService_GetGithubAuthURL(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	url := service.GetGithubAuthURL("test-state")
	assert.Contains(t, url, "github.com")
	assert.Contains(t, url, "test-state")
}
