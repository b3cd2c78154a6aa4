package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/pkg/oss"
	"github.com/ideavault/vault_go_server/internal/repository"
)

var (
	ErrAvatarBadFormat = errors.New("unsupported avatar format")
)

type UserService struct {
	userRepo   *repository.UserRepository
	entitleSvc *EntitlementService
	ossClient  *oss.Client
}

func NewUserService(userRepo *repository.UserRepository, entitleSvc *EntitlementService, ossClient *oss.Client) *UserService {
	return &UserService{
		userRepo:   userRepo,
		entitleSvc: entitleSvc,
		ossClient:  ossClient,
	}
}

// GetProfile 用户资料，附当前生效档位
func (s *UserService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	info := buildUserInfo(user)
	if plan, err := s.entitleSvc.PlanForUser(userID); err == nil {
		info.Tier = string(plan.Tier)
	}
	return info, nil
}

// UpdateProfile 更新用户资料
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.userRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameExists
		}
		user.Username = *req.Username
	}
	if req.Company != nil {
		user.Company = *req.Company
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return buildUserInfo(user), nil
}

// UploadAvatar 上传头像到 OSS
func (s *UserService) UploadAvatar(userID int64, data []byte, ext string) (string, error) {
	if s.ossClient == nil {
		return "", ErrStorageUnavailable
	}

	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", ErrAvatarBadFormat
	}

	url, err := s.ossClient.UploadAvatar(userID, data, ext)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"avatar_url": url,
		"updated_at": time.Now(),
	}); err != nil {
		return "", err
	}

	return url, nil
}
