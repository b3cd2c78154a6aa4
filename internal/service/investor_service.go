package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ideavault/vault_go_server/config"
	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/pkg/oss"
	"github.com/ideavault/vault_go_server/internal/repository"
)

var (
	ErrInvestorNotFound   = errors.New("investor not found")
	ErrInvestorPermission = errors.New("not allowed to access this investor")
	ErrDeckTooLarge       = errors.New("deck file too large")
	ErrDeckBadFormat      = errors.New("unsupported deck format")
	ErrStorageUnavailable = errors.New("file storage not configured")
)

type InvestorService struct {
	investorRepo *repository.InvestorRepository
	usageSvc     *UsageService
	ossClient    *oss.Client
	cfg          *config.Config
}

func NewInvestorService(
	investorRepo *repository.InvestorRepository,
	usageSvc *UsageService,
	ossClient *oss.Client,
	cfg *config.Config,
) *InvestorService {
	return &InvestorService{
		investorRepo: investorRepo,
		usageSvc:     usageSvc,
		ossClient:    ossClient,
		cfg:          cfg,
	}
}

func (s *InvestorService) Create(userID int64, req *dto.CreateInvestorRequest) (*model.Investor, error) {
	investor := &model.Investor{
		UserID:    userID,
		Name:      req.Name,
		Firm:      req.Firm,
		Email:     req.Email,
		Stage:     req.Stage,
		CheckSize: req.CheckSize,
		Notes:     req.Notes,
	}
	if investor.Stage == "" {
		investor.Stage = "researching"
	}

	if err := s.investorRepo.Create(investor); err != nil {
		return nil, err
	}
	return investor, nil
}

func (s *InvestorService) Get(userID, investorID int64) (*model.Investor, error) {
	investor, err := s.investorRepo.GetByID(investorID)
	if err != nil {
		return nil, ErrInvestorNotFound
	}
	if investor.UserID != userID {
		return nil, ErrInvestorPermission
	}
	return investor, nil
}

func (s *InvestorService) List(userID int64, req *dto.ListInvestorsRequest) ([]model.Investor, int64, error) {
	return s.investorRepo.ListByUser(userID, req.Stage, req.Page, req.PageSize)
}

func (s *InvestorService) Update(userID, investorID int64, req *dto.UpdateInvestorRequest) (*model.Investor, error) {
	investor, err := s.Get(userID, investorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		investor.Name = *req.Name
	}
	if req.Firm != nil {
		investor.Firm = *req.Firm
	}
	if req.Email != nil {
		investor.Email = *req.Email
	}
	if req.Stage != nil {
		investor.Stage = *req.Stage
	}
	if req.CheckSize != nil {
		investor.CheckSize = *req.CheckSize
	}
	if req.Notes != nil {
		investor.Notes = *req.Notes
	}

	if err := s.investorRepo.Update(investor); err != nil {
		return nil, err
	}
	return investor, nil
}

func (s *InvestorService) Delete(userID, investorID int64) error {
	if _, err := s.Get(userID, investorID); err != nil {
		return err
	}
	return s.investorRepo.Delete(investorID)
}

// UploadDeck 上传融资 BP 到 OSS，并把字节数计入存储用量。
// 记账失败不影响已完成的上传。
func (s *InvestorService) UploadDeck(userID, investorID int64, filename string, data []byte) (*dto.UploadDeckResponse, error) {
	if s.ossClient == nil {
		return nil, ErrStorageUnavailable
	}

	investor, err := s.Get(userID, investorID)
	if err != nil {
		return nil, err
	}

	if s.cfg.Deck.MaxSize > 0 && int64(len(data)) > s.cfg.Deck.MaxSize {
		return nil, ErrDeckTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !s.extAllowed(ext) {
		return nil, ErrDeckBadFormat
	}

	objectKey := fmt.Sprintf("decks/%d/%d_%d%s", userID, investor.ID, time.Now().Unix(), ext)
	url, err := s.ossClient.UploadDeck(objectKey, data, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to upload deck: %w", err)
	}

	investor.DeckURL = url
	if err := s.investorRepo.Update(investor); err != nil {
		return nil, err
	}

	s.usageSvc.TrackStorage(userID, int64(len(data)))

	return &dto.UploadDeckResponse{
		DeckURL: url,
		Size:    int64(len(data)),
	}, nil
}

func (s *InvestorService) extAllowed(ext string) bool {
	if len(s.cfg.Deck.AllowedExtensions) == 0 {
		return ext == ".pdf"
	}
	for _, allowed := range s.cfg.Deck.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
