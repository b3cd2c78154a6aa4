package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ideavault/vault_go_server/internal/catalog"
	"github.com/ideavault/vault_go_server/internal/model"
	"github.com/ideavault/vault_go_server/internal/model/dto"
	"github.com/ideavault/vault_go_server/internal/repository"
)

var (
	ErrMemberExists   = errors.New("member already invited")
	ErrMemberNotFound = errors.New("member not found")
)

// TeamLimitError 成员数达到套餐上限
type TeamLimitError struct {
	Limit int
}

func (e *TeamLimitError) Error() string {
	return fmt.Sprintf("You've reached your limit of %d team members", e.Limit)
}

type TeamService struct {
	teamRepo   *repository.TeamRepository
	entitleSvc *EntitlementService
}

func NewTeamService(teamRepo *repository.TeamRepository, entitleSvc *EntitlementService) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		entitleSvc: entitleSvc,
	}
}

// Invite 邀请成员。成员数（含待接受邀请）受套餐 team_members 额度约束。
func (s *TeamService) Invite(ownerID int64, req *dto.InviteMemberRequest) (*model.TeamMember, error) {
	exists, err := s.teamRepo.ExistsByOwnerAndEmail(ownerID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMemberExists
	}

	plan, err := s.entitleSvc.PlanForUser(ownerID)
	if err != nil {
		return nil, err
	}

	limit := plan.Limits.TeamMembers
	if limit != catalog.Unlimited {
		count, err := s.teamRepo.CountByOwner(ownerID)
		if err != nil {
			return nil, err
		}
		if count >= int64(limit) {
			return nil, &TeamLimitError{Limit: limit}
		}
	}

	member := &model.TeamMember{
		OwnerID:   ownerID,
		Email:     req.Email,
		Role:      req.Role,
		Status:    "invited",
		InvitedAt: time.Now(),
	}
	if member.Role == "" {
		member.Role = "member"
	}

	if err := s.teamRepo.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *TeamService) List(ownerID int64) ([]dto.MemberInfo, error) {
	members, err := s.teamRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MemberInfo, len(members))
	for i, m := range members {
		info := dto.MemberInfo{
			ID:     m.ID,
			Email:  m.Email,
			Role:   m.Role,
			Status: m.Status,
		}
		if m.JoinedAt != nil {
			info.JoinedAt = m.JoinedAt.Format(time.RFC3339)
		}
		out[i] = info
	}
	return out, nil
}

func (s *TeamService) Remove(ownerID, memberID int64) error {
	member, err := s.teamRepo.GetByID(memberID)
	if err != nil {
		return ErrMemberNotFound
	}
	if member.OwnerID != ownerID {
		return ErrMemberNotFound
	}
	return s.teamRepo.Delete(memberID)
}
