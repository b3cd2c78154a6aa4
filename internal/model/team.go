package model

import (
	"time"
)

// TeamMember 工作区成员。owner_id 是工作区所有者，
// 成员数受所有者套餐的 team_members 额度约束。
type TeamMember struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	OwnerID   int64      `gorm:"not null;index:idx_owner_email,unique" json:"owner_id"`
	Email     string     `gorm:"size:100;not null;index:idx_owner_email,unique" json:"email"`
	Role      string     `gorm:"size:20;default:member" json:"role"` // member, editor, admin
	Status    string     `gorm:"size:20;default:invited" json:"status"` // invited, active
	InvitedAt time.Time  `gorm:"not null" json:"invited_at"`
	JoinedAt  *time.Time `json:"joined_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
