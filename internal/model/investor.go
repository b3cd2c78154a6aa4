package model

import (
	"time"
)

// Investor 投资人跟进记录
type Investor struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Firm      string    `gorm:"size:200" json:"firm"`
	Email     string    `gorm:"size:100" json:"email"`
	Stage     string    `gorm:"size:20;default:researching;index" json:"stage"` // researching, contacted, meeting, passed, committed
	CheckSize string    `gorm:"size:50" json:"check_size"`
	Notes     string    `gorm:"type:text" json:"notes"`
	DeckURL   string    `gorm:"size:500" json:"deck_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Investor) TableName() string {
	return "investors"
}
