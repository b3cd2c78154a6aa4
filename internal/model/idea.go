package model

import (
	"time"
)

// Idea 点子库条目
type Idea struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Summary    string    `gorm:"type:text" json:"summary"`
	Problem    string    `gorm:"type:text" json:"problem"`
	Solution   string    `gorm:"type:text" json:"solution"`
	Market     string    `gorm:"type:text" json:"market"`
	Stage      string    `gorm:"size:20;default:concept" json:"stage"` // concept, validating, building, launched
	Tags       string    `gorm:"size:500" json:"tags"`
	IsFavorite bool      `gorm:"default:false" json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Idea) TableName() string {
	return "ideas"
}
