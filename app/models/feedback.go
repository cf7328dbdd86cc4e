package models

import "time"

// Feedback is always owned by exactly one user; the owner reference lives
// here, on the feedback row, and never changes after creation.
type Feedback struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:100;not null"`
	Content   string `gorm:"type:text;not null"`
	Username  string `gorm:"size:20;not null;index"`
	Owner     *User  `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
