package models

import "time"

type User struct {
	Username     string `gorm:"primaryKey;size:20"`
	PasswordHash string `gorm:"size:255;not null"`
	Email        string `gorm:"uniqueIndex;size:50;not null"`
	FirstName    string `gorm:"size:30;not null"`
	LastName     string `gorm:"size:30;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
