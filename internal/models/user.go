package models

import "time"

// MaxUsernameLength matches the username column size.
const MaxUsernameLength = 100

// User is an administrator allowed to manage the portal.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null;type:varchar(100)"`
	PasswordHash string    `json:"-" gorm:"column:hashed_password;not null;type:varchar(255)"` // never serialized
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// ProfileUpdate carries the optional fields of a profile change.
// A nil field is left unchanged.
type ProfileUpdate struct {
	Username *string
	Password *string
}
