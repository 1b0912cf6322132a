package models

import (
	"time"
)

// User is a local account. Authentication happens against the password
// hash; everything else keys off the user ID.
type User struct {
	ID           string    `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `json:"full_name"`
}

// Profile holds the user-editable account details. It is upserted on
// first sign-in and mutated by the profile command.
type Profile struct {
	ID        string    `gorm:"primarykey" json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	Website   string    `json:"website"`
	AvatarURL string    `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
