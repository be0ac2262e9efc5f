package model

import "time"

// User represents a staff account. Accounts start inactive and must be
// approved by an administrator before they can log in.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:100;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed
	IsActive  bool      `json:"is_active" gorm:"default:false;index"`
	IsAdmin   bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
