package model

import "time"

// DirectorStatusActive is the only status allowed to log in.
const DirectorStatusActive = "actif"

// Director represents a director-general account with its own credential
// store and dashboard access.
type Director struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Nom        string    `json:"nom" gorm:"size:100;not null"`
	Prenom     string    `json:"prenom" gorm:"size:100;not null"`
	Email      string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	MotDePasse string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed
	Telephone  string    `json:"telephone" gorm:"size:30"`
	Statut     string    `json:"statut" gorm:"size:20;not null;default:'actif';index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName keeps the legacy table name used by the existing schema.
func (Director) TableName() string {
	return "directeurs_general"
}
