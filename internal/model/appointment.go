package model

import "time"

// MaxAppointmentsPerDay is the daily booking capacity.
const MaxAppointmentsPerDay = 2

// AppointmentStatus represents the verification state of an appointment.
type AppointmentStatus string

const (
	// StatusPending is the state of a freshly booked appointment.
	StatusPending AppointmentStatus = "En attente"
	// StatusVerified is the state after a successful check-in.
	StatusVerified AppointmentStatus = "Verifie"
)

// Appointment represents a booked visit slot. Dates and times are kept as the
// strings the validators accept (YYYY-MM-DD, HH:MM[:SS]); lexicographic order
// matches chronological order for both. The composite unique index on
// (date, heure) enforces slot uniqueness at the store level even when two
// processes race past the application-side checks.
type Appointment struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	NomComplet      string            `json:"nom_complet" gorm:"size:255;not null;index"`
	Telephone       string            `json:"telephone" gorm:"size:30;not null"`
	Email           string            `json:"email" gorm:"size:255"`
	Raison          string            `json:"raison" gorm:"size:500;not null"`
	DateRendezVous  string            `json:"date_rendez_vous" gorm:"size:10;not null;index;uniqueIndex:idx_rdv_slot,priority:1"`
	HeureRendezVous string            `json:"heure_rendez_vous" gorm:"size:8;not null;uniqueIndex:idx_rdv_slot,priority:2"`
	Statut          AppointmentStatus `json:"statut" gorm:"type:varchar(20);not null;default:'En attente';index"`
	QRCode          string            `json:"qr_code" gorm:"type:longtext"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// TableName keeps the legacy table name used by the existing schema.
func (Appointment) TableName() string {
	return "rendezvous"
}
