package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "rendezvous/internal/errors"
	"rendezvous/internal/model"
	"rendezvous/internal/qrcode"
	"rendezvous/internal/repository"
)

// BookingInput carries a slot request. Email is the only optional field.
type BookingInput struct {
	NomComplet      string `json:"nom_complet"`
	Telephone       string `json:"telephone"`
	Email           string `json:"email"`
	Raison          string `json:"raison"`
	HeureRendezVous string `json:"heure_rendez_vous"`
	DateRendezVous  string `json:"date_rendez_vous"`
}

// BookingService books appointment slots.
type BookingService interface {
	CreateAppointment(ctx context.Context, in *BookingInput) (*model.Appointment, error)
}

type bookingService struct {
	repo  repository.AppointmentRepository
	locks *DateLocker
}

// NewBookingService creates a new booking service. The locker must be shared
// with every other service that mutates appointment dates.
func NewBookingService(repo repository.AppointmentRepository, locks *DateLocker) BookingService {
	return &bookingService{repo: repo, locks: locks}
}

// CreateAppointment validates the request, enforces the daily capacity cap
// and slot uniqueness, generates the pending QR token, and inserts the row.
// Format checks run before any query so malformed input costs no I/O.
func (s *bookingService) CreateAppointment(ctx context.Context, in *BookingInput) (*model.Appointment, error) {
	if in.NomComplet == "" || in.Telephone == "" || in.Raison == "" ||
		in.HeureRendezVous == "" || in.DateRendezVous == "" {
		return nil, apperrors.ErrMissingFields
	}

	if !IsValidTime(in.HeureRendezVous) {
		return nil, apperrors.ErrInvalidTimeFormat
	}
	if !IsValidDate(in.DateRendezVous) {
		return nil, apperrors.ErrInvalidDateFormat
	}
	if !IsValidPhone(in.Telephone) {
		return nil, apperrors.ErrInvalidPhoneFormat
	}
	if in.Email != "" && !IsValidEmail(in.Email) {
		return nil, apperrors.ErrInvalidEmailFormat
	}

	mu := s.locks.Lock(in.DateRendezVous)
	defer mu.Unlock()

	count, err := s.repo.CountByDate(ctx, in.DateRendezVous)
	if err != nil {
		return nil, fmt.Errorf("count appointments for %s: %w", in.DateRendezVous, err)
	}
	if count >= model.MaxAppointmentsPerDay {
		return nil, apperrors.ErrDateFull
	}

	taken, err := s.repo.SlotTaken(ctx, in.DateRendezVous, in.HeureRendezVous)
	if err != nil {
		return nil, fmt.Errorf("check slot %s %s: %w", in.DateRendezVous, in.HeureRendezVous, err)
	}
	if taken {
		return nil, apperrors.ErrSlotTaken
	}

	appt := &model.Appointment{
		NomComplet:      in.NomComplet,
		Telephone:       in.Telephone,
		Email:           in.Email,
		Raison:          in.Raison,
		HeureRendezVous: in.HeureRendezVous,
		DateRendezVous:  in.DateRendezVous,
		Statut:          model.StatusPending,
	}

	token, err := qrcode.BookingToken(appt)
	if err != nil {
		return nil, fmt.Errorf("generate booking token: %w", err)
	}
	appt.QRCode = token

	if err := s.repo.Create(ctx, appt); err != nil {
		// Another process grabbed the slot between the check and the insert;
		// the unique index reports it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrSlotTaken
		}
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	return appt, nil
}
