package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"rendezvous/internal/cache"
	apperrors "rendezvous/internal/errors"
	"rendezvous/internal/model"
	"rendezvous/internal/qrcode"
	"rendezvous/internal/repository"
)

// VerifyInput identifies the appointment to check in. ID is a string on the
// wire: scanners historically sent a date in the id field, and a date-shaped
// id is still treated as a date filter.
type VerifyInput struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	NomComplet string `json:"nom_complet"`
}

// VerifyResult reports the appointment state after a verification attempt.
type VerifyResult struct {
	Appointment     *model.Appointment
	AlreadyVerified bool
}

// VerificationService checks visitors in against their booked appointment.
type VerificationService interface {
	VerifyAppointment(ctx context.Context, in *VerifyInput) (*VerifyResult, error)
}

type verificationService struct {
	repo  repository.AppointmentRepository
	cache *cache.Client
}

// NewVerificationService creates a new verification service.
func NewVerificationService(repo repository.AppointmentRepository, cache *cache.Client) VerificationService {
	return &verificationService{repo: repo, cache: cache}
}

// VerifyAppointment looks up an appointment by id, date and/or name and moves
// it to the verified status with a regenerated green token. Verifying an
// already-verified appointment is a no-op reported through AlreadyVerified.
func (s *verificationService) VerifyAppointment(ctx context.Context, in *VerifyInput) (*VerifyResult, error) {
	id := strings.TrimSpace(in.ID)
	date := strings.TrimSpace(in.Date)
	name := strings.TrimSpace(in.NomComplet)

	// Legacy rule: an id shaped like a date is a date filter.
	if id != "" && IsValidDate(id) {
		date = id
		id = ""
	}

	if id == "" && date == "" && name == "" {
		return nil, apperrors.ErrMissingCriteria
	}

	crit := repository.SearchCriteria{Date: date, NomComplet: name}
	if id != "" {
		parsed, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			// A non-numeric id can never match a row.
			return nil, apperrors.ErrAppointmentNotFound
		}
		crit.ID = uint(parsed)
	}

	appt, err := s.repo.FindFirstMatch(ctx, crit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("lookup appointment: %w", err)
	}

	if appt.Statut == model.StatusVerified {
		return &VerifyResult{Appointment: appt, AlreadyVerified: true}, nil
	}

	token, err := qrcode.VerificationToken(appt, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	if err := s.repo.MarkVerified(ctx, appt.ID, token); err != nil {
		return nil, fmt.Errorf("persist verification: %w", err)
	}
	_ = s.cache.Delete(ctx, appointmentCacheKey(appt.ID))

	appt.Statut = model.StatusVerified
	appt.QRCode = token
	return &VerifyResult{Appointment: appt}, nil
}
