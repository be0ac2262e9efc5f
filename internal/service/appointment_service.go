package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rendezvous/internal/cache"
	apperrors "rendezvous/internal/errors"
	"rendezvous/internal/model"
	"rendezvous/internal/repository"
)

const (
	appointmentCacheTTL = 5 * time.Minute
	defaultPageSize     = 10
)

// UpdateInput is a partial appointment update. Nil pointers mean "leave
// as-is"; Email may be set to the empty string to clear it.
type UpdateInput struct {
	NomComplet      *string `json:"nom_complet"`
	Telephone       *string `json:"telephone"`
	Email           *string `json:"email"`
	Raison          *string `json:"raison"`
	HeureRendezVous *string `json:"heure_rendez_vous"`
	DateRendezVous  *string `json:"date_rendez_vous"`
	Statut          *string `json:"statut"`
}

// Pagination describes a page of the appointment listing.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// AppointmentPage is one page of appointments, newest slot first.
type AppointmentPage struct {
	Data       []model.Appointment `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// BookedDate is a date whose capacity is exhausted, with its reserved times.
type BookedDate struct {
	Date   string   `json:"date"`
	Heures []string `json:"heures"`
	Full   bool     `json:"full"`
}

// AvailableDate is a date with at least one booking and remaining capacity.
type AvailableDate struct {
	Date           string `json:"date"`
	RemainingSlots int64  `json:"remainingSlots"`
}

// AppointmentService covers the read side plus generic update and delete.
type AppointmentService interface {
	List(ctx context.Context, page, limit int) (*AppointmentPage, error)
	Get(ctx context.Context, id uint) (*model.Appointment, error)
	Update(ctx context.Context, id uint, in *UpdateInput) error
	Delete(ctx context.Context, id uint) error
	BookedSlots(ctx context.Context, date string) ([]string, error)
	BookedDates(ctx context.Context) ([]BookedDate, error)
	AvailableDates(ctx context.Context) ([]AvailableDate, error)
}

type appointmentService struct {
	repo  repository.AppointmentRepository
	cache *cache.Client
	locks *DateLocker
}

// NewAppointmentService creates a new appointment query/update service.
func NewAppointmentService(repo repository.AppointmentRepository, cache *cache.Client, locks *DateLocker) AppointmentService {
	return &appointmentService{repo: repo, cache: cache, locks: locks}
}

func appointmentCacheKey(id uint) string {
	return fmt.Sprintf("rendezvous:%d", id)
}

// List returns one page ordered by date then time, both descending.
func (s *appointmentService) List(ctx context.Context, page, limit int) (*AppointmentPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	appts, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &AppointmentPage{
		Data: appts,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

// Get retrieves an appointment by ID through the read cache.
func (s *appointmentService) Get(ctx context.Context, id uint) (*model.Appointment, error) {
	if data, _ := s.cache.Get(ctx, appointmentCacheKey(id)); data != nil {
		var cached model.Appointment
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment %d: %w", id, err)
	}

	if payload, err := json.Marshal(appt); err == nil {
		_ = s.cache.Set(ctx, appointmentCacheKey(id), payload, appointmentCacheTTL)
	}
	return appt, nil
}

// Update applies the provided fields only. Moving an appointment to another
// date re-checks that date's capacity under its lock; a status-only update
// touches no date and skips the check.
func (s *appointmentService) Update(ctx context.Context, id uint, in *UpdateInput) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAppointmentNotFound
		}
		return fmt.Errorf("find appointment %d: %w", id, err)
	}

	if in.HeureRendezVous != nil && *in.HeureRendezVous != "" && !IsValidTime(*in.HeureRendezVous) {
		return apperrors.ErrInvalidTimeFormat
	}

	if in.DateRendezVous != nil && *in.DateRendezVous != "" && *in.DateRendezVous != existing.DateRendezVous {
		mu := s.locks.Lock(*in.DateRendezVous)
		defer mu.Unlock()

		count, err := s.repo.CountByDate(ctx, *in.DateRendezVous)
		if err != nil {
			return fmt.Errorf("count appointments for %s: %w", *in.DateRendezVous, err)
		}
		if count >= model.MaxAppointmentsPerDay {
			return apperrors.ErrNewDateFull
		}
	}

	fields := map[string]interface{}{}
	setIfProvided(fields, "nom_complet", in.NomComplet)
	setIfProvided(fields, "telephone", in.Telephone)
	setIfProvided(fields, "raison", in.Raison)
	setIfProvided(fields, "heure_rendez_vous", in.HeureRendezVous)
	setIfProvided(fields, "date_rendez_vous", in.DateRendezVous)
	setIfProvided(fields, "statut", in.Statut)
	if in.Email != nil {
		// Email may be cleared, so an empty string counts as provided.
		fields["email"] = *in.Email
	}

	if len(fields) == 0 {
		return apperrors.ErrNoFieldsToUpdate
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrSlotTaken
		}
		return fmt.Errorf("update appointment %d: %w", id, err)
	}

	_ = s.cache.Delete(ctx, appointmentCacheKey(id))
	return nil
}

// Delete removes an appointment; deleting an unknown id reports not found.
func (s *appointmentService) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete appointment %d: %w", id, err)
	}
	if affected == 0 {
		return apperrors.ErrAppointmentNotFound
	}
	_ = s.cache.Delete(ctx, appointmentCacheKey(id))
	return nil
}

// BookedSlots returns the reserved times on date, ascending.
func (s *appointmentService) BookedSlots(ctx context.Context, date string) ([]string, error) {
	times, err := s.repo.TimesByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("times for %s: %w", date, err)
	}
	return times, nil
}

// BookedDates returns the dates whose daily capacity is exhausted, each with
// its reserved times in ascending order.
func (s *appointmentService) BookedDates(ctx context.Context) ([]BookedDate, error) {
	full, err := s.repo.FullDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("full dates: %w", err)
	}

	booked := make([]BookedDate, 0, len(full))
	for _, dc := range full {
		times, err := s.repo.TimesByDate(ctx, dc.Date)
		if err != nil {
			return nil, fmt.Errorf("times for %s: %w", dc.Date, err)
		}
		booked = append(booked, BookedDate{Date: dc.Date, Heures: times, Full: true})
	}
	return booked, nil
}

// AvailableDates returns partially booked dates with their remaining capacity.
func (s *appointmentService) AvailableDates(ctx context.Context) ([]AvailableDate, error) {
	open, err := s.repo.OpenDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("open dates: %w", err)
	}

	available := make([]AvailableDate, 0, len(open))
	for _, dc := range open {
		available = append(available, AvailableDate{
			Date:           dc.Date,
			RemainingSlots: model.MaxAppointmentsPerDay - dc.Count,
		})
	}
	return available, nil
}

func setIfProvided(fields map[string]interface{}, column string, value *string) {
	if value != nil && *value != "" {
		fields[column] = *value
	}
}
