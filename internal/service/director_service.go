package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rendezvous/internal/auth"
	apperrors "rendezvous/internal/errors"
	"rendezvous/internal/model"
	"rendezvous/internal/repository"
)

// DirectorRegisterInput carries a director-general signup.
type DirectorRegisterInput struct {
	Nom        string
	Prenom     string
	Email      string
	MotDePasse string
	Telephone  string
}

// DirectorService handles director-general accounts and their dashboard.
type DirectorService interface {
	Register(ctx context.Context, in *DirectorRegisterInput) (*model.Director, error)
	Login(ctx context.Context, email, password string) (token string, d *model.Director, err error)
	Appointments(ctx context.Context) ([]repository.DashboardEntry, error)
}

type directorService struct {
	directorRepo repository.DirectorRepository
	apptRepo     repository.AppointmentRepository
	jwtService   *auth.JWTService
}

// NewDirectorService creates a new director service.
func NewDirectorService(directorRepo repository.DirectorRepository, apptRepo repository.AppointmentRepository, jwtService *auth.JWTService) DirectorService {
	return &directorService{
		directorRepo: directorRepo,
		apptRepo:     apptRepo,
		jwtService:   jwtService,
	}
}

// Register creates an active director-general account.
func (s *directorService) Register(ctx context.Context, in *DirectorRegisterInput) (*model.Director, error) {
	exists, err := s.directorRepo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check director email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.MotDePasse), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	d := &model.Director{
		Nom:        in.Nom,
		Prenom:     in.Prenom,
		Email:      in.Email,
		MotDePasse: string(hashed),
		Telephone:  in.Telephone,
		Statut:     model.DirectorStatusActive,
	}
	if err := s.directorRepo.Create(ctx, d); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create director: %w", err)
	}
	return d, nil
}

// Login authenticates an active director and returns a bearer token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *directorService) Login(ctx context.Context, email, password string) (string, *model.Director, error) {
	d, err := s.directorRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find director: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(d.MotDePasse), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(auth.Claims{
		UserID:   d.ID,
		Username: d.Prenom + " " + d.Nom,
		Email:    d.Email,
		Role:     auth.RoleDirector,
	})
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}

	return token, d, nil
}

// Appointments returns the dashboard listing, newest date first.
func (s *directorService) Appointments(ctx context.Context) ([]repository.DashboardEntry, error) {
	return s.apptRepo.Dashboard(ctx)
}
