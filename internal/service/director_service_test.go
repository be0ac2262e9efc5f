package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rendezvous/internal/auth"
	apperrors "rendezvous/internal/errors"
	"rendezvous/internal/model"
	"rendezvous/internal/repository"
)

// MockDirectorRepository is a mock implementation of DirectorRepository.
type MockDirectorRepository struct {
	mock.Mock
}

func (m *MockDirectorRepository) Create(ctx context.Context, d *model.Director) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDirectorRepository) FindActiveByEmail(ctx context.Context, email string) (*model.Director, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Director), args.Error(1)
}

func (m *MockDirectorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestDirectorService_Register(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockDirectorRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			setupMock: func(m *MockDirectorRepository) {
				m.On("EmailExists", mock.Anything, "dg@example.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Director")).Return(nil)
			},
		},
		{
			name: "email already registered",
			setupMock: func(m *MockDirectorRepository) {
				m.On("EmailExists", mock.Anything, "dg@example.com").Return(true, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name: "concurrent registration caught by unique index",
			setupMock: func(m *MockDirectorRepository) {
				m.On("EmailExists", mock.Anything, "dg@example.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Director")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDirectorRepository)
			tt.setupMock(mockRepo)

			svc := NewDirectorService(mockRepo, new(MockAppointmentRepository), auth.NewJWTService("test-secret"))
			d, err := svc.Register(context.Background(), &DirectorRegisterInput{
				Nom:        "Durand",
				Prenom:     "Claire",
				Email:      "dg@example.com",
				MotDePasse: "password123",
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, d)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, d)
				assert.Equal(t, model.DirectorStatusActive, d.Statut)
				assert.NotEqual(t, "password123", d.MotDePasse)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDirectorService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		password      string
		setupMock     func(*MockDirectorRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			password: "password123",
			setupMock: func(m *MockDirectorRepository) {
				m.On("FindActiveByEmail", mock.Anything, "dg@example.com").Return(&model.Director{
					ID:         3,
					Nom:        "Durand",
					Prenom:     "Claire",
					Email:      "dg@example.com",
					MotDePasse: string(hashed),
					Statut:     model.DirectorStatusActive,
				}, nil)
			},
		},
		{
			name:     "unknown or suspended account",
			password: "password123",
			setupMock: func(m *MockDirectorRepository) {
				m.On("FindActiveByEmail", mock.Anything, "dg@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			password: "wrong",
			setupMock: func(m *MockDirectorRepository) {
				m.On("FindActiveByEmail", mock.Anything, "dg@example.com").Return(&model.Director{
					ID:         3,
					Email:      "dg@example.com",
					MotDePasse: string(hashed),
					Statut:     model.DirectorStatusActive,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDirectorRepository)
			tt.setupMock(mockRepo)

			svc := NewDirectorService(mockRepo, new(MockAppointmentRepository), auth.NewJWTService("test-secret"))
			token, d, err := svc.Login(context.Background(), "dg@example.com", tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, d)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, "dg@example.com", d.Email)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDirectorService_Appointments(t *testing.T) {
	entries := []repository.DashboardEntry{
		{ID: 1, VisitorName: "Jean Dupont", Subject: "Demande d'audience", Date: "2026-09-15", Time: "09:00", Status: string(model.StatusPending)},
	}

	mockApptRepo := new(MockAppointmentRepository)
	mockApptRepo.On("Dashboard", mock.Anything).Return(entries, nil)

	svc := NewDirectorService(new(MockDirectorRepository), mockApptRepo, auth.NewJWTService("test-secret"))
	got, err := svc.Appointments(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, entries, got)
	mockApptRepo.AssertExpectations(t)
}
