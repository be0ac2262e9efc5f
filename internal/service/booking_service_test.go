package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "rendezvous/internal/errors"
	"rendezvous/internal/model"
	"rendezvous/internal/repository"
)

// MockAppointmentRepository is a mock implementation of AppointmentRepository.
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindFirstMatch(ctx context.Context, crit repository.SearchCriteria) (*model.Appointment, error) {
	args := m.Called(ctx, crit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context, limit, offset int) ([]model.Appointment, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) CountByDate(ctx context.Context, date string) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) SlotTaken(ctx context.Context, date, heure string) (bool, error) {
	args := m.Called(ctx, date, heure)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) TimesByDate(ctx context.Context, date string) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAppointmentRepository) FullDates(ctx context.Context) ([]repository.DateCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DateCount), args.Error(1)
}

func (m *MockAppointmentRepository) OpenDates(ctx context.Context) ([]repository.DateCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DateCount), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockAppointmentRepository) MarkVerified(ctx context.Context, id uint, qrCode string) error {
	args := m.Called(ctx, id, qrCode)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) Dashboard(ctx context.Context) ([]repository.DashboardEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DashboardEntry), args.Error(1)
}

func validBooking() *BookingInput {
	return &BookingInput{
		NomComplet:      "Jean Dupont",
		Telephone:       "+33612345678",
		Email:           "jean.dupont@example.com",
		Raison:          "Demande d'audience",
		HeureRendezVous: "09:00",
		DateRendezVous:  "2026-09-15",
	}
}

func TestBookingService_CreateAppointment(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*BookingInput)
		setupMock     func(*MockAppointmentRepository)
		expectedError error
	}{
		{
			name: "successful booking",
			setupMock: func(m *MockAppointmentRepository) {
				m.On("CountByDate", mock.Anything, "2026-09-15").Return(int64(0), nil)
				m.On("SlotTaken", mock.Anything, "2026-09-15", "09:00").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(nil)
			},
		},
		{
			name:          "missing required field",
			mutate:        func(in *BookingInput) { in.Telephone = "" },
			setupMock:     func(m *MockAppointmentRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:          "optional email absent is accepted",
			mutate:        func(in *BookingInput) { in.Email = "" },
			setupMock: func(m *MockAppointmentRepository) {
				m.On("CountByDate", mock.Anything, "2026-09-15").Return(int64(0), nil)
				m.On("SlotTaken", mock.Anything, "2026-09-15", "09:00").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(nil)
			},
		},
		{
			name:          "invalid time",
			mutate:        func(in *BookingInput) { in.HeureRendezVous = "25:00" },
			setupMock:     func(m *MockAppointmentRepository) {},
			expectedError: apperrors.ErrInvalidTimeFormat,
		},
		{
			name:          "invalid date",
			mutate:        func(in *BookingInput) { in.DateRendezVous = "15/09/2026" },
			setupMock:     func(m *MockAppointmentRepository) {},
			expectedError: apperrors.ErrInvalidDateFormat,
		},
		{
			name:          "invalid phone",
			mutate:        func(in *BookingInput) { in.Telephone = "not-a-number" },
			setupMock:     func(m *MockAppointmentRepository) {},
			expectedError: apperrors.ErrInvalidPhoneFormat,
		},
		{
			name:          "invalid email",
			mutate:        func(in *BookingInput) { in.Email = "jean.example.com" },
			setupMock:     func(m *MockAppointmentRepository) {},
			expectedError: apperrors.ErrInvalidEmailFormat,
		},
		{
			name: "date at capacity",
			setupMock: func(m *MockAppointmentRepository) {
				m.On("CountByDate", mock.Anything, "2026-09-15").Return(int64(model.MaxAppointmentsPerDay), nil)
			},
			expectedError: apperrors.ErrDateFull,
		},
		{
			name:   "slot already reserved by someone else",
			mutate: func(in *BookingInput) { in.NomComplet = "Awa Diallo"; in.Telephone = "+221771234567" },
			setupMock: func(m *MockAppointmentRepository) {
				m.On("CountByDate", mock.Anything, "2026-09-15").Return(int64(1), nil)
				m.On("SlotTaken", mock.Anything, "2026-09-15", "09:00").Return(true, nil)
			},
			expectedError: apperrors.ErrSlotTaken,
		},
		{
			name: "duplicate key on insert maps to slot taken",
			setupMock: func(m *MockAppointmentRepository) {
				m.On("CountByDate", mock.Anything, "2026-09-15").Return(int64(0), nil)
				m.On("SlotTaken", mock.Anything, "2026-09-15", "09:00").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrSlotTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAppointmentRepository)
			tt.setupMock(mockRepo)

			in := validBooking()
			if tt.mutate != nil {
				tt.mutate(in)
			}

			svc := NewBookingService(mockRepo, NewDateLocker())
			appt, err := svc.CreateAppointment(context.Background(), in)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, appt)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, appt)
				assert.Equal(t, model.StatusPending, appt.Statut)
				assert.True(t, strings.HasPrefix(appt.QRCode, "data:image/png;base64,"))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBookingService_CreateAppointment_SecondSlotSameDay(t *testing.T) {
	mockRepo := new(MockAppointmentRepository)
	mockRepo.On("CountByDate", mock.Anything, "2026-09-15").Return(int64(1), nil)
	mockRepo.On("SlotTaken", mock.Anything, "2026-09-15", "11:00").Return(false, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(nil)

	in := validBooking()
	in.HeureRendezVous = "11:00"

	svc := NewBookingService(mockRepo, NewDateLocker())
	appt, err := svc.CreateAppointment(context.Background(), in)

	assert.NoError(t, err)
	assert.NotNil(t, appt)
	mockRepo.AssertExpectations(t)
}
