package repository

import (
	"context"

	"gorm.io/gorm"

	"rendezvous/internal/model"
)

// DateCount pairs a date with the number of appointments booked on it.
type DateCount struct {
	Date  string `gorm:"column:date"`
	Count int64  `gorm:"column:count"`
}

// DashboardEntry is the projection served to the director-general dashboard.
type DashboardEntry struct {
	ID          uint   `json:"id" gorm:"column:id"`
	VisitorName string `json:"visitor_name" gorm:"column:visitor_name"`
	Subject     string `json:"subject" gorm:"column:subject"`
	Date        string `json:"date" gorm:"column:date"`
	Time        string `json:"time" gorm:"column:time"`
	Status      string `json:"status" gorm:"column:status"`
}

// SearchCriteria narrows a verification lookup. ID wins when set; otherwise
// Date and NomComplet combine, NomComplet matching as a substring.
type SearchCriteria struct {
	ID         uint
	Date       string
	NomComplet string
}

// AppointmentRepository defines appointment persistence operations.
type AppointmentRepository interface {
	Create(ctx context.Context, a *model.Appointment) error
	FindByID(ctx context.Context, id uint) (*model.Appointment, error)
	FindFirstMatch(ctx context.Context, crit SearchCriteria) (*model.Appointment, error)
	List(ctx context.Context, limit, offset int) ([]model.Appointment, error)
	Count(ctx context.Context) (int64, error)
	CountByDate(ctx context.Context, date string) (int64, error)
	SlotTaken(ctx context.Context, date, heure string) (bool, error)
	TimesByDate(ctx context.Context, date string) ([]string, error)
	FullDates(ctx context.Context) ([]DateCount, error)
	OpenDates(ctx context.Context) ([]DateCount, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	MarkVerified(ctx context.Context, id uint, qrCode string) error
	Delete(ctx context.Context, id uint) (int64, error)
	Dashboard(ctx context.Context) ([]DashboardEntry, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	var a model.Appointment
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindFirstMatch returns the lowest-id appointment matching the criteria, so
// repeated lookups with the same criteria hit the same row.
func (r *appointmentRepository) FindFirstMatch(ctx context.Context, crit SearchCriteria) (*model.Appointment, error) {
	tx := r.db.WithContext(ctx).Model(&model.Appointment{})
	if crit.ID != 0 {
		tx = tx.Where("id = ?", crit.ID)
	} else {
		if crit.Date != "" {
			tx = tx.Where("date_rendez_vous = ?", crit.Date)
		}
		if crit.NomComplet != "" {
			tx = tx.Where("nom_complet LIKE ?", "%"+crit.NomComplet+"%")
		}
	}

	var a model.Appointment
	if err := tx.Order("id ASC").First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepository) List(ctx context.Context, limit, offset int) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Order("date_rendez_vous DESC, heure_rendez_vous DESC").
		Limit(limit).
		Offset(offset).
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Appointment{}).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountByDate(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("date_rendez_vous = ?", date).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) SlotTaken(ctx context.Context, date, heure string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("date_rendez_vous = ? AND heure_rendez_vous = ?", date, heure).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) TimesByDate(ctx context.Context, date string) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("date_rendez_vous = ?", date).
		Order("heure_rendez_vous ASC").
		Pluck("heure_rendez_vous", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *appointmentRepository) FullDates(ctx context.Context) ([]DateCount, error) {
	var rows []DateCount
	err := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Select("date_rendez_vous AS date, COUNT(*) AS count").
		Group("date_rendez_vous").
		Having("COUNT(*) >= ?", model.MaxAppointmentsPerDay).
		Order("date_rendez_vous ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *appointmentRepository) OpenDates(ctx context.Context) ([]DateCount, error) {
	var rows []DateCount
	err := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Select("date_rendez_vous AS date, COUNT(*) AS count").
		Group("date_rendez_vous").
		Having("COUNT(*) < ?", model.MaxAppointmentsPerDay).
		Order("date_rendez_vous ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *appointmentRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// MarkVerified persists the status transition and the regenerated code in a
// single UPDATE so a reader never observes one without the other.
func (r *appointmentRepository) MarkVerified(ctx context.Context, id uint, qrCode string) error {
	return r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"statut":  model.StatusVerified,
			"qr_code": qrCode,
		}).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Appointment{}, id)
	return res.RowsAffected, res.Error
}

func (r *appointmentRepository) Dashboard(ctx context.Context) ([]DashboardEntry, error) {
	var rows []DashboardEntry
	err := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Select("id, nom_complet AS visitor_name, raison AS subject, date_rendez_vous AS date, heure_rendez_vous AS time, statut AS status").
		Order("date_rendez_vous DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
