package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Petshop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPetshopByID(
	ctx context.Context,
	id uint,
) (*models.Petshop, error) {

	var shop models.Petshop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetPetshopBySlug(
	ctx context.Context,
	slug string,
) (*models.Petshop, error) {

	var shop models.Petshop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	petshopID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND petshop_id = ?", serviceID, petshopID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client / Pet
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	petshopID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND petshop_id = ?", clientID, petshopID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	petshopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("petshop_id = ? AND phone = ?", petshopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		PetshopID: petshopID,
		Name:      name,
		Phone:     phone,
		Email:     email,
		Active:    true,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *AppointmentGormRepository) GetPet(
	ctx context.Context,
	petshopID uint,
	petID uint,
) (*models.Pet, error) {

	var pet models.Pet
	if err := r.db.WithContext(ctx).
		Where("id = ? AND petshop_id = ?", petID, petshopID).
		First(&pet).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *AppointmentGormRepository) GetOrCreatePet(
	ctx context.Context,
	petshopID uint,
	clientID uint,
	name string,
	species string,
) (*models.Pet, error) {

	var pet models.Pet
	err := r.db.WithContext(ctx).
		Where("petshop_id = ? AND client_id = ? AND LOWER(name) = LOWER(?)", petshopID, clientID, name).
		First(&pet).Error

	if err == nil {
		return &pet, nil
	}

	pet = models.Pet{
		PetshopID: petshopID,
		ClientID:  clientID,
		Name:      name,
		Species:   species,
		Active:    true,
	}

	if err := r.db.WithContext(ctx).Create(&pet).Error; err != nil {
		return nil, err
	}

	return &pet, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

// Estados que ocupam horário, para as queries de conflito/agenda.
const blockingStatuses = "('scheduled', 'confirmed', 'in_progress', 'completed')"

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Serializa check-then-insert por (petshop, dia): dois pedidos
		// simultâneos para horários sobrepostos passam aqui um por vez
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?, ?)",
			int32(ap.PetshopID),
			dayLockKey(ap.StartTime),
		).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"petshop_id = ? AND status IN "+blockingStatuses+" AND start_time < ? AND end_time > ?",
				ap.PetshopID,
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		if err := tx.Create(ap).Error; err != nil {
			if isUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeTimeConflict)
			}
			return err
		}

		return nil
	})
}

func dayLockKey(t time.Time) int32 {
	return int32(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	petshopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND petshop_id = ?", appointmentID, petshopID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedIntervals(
	ctx context.Context,
	petshopID uint,
	start time.Time,
	end time.Time,
) ([]domain.Interval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"petshop_id = ? AND status IN "+blockingStatuses+" AND start_time < ? AND end_time > ?",
			petshopID, end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(apps))
	for _, ap := range apps {
		busy = append(busy, domain.Interval{
			Start: ap.StartTime,
			End:   ap.EndTime,
		})
	}

	return busy, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	petshopID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Pet").
		Preload("Service").
		Where(
			"petshop_id = ? AND start_time >= ? AND start_time < ?",
			petshopID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
