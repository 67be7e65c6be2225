package appointment

import (
	"context"
	"time"

	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

type Repository interface {
	// -------- Petshop --------
	GetPetshopByID(
		ctx context.Context,
		id uint,
	) (*models.Petshop, error)

	GetPetshopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Petshop, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		petshopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client / Pet --------
	GetClient(
		ctx context.Context,
		petshopID uint,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		petshopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	GetPet(
		ctx context.Context,
		petshopID uint,
		petID uint,
	) (*models.Pet, error)

	GetOrCreatePet(
		ctx context.Context,
		petshopID uint,
		clientID uint,
		name string,
		species string,
	) (*models.Pet, error)

	// -------- Appointment (create) --------
	//
	// CreateAppointment é uma unidade atômica: serializa por
	// (petshop, dia), repete a checagem de conflito sob a trava e
	// insere. Conflito retorna httperr "time_conflict".
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		petshopID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	//
	// Somente agendamentos que ocupam horário (ver Blocks).
	ListBookedIntervals(
		ctx context.Context,
		petshopID uint,
		start time.Time,
		end time.Time,
	) ([]Interval, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		petshopID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
