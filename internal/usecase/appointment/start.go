package appointment

import (
	"context"

	"github.com/lmiguelviana/pet-connect-sub000/internal/audit"
	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

type StartAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartAppointment {
	return &StartAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *StartAppointment) Execute(
	ctx context.Context,
	petshopID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, petshopID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Start(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: petshopID,
		UserID:    &userID,
		Action:    "appointment_started",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
