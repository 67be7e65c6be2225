package appointment

import (
	"context"

	"github.com/lmiguelviana/pet-connect-sub000/internal/audit"
	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
	"github.com/lmiguelviana/pet-connect-sub000/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	petshopID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetPetshopByID(ctx, petshopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, petshopID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: petshopID,
		UserID:    &userID,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
