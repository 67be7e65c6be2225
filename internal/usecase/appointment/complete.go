package appointment

import (
	"context"
	"fmt"

	"github.com/lmiguelviana/pet-connect-sub000/internal/audit"
	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	ledgerdomain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/ledger"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
	"github.com/lmiguelviana/pet-connect-sub000/internal/timezone"
)

type CompleteAppointmentInput struct {
	PetshopID     uint
	UserID        uint
	AppointmentID uint

	// Conta onde registrar a receita do serviço; zero = não registrar
	AccountID uint
}

type CompleteAppointment struct {
	repo   domain.Repository
	ledger ledgerdomain.Repository
	audit  *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	ledger ledgerdomain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:   repo,
		ledger: ledger,
		audit:  audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in CompleteAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetPetshopByID(ctx, in.PetshopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.PetshopID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Receita do serviço, opcional. O lançamento criado carrega
	// appointment_id e fica protegido contra exclusão direta.
	if in.AccountID != 0 {
		if err := uc.postIncome(ctx, in, ap); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: in.PetshopID,
		UserID:    &in.UserID,
		Action:    "appointment_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}

func (uc *CompleteAppointment) postIncome(
	ctx context.Context,
	in CompleteAppointmentInput,
	ap *models.Appointment,
) error {

	account, err := uc.ledger.GetAccount(ctx, in.PetshopID, in.AccountID)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeAccountNotFound)
	}

	service, err := uc.repo.GetService(ctx, in.PetshopID, ap.ServiceID)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	pet, err := uc.repo.GetPet(ctx, in.PetshopID, ap.PetID)
	if err != nil {
		return httperr.ErrBusiness("pet_not_found")
	}

	txn := models.Transaction{
		PetshopID:     in.PetshopID,
		AccountID:     account.ID,
		Amount:        service.Price,
		Type:          ledgerdomain.TypeIncome,
		Description:   fmt.Sprintf("%s - %s", service.Name, pet.Name),
		Date:          ap.StartTime,
		AppointmentID: &ap.ID,
	}

	return uc.ledger.CreateTransaction(ctx, &txn)
}
