package appointment

import (
	"context"

	"github.com/lmiguelviana/pet-connect-sub000/internal/audit"
	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookPublicAppointmentInput struct {
	Slug string

	ClientName  string
	ClientPhone string
	ClientEmail string

	PetName    string
	PetSpecies string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// BookPublicAppointment atende a página pública: resolve o petshop pelo
// slug, localiza ou cadastra cliente e pet pelo telefone e delega a
// marcação ao fluxo interno, com a antecedência mínima valendo.
type BookPublicAppointment struct {
	repo   domain.Repository
	create *CreateAppointment
}

func NewBookPublicAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BookPublicAppointment {
	return &BookPublicAppointment{
		repo:   repo,
		create: NewCreateAppointment(repo, audit),
	}
}

func (uc *BookPublicAppointment) Execute(
	ctx context.Context,
	in BookPublicAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetPetshopBySlug(ctx, in.Slug)
	if err != nil {
		return nil, httperr.ErrBusiness("petshop_not_found")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		shop.ID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	pet, err := uc.repo.GetOrCreatePet(
		ctx,
		shop.ID,
		client.ID,
		in.PetName,
		in.PetSpecies,
	)
	if err != nil {
		return nil, err
	}

	return uc.create.Execute(ctx, CreateAppointmentInput{
		PetshopID: shop.ID,
		ClientID:  client.ID,
		PetID:     pet.ID,
		ServiceID: in.ServiceID,
		Date:      in.Date,
		Time:      in.Time,
		Notes:     in.Notes,
	})
}
