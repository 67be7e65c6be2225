package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lmiguelviana/pet-connect-sub000/internal/audit"
	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
	"github.com/lmiguelviana/pet-connect-sub000/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PetshopID uint

	ClientID uint
	PetID    uint

	ServiceID uint

	Date  string
	Time  string
	Notes string

	// Agendamentos feitos pelo balcão podem ignorar a antecedência
	// mínima exigida do público
	SkipMinAdvance bool

	UserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetPetshopByID(ctx, in.PetshopID)
	if err != nil {
		return nil, err
	}

	// Data/hora no timezone do petshop
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if !in.SkipMinAdvance {
		minAdvance := shop.MinAdvanceMinutes
		if minAdvance <= 0 {
			minAdvance = 120
		}

		now := timezone.NowIn(shop.Timezone)
		if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	}

	service, err := uc.repo.GetService(ctx, in.PetshopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	if service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDuration)
	}

	if !service.AvailableOn(start.Weekday()) {
		return nil, httperr.ErrBusiness("outside_service_hours")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	if !withinServiceWindow(service, start, end) {
		return nil, httperr.ErrBusiness("outside_service_hours")
	}

	client, err := uc.repo.GetClient(ctx, in.PetshopID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	pet, err := uc.repo.GetPet(ctx, in.PetshopID, in.PetID)
	if err != nil {
		return nil, httperr.ErrBusiness("pet_not_found")
	}
	if pet.ClientID != client.ID {
		return nil, httperr.ErrBusiness("pet_not_found")
	}

	ap := &models.Appointment{
		PetshopID:   in.PetshopID,
		ClientID:    client.ID,
		PetID:       pet.ID,
		ServiceID:   service.ID,
		PublicRef:   uuid.NewString(),
		StartTime:   start,
		EndTime:     end,
		DurationMin: service.DurationMin,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	// Checagem de conflito e insert na mesma unidade atômica (repo)
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: in.PetshopID,
		UserID:    in.UserID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}

func withinServiceWindow(service *models.Service, start, end time.Time) bool {
	if service.StartHour == "" || service.EndHour == "" {
		return false
	}

	loc := start.Location()

	parseHM := func(hm string) time.Time {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}
		}
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	windowStart := parseHM(service.StartHour)
	windowEnd := parseHM(service.EndHour)

	return !start.Before(windowStart) && !end.After(windowEnd)
}
