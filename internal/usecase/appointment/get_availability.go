package appointment

import (
	"context"
	"time"

	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.PetshopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	if service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDuration)
	}

	// Dia sem atendimento para este serviço → agenda vazia, sem erro
	if !service.AvailableOn(in.Date.Weekday()) {
		return []domain.TimeSlot{}, nil
	}
	if service.StartHour == "" || service.EndHour == "" {
		return []domain.TimeSlot{}, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(service.StartHour)
	dayEnd := parseHM(service.EndHour)

	// Qualquer agendamento que cruze a janela bloqueia candidatos,
	// inclusive os que começam antes da abertura ou varam o fechamento.
	busy, err := uc.repo.ListBookedIntervals(
		ctx,
		in.PetshopID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMin) * time.Minute

	starts := domain.FreeSlots(dayStart, dayEnd, duration, busy)

	slots := make([]domain.TimeSlot, 0, len(starts))
	for _, s := range starts {
		slots = append(slots, domain.TimeSlot{
			Start: s.Format("15:04"),
			End:   s.Add(duration).Format("15:04"),
		})
	}

	return slots, nil
}
