package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/lmiguelviana/pet-connect-sub000/internal/domain/appointment"
	"github.com/lmiguelviana/pet-connect-sub000/internal/httperr"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

var errNotFound = errors.New("not found")

var _ domain.Repository = (*fakeRepo)(nil)

type fakeRepo struct {
	shop     *models.Petshop
	services map[uint]*models.Service
	clients  map[uint]*models.Client
	pets     map[uint]*models.Pet

	booked       []domain.Interval
	appointments []*models.Appointment

	failCreate error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop: &models.Petshop{
			ID:       1,
			Slug:     "petshop-teste",
			Timezone: "America/Sao_Paulo",
		},
		services: map[uint]*models.Service{},
		clients:  map[uint]*models.Client{},
		pets:     map[uint]*models.Pet{},
	}
}

func (r *fakeRepo) GetPetshopByID(_ context.Context, id uint) (*models.Petshop, error) {
	if r.shop == nil || r.shop.ID != id {
		return nil, errNotFound
	}
	return r.shop, nil
}

func (r *fakeRepo) GetPetshopBySlug(_ context.Context, slug string) (*models.Petshop, error) {
	if r.shop == nil || r.shop.Slug != slug {
		return nil, errNotFound
	}
	return r.shop, nil
}

func (r *fakeRepo) GetService(_ context.Context, petshopID, serviceID uint) (*models.Service, error) {
	svc, ok := r.services[serviceID]
	if !ok || svc.PetshopID != petshopID {
		return nil, errNotFound
	}
	return svc, nil
}

func (r *fakeRepo) GetClient(_ context.Context, petshopID, clientID uint) (*models.Client, error) {
	cl, ok := r.clients[clientID]
	if !ok || cl.PetshopID != petshopID {
		return nil, errNotFound
	}
	return cl, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, petshopID uint, name, phone, email string) (*models.Client, error) {
	for _, cl := range r.clients {
		if cl.PetshopID == petshopID && cl.Phone == phone {
			return cl, nil
		}
	}
	cl := &models.Client{
		ID:        uint(len(r.clients) + 1),
		PetshopID: petshopID,
		Name:      name,
		Phone:     phone,
		Email:     email,
		Active:    true,
	}
	r.clients[cl.ID] = cl
	return cl, nil
}

func (r *fakeRepo) GetPet(_ context.Context, petshopID, petID uint) (*models.Pet, error) {
	pet, ok := r.pets[petID]
	if !ok || pet.PetshopID != petshopID {
		return nil, errNotFound
	}
	return pet, nil
}

func (r *fakeRepo) GetOrCreatePet(_ context.Context, petshopID, clientID uint, name, species string) (*models.Pet, error) {
	for _, pet := range r.pets {
		if pet.PetshopID == petshopID && pet.ClientID == clientID && pet.Name == name {
			return pet, nil
		}
	}
	pet := &models.Pet{
		ID:        uint(len(r.pets) + 1),
		PetshopID: petshopID,
		ClientID:  clientID,
		Name:      name,
		Species:   species,
	}
	r.pets[pet.ID] = pet
	return pet, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.failCreate != nil {
		return r.failCreate
	}

	candidate := domain.Interval{Start: ap.StartTime, End: ap.EndTime}
	for _, b := range r.booked {
		if candidate.Overlaps(b) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
	}

	ap.ID = uint(len(r.appointments) + 1)
	r.appointments = append(r.appointments, ap)
	r.booked = append(r.booked, candidate)
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, petshopID, appointmentID uint) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.PetshopID == petshopID {
			return ap, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	return nil
}

func (r *fakeRepo) ListBookedIntervals(_ context.Context, _ uint, start, end time.Time) ([]domain.Interval, error) {
	window := domain.Interval{Start: start, End: end}

	var out []domain.Interval
	for _, b := range r.booked {
		if b.Overlaps(window) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, petshopID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.PetshopID == petshopID && ap.StartTime.Before(end) && !ap.StartTime.Before(start) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func grooming() *models.Service {
	return &models.Service{
		ID:          10,
		PetshopID:   1,
		Name:        "Banho e Tosa",
		DurationMin: 60,
		Weekdays:    "1,2,3,4,5",
		StartHour:   "08:00",
		EndHour:     "12:00",
		Active:      true,
	}
}

func tuesday() time.Time {
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	// 2026-03-10 é uma terça
	return time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func TestGetAvailability_SkipsBookedSlots(t *testing.T) {
	repo := newFakeRepo()
	repo.services[10] = grooming()

	day := tuesday()
	repo.booked = append(repo.booked, domain.Interval{
		Start: at(day, 9, 0),
		End:   at(day, 10, 0),
	})

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		PetshopID: 1,
		ServiceID: 10,
		Date:      day,
	})
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}

	// 08:30 cruzaria o horário ocupado e não aparece
	assert.Equal(t, []string{"08:00", "10:00", "10:30", "11:00"}, starts)
	assert.Equal(t, "09:00", slots[0].End)
}

func TestGetAvailability_ClosedWeekday(t *testing.T) {
	repo := newFakeRepo()
	repo.services[10] = grooming()

	uc := NewGetAvailability(repo)

	sunday := tuesday().AddDate(0, 0, 5)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		PetshopID: 1,
		ServiceID: 10,
		Date:      sunday,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_UnknownService(t *testing.T) {
	repo := newFakeRepo()

	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		PetshopID: 1,
		ServiceID: 99,
		Date:      tuesday(),
	})

	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, httperr.CodeServiceNotFound, code)
}

func TestGetAvailability_InvalidDuration(t *testing.T) {
	repo := newFakeRepo()
	svc := grooming()
	svc.DurationMin = 0
	repo.services[10] = svc

	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		PetshopID: 1,
		ServiceID: 10,
		Date:      tuesday(),
	})

	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, httperr.CodeInvalidDuration, code)
}
