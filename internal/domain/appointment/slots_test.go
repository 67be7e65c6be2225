package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hm(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestFreeSlots_WindowWithBooking(t *testing.T) {
	// Janela 08:00–12:00, serviço de 60 minutos, banho marcado 09:00–10:00.
	// 08:30 cruzaria o banho (08:30–09:30) e fica de fora; depois do banho
	// o último início possível é 11:00.
	busy := []Interval{
		{Start: hm(9, 0), End: hm(10, 0)},
	}

	slots := FreeSlots(hm(8, 0), hm(12, 0), 60*time.Minute, busy)

	require.Len(t, slots, 4)
	assert.Equal(t, hm(8, 0), slots[0])
	assert.Equal(t, hm(10, 0), slots[1])
	assert.Equal(t, hm(10, 30), slots[2])
	assert.Equal(t, hm(11, 0), slots[3])
}

func TestFreeSlots_NoBookings(t *testing.T) {
	slots := FreeSlots(hm(8, 0), hm(10, 0), 30*time.Minute, nil)

	require.Len(t, slots, 4)
	assert.Equal(t, hm(8, 0), slots[0])
	assert.Equal(t, hm(9, 30), slots[3])
}

func TestFreeSlots_DurationBeyondWindow(t *testing.T) {
	// Nenhum início cabe: 90 minutos numa janela de 60
	slots := FreeSlots(hm(8, 0), hm(9, 0), 90*time.Minute, nil)
	assert.Empty(t, slots)
}

func TestFreeSlots_LastSlotTouchesClose(t *testing.T) {
	// Atendimento pode terminar exatamente no fechamento
	slots := FreeSlots(hm(8, 0), hm(9, 0), 60*time.Minute, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, hm(8, 0), slots[0])
}

func TestFreeSlots_BusySpillingPastClose(t *testing.T) {
	// Agendamento que vara o fechamento continua bloqueando o fim do dia
	busy := []Interval{
		{Start: hm(11, 30), End: hm(12, 30)},
	}

	slots := FreeSlots(hm(8, 0), hm(12, 0), 30*time.Minute, busy)

	for _, s := range slots {
		assert.True(t, s.Add(30*time.Minute).Before(hm(11, 31)),
			"slot %s cruza o agendamento que vara o fechamento", s.Format("15:04"))
	}
	assert.Equal(t, hm(11, 0), slots[len(slots)-1])
}

func TestFreeSlots_InvalidInputs(t *testing.T) {
	assert.Empty(t, FreeSlots(hm(8, 0), hm(12, 0), 0, nil))
	assert.Empty(t, FreeSlots(hm(12, 0), hm(8, 0), 30*time.Minute, nil))
}

func TestInterval_Overlaps(t *testing.T) {
	a := Interval{Start: hm(9, 0), End: hm(10, 0)}

	// Intervalos semiabertos: encostar não é cruzar
	assert.False(t, a.Overlaps(Interval{Start: hm(10, 0), End: hm(11, 0)}))
	assert.False(t, a.Overlaps(Interval{Start: hm(8, 0), End: hm(9, 0)}))

	assert.True(t, a.Overlaps(Interval{Start: hm(9, 30), End: hm(10, 30)}))
	assert.True(t, a.Overlaps(Interval{Start: hm(8, 30), End: hm(9, 30)}))
	assert.True(t, a.Overlaps(Interval{Start: hm(8, 0), End: hm(11, 0)}))
	assert.True(t, a.Overlaps(Interval{Start: hm(9, 15), End: hm(9, 45)}))
}
