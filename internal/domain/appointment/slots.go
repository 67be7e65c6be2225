package appointment

import "time"

// Granularidade fixa dos horários oferecidos, igual para todos os
// serviços do sistema.
const SlotGranularity = 30 * time.Minute

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps compara intervalos semiabertos [Start, End).
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityInput struct {
	PetshopID uint
	ServiceID uint
	Date      time.Time
}

// FreeSlots devolve, em ordem crescente, os inícios válidos para um
// atendimento de `duration` dentro de [windowStart, windowEnd), pulando
// qualquer candidato cujo intervalo ocupado cruze um agendamento em `busy`.
//
// Candidatos são gerados a cada SlotGranularity. Um agendamento que
// termina depois do fechamento continua bloqueando os candidatos que
// alcança; nenhum candidato é oferecido além do fechamento.
func FreeSlots(windowStart, windowEnd time.Time, duration time.Duration, busy []Interval) []time.Time {
	if duration <= 0 {
		return nil
	}
	if !windowEnd.After(windowStart) {
		return nil
	}

	var slots []time.Time

	for s := windowStart; !s.Add(duration).After(windowEnd); s = s.Add(SlotGranularity) {
		candidate := Interval{Start: s, End: s.Add(duration)}

		if overlapsAny(candidate, busy) {
			continue
		}

		slots = append(slots, s)
	}

	return slots
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
