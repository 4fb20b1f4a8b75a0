package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FreeSlots percorre cada faixa do dia em passos de step e devolve as
// janelas de tamanho duration que não sobrepõem agendamentos ativos.
func FreeSlots(
	wh WorkingHours,
	date time.Time,
	duration time.Duration,
	step time.Duration,
	busy []models.Appointment,
) []TimeSlot {

	slots := []TimeSlot{}
	if duration <= 0 || step <= 0 {
		return slots
	}

	for _, iv := range wh[date.Weekday()] {
		ivStart, ivEnd := iv.On(date)

		for cur := ivStart; !cur.Add(duration).After(ivEnd); cur = cur.Add(step) {
			end := cur.Add(duration)
			if FirstConflict(busy, cur, end, 0) != nil {
				continue
			}
			slots = append(slots, TimeSlot{Start: cur, End: end})
		}
	}

	return slots
}
