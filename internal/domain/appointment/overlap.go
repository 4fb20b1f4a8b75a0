package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Overlaps: intervalos semiabertos [s1,e1) e [s2,e2); encostar não conflita.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// FirstConflict devolve o primeiro agendamento ativo (por início) que
// sobrepõe [start,end), ignorando excludeID.
func FirstConflict(
	existing []models.Appointment,
	start time.Time,
	end time.Time,
	excludeID uint,
) *models.Appointment {

	var first *models.Appointment
	for i := range existing {
		ap := &existing[i]
		if ap.ID == excludeID && excludeID != 0 {
			continue
		}
		if !Status(ap.Status).Active() {
			continue
		}
		if !Overlaps(start, end, ap.StartTime, ap.EndTime) {
			continue
		}
		if first == nil || ap.StartTime.Before(first.StartTime) {
			first = ap
		}
	}
	return first
}
