package calendar

import (
	"sort"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Event é o agendamento pronto para a grade do calendário.
type Event struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	Status           string    `json:"status"`
	StatusLabel      string    `json:"status_label"`
	StatusColor      string    `json:"status_color"`
	ClientName       string    `json:"client_name"`
	ProfessionalID   uint      `json:"professional_id"`
	ProfessionalName string    `json:"professional_name"`
	Services         []string  `json:"services"`
}

type Day struct {
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}

// Project é puro: mesma entrada, mesma saída, sem tocar nos agendamentos.
func Project(apps []models.Appointment) []Event {
	events := make([]Event, 0, len(apps))

	for _, ap := range apps {
		st := domain.Status(ap.Status)

		services := make([]string, 0, len(ap.Services))
		for _, s := range ap.Services {
			services = append(services, s.Name)
		}

		events = append(events, Event{
			ID:               ap.ID,
			Title:            title(ap.Client.Name, services),
			Start:            ap.StartTime,
			End:              ap.EndTime,
			Status:           ap.Status,
			StatusLabel:      st.Label(),
			StatusColor:      st.Color(),
			ClientName:       ap.Client.Name,
			ProfessionalID:   ap.ProfessionalID,
			ProfessionalName: ap.Professional.Name,
			Services:         services,
		})
	}

	return events
}

func title(client string, services []string) string {
	if client == "" {
		client = "Cliente"
	}
	if len(services) == 0 {
		return client
	}
	return client + " - " + strings.Join(services, ", ")
}

// GroupByDay agrupa pelo dia de início no fuso loc, dias em ordem crescente.
func GroupByDay(events []Event, loc *time.Location) []Day {
	byDate := map[string][]Event{}
	for _, ev := range events {
		key := ev.Start.In(loc).Format(timezone.DateLayout)
		byDate[key] = append(byDate[key], ev)
	}

	days := make([]Day, 0, len(byDate))
	for date, evs := range byDate {
		sort.SliceStable(evs, func(i, j int) bool {
			if evs[i].Start.Equal(evs[j].Start) {
				return evs[i].ID < evs[j].ID
			}
			return evs[i].Start.Before(evs[j].Start)
		})
		days = append(days, Day{Date: date, Events: evs})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
