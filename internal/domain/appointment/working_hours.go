package appointment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const minutesPerDay = 24 * 60

// Interval é uma faixa [Start, End) em minutos desde 00:00.
type Interval struct {
	Start int
	End   int
}

// On materializa o intervalo no dia de day, no fuso de day.
func (iv Interval) On(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	return time.Date(y, m, d, 0, iv.Start, 0, 0, loc),
		time.Date(y, m, d, 0, iv.End, 0, 0, loc)
}

// WorkingHours: dia da semana → faixas ordenadas e disjuntas.
type WorkingHours map[time.Weekday][]Interval

// ParseClock aceita "HH:MM" de 00:00 a 24:00.
func ParseClock(hm string) (int, error) {
	parts := strings.Split(strings.TrimSpace(hm), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	total := h*60 + m
	if total > minutesPerDay {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	return total, nil
}

func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// FromModels monta e valida as faixas de um profissional.
func FromModels(rows []models.WorkingInterval) (WorkingHours, error) {
	wh := WorkingHours{}

	for _, r := range rows {
		if r.Weekday < 0 || r.Weekday > 6 {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "invalid weekday %d", r.Weekday)
		}
		start, err := ParseClock(r.StartTime)
		if err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "%v", err)
		}
		end, err := ParseClock(r.EndTime)
		if err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "%v", err)
		}
		if start >= end {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "interval %s-%s is empty", r.StartTime, r.EndTime)
		}

		day := time.Weekday(r.Weekday)
		wh[day] = append(wh[day], Interval{Start: start, End: end})
	}

	for day, ivs := range wh {
		sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
		for i := 1; i < len(ivs); i++ {
			if ivs[i].Start < ivs[i-1].End {
				return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "overlapping intervals on %s", day)
			}
		}
		wh[day] = ivs
	}

	return wh, nil
}

// Contains diz se [start,end) cabe inteiro numa faixa do dia da semana de
// start, avaliado no fuso loc do salão.
func (wh WorkingHours) Contains(start, end time.Time, loc *time.Location) bool {
	if !start.Before(end) {
		return false
	}

	start = start.In(loc)
	end = end.In(loc)

	for _, iv := range wh[start.Weekday()] {
		ivStart, ivEnd := iv.On(start)
		if !start.Before(ivStart) && !end.After(ivEnd) {
			return true
		}
	}
	return false
}
