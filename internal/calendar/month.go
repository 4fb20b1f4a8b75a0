package calendar

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func NewMonth(year, month int) (Month, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return Month{}, httperr.ErrBusinessf(httperr.CodeInvalidInput, "invalid month %04d-%02d", year, month)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// Today é o mês de now no fuso loc.
func Today(now time.Time, loc *time.Location) Month {
	t := now.In(loc)
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) Previous() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Range devolve [primeiro dia 00:00, primeiro dia do mês seguinte) em loc.
func (m Month) Range(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
	next := m.Next()
	return start, time.Date(next.Year, next.Month, 1, 0, 0, 0, 0, loc)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
