package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var saoPaulo, _ = time.LoadLocation("America/Sao_Paulo")

// 2026-03-02 é uma segunda-feira.
func monday(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, saoPaulo)
}

func mondayMorningAndAfternoon(t *testing.T) WorkingHours {
	t.Helper()
	wh, err := FromModels([]models.WorkingInterval{
		{Weekday: int(time.Monday), StartTime: "14:00", EndTime: "18:00"},
		{Weekday: int(time.Monday), StartTime: "09:00", EndTime: "12:00"},
	})
	require.NoError(t, err)
	return wh
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"24:00", 1440, false},
		{"23:59", 1439, false},
		{"24:01", 0, true},
		{"9:00", 0, true},
		{"09:60", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, FormatClock(got))
	}
}

func TestFromModelsSortsAndValidates(t *testing.T) {
	wh := mondayMorningAndAfternoon(t)
	assert.Equal(t, []Interval{{540, 720}, {840, 1080}}, wh[time.Monday])

	_, err := FromModels([]models.WorkingInterval{
		{Weekday: 1, StartTime: "09:00", EndTime: "12:00"},
		{Weekday: 1, StartTime: "11:00", EndTime: "13:00"},
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))

	_, err = FromModels([]models.WorkingInterval{{Weekday: 7, StartTime: "09:00", EndTime: "12:00"}})
	assert.Error(t, err)

	_, err = FromModels([]models.WorkingInterval{{Weekday: 1, StartTime: "12:00", EndTime: "12:00"}})
	assert.Error(t, err)
}

func TestContains(t *testing.T) {
	wh := mondayMorningAndAfternoon(t)

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside morning", monday(10, 0), monday(11, 0), true},
		{"exactly morning", monday(9, 0), monday(12, 0), true},
		{"before opening", monday(8, 0), monday(9, 0), false},
		{"spans lunch", monday(11, 30), monday(14, 30), false},
		{"runs past close", monday(17, 30), monday(18, 30), false},
		{"tuesday closed", monday(10, 0).AddDate(0, 0, 1), monday(11, 0).AddDate(0, 0, 1), false},
		{"empty interval", monday(10, 0), monday(10, 0), false},
		{"utc input", monday(10, 0).UTC(), monday(11, 0).UTC(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wh.Contains(tt.start, tt.end, saoPaulo))
		})
	}
}

func TestContainsImpliesInsideSomeInterval(t *testing.T) {
	wh := mondayMorningAndAfternoon(t)

	rapid.Check(t, func(t *rapid.T) {
		startMin := rapid.IntRange(0, 1439).Draw(t, "start")
		dur := rapid.IntRange(1, 300).Draw(t, "dur")
		start := monday(0, startMin)
		end := start.Add(time.Duration(dur) * time.Minute)

		if !wh.Contains(start, end, saoPaulo) {
			return
		}
		inside := false
		for _, iv := range wh[time.Monday] {
			s, e := iv.On(start)
			if !start.Before(s) && !end.After(e) {
				inside = true
			}
		}
		if !inside {
			t.Fatalf("[%s,%s) accepted outside working hours", start, end)
		}
	})
}
