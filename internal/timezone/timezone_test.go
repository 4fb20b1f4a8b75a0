package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())

	assert.True(t, IsValid("America/Manaus"))
	assert.False(t, IsValid(""))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("", "2026-03-02", "10:30")
	require.NoError(t, err)

	assert.Equal(t, 10, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, DefaultTimezone, got.Location().String())

	_, err = ParseDateTime("", "2026-03-02", "25:00")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	loc := Location("")
	in := time.Date(2026, 3, 2, 17, 45, 12, 0, loc)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, loc), StartOfDay(in))
}
