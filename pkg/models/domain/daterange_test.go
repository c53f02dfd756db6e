package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

func TestCurrentMonthRange(t *testing.T) {
	got := CurrentMonthRange(fixedNow)
	assert.Equal(t, DateRange{FechaInicio: "2025-03-01", FechaFin: "2025-03-31"}, got)
}

func TestLastMonthRange(t *testing.T) {
	got := LastMonthRange(fixedNow)
	assert.Equal(t, DateRange{FechaInicio: "2025-02-01", FechaFin: "2025-02-28"}, got)
}

func TestLastMonthRange_January(t *testing.T) {
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	got := LastMonthRange(now)
	assert.Equal(t, DateRange{FechaInicio: "2023-12-01", FechaFin: "2023-12-31"}, got)
}

func TestCurrentMonthRange_LeapFebruary(t *testing.T) {
	now := time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC)
	got := CurrentMonthRange(now)
	assert.Equal(t, DateRange{FechaInicio: "2024-02-01", FechaFin: "2024-02-29"}, got)
}

func TestLastNDaysRange(t *testing.T) {
	got := LastNDaysRange(fixedNow, 7)
	assert.Equal(t, DateRange{FechaInicio: "2025-03-08", FechaFin: "2025-03-15"}, got)
}

func TestLastNDaysRange_Negative(t *testing.T) {
	got := LastNDaysRange(fixedNow, -3)
	assert.Equal(t, DateRange{FechaInicio: "2025-03-15", FechaFin: "2025-03-15"}, got)
}

func TestDateRanges_StartNotAfterEnd(t *testing.T) {
	// Given a clock on every day of a leap year
	start := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	for day := 0; day < 366; day++ {
		now := start.AddDate(0, 0, day)
		ranges := []DateRange{
			CurrentMonthRange(now),
			LastMonthRange(now),
			LastNDaysRange(now, day%45),
		}

		// Then every range is well formed
		for _, r := range ranges {
			from, err := time.Parse(DateLayout, r.FechaInicio)
			require.NoError(t, err)
			to, err := time.Parse(DateLayout, r.FechaFin)
			require.NoError(t, err)
			assert.False(t, from.After(to), "range %v on %s", r, FormatDate(now))
		}
	}
}

func TestFilters_WithRange(t *testing.T) {
	f := Filters{Cliente: "7"}.WithRange(CurrentMonthRange(fixedNow))
	assert.Equal(t, "2025-03-01", f.FechaInicio)
	assert.Equal(t, "2025-03-31", f.FechaFin)
	assert.Equal(t, "7", f.Cliente)
}
