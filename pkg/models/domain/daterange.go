package domain

import "time"

// DateLayout is the calendar-date format the backend expects.
const DateLayout = "2006-01-02"

// DateRange is an inclusive pair of calendar dates.
type DateRange struct {
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func CurrentMonthRange(now time.Time) DateRange {
	y, m, _ := now.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return DateRange{FechaInicio: FormatDate(first), FechaFin: FormatDate(last)}
}

func LastMonthRange(now time.Time) DateRange {
	y, m, _ := now.Date()
	first := time.Date(y, m-1, 1, 0, 0, 0, 0, now.Location())
	// day 0 of the current month is the last day of the previous one
	last := time.Date(y, m, 0, 0, 0, 0, 0, now.Location())
	return DateRange{FechaInicio: FormatDate(first), FechaFin: FormatDate(last)}
}

// LastNDaysRange spans from now minus days through now. Negative values
// collapse to a single-day range.
func LastNDaysRange(now time.Time, days int) DateRange {
	if days < 0 {
		days = 0
	}
	return DateRange{
		FechaInicio: FormatDate(now.AddDate(0, 0, -days)),
		FechaFin:    FormatDate(now),
	}
}
