// Package calendar turns the unordered photo history into the month-by-week
// grid the home screen renders. Everything here is derived on demand from the
// history; nothing is cached.
package calendar

import (
	"time"

	"github.com/bewellhq/bewell/internal/journal"
	"github.com/bewellhq/bewell/internal/models"
)

// Day is one cell in a month grid. DayOfMonth 0 marks a leading placeholder
// used only to align the first week to the correct weekday column.
type Day struct {
	Date         time.Time
	DayOfMonth   int
	Photo        *models.PhotoRecord
	CurrentMonth bool
}

// Month is one rendered month: weeks in ascending date order, rows of seven
// cells except the final row, which is left short rather than padded.
type Month struct {
	Anchor time.Time // first day of the month
	Weeks  [][]Day
}

type monthKey struct {
	year  int
	month time.Month
}

// Build produces the months to display, newest first: every month from the
// earliest photo's month through the current month that contains at least one
// photo, plus the current month always, even when it has no photo yet.
//
// Build is a pure function of the history and now; calling it twice with an
// unchanged history yields structurally identical output.
func Build(h *journal.History, now time.Time) []Month {
	current := firstOfMonth(now)

	start := current
	if earliest, ok := h.Earliest(); ok {
		start = firstOfMonth(earliest)
	}

	withPhotos := make(map[monthKey]bool)
	for _, rec := range h.Records() {
		captured := time.UnixMilli(rec.CapturedAt)
		withPhotos[monthKey{captured.Year(), captured.Month()}] = true
	}

	index := h.ByDay()

	var months []Month
	for anchor := start; !anchor.After(current); anchor = anchor.AddDate(0, 1, 0) {
		key := monthKey{anchor.Year(), anchor.Month()}
		if !withPhotos[key] && !anchor.Equal(current) {
			continue
		}
		months = append(months, buildMonth(anchor, index))
	}

	// Newest month first; weeks within a month stay chronological.
	for i, j := 0, len(months)-1; i < j; i, j = i+1, j-1 {
		months[i], months[j] = months[j], months[i]
	}
	return months
}

func buildMonth(anchor time.Time, index map[string]*models.PhotoRecord) Month {
	m := Month{Anchor: anchor}

	week := make([]Day, 0, 7)
	for i := 0; i < int(anchor.Weekday()); i++ {
		week = append(week, Day{})
	}

	days := daysInMonth(anchor)
	for d := 1; d <= days; d++ {
		date := anchor.AddDate(0, 0, d-1)
		week = append(week, Day{
			Date:         date,
			DayOfMonth:   d,
			Photo:        index[date.Format(models.DayKeyFormat)],
			CurrentMonth: true,
		})
		if len(week) == 7 {
			m.Weeks = append(m.Weeks, week)
			week = make([]Day, 0, 7)
		}
	}
	if len(week) > 0 {
		m.Weeks = append(m.Weeks, week)
	}
	return m
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func daysInMonth(anchor time.Time) int {
	return anchor.AddDate(0, 1, -1).Day()
}
