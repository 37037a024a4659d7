// Package journal owns the in-memory photo history for the current session
// and the daily gate that decides whether today's photo has been taken.
package journal

import (
	"time"

	"github.com/bewellhq/bewell/internal/models"
)

// History is the append-only, insertion-ordered photo history. It is owned by
// the application root and passed by pointer to every screen; consumers must
// not hold diverging copies. It is not safe for concurrent use, which matches
// the single-threaded interactive session it serves.
type History struct {
	records []models.PhotoRecord
}

func New() *History {
	return &History{}
}

// NewFromRecords seeds a history in insertion order. Used by tests and by
// non-interactive commands that replay a stored session.
func NewFromRecords(records []models.PhotoRecord) *History {
	h := &History{}
	h.records = append(h.records, records...)
	return h
}

// Append records a capture happening at now. It never gates and never fails;
// refusing a duplicate capture is the caller's job (see HasPhotoForToday).
// The new record is always the last element.
func (h *History) Append(uri string, now time.Time) models.PhotoRecord {
	rec := models.NewPhotoRecord(uri, now)
	h.records = append(h.records, rec)
	return rec
}

// HasPhotoForToday reports whether the most recently appended record was
// captured on the same local calendar day as now.
//
// Only the last record is inspected. If records were ever appended out of
// chronological order, an earlier same-day photo would not be seen. Screen
// routing depends on exactly this behavior; TookPhotoOn is the strict check.
func (h *History) HasPhotoForToday(now time.Time) bool {
	if len(h.records) == 0 {
		return false
	}
	last := h.records[len(h.records)-1]
	return last.Day == now.Format(models.DayKeyFormat)
}

// TookPhotoOn reports whether any record exists for the given day key. This
// is the stricter variant of HasPhotoForToday: it scans the whole history
// instead of trusting insertion order. Navigation deliberately does not use
// it.
func (h *History) TookPhotoOn(day string) bool {
	for _, rec := range h.records {
		if rec.Day == day {
			return true
		}
	}
	return false
}

func (h *History) Len() int {
	return len(h.records)
}

// Last returns the most recently appended record, or false if empty.
func (h *History) Last() (models.PhotoRecord, bool) {
	if len(h.records) == 0 {
		return models.PhotoRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

// Records returns the records in insertion order. The slice is shared; callers
// must treat it as read-only.
func (h *History) Records() []models.PhotoRecord {
	return h.records
}

// Earliest returns the minimum capture timestamp across all records, or false
// if the history is empty.
func (h *History) Earliest() (time.Time, bool) {
	if len(h.records) == 0 {
		return time.Time{}, false
	}
	min := h.records[0].CapturedAt
	for _, rec := range h.records[1:] {
		if rec.CapturedAt < min {
			min = rec.CapturedAt
		}
	}
	return time.UnixMilli(min), true
}

// ByDay builds a day-key index over the history. When duplicate keys exist
// the later-appended record wins, consistent with HasPhotoForToday.
func (h *History) ByDay() map[string]*models.PhotoRecord {
	idx := make(map[string]*models.PhotoRecord, len(h.records))
	for i := range h.records {
		idx[h.records[i].Day] = &h.records[i]
	}
	return idx
}
