package models

import "time"

// DayKeyFormat is the local calendar-day key layout used throughout the app.
// One photo per day key is the core rule; see internal/journal.
const DayKeyFormat = "2006-01-02"

// PhotoRecord represents one captured photo. The URI points at image bytes
// owned by the device/OS; the record only stores the reference.
type PhotoRecord struct {
	URI        string `json:"uri"`
	CapturedAt int64  `json:"captured_at"` // epoch milliseconds
	Day        string `json:"day"`         // YYYY-MM-DD, local time
}

// NewPhotoRecord builds a record for a capture happening at now. The day key
// is derived once, in local time, and never recomputed, so it stays stable
// even if the time zone changes later in the session.
func NewPhotoRecord(uri string, now time.Time) PhotoRecord {
	return PhotoRecord{
		URI:        uri,
		CapturedAt: now.UnixMilli(),
		Day:        now.Format(DayKeyFormat),
	}
}
