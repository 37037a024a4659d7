package journal

import (
	"testing"
	"time"

	"github.com/bewellhq/bewell/internal/models"
)

func mustDay(t *testing.T, day string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", day, time.Local)
	if err != nil {
		t.Fatalf("bad test date %q: %v", day, err)
	}
	return parsed
}

func TestHasPhotoForToday_EmptyHistory(t *testing.T) {
	h := New()

	for _, now := range []string{"2024-03-02 09:00", "2024-12-31 23:59"} {
		if h.HasPhotoForToday(mustDay(t, now)) {
			t.Errorf("expected false for empty history at %s", now)
		}
	}
}

func TestHasPhotoForToday_LastRecordMatches(t *testing.T) {
	h := New()
	h.Append("file:///a.jpg", mustDay(t, "2024-02-28 08:00"))
	h.Append("file:///b.jpg", mustDay(t, "2024-03-02 07:30"))

	now := mustDay(t, "2024-03-02 21:00")
	if !h.HasPhotoForToday(now) {
		t.Error("expected true when last record is from today")
	}
}

func TestHasPhotoForToday_LastRecordDiffers(t *testing.T) {
	h := New()
	h.Append("file:///a.jpg", mustDay(t, "2024-03-01 08:00"))

	if h.HasPhotoForToday(mustDay(t, "2024-03-02 08:00")) {
		t.Error("expected false when last record is from yesterday")
	}
}

func TestHasPhotoForToday_OnlyInspectsLastRecord(t *testing.T) {
	// Known fragility: a photo for today hidden behind a later out-of-order
	// append is not seen. The strict variant must still find it.
	h := New()
	h.Append("file:///today.jpg", mustDay(t, "2024-03-02 08:00"))
	h.Append("file:///stale.jpg", mustDay(t, "2024-03-01 08:00"))

	now := mustDay(t, "2024-03-02 12:00")
	if h.HasPhotoForToday(now) {
		t.Error("last-record check should miss the earlier same-day photo")
	}
	if !h.TookPhotoOn(now.Format(models.DayKeyFormat)) {
		t.Error("strict check should find the earlier same-day photo")
	}
}

func TestAppend_PreservesExistingRecords(t *testing.T) {
	h := New()
	first := h.Append("file:///a.jpg", mustDay(t, "2024-03-01 08:00"))

	before := h.Len()
	second := h.Append("file:///b.jpg", mustDay(t, "2024-03-02 08:00"))

	if h.Len() != before+1 {
		t.Fatalf("expected length %d, got %d", before+1, h.Len())
	}
	records := h.Records()
	if records[0] != first {
		t.Errorf("existing record changed: %+v", records[0])
	}
	last, ok := h.Last()
	if !ok || last != second {
		t.Errorf("new record is not last: %+v", last)
	}
	if second.Day != "2024-03-02" {
		t.Errorf("expected day key 2024-03-02, got %s", second.Day)
	}
	if second.CapturedAt != mustDay(t, "2024-03-02 08:00").UnixMilli() {
		t.Errorf("unexpected capture timestamp %d", second.CapturedAt)
	}
}

func TestEarliest_FindsMinimumTimestamp(t *testing.T) {
	h := New()
	if _, ok := h.Earliest(); ok {
		t.Fatal("expected no earliest record for empty history")
	}

	h.Append("file:///b.jpg", mustDay(t, "2024-03-02 08:00"))
	h.Append("file:///a.jpg", mustDay(t, "2024-01-05 08:00")) // out of order
	h.Append("file:///c.jpg", mustDay(t, "2024-03-10 08:00"))

	earliest, ok := h.Earliest()
	if !ok {
		t.Fatal("expected an earliest record")
	}
	if got := earliest.Format(models.DayKeyFormat); got != "2024-01-05" {
		t.Errorf("expected earliest 2024-01-05, got %s", got)
	}
}

func TestByDay_LastWriteWins(t *testing.T) {
	h := New()
	h.Append("file:///first.jpg", mustDay(t, "2024-03-02 08:00"))
	h.Append("file:///second.jpg", mustDay(t, "2024-03-02 09:00"))

	idx := h.ByDay()
	rec, ok := idx["2024-03-02"]
	if !ok {
		t.Fatal("expected an index entry for 2024-03-02")
	}
	if rec.URI != "file:///second.jpg" {
		t.Errorf("expected later record to win, got %s", rec.URI)
	}
	if rec != &h.Records()[1] {
		t.Error("index should reference the stored record, not a copy")
	}
}
