package domain

import (
	"time"

	"github.com/google/uuid"
)

// dayLayout is the canonical calendar-date key format.
const dayLayout = "2006-01-02"

// Day is a pure calendar date with no time-of-day component.
// Two Day values compare equal iff they name the same calendar date,
// regardless of the clock or zone of the instant they were derived from.
type Day struct {
	t time.Time
}

// DayOf returns the calendar date of the given instant, interpreted in
// the instant's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()

	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in UTC.
func Today() Day {
	return DayOf(time.Now().UTC())
}

// ParseDay parses a YYYY-MM-DD key.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, NewValidationErrorWithValue("date", "must be YYYY-MM-DD", s)
	}

	return Day{t: t}, nil
}

// String returns the YYYY-MM-DD key for this date.
func (d Day) String() string {
	return d.t.Format(dayLayout)
}

// EpochMillis returns the Unix epoch milliseconds of this date at 00:00 UTC.
// This is the deterministic seed for daily-quote selection.
func (d Day) EpochMillis() int64 {
	return d.t.UnixMilli()
}

// Time returns the date as an instant at 00:00 UTC.
func (d Day) Time() time.Time {
	return d.t
}

// IsZero reports whether the Day is the zero value.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// DailyIndex derives the pool index for a date: the date's epoch
// milliseconds at midnight UTC modulo the pool size. Every user resolves
// the same index for the same date and pool. The result is always in
// [0, poolSize), including for pre-1970 dates whose epoch milliseconds
// are negative. poolSize must be positive.
func DailyIndex(d Day, poolSize int) int {
	idx := d.EpochMillis() % int64(poolSize)
	if idx < 0 {
		idx += int64(poolSize)
	}

	return int(idx)
}

// DailyAssignment records which quote a user was assigned on a date.
// At most one assignment exists per (user, date).
type DailyAssignment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Date      Day
	QuoteID   uuid.UUID
	CreatedAt time.Time
}

// DailyWarning is a non-fatal condition surfaced alongside a daily-quote
// result instead of being logged and swallowed.
type DailyWarning string

// Daily-quote warnings.
const (
	// DailyWarningNone means the result is fully consistent.
	DailyWarningNone DailyWarning = ""

	// DailyWarningNoQuotes means the candidate pool was empty; the result
	// carries no quote.
	DailyWarningNoQuotes DailyWarning = "no_quotes_available"

	// DailyWarningPersistenceSkipped means a quote was selected but the
	// assignment could not be recorded; the selection is still valid for
	// this call but may differ on retry.
	DailyWarningPersistenceSkipped DailyWarning = "persistence_skipped"
)

// DailyQuoteResult is the outcome of daily-quote resolution.
// Quote is nil only when Warning is DailyWarningNoQuotes.
type DailyQuoteResult struct {
	Quote   *Quote
	Day     Day
	Warning DailyWarning
}
