package lifecycle

import (
	"fmt"
	"time"

	"github.com/kjeyarn/lending-gateway/gateway/internal/model"
)

// LocalDate renders the calendar date of now in now's own location as a
// zero-padded YYYY-MM-DD string.
func LocalDate(now time.Time) string {
	year, month, day := now.Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

func isToday(d model.Date, now time.Time) bool {
	return !d.IsZero() && d.String() == LocalDate(now)
}

// IsStartDate reports whether the lending window opens on the viewer's today.
func IsStartDate(event model.BorrowEvent, now time.Time) bool {
	return isToday(event.MeetUpDetail.StartDate, now)
}

// IsTimeToReturn reports whether the agreed return date is the viewer's today.
func IsTimeToReturn(event model.BorrowEvent, now time.Time) bool {
	return event.ReturnDetail != nil && isToday(event.ReturnDetail.ReturnDate, now)
}

// InZone moves now into the named IANA zone, falling back to fallback when
// the name is empty or unknown.
func InZone(now time.Time, name string, fallback *time.Location) time.Time {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return now.In(loc)
		}
	}
	if fallback == nil {
		return now
	}
	return now.In(fallback)
}
