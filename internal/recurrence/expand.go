// Package recurrence expands weekly recurrence rules into concrete calendar
// dates. All calendar arithmetic happens in the fixed organizational
// timezone; a due date is a date, never an instant.
package recurrence

import (
	"time"

	"github.com/kmorishita/tasklane/internal/domain"
)

// orgLocation is the organization's fixed reference timezone. Due dates are
// calendar dates in this zone regardless of any client's local clock.
var orgLocation = mustLoadLocation("Asia/Tokyo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("loading organizational timezone: " + err.Error())
	}
	return loc
}

// OrgLocation returns the organizational timezone.
func OrgLocation() *time.Location {
	return orgLocation
}

// DateOf converts an instant to the calendar date it falls on in the
// organizational timezone, normalized to midnight UTC so dates compare with
// Equal and format with a plain date layout.
func DateOf(instant time.Time) time.Time {
	y, m, d := instant.In(orgLocation).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first and last day of the month containing the
// given instant, as organizational calendar dates.
func MonthRange(instant time.Time) (start, end time.Time) {
	y, m, _ := instant.In(orgLocation).Date()
	start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// Expand enumerates every date in [start, end] (both inclusive) whose weekday
// is a member of the rule's day set, in ascending order. A missing or empty
// day set yields no dates; this is deliberate leniency, not an error. Unknown
// weekday tokens are skipped.
//
// Expand is pure: same inputs, same output, no side effects. Splitting a
// range at any point and concatenating the two expansions equals expanding
// the whole range, which is what makes incremental catch-up generation safe.
func Expand(rule domain.RecurrenceRule, start, end time.Time) []time.Time {
	if rule.Empty() {
		return nil
	}

	wanted := make(map[time.Weekday]bool, len(rule.Days))
	for _, token := range rule.Days {
		if d, ok := token.StdWeekday(); ok {
			wanted[d] = true
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	first := DateOf(start)
	last := DateOf(end)

	var dates []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if wanted[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}
