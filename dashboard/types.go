package dashboard

import (
	"fmt"
	"time"
)

// AdminUsername is the reserved login that maps to full visibility.
const AdminUsername = "admin"

// SubscriberAll is the sentinel subscriber filter meaning "no constraint".
const SubscriberAll = "All"

// Identity is the resolved viewer context every visibility rule keys off:
// either the admin role or one specific subscriber.
type Identity struct {
	Admin      bool   `json:"admin"`
	Subscriber string `json:"subscriber,omitempty"`
}

func AdminIdentity() Identity {
	return Identity{Admin: true}
}

func SubscriberIdentity(name string) Identity {
	return Identity{Subscriber: name}
}

func (id Identity) IsAdmin() bool { return id.Admin }

// Username returns the login name this identity presents as.
func (id Identity) Username() string {
	if id.Admin {
		return AdminUsername
	}
	return id.Subscriber
}

// DateRange is a calendar-date window, inclusive on both ends. The dates
// carry no zone of their own; Bounds anchors them to local midnight in
// the display zone. Anchoring to UTC midnight instead would hide orders
// created in the early hours of a local day east of UTC.
type DateRange struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

const dateLayout = "2006-01-02"

// DefaultRange covers the last seven days through tomorrow, matching the
// window the dashboard opens with.
func DefaultRange(now time.Time) DateRange {
	return DateRange{
		Start: now.AddDate(0, 0, -7).Format(dateLayout),
		End:   now.AddDate(0, 0, 1).Format(dateLayout),
	}
}

// Bounds resolves the range to [start 00:00:00, end-of-end-day) in loc.
// The returned end is the first instant after the range; callers include
// t iff !t.Before(start) && t.Before(end).
func (r DateRange) Bounds(loc *time.Location) (start, end time.Time, err error) {
	start, err = time.ParseInLocation(dateLayout, r.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("dashboard: parse start date %q: %w", r.Start, err)
	}
	endDay, err := time.ParseInLocation(dateLayout, r.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("dashboard: parse end date %q: %w", r.End, err)
	}
	return start, endDay.AddDate(0, 0, 1), nil
}

// FilterState is what the viewer is currently looking at. Subscriber is
// only meaningful for admin identities; SubscriberAll or "" means all.
type FilterState struct {
	Range      DateRange `json:"range"`
	Subscriber string    `json:"subscriber"`
}

// Counters are the aggregates the dashboard cards and charts consume.
type Counters struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Escalated int `json:"escalated"`
	Confirmed int `json:"confirmed"`
	Reminded  int `json:"reminded"`
	Cancelled int `json:"cancelled"`
}
