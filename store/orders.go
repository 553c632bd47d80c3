package store

import "time"

// Order is a read-only projection of one subscriber purchase record as it
// exists in the backing store. The service never creates, updates or
// deletes orders; collections are re-fetched wholesale per viewer session.
type Order struct {
	ID             int64     `json:"id"`
	SubscriberName string    `json:"subscriber_name"`
	OrderID        string    `json:"order_id"`
	Phone          string    `json:"phone"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// parseTime converts a scanned or decoded timestamp value to time.Time.
// Handles SQLite (string) and Postgres (time.Time) scans plus the RFC3339
// variants remote stores emit. Unparseable values come back as the zero
// time, which every date-range filter excludes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if t == "" {
			return time.Time{}
		}
		for _, layout := range []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02 15:04:05-07:00",
			"2006-01-02 15:04:05.999999-07:00",
			"2006-01-02T15:04:05.999999",
		} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
