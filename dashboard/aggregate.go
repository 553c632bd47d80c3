package dashboard

import (
	"sort"
	"strings"

	"ordersight/store"
)

// Canonical status codes. Anything else, including a missing status,
// counts toward Total but none of the five named counters.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusEscalated = "ESCALATED"
	StatusReminded  = "REMINDED"
	StatusCancelled = "CANCELLED"
)

// Aggregate reduces a collection to its status counters in one pass.
// The result is independent of input order.
func Aggregate(orders []store.Order) Counters {
	var c Counters
	for _, o := range orders {
		c.Total++
		switch strings.ToUpper(o.Status) {
		case StatusPending:
			c.Pending++
		case StatusEscalated:
			c.Escalated++
		case StatusConfirmed:
			c.Confirmed++
		case StatusReminded:
			c.Reminded++
		case StatusCancelled:
			c.Cancelled++
		}
	}
	return c
}

// Subscribers derives the distinct subscriber names present in the full
// unfiltered collection, sorted ascending. It feeds the admin filter
// dropdown and is computed before any filtering so the dropdown does not
// shrink as filters narrow.
func Subscribers(orders []store.Order) []string {
	seen := make(map[string]struct{}, len(orders))
	var names []string
	for _, o := range orders {
		if _, ok := seen[o.SubscriberName]; ok {
			continue
		}
		seen[o.SubscriberName] = struct{}{}
		names = append(names, o.SubscriberName)
	}
	sort.Strings(names)
	return names
}
