package dashboard

import (
	"time"

	"ordersight/store"
)

// Filter narrows the full collection to the rows the viewer is looking
// at. Pure and stable: no I/O, input order preserved, same inputs always
// give the same result.
//
// An order is included iff both tests pass:
//   - date: CreatedAt falls within the range, interpreted in loc. Orders
//     with a zero CreatedAt (unparseable upstream) fail every range.
//   - subscriber: always passes for non-admin viewers (their collection
//     is already scoped at fetch time); for admin it passes when the
//     filter is All/empty or exactly equals the order's subscriber.
func Filter(orders []store.Order, state FilterState, id Identity, loc *time.Location) ([]store.Order, error) {
	start, end, err := state.Range.Bounds(loc)
	if err != nil {
		return nil, err
	}

	subscriber := state.Subscriber
	if !id.IsAdmin() || subscriber == SubscriberAll {
		subscriber = ""
	}

	var out []store.Order
	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			continue
		}
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		if subscriber != "" && o.SubscriberName != subscriber {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
