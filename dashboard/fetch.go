package dashboard

import (
	"context"
	"fmt"

	"ordersight/store"
)

// DefaultPageSize is the per-request row cap for page fetches.
const DefaultPageSize = 1000

// FetchAll drains the store client into one in-memory collection for the
// given identity. Pages are requested strictly in sequence: whether page
// N+1 exists is only known once page N's length is seen. A short or empty
// page signals exhaustion.
//
// Non-admin identities have every page request scoped server-side to
// their own rows; this is the row-visibility invariant, enforced here
// rather than in presentation. Any page failure aborts the whole fetch;
// callers never see a partial collection.
func FetchAll(ctx context.Context, client store.Client, id Identity, pageSize int) ([]store.Order, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	subscriber := ""
	if !id.IsAdmin() {
		subscriber = id.Subscriber
	}

	var all []store.Order
	for offset := 0; ; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("dashboard: fetch cancelled: %w", err)
		}
		page, err := client.FetchPage(ctx, subscriber, offset, pageSize)
		if err != nil {
			return nil, fmt.Errorf("dashboard: fetch page at offset %d: %w", offset, err)
		}
		if subscriber != "" {
			for _, o := range page {
				if o.SubscriberName != subscriber {
					return nil, fmt.Errorf("dashboard: store returned row for %q on a request scoped to %q", o.SubscriberName, subscriber)
				}
			}
		}
		all = append(all, page...)
		if len(page) < pageSize {
			break
		}
	}
	return all, nil
}
