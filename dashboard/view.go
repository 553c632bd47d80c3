package dashboard

import (
	"sort"
	"time"

	"ordersight/store"
)

// TableCap bounds how many filtered rows the tabular display receives.
const TableCap = 100

// View is exactly what the presentation layer consumes: the counters,
// the capped row list, and (admin only) the subscriber dropdown source.
type View struct {
	Stats       Counters      `json:"stats"`
	Orders      []store.Order `json:"orders"`
	Subscribers []string      `json:"subscribers,omitempty"`
	Total       int           `json:"total"`
	Filtered    int           `json:"filtered"`
}

// BuildView runs the filter and aggregation stages over the fetched
// collection and assembles the presentation payload. The table rows are
// the newest TableCap of the filtered set, ordered by CreatedAt
// descending with id descending as the tie break, so the selection is
// deterministic regardless of store ordering.
func BuildView(orders []store.Order, state FilterState, id Identity, loc *time.Location) (View, error) {
	filtered, err := Filter(orders, state, id, loc)
	if err != nil {
		return View{}, err
	}

	view := View{
		Stats:    Aggregate(filtered),
		Total:    len(orders),
		Filtered: len(filtered),
	}

	rows := make([]store.Order, len(filtered))
	copy(rows, filtered)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	if len(rows) > TableCap {
		rows = rows[:TableCap]
	}
	view.Orders = rows

	if id.IsAdmin() {
		view.Subscribers = Subscribers(orders)
	}
	return view, nil
}
