package store

import (
	"context"
	"sync"
	"time"
)

// Fixture is the in-memory order store used when no remote backend is
// configured. It answers the same scoped, offset/limit page requests the
// remote backends do, so the pipeline above it cannot tell the difference.
type Fixture struct {
	mu     sync.RWMutex
	orders []Order
}

func NewFixture(orders []Order) *Fixture {
	f := &Fixture{orders: make([]Order, len(orders))}
	copy(f.orders, orders)
	return f
}

func (f *Fixture) FetchPage(ctx context.Context, subscriber string, offset, limit int) ([]Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var scoped []Order
	if subscriber == "" {
		scoped = f.orders
	} else {
		for _, o := range f.orders {
			if o.SubscriberName == subscriber {
				scoped = append(scoped, o)
			}
		}
	}

	if offset >= len(scoped) {
		return nil, nil
	}
	end := offset + limit
	if end > len(scoped) {
		end = len(scoped)
	}
	page := make([]Order, end-offset)
	copy(page, scoped[offset:end])
	return page, nil
}

// Add appends orders to the fixture (seeding from tests or dev tooling).
func (f *Fixture) Add(orders ...Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, orders...)
}

func (f *Fixture) Close() error { return nil }

// FixtureOrders returns the default demo data set: a handful of orders
// across a few subscribers and all recognized statuses.
func FixtureOrders() []Order {
	now := time.Now()
	return []Order{
		{ID: 21, SubscriberName: "little_toes_baheer", OrderID: "7496366882903", Phone: "201114344604", Status: "ESCALATED", CreatedAt: time.Date(2025, 11, 28, 10, 26, 51, 0, time.UTC)},
		{ID: 25, SubscriberName: "little_toes_baheer", OrderID: "7497019916375", Phone: "201001030020", Status: "CONFIRMED", CreatedAt: time.Date(2025, 11, 28, 14, 35, 11, 0, time.UTC)},
		{ID: 32, SubscriberName: "little_toes_baheer", OrderID: "7499213111383", Phone: "201223130974", Status: "REMINDED", CreatedAt: time.Date(2025, 11, 28, 20, 45, 44, 0, time.UTC)},
		{ID: 35, SubscriberName: "netaq_aljamal", OrderID: "6208391577782", Phone: "201111035622", Status: "PENDING", CreatedAt: time.Date(2025, 11, 28, 21, 45, 0, 0, time.UTC)},
		{ID: 36, SubscriberName: "little_toes_baheer", OrderID: "7499213111999", Phone: "201223130999", Status: "PENDING", CreatedAt: now},
		{ID: 37, SubscriberName: "different_store", OrderID: "7499213555555", Phone: "201005555555", Status: "CANCELLED", CreatedAt: now},
	}
}
