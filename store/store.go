package store

import (
	"context"
	"errors"
	"fmt"

	"ordersight/config"
)

// ErrUnsupportedBackend reports a store.backend value Open does not know.
var ErrUnsupportedBackend = errors.New("unsupported store backend")

// Client is the paged-fetch capability the dashboard pipeline drains.
// subscriber scopes the request to one subscriber's rows when non-empty;
// an empty subscriber requests all rows. Implementations must apply the
// scope inside the store query itself, not on the returned rows.
type Client interface {
	// FetchPage returns up to limit rows starting at offset, ordered by id.
	FetchPage(ctx context.Context, subscriber string, offset, limit int) ([]Order, error)
	Close() error
}

// Open selects the configured backend. Selection happens exactly once
// here; callers hold only the Client interface afterwards.
func Open(cfg *config.StoreConfig) (Client, error) {
	switch cfg.Backend {
	case "sqlite":
		return openSQLite(cfg.SQLite.Path)
	case "postgres":
		return openPostgres(&cfg.Postgres)
	case "rest":
		return newRESTClient(&cfg.REST)
	case "fixture":
		return NewFixture(FixtureOrders()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, cfg.Backend)
	}
}
