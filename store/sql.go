package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ordersight/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sqlClient serves order pages from a SQL database. Both drivers share
// the same query text; ? placeholders are rewritten to $n for Postgres.
type sqlClient struct {
	db     *sql.DB
	driver string
}

func openSQLite(path string) (*sqlClient, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	c := &sqlClient{db: db, driver: "sqlite"}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return c, nil
}

func openPostgres(cfg *config.PostgresConfig) (*sqlClient, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.User, cfg.Password, cfg.SSLMode)
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	c := &sqlClient{db: db, driver: "postgres"}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return c, nil
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	subscriber_name TEXT NOT NULL DEFAULT '',
	order_id TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_orders_subscriber ON orders(subscriber_name);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS orders (
	id BIGSERIAL PRIMARY KEY,
	subscriber_name TEXT NOT NULL DEFAULT '',
	order_id TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_orders_subscriber ON orders(subscriber_name);
`

func (c *sqlClient) migrate() error {
	var schema string
	switch c.driver {
	case "sqlite":
		schema = schemaSQLite
	case "postgres":
		schema = schemaPostgres
	default:
		return fmt.Errorf("no schema for driver: %s", c.driver)
	}
	_, err := c.db.Exec(schema)
	return err
}

// q rewrites ? placeholders for PostgreSQL, passes through for SQLite.
func (c *sqlClient) q(query string) string {
	if c.driver == "postgres" {
		return rebind(query)
	}
	return query
}

// rebind rewrites ? placeholders to $1, $2, ... for PostgreSQL.
func rebind(query string) string {
	n := 0
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteString(fmt.Sprintf("$%d", n))
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}

const orderSelectCols = `id, subscriber_name, order_id, phone, status, created_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var o Order
	var createdAt any
	err := row.Scan(&o.ID, &o.SubscriberName, &o.OrderID, &o.Phone, &o.Status, &createdAt)
	if err != nil {
		return Order{}, err
	}
	o.CreatedAt = parseTime(createdAt)
	return o, nil
}

func (c *sqlClient) FetchPage(ctx context.Context, subscriber string, offset, limit int) ([]Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if subscriber != "" {
		rows, err = c.db.QueryContext(ctx,
			c.q(`SELECT `+orderSelectCols+` FROM orders WHERE subscriber_name = ? ORDER BY id LIMIT ? OFFSET ?`),
			subscriber, limit, offset)
	} else {
		rows, err = c.db.QueryContext(ctx,
			c.q(`SELECT `+orderSelectCols+` FROM orders ORDER BY id LIMIT ? OFFSET ?`),
			limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch orders page: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// InsertOrder exists for seeding and tests; the dashboard itself never
// writes orders.
func (c *sqlClient) InsertOrder(ctx context.Context, o *Order) error {
	if c.driver == "sqlite" {
		result, err := c.db.ExecContext(ctx,
			`INSERT INTO orders (subscriber_name, order_id, phone, status, created_at) VALUES (?, ?, ?, ?, ?)`,
			o.SubscriberName, o.OrderID, o.Phone, o.Status, o.CreatedAt.Format("2006-01-02 15:04:05-07:00"))
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert order last id: %w", err)
		}
		o.ID = id
		return nil
	}
	err := c.db.QueryRowContext(ctx,
		rebind(`INSERT INTO orders (subscriber_name, order_id, phone, status, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`),
		o.SubscriberName, o.OrderID, o.Phone, o.Status, o.CreatedAt).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (c *sqlClient) Close() error { return c.db.Close() }
