package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	mu sync.RWMutex `yaml:"-"`

	Web     WebConfig     `yaml:"web"`
	Store   StoreConfig   `yaml:"store"`
	Auth    AuthConfig    `yaml:"auth"`
	Display DisplayConfig `yaml:"display"`
}

type WebConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	SessionSecret string `yaml:"session_secret"`
}

// StoreConfig selects the order store backend once at startup. The
// backend is never switched at call sites after Open.
type StoreConfig struct {
	Backend  string         `yaml:"backend"` // postgres | sqlite | rest | fixture
	PageSize int            `yaml:"page_size"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	REST     RESTConfig     `yaml:"rest"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type RESTConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Table   string        `yaml:"table"`
	Timeout time.Duration `yaml:"timeout"`
}

// AuthConfig holds the placeholder login secrets. These are fixed shared
// secrets, not a security boundary; a real deployment swaps the resolver
// for a credential service.
type AuthConfig struct {
	AdminPassword      string `yaml:"admin_password"`
	SubscriberPassword string `yaml:"subscriber_password"`
}

type DisplayConfig struct {
	TimeZone string `yaml:"time_zone"`
}

func Defaults() *Config {
	return &Config{
		Web: WebConfig{
			Host:          "0.0.0.0",
			Port:          8084,
			SessionSecret: "change-me-in-production",
		},
		Store: StoreConfig{
			Backend:  "fixture",
			PageSize: 1000,
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "ordersight",
				User:     "ordersight",
				Password: "",
				SSLMode:  "disable",
			},
			SQLite: SQLiteConfig{Path: "ordersight.db"},
			REST: RESTConfig{
				BaseURL: "",
				APIKey:  "",
				Table:   "Orders",
				Timeout: 10 * time.Second,
			},
		},
		Auth: AuthConfig{
			AdminPassword:      "1234",
			SubscriberPassword: "1234",
		},
		Display: DisplayConfig{
			TimeZone: "Local",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Location resolves the configured display time zone. Date-range
// boundaries are interpreted in this zone, not UTC.
func (c *Config) Location() (*time.Location, error) {
	name := c.Display.TimeZone
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("config: load time zone %q: %w", name, err)
	}
	return loc, nil
}
