package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "https://api.spacetraders.io/v2"
	MaxPageSize    = 20
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL           string  `yaml:"base_url"`
		Token             string  `yaml:"token"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		MaxRetries        *int    `yaml:"max_retries"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"api"`
	Proxy string `yaml:"proxy"`
	Cache struct {
		TTLAgent     int `yaml:"ttl_agent"`
		TTLShips     int `yaml:"ttl_ships"`
		TTLContracts int `yaml:"ttl_contracts"`
		TTLSystems   int `yaml:"ttl_systems"`
		TTLWaypoints int `yaml:"ttl_waypoints"`
		TTLMarket    int `yaml:"ttl_market"`
		TTLShipyard  int `yaml:"ttl_shipyard"`
	} `yaml:"cache"`
	Pagination struct {
		PageSize int `yaml:"page_size"`
		MaxPages int `yaml:"max_pages"`
	} `yaml:"pagination"`
	Schedule struct {
		FleetCron    string `yaml:"fleet_cron"`
		ContractCron string `yaml:"contract_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Journal struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"journal"`
}

// Path returns the config file location, CONFIG_PATH when set.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SPACETRADERS_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("SPACETRADERS_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("JOURNAL_SQLITE_PATH"); v != "" {
		cfg.Journal.SQLitePath = v
	}
	if v := os.Getenv("CRON_FLEET"); v != "" {
		cfg.Schedule.FleetCron = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 30
	}
	if c.API.MaxRetries == nil {
		n := 4
		c.API.MaxRetries = &n
	}
	if c.API.RequestsPerSecond == 0 {
		c.API.RequestsPerSecond = 2
	}
	if c.API.Burst == 0 {
		c.API.Burst = 10
	}
	defaultInt(&c.Cache.TTLAgent, 60)
	defaultInt(&c.Cache.TTLShips, 30)
	defaultInt(&c.Cache.TTLContracts, 60)
	defaultInt(&c.Cache.TTLSystems, 300)
	defaultInt(&c.Cache.TTLWaypoints, 300)
	defaultInt(&c.Cache.TTLMarket, 120)
	defaultInt(&c.Cache.TTLShipyard, 300)
	defaultInt(&c.Pagination.PageSize, MaxPageSize)
	defaultInt(&c.Pagination.MaxPages, 5)
	if c.Schedule.FleetCron == "" {
		c.Schedule.FleetCron = "0 */1 * * * *"
	}
	if c.Schedule.ContractCron == "" {
		c.Schedule.ContractCron = "0 0 */1 * * *"
	}
	if c.Journal.SQLitePath == "" {
		c.Journal.SQLitePath = ":memory:"
	}
}

func defaultInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.API.Token == "" {
		return fmt.Errorf("api.token is required (or set SPACETRADERS_TOKEN)")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.MaxRetries != nil && *c.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must not be negative")
	}
	if c.Pagination.PageSize < 1 || c.Pagination.PageSize > MaxPageSize {
		return fmt.Errorf("pagination.page_size must be between 1 and %d, got %d", MaxPageSize, c.Pagination.PageSize)
	}
	if c.Pagination.MaxPages < 1 {
		return fmt.Errorf("pagination.max_pages must be at least 1")
	}
	if c.API.RequestsPerSecond < 0 || c.API.Burst < 0 {
		return fmt.Errorf("api rate limit must not be negative")
	}
	return nil
}

// Timeout is the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Retries is the retry budget for retryable responses.
func (c *Config) Retries() int {
	if c.API.MaxRetries == nil {
		return 4
	}
	return *c.API.MaxRetries
}

// TelegramEnabled reports whether alerts can be delivered.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
