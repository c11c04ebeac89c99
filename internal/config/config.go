package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is immutable after Load
// and passed explicitly into every component that needs it.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"AUTHORIZED_CHAT_ID"`
	} `yaml:"telegram"`
	Market struct {
		SymbolSuffix string `yaml:"symbol_suffix" envconfig:"SYMBOL_SUFFIX"`
		LookbackDays int    `yaml:"lookback_days" envconfig:"LOOKBACK_DAYS"`
	} `yaml:"market"`
	Sentiment struct {
		BaseURL string `yaml:"base_url" envconfig:"SENTIMENT_BASE_URL"`
		APIKey  string `yaml:"api_key" envconfig:"SENTIMENT_API_KEY"`
	} `yaml:"sentiment"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron" envconfig:"CRON_SCAN"`
	} `yaml:"schedule"`
	Budget struct {
		SwingLimit float64 `yaml:"swing_limit" envconfig:"SWING_LIMIT"`
		LongLimit  float64 `yaml:"long_limit" envconfig:"LONG_LIMIT"`
		StateFile  string  `yaml:"state_file" envconfig:"BUDGET_FILE"`
	} `yaml:"budget"`
	Portfolio struct {
		StateFile string `yaml:"state_file" envconfig:"PORT_FILE"`
	} `yaml:"portfolio"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies `.env` and environment
// variable overrides, then defaults.
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

	// .env is optional; absence is not an error.
	_ = godotenv.Load()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env overrides: %w", err)
	}

	// Defaults
	if cfg.Market.SymbolSuffix == "" {
		cfg.Market.SymbolSuffix = ".NS"
	}
	if cfg.Market.LookbackDays == 0 {
		cfg.Market.LookbackDays = 365
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 0 * * * *" // hourly
	}
	if cfg.Budget.SwingLimit == 0 {
		cfg.Budget.SwingLimit = 100000
	}
	if cfg.Budget.LongLimit == 0 {
		cfg.Budget.LongLimit = 200000
	}
	if cfg.Budget.StateFile == "" {
		cfg.Budget.StateFile = "data/budget.json"
	}
	if cfg.Portfolio.StateFile == "" {
		cfg.Portfolio.StateFile = "data/port.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/quantwatch.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Market.LookbackDays < 60 {
		return fmt.Errorf("market.lookback_days must be at least 60")
	}
	return nil
}
