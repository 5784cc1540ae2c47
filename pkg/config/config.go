package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	DexScreener struct {
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		RateLimit int           `yaml:"rate_limit"` // requests per minute
	} `yaml:"dexscreener"`
	GeckoTerminal struct {
		Enabled   bool          `yaml:"enabled"`
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		RateLimit int           `yaml:"rate_limit"`
	} `yaml:"geckoterminal"`
	Helius struct {
		Enabled bool          `yaml:"enabled"`
		RPCURL  string        `yaml:"rpc_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"helius"`
	Wallets struct {
		Enabled bool          `yaml:"enabled"`
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"wallets"`
	Analyzer struct {
		CacheTTL struct {
			Analysis time.Duration `yaml:"analysis"`
			DevTrust time.Duration `yaml:"dev_trust"`
			Wallet   time.Duration `yaml:"wallet"`
		} `yaml:"cache_ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
		Rescan struct {
			Enabled  bool          `yaml:"enabled"`
			Interval time.Duration `yaml:"interval"`
			Workers  int           `yaml:"workers"`
		} `yaml:"rescan"`
	} `yaml:"analyzer"`
	Alerts struct {
		Enabled      bool          `yaml:"enabled"`
		MinRiskScore int           `yaml:"min_risk_score"` // publish at or above
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
	} `yaml:"alerts"`
	History struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"history"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("HELIUS_API_KEY"); v != "" {
		c.Helius.APIKey = v
	}
	if v := os.Getenv("WALLETS_API_KEY"); v != "" {
		c.Wallets.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Analyzer.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.DexScreener.BaseURL == "" {
		return fmt.Errorf("dexscreener.base_url is required")
	}
	if c.GeckoTerminal.Enabled && c.GeckoTerminal.BaseURL == "" {
		return fmt.Errorf("geckoterminal.base_url is required when enabled")
	}
	if c.Helius.Enabled && c.Helius.RPCURL == "" {
		return fmt.Errorf("helius.rpc_url is required when enabled")
	}
	if c.Alerts.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when alerts are enabled")
	}
	if c.History.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when history is enabled")
	}
	return nil
}
