package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Ticker is one fixed instrument in the tickers endpoint configuration.
type Ticker struct {
	Symbol  string `yaml:"symbol"`
	Name    string `yaml:"name"`
	Display string `yaml:"display"`
	Crypto  bool   `yaml:"crypto"`
}

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
	Yahoo struct {
		BaseURL   string        `yaml:"base_url"`
		UserAgent string        `yaml:"user_agent"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"yahoo"`
	Tickers      []Ticker `yaml:"tickers"`
	SectionsFile string   `yaml:"sections_file"`
	Fetch        struct {
		MaxConcurrent int `yaml:"max_concurrent"`
	} `yaml:"fetch"`
	Cache struct {
		Enabled bool          `yaml:"enabled"`
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Stream struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
		Kafka    struct {
			Enabled      bool          `yaml:"enabled"`
			Brokers      []string      `yaml:"brokers"`
			Topic        string        `yaml:"topic"`
			RequiredAcks int           `yaml:"required_acks"`
			Compression  string        `yaml:"compression"`
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchSize    int           `yaml:"batch_size"`
			BatchBytes   int           `yaml:"batch_bytes"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"kafka"`
	} `yaml:"stream"`
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

	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		c.Yahoo.BaseURL = v
	}
	if v := os.Getenv("SECTIONS_FILE"); v != "" {
		c.SectionsFile = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Stream.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Stream.Kafka.Topic = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Yahoo.BaseURL == "" {
		return fmt.Errorf("yahoo.base_url is required")
	}
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers cannot be empty")
	}
	for i, t := range c.Tickers {
		if t.Symbol == "" {
			return fmt.Errorf("tickers[%d].symbol is required", i)
		}
	}
	if c.Stream.Enabled && c.Stream.Interval <= 0 {
		return fmt.Errorf("stream.interval must be positive when stream is enabled")
	}
	if c.Stream.Kafka.Enabled && len(c.Stream.Kafka.Brokers) == 0 {
		return fmt.Errorf("stream.kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}
