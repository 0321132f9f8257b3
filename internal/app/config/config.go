package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	SequenceMemory   = "memory"
	SequencePostgres = "postgres"
	SequenceRedis    = "redis"
	SequenceMySQL    = "mysql"

	EngineGofpdf = "gofpdf"
	EngineHTML   = "html"
)

type Config struct {
	HTTPAddr        string         `yaml:"http_addr"`
	CORSAllowOrigin string         `yaml:"cors_allow_origin"`
	Quote           QuoteConfig    `yaml:"quote"`
	Sequence        SequenceConfig `yaml:"sequence"`
	Renderer        RendererConfig `yaml:"renderer"`
	Log             LogConfig      `yaml:"log"`
}

type QuoteConfig struct {
	Prefix        string `yaml:"prefix"`
	ApproverName  string `yaml:"approver_name"`
	ApproverTitle string `yaml:"approver_title"`
}

type SequenceConfig struct {
	Backend     string `yaml:"backend"`
	Name        string `yaml:"name"`
	DatabaseURL string `yaml:"database_url"`
	MySQLDSN    string `yaml:"mysql_dsn"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisPW     string `yaml:"redis_password"`
	RedisDB     int    `yaml:"redis_db"`
}

type RendererConfig struct {
	Engine       string        `yaml:"engine"`
	ChromePath   string        `yaml:"chrome_path"`
	NoSandbox    bool          `yaml:"no_sandbox"`
	AutoDownload bool          `yaml:"auto_download"`
	Timeout      time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		CORSAllowOrigin: "*",
		Quote: QuoteConfig{
			Prefix:        "ORC",
			ApproverName:  "Michael Sancivier",
			ApproverTitle: "Administrador",
		},
		Sequence: SequenceConfig{Backend: SequenceMemory},
		Renderer: RendererConfig{Engine: EngineGofpdf, Timeout: 30 * time.Second},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Path is the config file location, CONFIG_PATH or config.yaml.
func Path() string {
	return env("CONFIG_PATH", "config.yaml")
}

func (c Config) Validate() error {
	switch c.Sequence.Backend {
	case SequenceMemory:
	case SequencePostgres:
		if c.Sequence.DatabaseURL == "" {
			return fmt.Errorf("sequence backend %q needs DATABASE_URL", c.Sequence.Backend)
		}
	case SequenceMySQL:
		if c.Sequence.MySQLDSN == "" {
			return fmt.Errorf("sequence backend %q needs MYSQL_DSN", c.Sequence.Backend)
		}
	case SequenceRedis:
		if c.Sequence.RedisAddr == "" {
			return fmt.Errorf("sequence backend %q needs REDIS_ADDR", c.Sequence.Backend)
		}
	default:
		return fmt.Errorf("unknown sequence backend %q", c.Sequence.Backend)
	}
	switch c.Renderer.Engine {
	case EngineGofpdf, EngineHTML:
	default:
		return fmt.Errorf("unknown renderer engine %q", c.Renderer.Engine)
	}
	if c.Quote.Prefix == "" {
		return fmt.Errorf("quote prefix is empty")
	}
	return nil
}

func applyEnv(c *Config) error {
	c.HTTPAddr = env("HTTP_ADDR", c.HTTPAddr)
	c.CORSAllowOrigin = env("CORS_ALLOW_ORIGIN", c.CORSAllowOrigin)
	c.Quote.Prefix = env("QUOTE_PREFIX", c.Quote.Prefix)
	c.Quote.ApproverName = env("QUOTE_APPROVER_NAME", c.Quote.ApproverName)
	c.Quote.ApproverTitle = env("QUOTE_APPROVER_TITLE", c.Quote.ApproverTitle)
	c.Sequence.Backend = env("SEQUENCE_BACKEND", c.Sequence.Backend)
	c.Sequence.Name = env("SEQUENCE_NAME", c.Sequence.Name)
	c.Sequence.DatabaseURL = env("DATABASE_URL", c.Sequence.DatabaseURL)
	c.Sequence.MySQLDSN = env("MYSQL_DSN", c.Sequence.MySQLDSN)
	c.Sequence.RedisAddr = env("REDIS_ADDR", c.Sequence.RedisAddr)
	c.Sequence.RedisPW = env("REDIS_PASSWORD", c.Sequence.RedisPW)
	c.Renderer.Engine = env("RENDERER_ENGINE", c.Renderer.Engine)
	c.Renderer.ChromePath = env("CHROME_PATH", c.Renderer.ChromePath)
	c.Log.Level = env("LOG_LEVEL", c.Log.Level)

	var err error
	if c.Sequence.RedisDB, err = envInt("REDIS_DB", c.Sequence.RedisDB); err != nil {
		return err
	}
	if c.Renderer.NoSandbox, err = envBool("CHROME_NO_SANDBOX", c.Renderer.NoSandbox); err != nil {
		return err
	}
	if c.Renderer.AutoDownload, err = envBool("CHROME_AUTO_DOWNLOAD", c.Renderer.AutoDownload); err != nil {
		return err
	}
	if c.Log.Development, err = envBool("LOG_DEVELOPMENT", c.Log.Development); err != nil {
		return err
	}
	if v := os.Getenv("RENDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("RENDER_TIMEOUT: %w", err)
		}
		c.Renderer.Timeout = d
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func envBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
