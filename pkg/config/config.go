package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	API       APIConfig       `mapstructure:"api"`
	Rates     RatesConfig     `mapstructure:"rates"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Limiter   LimiterConfig   `mapstructure:"limiter"`
	Log       LogConfig       `mapstructure:"log"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowOrigins    []string      `mapstructure:"allow_origins"`
}

type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Version    string        `mapstructure:"version"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
}

type RatesConfig struct {
	Reference string        `mapstructure:"reference"`
	Date      string        `mapstructure:"date"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

type DashboardConfig struct {
	DefaultWealth   float64  `mapstructure:"default_wealth"`
	WealthStep      float64  `mapstructure:"wealth_step"`
	DefaultCurrency string   `mapstructure:"default_currency"`
	ClosestCount    int      `mapstructure:"closest_count"`
	Benchmarks      []string `mapstructure:"benchmarks"`
}

type LimiterConfig struct {
	// Rate in ulule/limiter format, e.g. "60-M". Empty disables limiting.
	Rate string `mapstructure:"rate"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8000")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("http.allow_origins", []string{"*"})

	v.SetDefault("api.base_url", "https://cdn.jsdelivr.net/gh/fawazahmed0/currency-api")
	v.SetDefault("api.version", "1")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.retry_count", 2)

	v.SetDefault("rates.reference", "eur")
	v.SetDefault("rates.date", "latest")
	v.SetDefault("rates.cache_ttl", "10m")

	v.SetDefault("dashboard.default_wealth", 10000)
	v.SetDefault("dashboard.wealth_step", 1000)
	v.SetDefault("dashboard.default_currency", "eur")
	v.SetDefault("dashboard.closest_count", 5)
	v.SetDefault("dashboard.benchmarks", []string{"eur", "usd", "jpy", "aud", "eth"})

	v.SetDefault("limiter.rate", "60-M")

	v.SetDefault("log.level", "info")
}

// Load reads config.yml from the given directories (default "configs") and
// applies environment overrides: http.port -> HTTP_PORT and so on. PORT is
// honoured as well.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
		logrus.Info("config file not found, using defaults and environment")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.HTTP.Port = port
	}
	if cfg.Dashboard.WealthStep <= 0 {
		cfg.Dashboard.WealthStep = 1000
	}
	return cfg, nil
}
