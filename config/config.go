package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del bot.
type Config struct {
	Scanner ScannerConfig `yaml:"scanner"`
	Hold    HoldConfig    `yaml:"hold"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ScannerConfig controla el comportamiento del scanner.
type ScannerConfig struct {
	IntervalSeconds    int      `yaml:"interval_seconds"`
	Games              []string `yaml:"games"` // cs2 | dota2 | tf2 | rust
	Limit              int      `yaml:"limit"`
	MinPriceUSD        float64  `yaml:"min_price_usd"`
	MaxPriceUSD        float64  `yaml:"max_price_usd"`
	PriceDiffThreshold float64  `yaml:"price_diff_threshold"`
	FeeRate            float64  `yaml:"fee_rate"`
	MaxResults         int      `yaml:"max_results"`
	Workers            int      `yaml:"workers"`
	MinDiscountPct     float64  `yaml:"min_discount_pct"`
	MaxTradeLockHours  int      `yaml:"max_trade_lock_hours"`
	Blacklist          []string `yaml:"blacklist"` // vacío usa la lista por defecto
}

// HoldConfig controla el engine de hold.
type HoldConfig struct {
	MinHoldMultiplier float64 `yaml:"min_hold_multiplier"`
	CS2FloatMin       float64 `yaml:"cs2_float_min"`
	CS2FloatMax       float64 `yaml:"cs2_float_max"`
}

// PlatformConfig describe un marketplace externo para la comparación.
type PlatformConfig struct {
	Name    string  `yaml:"name"`
	BaseURL string  `yaml:"base_url"`
	SellFee float64 `yaml:"sell_fee"`
}

// APIConfig contiene los base URLs y credenciales de las APIs.
type APIConfig struct {
	MarketBase      string           `yaml:"market_base"`
	MarketAPIKey    string           `yaml:"market_api_key"`
	Platforms       []PlatformConfig `yaml:"platforms"` // vacío usa los defaults
	CacheTTLSeconds int              `yaml:"cache_ttl_seconds"`
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del entorno sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// ScanInterval devuelve el intervalo de escaneo como time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scanner.IntervalSeconds) * time.Second
}

// CacheTTL devuelve la vida útil de la cache de cotizaciones externas.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.API.CacheTTLSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("MARKET_API_KEY"); v != "" {
		cfg.API.MarketAPIKey = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Scanner.IntervalSeconds <= 0 {
		cfg.Scanner.IntervalSeconds = 60
	}
	if len(cfg.Scanner.Games) == 0 {
		cfg.Scanner.Games = []string{"cs2", "dota2", "tf2", "rust"}
	}
	if cfg.Scanner.Limit <= 0 {
		cfg.Scanner.Limit = 20
	}
	if cfg.Scanner.MinPriceUSD <= 0 {
		cfg.Scanner.MinPriceUSD = 1
	}
	if cfg.Scanner.MaxPriceUSD <= 0 {
		cfg.Scanner.MaxPriceUSD = 500
	}
	if cfg.Scanner.PriceDiffThreshold <= 0 {
		cfg.Scanner.PriceDiffThreshold = 10
	}
	if cfg.Scanner.FeeRate <= 0 {
		cfg.Scanner.FeeRate = 0.07
	}
	if cfg.Scanner.MaxResults <= 0 {
		cfg.Scanner.MaxResults = 20
	}
	if cfg.Scanner.MinDiscountPct <= 0 {
		cfg.Scanner.MinDiscountPct = 15
	}
	if cfg.Scanner.MaxTradeLockHours <= 0 {
		cfg.Scanner.MaxTradeLockHours = 168
	}
	if cfg.Hold.MinHoldMultiplier <= 0 {
		cfg.Hold.MinHoldMultiplier = 1.20
	}
	if cfg.Hold.CS2FloatMin <= 0 {
		cfg.Hold.CS2FloatMin = 0.001
	}
	if cfg.Hold.CS2FloatMax <= 0 {
		cfg.Hold.CS2FloatMax = 0.999
	}
	if cfg.API.CacheTTLSeconds <= 0 {
		cfg.API.CacheTTLSeconds = 300
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "skinbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
