// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Chain     ChainConfig     `mapstructure:"chain"`
	Yield     YieldConfig     `mapstructure:"yield"`
	Subgraph  SubgraphConfig  `mapstructure:"subgraph"`
	Staking   StakingConfig   `mapstructure:"staking"`
	Presale   PresaleConfig   `mapstructure:"presale"`
	Ethereum  EthereumConfig  `mapstructure:"ethereum"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// ChainConfig holds the block timing of the target chain.
type ChainConfig struct {
	ChainID         uint64  `mapstructure:"chain_id"`
	SecondsPerBlock float64 `mapstructure:"seconds_per_block"`
	SecondsPerYear  int64   `mapstructure:"seconds_per_year"`
	RewardRateScale float64 `mapstructure:"reward_rate_scale"` // dual-vault per-block rate multiplier
}

// SecondsPerBlockDecimal returns seconds per block as decimal.Decimal.
func (c *ChainConfig) SecondsPerBlockDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.SecondsPerBlock)
}

// RewardRateScaleDecimal returns the dual-vault rate scale as decimal.Decimal.
func (c *ChainConfig) RewardRateScaleDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.RewardRateScale)
}

// YieldConfig holds vault evaluation settings.
type YieldConfig struct {
	SnapshotPath   string        `mapstructure:"snapshot_path"`
	SingleVaultAMM string        `mapstructure:"single_vault_amm"`
	DualVaultAMM   string        `mapstructure:"dual_vault_amm"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	ScanInterval   time.Duration `mapstructure:"scan_interval"`
}

// SubgraphConfig holds AMM subgraph endpoints and client limits.
type SubgraphConfig struct {
	Endpoints         map[string]string  `mapstructure:"endpoints"` // amm -> GraphQL URL
	LPFees            map[string]float64 `mapstructure:"lp_fees"`   // amm -> fee fraction
	RequestTimeout    time.Duration      `mapstructure:"request_timeout"`
	RequestsPerMinute int                `mapstructure:"requests_per_minute"`
	CacheTTL          time.Duration      `mapstructure:"cache_ttl"`
	CacheMaxEntries   int64              `mapstructure:"cache_max_entries"`
}

// LPFeeDecimal returns the LP fee configured for amm.
func (c *SubgraphConfig) LPFeeDecimal(amm string) (decimal.Decimal, bool) {
	fee, ok := c.LPFees[strings.ToLower(amm)]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(fee), true
}

// StakingConfig optionally replaces the built-in staking pool list.
type StakingConfig struct {
	Pools []StakingPoolConfig `mapstructure:"pools"`
}

// StakingPoolConfig describes one staking pool.
type StakingPoolConfig struct {
	Address        string         `mapstructure:"address"`
	PoolSite       string         `mapstructure:"pool_site"`
	RewardEndBlock uint64         `mapstructure:"reward_end_block"`
	Disabled       bool           `mapstructure:"disabled"`
	Active         bool           `mapstructure:"active"`
	Special        bool           `mapstructure:"special"`
	StakeToken     TokenRefConfig `mapstructure:"stake_token"`
	RewardToken    TokenRefConfig `mapstructure:"reward_token"`
}

// TokenRefConfig identifies a token.
type TokenRefConfig struct {
	Address  string `mapstructure:"address"`
	Symbol   string `mapstructure:"symbol"`
	Decimals uint8  `mapstructure:"decimals"`
}

// PresaleConfig holds the pre-sale and redeem blocks.
type PresaleConfig struct {
	StartBlock uint64 `mapstructure:"start_block"`
	EndBlock   uint64 `mapstructure:"end_block"`
	SwapBlock  uint64 `mapstructure:"swap_block"`
}

// Enabled reports whether a pre-sale window is configured.
func (c *PresaleConfig) Enabled() bool {
	return c.EndBlock > 0
}

// EthereumConfig holds the JSON-RPC endpoint used for block height reads.
type EthereumConfig struct {
	HTTPURL        string        `mapstructure:"http_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// StorageConfig holds yield history settings. Empty path disables recording.
type StorageConfig struct {
	SQLitePath string        `mapstructure:"sqlite_path"`
	Retention  time.Duration `mapstructure:"retention"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	TraceProvider  string `mapstructure:"trace_provider"` // zipkin, otlp-grpc, otlp-http, console
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
	HealthPort     int    `mapstructure:"health_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("HERMES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "HERMES_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "HERMES_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "HERMES_LOG_LEVEL", "LOG_LEVEL")

	// Chain
	v.BindEnv("chain.chain_id", "HERMES_CHAIN_ID", "CHAIN_ID")

	// Yield
	v.BindEnv("yield.snapshot_path", "HERMES_SNAPSHOT")

	// Subgraph
	v.BindEnv("subgraph.endpoints.quickswap", "HERMES_SUBGRAPH_QUICKSWAP")
	v.BindEnv("subgraph.endpoints.dfyn", "HERMES_SUBGRAPH_DFYN")

	// Ethereum
	v.BindEnv("ethereum.http_url", "HERMES_RPC_URL", "POLYGON_RPC_URL")

	// Storage
	v.BindEnv("storage.sqlite_path", "HERMES_SQLITE_PATH")

	// Telemetry
	v.BindEnv("telemetry.enabled", "HERMES_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "HERMES_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "HERMES_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "hermes-yield")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Polygon PoS
	v.SetDefault("chain.chain_id", 137)
	v.SetDefault("chain.seconds_per_block", 2)
	v.SetDefault("chain.seconds_per_year", 31536000)
	v.SetDefault("chain.reward_rate_scale", 3)

	// Yield defaults
	v.SetDefault("yield.single_vault_amm", "quickswap")
	v.SetDefault("yield.dual_vault_amm", "dfyn")
	v.SetDefault("yield.snapshot_path", "snapshot.yaml")
	v.SetDefault("yield.max_concurrency", 8)
	v.SetDefault("yield.scan_interval", "1m")

	// Subgraph defaults
	v.SetDefault("subgraph.endpoints", map[string]any{
		"quickswap": "https://api.thegraph.com/subgraphs/name/sameepsi/quickswap06",
		"dfyn":      "https://api.thegraph.com/subgraphs/name/ss-sonic/dfyn-v5",
	})
	v.SetDefault("subgraph.lp_fees", map[string]any{
		"quickswap": 0.0025,
		"dfyn":      0.003,
	})
	v.SetDefault("subgraph.request_timeout", "10s")
	v.SetDefault("subgraph.requests_per_minute", 120)
	v.SetDefault("subgraph.cache_ttl", "5m")
	v.SetDefault("subgraph.cache_max_entries", 1024)

	// Storage defaults
	v.SetDefault("storage.retention", "720h")

	// Ethereum defaults
	v.SetDefault("ethereum.request_timeout", "10s")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "hermes-yield")
	v.SetDefault("telemetry.trace_provider", "zipkin")
	v.SetDefault("telemetry.prometheus_port", 9090)
	v.SetDefault("telemetry.health_port", 8080)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Chain.SecondsPerBlock <= 0 {
		return fmt.Errorf("chain.seconds_per_block must be positive")
	}
	if c.Chain.SecondsPerYear <= 0 {
		return fmt.Errorf("chain.seconds_per_year must be positive")
	}
	if c.Chain.RewardRateScale <= 0 {
		return fmt.Errorf("chain.reward_rate_scale must be positive")
	}
	if c.Yield.MaxConcurrency <= 0 {
		return fmt.Errorf("yield.max_concurrency must be positive")
	}
	if c.Yield.ScanInterval <= 0 {
		return fmt.Errorf("yield.scan_interval must be positive")
	}
	for _, amm := range []string{c.Yield.SingleVaultAMM, c.Yield.DualVaultAMM} {
		if _, ok := c.Subgraph.Endpoints[strings.ToLower(amm)]; !ok {
			return fmt.Errorf("subgraph.endpoints has no entry for amm %q", amm)
		}
		fee, ok := c.Subgraph.LPFees[strings.ToLower(amm)]
		if !ok {
			return fmt.Errorf("subgraph.lp_fees has no entry for amm %q", amm)
		}
		if fee < 0 || fee >= 1 {
			return fmt.Errorf("subgraph.lp_fees.%s must be in [0, 1): %v", amm, fee)
		}
	}
	if c.Subgraph.RequestsPerMinute <= 0 {
		return fmt.Errorf("subgraph.requests_per_minute must be positive")
	}
	for i, p := range c.Staking.Pools {
		if !common.IsHexAddress(p.Address) {
			return fmt.Errorf("invalid staking.pools[%d].address: %s", i, p.Address)
		}
		if !common.IsHexAddress(p.StakeToken.Address) || !common.IsHexAddress(p.RewardToken.Address) {
			return fmt.Errorf("invalid token address in staking.pools[%d]", i)
		}
		for _, tok := range []TokenRefConfig{p.StakeToken, p.RewardToken} {
			if tok.Symbol == "" {
				return fmt.Errorf("staking.pools[%d]: token %s has no symbol", i, tok.Address)
			}
			if tok.Decimals > 30 {
				return fmt.Errorf("staking.pools[%d]: token %s decimals out of range", i, tok.Symbol)
			}
		}
	}
	if c.Presale.Enabled() && c.Presale.StartBlock > c.Presale.EndBlock {
		return fmt.Errorf("presale.start_block must not exceed presale.end_block")
	}
	return nil
}
