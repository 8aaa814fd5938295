package app

import (
	"fmt"

	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// MarketConfig describes a simulated venue market and the pool id it is
// registered under.
type MarketConfig struct {
	Venue                 string `mapstructure:"venue" json:"venue"`
	Market                string `mapstructure:"market" json:"market"`
	PoolID                uint64 `mapstructure:"pool_id" json:"pool_id"`
	DepositFeeBps         uint64 `mapstructure:"deposit_fee_bps" json:"deposit_fee_bps"`
	WithdrawFeeBps        uint64 `mapstructure:"withdraw_fee_bps" json:"withdraw_fee_bps"`
	RequiresApproval      bool   `mapstructure:"requires_approval" json:"requires_approval"`
	RequiresShareApproval bool   `mapstructure:"requires_share_approval" json:"requires_share_approval"`
}

// APIConfig configures the HTTP API
type APIConfig struct {
	Listen    string `mapstructure:"listen"`
	RateLimit int    `mapstructure:"rate_limit"`
	Burst     int    `mapstructure:"burst"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

// Config is the node configuration, loaded from <home>/config/fundd.toml.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	BaseDenom string `mapstructure:"base_denom"`

	Owner               string `mapstructure:"owner"`
	Rebalancer          string `mapstructure:"rebalancer"`
	FeeBeneficiary      string `mapstructure:"fee_beneficiary"`
	InterestFeeBps      uint64 `mapstructure:"interest_fee_bps"`
	DefaultAccountLimit string `mapstructure:"default_account_limit"`

	KeeperDaoFeeBps  uint64 `mapstructure:"keeperdao_fee_bps"`
	MaxPools         uint32 `mapstructure:"max_pools"`
	MigrationDustBps uint64 `mapstructure:"migration_dust_bps"`

	// Controllers and Managers name the instances. The first of each is live
	// at genesis; the rest stand by as upgrade targets.
	Controllers []string       `mapstructure:"controllers"`
	Managers    []string       `mapstructure:"managers"`
	Markets     []MarketConfig `mapstructure:"markets"`

	API     APIConfig     `mapstructure:"api"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		LogLevel:            "info",
		BaseDenom:           "aeth",
		InterestFeeBps:      0,
		DefaultAccountLimit: "0",
		KeeperDaoFeeBps:     64,
		MaxPools:            32,
		MigrationDustBps:    1,
		Controllers:         []string{"fundcontroller-v1", "fundcontroller-v2"},
		Managers:            []string{"fundmanager-v1", "fundmanager-v2"},
		Markets: []MarketConfig{
			{Venue: string(fctypes.VenueDydx), Market: "weth", PoolID: fctypes.PoolIDDydx, RequiresApproval: true},
			{Venue: string(fctypes.VenueCompound), Market: "ceth", PoolID: fctypes.PoolIDCompound},
			{Venue: string(fctypes.VenueKeeperDAO), Market: "eth", PoolID: fctypes.PoolIDKeeperDAO, DepositFeeBps: 64, RequiresShareApproval: true},
			{Venue: string(fctypes.VenueAave), Market: "eth", PoolID: fctypes.PoolIDAave},
			{Venue: string(fctypes.VenueAlpha), Market: "ibeth", PoolID: fctypes.PoolIDAlpha},
			{Venue: string(fctypes.VenueEnzyme), Market: "comptroller-1", PoolID: fctypes.PoolIDEnzyme, RequiresApproval: true},
			{Venue: string(fctypes.VenueFuse), Market: "fuse-18-eth", PoolID: fctypes.FirstFusePoolID},
		},
		API: APIConfig{
			Listen:    "127.0.0.1:8080",
			RateLimit: 100,
			Burst:     200,
		},
		Metrics: MetricsConfig{
			Listen: "127.0.0.1:9090",
		},
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.BaseDenom == "" {
		return fmt.Errorf("base_denom is required")
	}
	if len(c.Controllers) == 0 || len(c.Managers) == 0 {
		return fmt.Errorf("at least one controller and one manager are required")
	}
	seen := make(map[string]bool)
	for _, name := range append(append([]string{}, c.Controllers...), c.Managers...) {
		if name == "" || seen[name] {
			return fmt.Errorf("instance names must be unique and non-empty: %q", name)
		}
		seen[name] = true
	}
	if c.InterestFeeBps > 10_000 {
		return fmt.Errorf("interest_fee_bps must be at most 10000")
	}
	return nil
}
