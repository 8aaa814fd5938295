package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openalpha/yieldfund/app"
)

const (
	envPrefix      = "FUNDD"
	configFileName = "fundd.toml"
	genesisName    = "genesis.json"
)

func configDir(home string) string   { return filepath.Join(home, "config") }
func dataDir(home string) string     { return filepath.Join(home, "data") }
func configPath(home string) string  { return filepath.Join(configDir(home), configFileName) }
func genesisPath(home string) string { return filepath.Join(configDir(home), genesisName) }

func homeDir(cmd *cobra.Command) (string, error) {
	home, err := cmd.Flags().GetString(flagHome)
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", fmt.Errorf("--%s is required", flagHome)
	}
	return home, nil
}

// loadConfig reads <home>/config/fundd.toml over the defaults. FUNDD_*
// environment variables override keys present in the file, and --log-level
// overrides log_level.
func loadConfig(cmd *cobra.Command, home string) (app.Config, error) {
	cfg := app.DefaultConfig()

	v := viper.New()
	v.SetConfigFile(configPath(home))
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if f := cmd.Flags().Lookup(flagLogLevel); f != nil && f.Changed {
		if err := v.BindPFlag("log_level", f); err != nil {
			return cfg, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("no config at %s, run fundd init first", configPath(home))
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// writeConfig writes cfg as TOML to path
func writeConfig(path string, cfg app.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.MergeConfigMap(configMap(cfg)); err != nil {
		return err
	}
	return v.WriteConfigAs(path)
}

func configMap(cfg app.Config) map[string]interface{} {
	markets := make([]map[string]interface{}, 0, len(cfg.Markets))
	for _, m := range cfg.Markets {
		markets = append(markets, map[string]interface{}{
			"venue":                   m.Venue,
			"market":                  m.Market,
			"pool_id":                 m.PoolID,
			"deposit_fee_bps":         m.DepositFeeBps,
			"withdraw_fee_bps":        m.WithdrawFeeBps,
			"requires_approval":       m.RequiresApproval,
			"requires_share_approval": m.RequiresShareApproval,
		})
	}
	return map[string]interface{}{
		"log_level":             cfg.LogLevel,
		"base_denom":            cfg.BaseDenom,
		"owner":                 cfg.Owner,
		"rebalancer":            cfg.Rebalancer,
		"fee_beneficiary":       cfg.FeeBeneficiary,
		"interest_fee_bps":      cfg.InterestFeeBps,
		"default_account_limit": cfg.DefaultAccountLimit,
		"keeperdao_fee_bps":     cfg.KeeperDaoFeeBps,
		"max_pools":             cfg.MaxPools,
		"migration_dust_bps":    cfg.MigrationDustBps,
		"controllers":           cfg.Controllers,
		"managers":              cfg.Managers,
		"markets":               markets,
		"api": map[string]interface{}{
			"listen":     cfg.API.Listen,
			"rate_limit": cfg.API.RateLimit,
			"burst":      cfg.API.Burst,
		},
		"metrics": map[string]interface{}{
			"listen": cfg.Metrics.Listen,
		},
	}
}
