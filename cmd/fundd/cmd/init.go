package cmd

import (
	"fmt"
	"os"
	"strings"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"

	"github.com/openalpha/yieldfund/app"
	fundtypes "github.com/openalpha/yieldfund/types"
)

const (
	flagOwner          = "owner"
	flagRebalancer     = "rebalancer"
	flagFeeBeneficiary = "fee-beneficiary"
	flagInterestFee    = "interest-fee-bps"
	flagFund           = "fund"
	flagOverwrite      = "overwrite"
)

// InitCmd writes a default config and genesis into the home directory
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config and genesis to the home directory",
		Long: `Write <home>/config/fundd.toml and <home>/config/genesis.json.

Example:
  fundd init --owner cosmos1... --fund cosmos1...=1000 --fund cosmos1...=250.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := homeDir(cmd)
			if err != nil {
				return err
			}
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			if _, err := os.Stat(configPath(home)); err == nil && !overwrite {
				return fmt.Errorf("%s already exists, pass --%s to replace it", configPath(home), flagOverwrite)
			}

			cfg := app.DefaultConfig()
			cfg.Owner, _ = cmd.Flags().GetString(flagOwner)
			cfg.Rebalancer, _ = cmd.Flags().GetString(flagRebalancer)
			cfg.FeeBeneficiary, _ = cmd.Flags().GetString(flagFeeBeneficiary)
			cfg.InterestFeeBps, _ = cmd.Flags().GetUint64(flagInterestFee)
			if cfg.Rebalancer == "" {
				cfg.Rebalancer = cfg.Owner
			}
			for _, addr := range []string{cfg.Owner, cfg.Rebalancer} {
				if _, err := fundtypes.ParseAddress(addr); err != nil {
					return err
				}
			}
			if cfg.FeeBeneficiary != "" {
				if _, err := fundtypes.ParseAddress(cfg.FeeBeneficiary); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			funds, _ := cmd.Flags().GetStringArray(flagFund)
			balances, err := parseBalances(funds)
			if err != nil {
				return err
			}

			gen, err := buildGenesis(cfg, balances)
			if err != nil {
				return err
			}
			if err := writeConfig(configPath(home), cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			if err := app.WriteGenesis(genesisPath(home), gen); err != nil {
				return fmt.Errorf("failed to write genesis: %w", err)
			}

			return printJSON(cmd, map[string]interface{}{
				"config":      configPath(home),
				"genesis":     genesisPath(home),
				"controllers": cfg.Controllers,
				"managers":    cfg.Managers,
				"markets":     len(gen.Markets),
				"balances":    len(gen.Balances),
			})
		},
	}

	cmd.Flags().String(flagOwner, "", "owner of every fund instance")
	cmd.Flags().String(flagRebalancer, "", "rebalancer address (defaults to the owner)")
	cmd.Flags().String(flagFeeBeneficiary, "", "interest fee beneficiary")
	cmd.Flags().Uint64(flagInterestFee, 0, "interest fee rate in basis points")
	cmd.Flags().StringArray(flagFund, nil, "genesis balance as address=units, repeatable")
	cmd.Flags().Bool(flagOverwrite, false, "replace an existing config and genesis")
	_ = cmd.MarkFlagRequired(flagOwner)

	return cmd
}

// parseBalances parses address=units pairs. Units are whole base asset and
// may carry decimals.
func parseBalances(pairs []string) ([]app.GenesisBalance, error) {
	balances := make([]app.GenesisBalance, 0, len(pairs))
	for _, pair := range pairs {
		addr, units, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --%s %q, expected address=units", flagFund, pair)
		}
		if _, err := fundtypes.ParseAddress(addr); err != nil {
			return nil, err
		}
		amount, err := fundtypes.ParseUnits(units)
		if err != nil {
			return nil, err
		}
		if err := fundtypes.RequirePositive(amount); err != nil {
			return nil, err
		}
		balances = append(balances, app.GenesisBalance{Address: addr, Amount: amount.String()})
	}
	return balances, nil
}

// buildGenesis derives genesis from a throwaway in-memory app so instance
// addresses match what the node will build.
func buildGenesis(cfg app.Config, balances []app.GenesisBalance) (app.AppGenesis, error) {
	tempApp, err := app.NewFundApp(dbm.NewMemDB(), log.NewNopLogger(), cfg)
	if err != nil {
		return app.AppGenesis{}, err
	}
	gen := tempApp.DefaultGenesis()
	gen.Balances = balances
	if err := gen.Validate(); err != nil {
		return app.AppGenesis{}, err
	}
	return gen, nil
}
