package app

import (
	"encoding/json"
	"fmt"
	"os"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	claimtokentypes "github.com/openalpha/yieldfund/x/claimtoken/types"
	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
	fmtypes "github.com/openalpha/yieldfund/x/fundmanager/types"
	venuesimtypes "github.com/openalpha/yieldfund/x/venuesim/types"
)

// GenesisBalance funds an account at genesis
type GenesisBalance struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

// ClaimTokenGenesis is the claim token section of genesis
type ClaimTokenGenesis struct {
	Metadata claimtokentypes.Metadata `json:"metadata"`
	Minters  []string                 `json:"minters"`
}

// ControllerGenesis names a controller instance and its initial state
type ControllerGenesis struct {
	Name    string               `json:"name"`
	Genesis fctypes.GenesisState `json:"genesis"`
}

// ManagerGenesis names a manager instance and its initial state
type ManagerGenesis struct {
	Name    string               `json:"name"`
	Genesis fmtypes.GenesisState `json:"genesis"`
}

// AppGenesis is the full initial state of a node
type AppGenesis struct {
	Balances    []GenesisBalance       `json:"balances"`
	Markets     []venuesimtypes.Market `json:"markets"`
	ClaimToken  ClaimTokenGenesis      `json:"claim_token"`
	Controllers []ControllerGenesis    `json:"controllers"`
	Managers    []ManagerGenesis       `json:"managers"`
}

// DefaultGenesis builds genesis from configuration. The i-th manager fronts
// the i-th controller and only the first manager may mint claim tokens.
func (app *FundApp) DefaultGenesis() AppGenesis {
	cfg := app.cfg
	gen := AppGenesis{
		ClaimToken: ClaimTokenGenesis{Metadata: claimtokentypes.DefaultMetadata()},
	}

	var pools []fctypes.PoolEntry
	for _, m := range cfg.Markets {
		gen.Markets = append(gen.Markets, venuesimtypes.Market{
			Venue:                 m.Venue,
			Market:                m.Market,
			Denom:                 cfg.BaseDenom,
			DepositFeeBps:         m.DepositFeeBps,
			WithdrawFeeBps:        m.WithdrawFeeBps,
			RequiresApproval:      m.RequiresApproval,
			RequiresShareApproval: m.RequiresShareApproval,
		})
		pools = append(pools, fctypes.PoolEntry{
			PoolID:  m.PoolID,
			Venue:   fctypes.Venue(m.Venue),
			Market:  m.Market,
			Enabled: true,
		})
	}

	limit, ok := math.NewIntFromString(cfg.DefaultAccountLimit)
	if !ok {
		limit = math.ZeroInt()
	}

	for i, c := range app.Controllers {
		gs := fctypes.DefaultGenesis()
		gs.Params.BaseDenom = cfg.BaseDenom
		gs.Params.MaxPools = cfg.MaxPools
		gs.Params.MigrationDustBps = cfg.MigrationDustBps
		gs.State.Owner = cfg.Owner
		gs.State.Rebalancer = cfg.Rebalancer
		if i < len(app.Managers) {
			gs.State.FundManager = app.Managers[i].Address().String()
		}
		gs.Pools = append([]fctypes.PoolEntry(nil), pools...)
		gen.Controllers = append(gen.Controllers, ControllerGenesis{Name: c.Name(), Genesis: gs})
	}

	for i, m := range app.Managers {
		gs := fmtypes.DefaultGenesis()
		gs.Params.BaseDenom = cfg.BaseDenom
		gs.State.Owner = cfg.Owner
		gs.State.Rebalancer = cfg.Rebalancer
		gs.State.FeeMasterBeneficiary = cfg.FeeBeneficiary
		gs.State.InterestFeeRateBps = cfg.InterestFeeBps
		gs.State.DefaultAccountLimit = limit
		if i < len(app.Controllers) {
			gs.State.FundController = app.Controllers[i].Address().String()
		}
		gen.Managers = append(gen.Managers, ManagerGenesis{Name: m.Name(), Genesis: gs})
	}
	if len(app.Managers) > 0 {
		gen.ClaimToken.Minters = []string{app.Managers[0].Address().String()}
	}
	return gen
}

// Validate checks genesis against the instances the app was built with
func (gen AppGenesis) Validate() error {
	for _, b := range gen.Balances {
		if _, err := fundtypes.ParseAddress(b.Address); err != nil {
			return err
		}
		if amt, ok := math.NewIntFromString(b.Amount); !ok || amt.IsNegative() {
			return fmt.Errorf("invalid genesis balance %q for %s", b.Amount, b.Address)
		}
	}
	for _, m := range gen.Markets {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	for _, c := range gen.Controllers {
		if err := c.Genesis.Validate(); err != nil {
			return fmt.Errorf("controller %s: %w", c.Name, err)
		}
	}
	for _, m := range gen.Managers {
		if err := m.Genesis.Validate(); err != nil {
			return fmt.Errorf("manager %s: %w", m.Name, err)
		}
	}
	return nil
}

// InitChain writes genesis and commits the first version.
func (app *FundApp) InitChain(gen AppGenesis) error {
	if app.Initialized() {
		return fmt.Errorf("genesis already committed at height %d", app.Height())
	}
	if err := gen.Validate(); err != nil {
		return err
	}

	controllers := make(map[string]ControllerGenesis, len(gen.Controllers))
	for _, c := range gen.Controllers {
		controllers[c.Name] = c
	}
	managers := make(map[string]ManagerGenesis, len(gen.Managers))
	for _, m := range gen.Managers {
		managers[m.Name] = m
	}

	_, err := app.Execute(func(ctx sdk.Context) error {
		for _, b := range gen.Balances {
			addr, _ := sdk.AccAddressFromBech32(b.Address)
			amt, _ := math.NewIntFromString(b.Amount)
			if !amt.IsPositive() {
				continue
			}
			if err := app.BankKeeper.MintCoins(ctx, addr, sdk.NewCoins(sdk.NewCoin(app.cfg.BaseDenom, amt))); err != nil {
				return err
			}
		}
		for _, m := range gen.Markets {
			if err := app.VenueKeeper.CreateMarket(ctx, m); err != nil {
				return err
			}
		}

		app.ClaimTokenKeeper.InitGenesis(ctx, gen.ClaimToken.Metadata, gen.ClaimToken.Minters)

		for _, k := range app.Controllers {
			gs := fctypes.DefaultGenesis()
			if c, ok := controllers[k.Name()]; ok {
				gs = c.Genesis
			}
			if err := k.InitGenesis(ctx, gs); err != nil {
				return fmt.Errorf("controller %s: %w", k.Name(), err)
			}
		}
		for _, k := range app.Managers {
			gs := fmtypes.DefaultGenesis()
			if m, ok := managers[k.Name()]; ok {
				gs = m.Genesis
			}
			if err := k.InitGenesis(ctx, gs); err != nil {
				return fmt.Errorf("manager %s: %w", k.Name(), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	app.logger.Info("Genesis committed", "markets", len(gen.Markets), "balances", len(gen.Balances))
	return nil
}

// ExportGenesis dumps the fund instances and markets. Bank balances are not
// enumerable and are left out.
func (app *FundApp) ExportGenesis() (AppGenesis, error) {
	var gen AppGenesis
	err := app.Query(func(ctx sdk.Context) error {
		gen.Markets = app.VenueKeeper.GetAllMarkets(ctx)
		gen.ClaimToken = ClaimTokenGenesis{
			Metadata: app.ClaimTokenKeeper.GetMetadata(ctx),
			Minters:  app.ClaimTokenKeeper.GetMinters(ctx),
		}
		for _, k := range app.Controllers {
			gen.Controllers = append(gen.Controllers, ControllerGenesis{Name: k.Name(), Genesis: k.ExportGenesis(ctx)})
		}
		for _, k := range app.Managers {
			gen.Managers = append(gen.Managers, ManagerGenesis{Name: k.Name(), Genesis: k.ExportGenesis(ctx)})
		}
		return nil
	})
	return gen, err
}

// LoadGenesis reads genesis JSON from path
func LoadGenesis(path string) (AppGenesis, error) {
	var gen AppGenesis
	bz, err := os.ReadFile(path)
	if err != nil {
		return gen, err
	}
	if err := json.Unmarshal(bz, &gen); err != nil {
		return gen, fmt.Errorf("failed to parse genesis %s: %w", path, err)
	}
	return gen, nil
}

// WriteGenesis writes genesis JSON to path
func WriteGenesis(path string, gen AppGenesis) error {
	bz, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o644)
}
