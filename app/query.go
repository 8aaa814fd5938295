package app

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	claimtokentypes "github.com/openalpha/yieldfund/x/claimtoken/types"
	fckeeper "github.com/openalpha/yieldfund/x/fundcontroller/keeper"
	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
	fmkeeper "github.com/openalpha/yieldfund/x/fundmanager/keeper"
	venuesimtypes "github.com/openalpha/yieldfund/x/venuesim/types"
)

// InstanceStatus is one instance in the overview
type InstanceStatus struct {
	Name    string           `json:"name"`
	Address string           `json:"address"`
	Status  fundtypes.Status `json:"status"`
}

// Overview lists every instance and the claim token
type Overview struct {
	Height      int64                    `json:"height"`
	BaseDenom   string                   `json:"base_denom"`
	ClaimToken  claimtokentypes.Metadata `json:"claim_token"`
	TotalShares string                   `json:"total_shares"`
	Controllers []InstanceStatus         `json:"controllers"`
	Managers    []InstanceStatus         `json:"managers"`
}

// QueryOverview returns every instance and its status
func (app *FundApp) QueryOverview() (*Overview, error) {
	out := &Overview{Height: app.Height(), BaseDenom: app.cfg.BaseDenom}
	err := app.Query(func(ctx sdk.Context) error {
		out.ClaimToken = app.ClaimTokenKeeper.GetMetadata(ctx)
		out.TotalShares = app.ClaimTokenKeeper.TotalSupply(ctx).String()
		for _, k := range app.Controllers {
			out.Controllers = append(out.Controllers, InstanceStatus{
				Name: k.Name(), Address: k.Address().String(), Status: k.Status(ctx),
			})
		}
		for _, k := range app.Managers {
			out.Managers = append(out.Managers, InstanceStatus{
				Name: k.Name(), Address: k.Address().String(), Status: k.GetState(ctx).Status,
			})
		}
		return nil
	})
	return out, err
}

// QueryFund returns a manager's valuation and ledger
func (app *FundApp) QueryFund(instance string) (*fmkeeper.FundSummary, error) {
	var out *fmkeeper.FundSummary
	err := app.Query(func(ctx sdk.Context) error {
		k, err := app.manager(ctx, instance)
		if err != nil {
			return err
		}
		out, err = fmkeeper.NewQueryServerImpl(k).Fund(ctx)
		return err
	})
	return out, err
}

// QueryAccount returns one depositor's position in a manager
func (app *FundApp) QueryAccount(instance, address string) (*fmkeeper.AccountSummary, error) {
	if _, err := fundtypes.ParseAddress(address); err != nil {
		return nil, err
	}
	var out *fmkeeper.AccountSummary
	err := app.Query(func(ctx sdk.Context) error {
		k, err := app.manager(ctx, instance)
		if err != nil {
			return err
		}
		out, err = fmkeeper.NewQueryServerImpl(k).Account(ctx, address)
		return err
	})
	return out, err
}

// QueryController returns a controller's registry and balances
func (app *FundApp) QueryController(instance string) (*fckeeper.ControllerSummary, error) {
	var out *fckeeper.ControllerSummary
	err := app.Query(func(ctx sdk.Context) error {
		k, err := app.controller(ctx, instance)
		if err != nil {
			return err
		}
		out, err = fckeeper.NewQueryServerImpl(k).Summary(ctx)
		return err
	})
	return out, err
}

// QueryPools returns a controller's registry
func (app *FundApp) QueryPools(instance string) ([]fctypes.PoolEntry, error) {
	var out []fctypes.PoolEntry
	err := app.Query(func(ctx sdk.Context) error {
		k, err := app.controller(ctx, instance)
		if err != nil {
			return err
		}
		out, err = fckeeper.NewQueryServerImpl(k).Pools(ctx)
		return err
	})
	return out, err
}

// QueryPool returns one registry entry and its balance
func (app *FundApp) QueryPool(instance string, poolID uint64) (*fckeeper.PoolBalance, error) {
	var out *fckeeper.PoolBalance
	err := app.Query(func(ctx sdk.Context) error {
		k, err := app.controller(ctx, instance)
		if err != nil {
			return err
		}
		out, err = fckeeper.NewQueryServerImpl(k).Pool(ctx, poolID)
		return err
	})
	return out, err
}

// QueryMarkets returns every simulated venue market
func (app *FundApp) QueryMarkets() ([]venuesimtypes.Market, error) {
	var out []venuesimtypes.Market
	err := app.Query(func(ctx sdk.Context) error {
		out = app.VenueKeeper.GetAllMarkets(ctx)
		return nil
	})
	return out, err
}

// QueryBalance returns the base asset balance of an address
func (app *FundApp) QueryBalance(address string) (math.Int, error) {
	addr, err := fundtypes.ParseAddress(address)
	if err != nil {
		return math.Int{}, err
	}
	balance := math.ZeroInt()
	err = app.Query(func(ctx sdk.Context) error {
		balance = app.BankKeeper.GetBalance(ctx, addr, app.cfg.BaseDenom).Amount
		return nil
	})
	return balance, err
}
