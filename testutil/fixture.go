// Package testutil builds a fully wired fund app on an in-memory database
// for keeper, api and metrics tests.
package testutil

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/yieldfund/app"
	fundtypes "github.com/openalpha/yieldfund/types"
	fckeeper "github.com/openalpha/yieldfund/x/fundcontroller/keeper"
	fmkeeper "github.com/openalpha/yieldfund/x/fundmanager/keeper"
)

// GenesisFunding is the base asset every test user starts with.
var GenesisFunding = fundtypes.Units(1_000)

// Addr derives a deterministic bech32 address for a test principal.
func Addr(name string) string {
	return authtypes.NewModuleAddress("test/" + name).String()
}

// Fixture is a committed genesis plus a context for driving keepers directly.
type Fixture struct {
	T   testing.TB
	App *app.FundApp
	Ctx sdk.Context

	Controller     *fckeeper.Keeper
	NextController *fckeeper.Keeper
	Manager        *fmkeeper.Keeper
	NextManager    *fmkeeper.Keeper

	Owner       string
	Rebalancer  string
	Beneficiary string
	Alice       string
	Bob         string
	Carol       string
}

// Setup builds the default two-generation deployment. Alice, Bob and Carol
// hold GenesisFunding of base asset.
func Setup(t testing.TB, opts ...func(*app.Config)) *Fixture {
	t.Helper()

	cfg := app.DefaultConfig()
	cfg.Owner = Addr("owner")
	cfg.Rebalancer = Addr("rebalancer")
	cfg.FeeBeneficiary = Addr("beneficiary")
	for _, opt := range opts {
		opt(&cfg)
	}

	fundApp, err := app.NewFundApp(dbm.NewMemDB(), log.NewNopLogger(), cfg)
	require.NoError(t, err)

	f := &Fixture{
		T:           t,
		App:         fundApp,
		Owner:       cfg.Owner,
		Rebalancer:  cfg.Rebalancer,
		Beneficiary: cfg.FeeBeneficiary,
		Alice:       Addr("alice"),
		Bob:         Addr("bob"),
		Carol:       Addr("carol"),
	}

	gen := fundApp.DefaultGenesis()
	for _, user := range []string{f.Alice, f.Bob, f.Carol} {
		gen.Balances = append(gen.Balances, app.GenesisBalance{Address: user, Amount: GenesisFunding.String()})
	}
	require.NoError(t, fundApp.InitChain(gen))

	f.Ctx = fundApp.NewUncachedContext()
	f.Controller = fundApp.Controllers[0]
	f.Manager = fundApp.Managers[0]
	if len(fundApp.Controllers) > 1 {
		f.NextController = fundApp.Controllers[1]
	}
	if len(fundApp.Managers) > 1 {
		f.NextManager = fundApp.Managers[1]
	}
	return f
}

// BaseDenom returns the configured base asset denom
func (f *Fixture) BaseDenom() string {
	return f.App.Config().BaseDenom
}

// Balance returns the base asset balance of addr
func (f *Fixture) Balance(addr string) math.Int {
	acc, err := sdk.AccAddressFromBech32(addr)
	require.NoError(f.T, err)
	return f.App.BankKeeper.GetBalance(f.Ctx, acc, f.BaseDenom()).Amount
}

// Mint credits base asset to addr
func (f *Fixture) Mint(addr string, amount math.Int) {
	acc, err := sdk.AccAddressFromBech32(addr)
	require.NoError(f.T, err)
	require.NoError(f.T, f.App.BankKeeper.MintCoins(f.Ctx, acc, sdk.NewCoins(sdk.NewCoin(f.BaseDenom(), amount))))
}

// Shares returns the claim token balance of addr
func (f *Fixture) Shares(addr string) math.Int {
	return f.App.ClaimTokenKeeper.BalanceOf(f.Ctx, addr)
}

// ApproveManager lets the live manager burn up to amount of owner's claim tokens.
func (f *Fixture) ApproveManager(owner string, amount math.Int) {
	require.NoError(f.T, f.App.ClaimTokenKeeper.Approve(f.Ctx, owner, f.Manager.Address().String(), amount))
}

// Deposit deposits into the live manager and fails the test on error.
func (f *Fixture) Deposit(account string, amount math.Int) math.Int {
	shares, err := f.Manager.Deposit(f.Ctx, account, amount)
	require.NoError(f.T, err)
	return shares
}

// Accrue grows a venue market by amount of yield
func (f *Fixture) Accrue(venue, market string, amount math.Int) {
	require.NoError(f.T, f.App.VenueKeeper.AccrueYield(f.Ctx, venue, market, amount))
}

// FundBalance returns the fee-adjusted fund balance of the live manager
func (f *Fixture) FundBalance() math.Int {
	balance, err := f.Manager.GetFundBalance(f.Ctx)
	require.NoError(f.T, err)
	return balance
}
