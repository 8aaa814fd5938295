package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	basebankkeeper "github.com/openalpha/yieldfund/x/basebank/keeper"
	basebanktypes "github.com/openalpha/yieldfund/x/basebank/types"
	claimtokenkeeper "github.com/openalpha/yieldfund/x/claimtoken/keeper"
	claimtokentypes "github.com/openalpha/yieldfund/x/claimtoken/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/adapters"
	fckeeper "github.com/openalpha/yieldfund/x/fundcontroller/keeper"
	fmkeeper "github.com/openalpha/yieldfund/x/fundmanager/keeper"
	venuesimkeeper "github.com/openalpha/yieldfund/x/venuesim/keeper"
	venuesimtypes "github.com/openalpha/yieldfund/x/venuesim/types"
)

const (
	Name = "yieldfund"
)

// DefaultNodeHome default home directories for the application daemon
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".fundd")
}

// FundApp wires every fund module onto one commit multistore. Operations are
// serialized: each Execute runs against a cache branch that is written and
// committed only when the operation succeeds.
type FundApp struct {
	mu     sync.RWMutex
	logger log.Logger
	cfg    Config

	cms  storetypes.CommitMultiStore
	keys map[string]*storetypes.KVStoreKey

	BankKeeper       *basebankkeeper.Keeper
	ClaimTokenKeeper *claimtokenkeeper.Keeper
	VenueKeeper      *venuesimkeeper.Keeper

	// Controllers and Managers are ordered as configured.
	Controllers []*fckeeper.Keeper
	Managers    []*fmkeeper.Keeper

	router *instanceRouter
}

// NewFundApp returns a new FundApp backed by db
func NewFundApp(db dbm.DB, logger log.Logger, cfg Config) (*FundApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	storeNames := []string{basebanktypes.StoreKey, claimtokentypes.StoreKey, venuesimtypes.StoreKey}
	storeNames = append(storeNames, cfg.Controllers...)
	storeNames = append(storeNames, cfg.Managers...)
	keys := storetypes.NewKVStoreKeys(storeNames...)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	app := &FundApp{
		logger: logger,
		cfg:    cfg,
		cms:    cms,
		keys:   keys,
	}

	app.BankKeeper = basebankkeeper.NewKeeper(keys[basebanktypes.StoreKey], logger)
	app.ClaimTokenKeeper = claimtokenkeeper.NewKeeper(keys[claimtokentypes.StoreKey], logger)
	app.VenueKeeper = venuesimkeeper.NewKeeper(keys[venuesimtypes.StoreKey], app.BankKeeper, logger)

	poolAdapters := adapters.All(app.VenueKeeper, cfg.KeeperDaoFeeBps)
	for _, name := range cfg.Controllers {
		app.Controllers = append(app.Controllers,
			fckeeper.NewKeeper(name, keys[name], app.BankKeeper, logger, poolAdapters...))
	}
	for _, name := range cfg.Managers {
		app.Managers = append(app.Managers,
			fmkeeper.NewKeeper(name, keys[name], app.BankKeeper, app.ClaimTokenKeeper, logger))
	}

	app.router = newInstanceRouter(app.Controllers, app.Managers)
	for _, manager := range app.Managers {
		manager.SetRouters(app.router, app.router)
	}

	logger.Info("Fund app loaded",
		"height", cms.LastCommitID().Version,
		"controllers", len(app.Controllers),
		"managers", len(app.Managers),
	)
	return app, nil
}

// Logger returns the app logger
func (app *FundApp) Logger() log.Logger {
	return app.logger
}

// Config returns the configuration the app was built with
func (app *FundApp) Config() Config {
	return app.cfg
}

// Height returns the last committed version
func (app *FundApp) Height() int64 {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cms.LastCommitID().Version
}

// Initialized reports whether genesis has been committed
func (app *FundApp) Initialized() bool {
	return app.Height() > 0
}

func (app *FundApp) newContext(ms storetypes.MultiStore) sdk.Context {
	header := cmtproto.Header{
		ChainID: Name,
		Height:  app.cms.LastCommitID().Version + 1,
		Time:    time.Now().UTC(),
	}
	return sdk.NewContext(ms, header, false, app.logger)
}

// Execute runs fn against a cached branch and commits the branch only if fn
// succeeds. It returns the events emitted by fn.
func (app *FundApp) Execute(fn func(ctx sdk.Context) error) (sdk.Events, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	cache := app.cms.CacheMultiStore()
	ctx := app.newContext(cache)
	if err := fn(ctx); err != nil {
		return nil, err
	}
	cache.Write()
	app.cms.Commit()
	return ctx.EventManager().Events(), nil
}

// Query runs fn against a throwaway branch of the latest state.
func (app *FundApp) Query(fn func(ctx sdk.Context) error) error {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return fn(app.newContext(app.cms.CacheMultiStore()))
}

// NewUncachedContext returns a context writing straight to the working
// state. Writes are committed by the next Execute. Tests use it to drive
// keepers directly.
func (app *FundApp) NewUncachedContext() sdk.Context {
	return app.newContext(app.cms)
}
