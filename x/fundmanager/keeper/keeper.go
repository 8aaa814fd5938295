package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundmanager/types"
)

// Keeper is one fund manager instance: the share ledger and fee accounting
// in front of a fund controller.
type Keeper struct {
	name        string
	storeKey    storetypes.StoreKey
	bankKeeper  types.BankKeeper
	claimToken  types.ClaimTokenKeeper
	controllers types.ControllerRouter
	managers    types.ManagerRouter
	logger      log.Logger
}

// NewKeeper creates a new fundmanager keeper
func NewKeeper(
	name string,
	storeKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	claimToken types.ClaimTokenKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		name:       name,
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
		claimToken: claimToken,
		logger:     logger.With("module", "x/"+types.ModuleName, "instance", name),
	}
}

// SetRouters wires the controller and manager lookups. Instances reference
// each other, so this happens after every keeper is built.
func (k *Keeper) SetRouters(controllers types.ControllerRouter, managers types.ManagerRouter) {
	k.controllers = controllers
	k.managers = managers
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// Name returns the instance name
func (k *Keeper) Name() string {
	return k.name
}

// Address identifies the manager as claim token minter and burn spender.
func (k *Keeper) Address() sdk.AccAddress {
	return authtypes.NewModuleAddress(k.name)
}

func (k *Keeper) self() string {
	return k.Address().String()
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Genesis ============

// InitGenesis initializes the manager from genesis
func (k *Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if gs.State.Status == "" {
		gs.State.Status = fundtypes.StatusActive
	}
	if gs.State.DefaultAccountLimit.IsNil() {
		gs.State.DefaultAccountLimit = math.ZeroInt()
	}
	k.SetParams(ctx, gs.Params)
	k.setState(ctx, gs.State)
	k.setAccounting(ctx, gs.Accounting.Normalize())
	k.logger.Info("Manager initialized", "address", k.self(), "controller", gs.State.FundController)
	return nil
}

// ExportGenesis exports the manager state
func (k *Keeper) ExportGenesis(ctx sdk.Context) types.GenesisState {
	return types.GenesisState{
		Params:     k.GetParams(ctx),
		State:      k.GetState(ctx),
		Accounting: k.GetAccounting(ctx),
	}
}

// ============ State ============

// GetState returns the manager principals, status and fee settings
func (k *Keeper) GetState(ctx sdk.Context) types.ManagerState {
	state := types.ManagerState{Status: fundtypes.StatusActive}
	if bz := k.GetStore(ctx).Get(types.StateKey); bz != nil {
		if err := json.Unmarshal(bz, &state); err != nil {
			state = types.ManagerState{Status: fundtypes.StatusActive}
		}
	}
	if state.DefaultAccountLimit.IsNil() {
		state.DefaultAccountLimit = math.ZeroInt()
	}
	return state
}

func (k *Keeper) setState(ctx sdk.Context, state types.ManagerState) {
	bz, _ := json.Marshal(state)
	k.GetStore(ctx).Set(types.StateKey, bz)
}

// GetAccounting returns the persisted ledger
func (k *Keeper) GetAccounting(ctx sdk.Context) types.Accounting {
	bz := k.GetStore(ctx).Get(types.AccountingKey)
	if bz == nil {
		return types.NewAccounting()
	}
	var acc types.Accounting
	if err := json.Unmarshal(bz, &acc); err != nil {
		return types.NewAccounting()
	}
	return acc.Normalize()
}

func (k *Keeper) setAccounting(ctx sdk.Context, acc types.Accounting) {
	bz, _ := json.Marshal(acc)
	k.GetStore(ctx).Set(types.AccountingKey, bz)
}

// GetParams returns the manager params
func (k *Keeper) GetParams(ctx sdk.Context) types.Params {
	bz := k.GetStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams sets the manager params
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) {
	bz, _ := json.Marshal(params)
	k.GetStore(ctx).Set(types.ParamsKey, bz)
}

func limitKey(account string) []byte {
	return append(append([]byte{}, types.LimitKeyPrefix...), []byte(account)...)
}

// GetAccountLimitOverride returns the raw override of account; zero means none.
func (k *Keeper) GetAccountLimitOverride(ctx sdk.Context, account string) math.Int {
	bz := k.GetStore(ctx).Get(limitKey(account))
	if bz == nil {
		return math.ZeroInt()
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return v
}

func (k *Keeper) setAccountLimitOverride(ctx sdk.Context, account string, limit math.Int) {
	store := k.GetStore(ctx)
	if limit.IsZero() {
		store.Delete(limitKey(account))
		return
	}
	bz, err := limit.Marshal()
	if err != nil {
		panic(err)
	}
	store.Set(limitKey(account), bz)
}

// Controller resolves the controller this manager fronts
func (k *Keeper) Controller(ctx sdk.Context) (types.FundController, error) {
	addr := k.GetState(ctx).FundController
	if addr == "" || k.controllers == nil {
		return nil, types.ErrUnknownController.Wrap("no fund controller set")
	}
	controller, ok := k.controllers.Controller(addr)
	if !ok {
		return nil, types.ErrUnknownController.Wrap(addr)
	}
	return controller, nil
}

func (k *Keeper) emit(ctx sdk.Context, eventType string, attrs ...sdk.Attribute) {
	attrs = append([]sdk.Attribute{sdk.NewAttribute(types.AttributeKeyInstance, k.name)}, attrs...)
	ctx.EventManager().EmitEvent(sdk.NewEvent(eventType, attrs...))
}
