package keeper

import (
	"encoding/binary"
	"encoding/json"
	"sort"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// Keeper is one fund controller instance. Instances are never mutated in
// place by an upgrade; a successor gets its own name, store and address.
type Keeper struct {
	name       string
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
	adapters   map[types.Venue]types.PoolAdapter
	logger     log.Logger
}

// NewKeeper creates a new fundcontroller keeper
func NewKeeper(
	name string,
	storeKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	logger log.Logger,
	adapters ...types.PoolAdapter,
) *Keeper {
	k := &Keeper{
		name:       name,
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
		adapters:   make(map[types.Venue]types.PoolAdapter, len(adapters)),
		logger:     logger.With("module", "x/"+types.ModuleName, "instance", name),
	}
	for _, adapter := range adapters {
		k.adapters[adapter.Venue()] = adapter
	}
	return k
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// Name returns the instance name
func (k *Keeper) Name() string {
	return k.name
}

// Address is the custody address holding idle capital.
func (k *Keeper) Address() sdk.AccAddress {
	return authtypes.NewModuleAddress(k.name)
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Genesis ============

// InitGenesis initializes the controller from genesis
func (k *Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if gs.State.Status == "" {
		gs.State.Status = fundtypes.StatusActive
	}
	k.SetParams(ctx, gs.Params)
	k.setState(ctx, gs.State)
	for _, pool := range gs.Pools {
		adapter, err := k.adapterFor(pool.Venue)
		if err != nil {
			return err
		}
		if err := adapter.ValidateMarket(ctx, pool.Market); err != nil {
			return err
		}
		pool.RegisteredHeight = ctx.BlockHeight()
		k.setPool(ctx, pool)
	}
	k.logger.Info("Controller initialized", "address", k.Address().String(), "pools", len(gs.Pools))
	return nil
}

// ExportGenesis exports the controller state
func (k *Keeper) ExportGenesis(ctx sdk.Context) types.GenesisState {
	return types.GenesisState{
		Params: k.GetParams(ctx),
		State:  k.GetState(ctx),
		Pools:  k.GetAllPools(ctx),
	}
}

// ============ State ============

// GetState returns the controller principals and status
func (k *Keeper) GetState(ctx sdk.Context) types.ControllerState {
	bz := k.GetStore(ctx).Get(types.StateKey)
	if bz == nil {
		return types.ControllerState{Status: fundtypes.StatusActive}
	}
	var state types.ControllerState
	if err := json.Unmarshal(bz, &state); err != nil {
		return types.ControllerState{Status: fundtypes.StatusActive}
	}
	return state
}

func (k *Keeper) setState(ctx sdk.Context, state types.ControllerState) {
	bz, _ := json.Marshal(state)
	k.GetStore(ctx).Set(types.StateKey, bz)
}

// GetParams returns the controller params
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

// SetParams sets the controller params
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) {
	bz, _ := json.Marshal(params)
	k.GetStore(ctx).Set(types.ParamsKey, bz)
}

// ============ Pool registry ============

func poolKey(poolID uint64) []byte {
	key := make([]byte, 0, len(types.PoolKeyPrefix)+8)
	key = append(key, types.PoolKeyPrefix...)
	return binary.BigEndian.AppendUint64(key, poolID)
}

func approvalKey(poolID uint64) []byte {
	key := make([]byte, 0, len(types.ApprovalKeyPrefix)+8)
	key = append(key, types.ApprovalKeyPrefix...)
	return binary.BigEndian.AppendUint64(key, poolID)
}

// GetPool retrieves a registry entry
func (k *Keeper) GetPool(ctx sdk.Context, poolID uint64) (types.PoolEntry, bool) {
	bz := k.GetStore(ctx).Get(poolKey(poolID))
	if bz == nil {
		return types.PoolEntry{}, false
	}
	var pool types.PoolEntry
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.PoolEntry{}, false
	}
	return pool, true
}

// GetAllPools returns every registry entry ordered by pool id
func (k *Keeper) GetAllPools(ctx sdk.Context) []types.PoolEntry {
	iterator := storetypes.KVStorePrefixIterator(k.GetStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	var pools []types.PoolEntry
	for ; iterator.Valid(); iterator.Next() {
		var pool types.PoolEntry
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			continue
		}
		pools = append(pools, pool)
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].PoolID < pools[j].PoolID })
	return pools
}

func (k *Keeper) setPool(ctx sdk.Context, pool types.PoolEntry) {
	pool.ReferralCode = 0
	bz, _ := json.Marshal(pool)
	k.GetStore(ctx).Set(poolKey(pool.PoolID), bz)
}

// GetApproval returns the last allowance granted to a pool's venue
func (k *Keeper) GetApproval(ctx sdk.Context, poolID uint64) math.Int {
	bz := k.GetStore(ctx).Get(approvalKey(poolID))
	if bz == nil {
		return math.ZeroInt()
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return v
}

func (k *Keeper) setApproval(ctx sdk.Context, poolID uint64, amount math.Int) {
	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}
	k.GetStore(ctx).Set(approvalKey(poolID), bz)
}

func (k *Keeper) adapterFor(venue types.Venue) (types.PoolAdapter, error) {
	adapter, ok := k.adapters[venue]
	if !ok {
		return nil, types.ErrUnknownVenue.Wrap(string(venue))
	}
	return adapter, nil
}

// resolve looks up a registered pool and its adapter, filling in the
// venue settings kept on controller state.
func (k *Keeper) resolve(ctx sdk.Context, poolID uint64) (types.PoolEntry, types.PoolAdapter, error) {
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return types.PoolEntry{}, nil, fundtypes.ErrPoolNotRegistered.Wrapf("pool %d", poolID)
	}
	adapter, err := k.adapterFor(pool.Venue)
	if err != nil {
		return types.PoolEntry{}, nil, err
	}
	if pool.Venue == types.VenueAave {
		pool.ReferralCode = k.GetState(ctx).AaveReferralCode
	}
	return pool, adapter, nil
}

func (k *Keeper) emit(ctx sdk.Context, eventType string, attrs ...sdk.Attribute) {
	attrs = append([]sdk.Attribute{sdk.NewAttribute(types.AttributeKeyInstance, k.name)}, attrs...)
	ctx.EventManager().EmitEvent(sdk.NewEvent(eventType, attrs...))
}
