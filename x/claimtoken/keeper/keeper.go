package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yieldfund/x/claimtoken/types"
)

// Keeper manages claim token balances, allowances and the minter set
type Keeper struct {
	storeKey storetypes.StoreKey
	logger   log.Logger
}

// NewKeeper creates a new claimtoken keeper
func NewKeeper(storeKey storetypes.StoreKey, logger log.Logger) *Keeper {
	return &Keeper{
		storeKey: storeKey,
		logger:   logger.With("module", "x/claimtoken"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// InitGenesis stores the token metadata and the initial minters
func (k *Keeper) InitGenesis(ctx sdk.Context, metadata types.Metadata, minters []string) {
	bz, _ := json.Marshal(metadata)
	k.GetStore(ctx).Set(types.MetadataKey, bz)
	for _, minter := range minters {
		k.setMinter(ctx, minter, true)
	}
}

// GetMetadata returns the token metadata
func (k *Keeper) GetMetadata(ctx sdk.Context) types.Metadata {
	bz := k.GetStore(ctx).Get(types.MetadataKey)
	if bz == nil {
		return types.DefaultMetadata()
	}
	var metadata types.Metadata
	if err := json.Unmarshal(bz, &metadata); err != nil {
		return types.DefaultMetadata()
	}
	return metadata
}

// ============ Key helpers ============

func balanceKey(addr string) []byte {
	return append(append([]byte{}, types.BalanceKeyPrefix...), []byte(addr)...)
}

func allowanceKey(owner, spender string) []byte {
	return append(append([]byte{}, types.AllowanceKeyPrefix...), []byte(owner+"/"+spender)...)
}

func minterKey(addr string) []byte {
	return append(append([]byte{}, types.MinterKeyPrefix...), []byte(addr)...)
}

func (k *Keeper) getInt(ctx sdk.Context, key []byte) math.Int {
	bz := k.GetStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return v
}

func (k *Keeper) setInt(ctx sdk.Context, key []byte, v math.Int) {
	store := k.GetStore(ctx)
	if v.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := v.Marshal()
	if err != nil {
		panic(err)
	}
	store.Set(key, bz)
}

// ============ Reads ============

// BalanceOf returns the claim token balance of addr
func (k *Keeper) BalanceOf(ctx sdk.Context, addr string) math.Int {
	return k.getInt(ctx, balanceKey(addr))
}

// TotalSupply returns the outstanding claim token supply
func (k *Keeper) TotalSupply(ctx sdk.Context) math.Int {
	return k.getInt(ctx, types.SupplyKey)
}

// Allowance returns how much spender may burn or move on behalf of owner
func (k *Keeper) Allowance(ctx sdk.Context, owner, spender string) math.Int {
	return k.getInt(ctx, allowanceKey(owner, spender))
}

// IsMinter reports whether addr may mint and burn
func (k *Keeper) IsMinter(ctx sdk.Context, addr string) bool {
	return k.GetStore(ctx).Has(minterKey(addr))
}

// GetMinters returns every address holding the minter role
func (k *Keeper) GetMinters(ctx sdk.Context) []string {
	iterator := storetypes.KVStorePrefixIterator(k.GetStore(ctx), types.MinterKeyPrefix)
	defer iterator.Close()

	var minters []string
	for ; iterator.Valid(); iterator.Next() {
		minters = append(minters, string(iterator.Key()[len(types.MinterKeyPrefix):]))
	}
	return minters
}

// IterateBalances calls cb for every non-zero holder until cb returns true
func (k *Keeper) IterateBalances(ctx sdk.Context, cb func(addr string, balance math.Int) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.GetStore(ctx), types.BalanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var balance math.Int
		if err := balance.Unmarshal(iterator.Value()); err != nil {
			continue
		}
		if cb(string(iterator.Key()[len(types.BalanceKeyPrefix):]), balance) {
			return
		}
	}
}

func (k *Keeper) setMinter(ctx sdk.Context, addr string, isMinter bool) {
	store := k.GetStore(ctx)
	if isMinter {
		store.Set(minterKey(addr), []byte{1})
		return
	}
	store.Delete(minterKey(addr))
}

// Holders returns every non-zero balance keyed by holder
func (k *Keeper) Holders(ctx sdk.Context) map[string]math.Int {
	holders := make(map[string]math.Int)
	k.IterateBalances(ctx, func(addr string, balance math.Int) bool {
		holders[addr] = balance
		return false
	})
	return holders
}
