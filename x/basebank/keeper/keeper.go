package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yieldfund/x/basebank/types"
)

// Keeper is a minimal coin ledger for standalone nodes. It satisfies the
// BankKeeper interfaces the fund modules expect from x/bank.
type Keeper struct {
	storeKey storetypes.StoreKey
	logger   log.Logger
}

// NewKeeper creates a new basebank keeper
func NewKeeper(storeKey storetypes.StoreKey, logger log.Logger) *Keeper {
	return &Keeper{
		storeKey: storeKey,
		logger:   logger.With("module", "x/basebank"),
	}
}

func balanceKey(addr sdk.AccAddress, denom string) []byte {
	key := append([]byte{}, types.BalanceKeyPrefix...)
	key = append(key, byte(len(addr)))
	key = append(key, addr...)
	return append(key, []byte(denom)...)
}

func supplyKey(denom string) []byte {
	return append(append([]byte{}, types.SupplyKeyPrefix...), []byte(denom)...)
}

func getInt(store storetypes.KVStore, key []byte) math.Int {
	bz := store.Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return v
}

func setInt(store storetypes.KVStore, key []byte, v math.Int) {
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

// GetBalance returns the balance of addr in denom.
func (k *Keeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	store := sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
	return sdk.NewCoin(denom, getInt(store, balanceKey(addr, denom)))
}

// GetSupply returns the total minted amount of denom.
func (k *Keeper) GetSupply(ctx context.Context, denom string) sdk.Coin {
	store := sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
	return sdk.NewCoin(denom, getInt(store, supplyKey(denom)))
}

// SendCoins moves amt from one account to another.
func (k *Keeper) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return types.ErrInvalidCoins.Wrap(amt.String())
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	store := sdkCtx.KVStore(k.storeKey)

	for _, coin := range amt {
		balance := getInt(store, balanceKey(fromAddr, coin.Denom))
		if balance.LT(coin.Amount) {
			return types.ErrInsufficientFunds.Wrapf("%s%s is smaller than %s", balance, coin.Denom, coin)
		}
	}

	for _, coin := range amt {
		fromKey := balanceKey(fromAddr, coin.Denom)
		setInt(store, fromKey, getInt(store, fromKey).Sub(coin.Amount))

		toKey := balanceKey(toAddr, coin.Denom)
		setInt(store, toKey, getInt(store, toKey).Add(coin.Amount))
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute("sender", fromAddr.String()),
			sdk.NewAttribute("recipient", toAddr.String()),
			sdk.NewAttribute("amount", amt.String()),
		),
	)
	return nil
}

// MintCoins credits newly created coins to addr. Used by the faucet and by
// simulated venues to realise yield.
func (k *Keeper) MintCoins(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return types.ErrInvalidCoins.Wrap(amt.String())
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	store := sdkCtx.KVStore(k.storeKey)

	for _, coin := range amt {
		key := balanceKey(addr, coin.Denom)
		setInt(store, key, getInt(store, key).Add(coin.Amount))
		setInt(store, supplyKey(coin.Denom), getInt(store, supplyKey(coin.Denom)).Add(coin.Amount))
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute("recipient", addr.String()),
			sdk.NewAttribute("amount", amt.String()),
		),
	)
	k.logger.Debug("Minted coins", "recipient", addr.String(), "amount", amt.String())
	return nil
}
