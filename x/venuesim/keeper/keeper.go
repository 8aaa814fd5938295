package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/openalpha/yieldfund/x/venuesim/types"
)

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	MintCoins(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error
}

// Keeper simulates the external yield venues on top of the KVStore so their
// effects commit and revert together with the fund's own state.
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper BankKeeper
	logger     log.Logger
}

// NewKeeper creates a new venuesim keeper
func NewKeeper(storeKey storetypes.StoreKey, bankKeeper BankKeeper, logger log.Logger) *Keeper {
	return &Keeper{
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
		logger:     logger.With("module", "x/venuesim"),
	}
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

func marketID(venue, market string) string {
	return venue + "/" + market
}

func marketKey(venue, market string) []byte {
	return append(append([]byte{}, types.MarketKeyPrefix...), []byte(marketID(venue, market))...)
}

func holderKey(prefix []byte, venue, market string, holder sdk.AccAddress) []byte {
	return append(append([]byte{}, prefix...), []byte(marketID(venue, market)+"/"+holder.String())...)
}

// EscrowAddress is where a market keeps its underlying.
func EscrowAddress(venue, market string) sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName + "/" + marketID(venue, market))
}

// TreasuryAddress collects venue fees.
func TreasuryAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.TreasuryName)
}

// ============ Markets ============

// CreateMarket registers a new market with zero shares outstanding
func (k *Keeper) CreateMarket(ctx sdk.Context, m types.Market) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if _, found := k.GetMarket(ctx, m.Venue, m.Market); found {
		return types.ErrMarketExists.Wrap(marketID(m.Venue, m.Market))
	}
	m.TotalShares = math.ZeroInt()
	k.setMarket(ctx, m)
	k.logger.Info("Market created", "venue", m.Venue, "market", m.Market, "denom", m.Denom)
	return nil
}

// GetMarket retrieves a market
func (k *Keeper) GetMarket(ctx sdk.Context, venue, market string) (types.Market, bool) {
	bz := k.GetStore(ctx).Get(marketKey(venue, market))
	if bz == nil {
		return types.Market{}, false
	}
	var m types.Market
	if err := json.Unmarshal(bz, &m); err != nil {
		return types.Market{}, false
	}
	if m.TotalShares.IsNil() {
		m.TotalShares = math.ZeroInt()
	}
	return m, true
}

// GetAllMarkets returns every market
func (k *Keeper) GetAllMarkets(ctx sdk.Context) []types.Market {
	iterator := storetypes.KVStorePrefixIterator(k.GetStore(ctx), types.MarketKeyPrefix)
	defer iterator.Close()

	var markets []types.Market
	for ; iterator.Valid(); iterator.Next() {
		var m types.Market
		if err := json.Unmarshal(iterator.Value(), &m); err != nil {
			continue
		}
		markets = append(markets, m)
	}
	return markets
}

func (k *Keeper) setMarket(ctx sdk.Context, m types.Market) {
	bz, _ := json.Marshal(m)
	k.GetStore(ctx).Set(marketKey(m.Venue, m.Market), bz)
}

// HasMarket reports whether the market exists
func (k *Keeper) HasMarket(ctx sdk.Context, venue, market string) bool {
	return k.GetStore(ctx).Has(marketKey(venue, market))
}

// SetPaused pauses or resumes supply and redemption
func (k *Keeper) SetPaused(ctx sdk.Context, venue, market string, paused bool) error {
	m, err := k.mustMarket(ctx, venue, market)
	if err != nil {
		return err
	}
	m.Paused = paused
	k.setMarket(ctx, m)
	k.logger.Info("Market pause changed", "venue", venue, "market", market, "paused", paused)
	return nil
}

// SetFees updates the deposit and withdraw fees
func (k *Keeper) SetFees(ctx sdk.Context, venue, market string, depositBps, withdrawBps uint64) error {
	m, err := k.mustMarket(ctx, venue, market)
	if err != nil {
		return err
	}
	m.DepositFeeBps = depositBps
	m.WithdrawFeeBps = withdrawBps
	if err := m.Validate(); err != nil {
		return err
	}
	k.setMarket(ctx, m)
	return nil
}

// AccrueYield grows the market's underlying, raising the value of every share.
func (k *Keeper) AccrueYield(ctx sdk.Context, venue, market string, amount math.Int) error {
	m, err := k.mustMarket(ctx, venue, market)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrZeroAmount
	}
	if err := k.bankKeeper.MintCoins(ctx, EscrowAddress(venue, market), sdk.NewCoins(sdk.NewCoin(m.Denom, amount))); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAccrue,
			sdk.NewAttribute("market", marketID(venue, market)),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// TotalUnderlying returns the underlying held in escrow
func (k *Keeper) TotalUnderlying(ctx sdk.Context, m types.Market) math.Int {
	return k.bankKeeper.GetBalance(ctx, EscrowAddress(m.Venue, m.Market), m.Denom).Amount
}

// SharesOf returns the shares held by holder
func (k *Keeper) SharesOf(ctx sdk.Context, venue, market string, holder sdk.AccAddress) math.Int {
	return k.getInt(ctx, holderKey(types.ShareKeyPrefix, venue, market, holder))
}

// ValueOf returns the underlying value of holder's shares, rounded down
func (k *Keeper) ValueOf(ctx sdk.Context, m types.Market, holder sdk.AccAddress) math.Int {
	shares := k.SharesOf(ctx, m.Venue, m.Market, holder)
	if shares.IsZero() || m.TotalShares.IsZero() {
		return math.ZeroInt()
	}
	return shares.Mul(k.TotalUnderlying(ctx, m)).Quo(m.TotalShares)
}

// ApproveUnderlying sets the allowance a market may pull from owner on supply
func (k *Keeper) ApproveUnderlying(ctx sdk.Context, owner sdk.AccAddress, venue, market string, amount math.Int) error {
	if _, err := k.mustMarket(ctx, venue, market); err != nil {
		return err
	}
	k.setInt(ctx, holderKey(types.UnderlyingAllowancePrefix, venue, market, owner), amount)
	return nil
}

// ApproveShares sets the allowance a market may pull from owner's shares on redemption
func (k *Keeper) ApproveShares(ctx sdk.Context, owner sdk.AccAddress, venue, market string, amount math.Int) error {
	if _, err := k.mustMarket(ctx, venue, market); err != nil {
		return err
	}
	k.setInt(ctx, holderKey(types.ShareAllowancePrefix, venue, market, owner), amount)
	return nil
}

// UnderlyingAllowance returns the supply allowance of owner
func (k *Keeper) UnderlyingAllowance(ctx sdk.Context, owner sdk.AccAddress, venue, market string) math.Int {
	return k.getInt(ctx, holderKey(types.UnderlyingAllowancePrefix, venue, market, owner))
}

func (k *Keeper) mustMarket(ctx sdk.Context, venue, market string) (types.Market, error) {
	m, found := k.GetMarket(ctx, venue, market)
	if !found {
		return types.Market{}, types.ErrMarketNotFound.Wrap(marketID(venue, market))
	}
	return m, nil
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
