package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yieldfund/x/fundcontroller/adapters"
	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
	"github.com/openalpha/yieldfund/x/venuesim/types"
)

var _ adapters.Venues = (*Keeper)(nil)

// SoloMargin returns the dYdX margin facade
func (k *Keeper) SoloMargin() adapters.SoloMargin {
	return soloMargin{k}
}

// CToken resolves a Compound or Fuse market
func (k *Keeper) CToken(ctx sdk.Context, venue, market string) (adapters.CToken, error) {
	if _, err := k.mustMarket(ctx, venue, market); err != nil {
		return nil, err
	}
	return cToken{k: k, venue: venue, market: market}, nil
}

// AaveReserve resolves an Aave reserve
func (k *Keeper) AaveReserve(ctx sdk.Context, market string) (adapters.AaveReserve, error) {
	if _, err := k.mustMarket(ctx, string(fctypes.VenueAave), market); err != nil {
		return nil, err
	}
	return aaveReserve{k: k, market: market}, nil
}

// KeeperDaoPool resolves a KeeperDAO liquidity pool
func (k *Keeper) KeeperDaoPool(ctx sdk.Context, market string) (adapters.KeeperDaoPool, error) {
	if _, err := k.mustMarket(ctx, string(fctypes.VenueKeeperDAO), market); err != nil {
		return nil, err
	}
	return keeperDaoPool{k: k, market: market}, nil
}

// AlphaBank resolves an Alpha bank
func (k *Keeper) AlphaBank(ctx sdk.Context, market string) (adapters.AlphaBank, error) {
	if _, err := k.mustMarket(ctx, string(fctypes.VenueAlpha), market); err != nil {
		return nil, err
	}
	return alphaBank{k: k, market: market}, nil
}

// EnzymeFund resolves an Enzyme vault by comptroller
func (k *Keeper) EnzymeFund(ctx sdk.Context, comptroller string) (adapters.EnzymeFund, error) {
	if _, err := k.mustMarket(ctx, string(fctypes.VenueEnzyme), comptroller); err != nil {
		return nil, err
	}
	return enzymeFund{k: k, comptroller: comptroller}, nil
}

// ============ dYdX ============

type soloMargin struct{ k *Keeper }

func (s soloMargin) Operate(ctx sdk.Context, account sdk.AccAddress, marketID string, action adapters.SoloAction, amount math.Int, toZero bool) error {
	venue := string(fctypes.VenueDydx)
	switch action {
	case adapters.SoloActionDeposit:
		_, err := s.k.supply(ctx, venue, marketID, account, amount)
		return err
	case adapters.SoloActionWithdraw:
		if toZero {
			return s.k.redeemShares(ctx, venue, marketID, account, s.k.SharesOf(ctx, venue, marketID, account))
		}
		return s.k.redeemUnderlying(ctx, venue, marketID, account, amount)
	}
	return types.ErrInvalidMarket.Wrapf("unknown action %d", action)
}

func (s soloMargin) GetAccountWei(ctx sdk.Context, account sdk.AccAddress, marketID string) (math.Int, error) {
	m, err := s.k.mustMarket(ctx, string(fctypes.VenueDydx), marketID)
	if err != nil {
		return math.Int{}, err
	}
	return s.k.ValueOf(ctx, m, account), nil
}

// ============ Compound / Fuse ============

type cToken struct {
	k      *Keeper
	venue  string
	market string
}

func (c cToken) Mint(ctx sdk.Context, minter sdk.AccAddress, amount math.Int) error {
	_, err := c.k.supply(ctx, c.venue, c.market, minter, amount)
	return err
}

func (c cToken) RedeemUnderlying(ctx sdk.Context, redeemer sdk.AccAddress, amount math.Int) error {
	return c.k.redeemUnderlying(ctx, c.venue, c.market, redeemer, amount)
}

func (c cToken) Redeem(ctx sdk.Context, redeemer sdk.AccAddress, cTokens math.Int) error {
	return c.k.redeemShares(ctx, c.venue, c.market, redeemer, cTokens)
}

func (c cToken) BalanceOf(ctx sdk.Context, owner sdk.AccAddress) (math.Int, error) {
	return c.k.SharesOf(ctx, c.venue, c.market, owner), nil
}

func (c cToken) ExchangeRateStored(ctx sdk.Context) (math.Int, error) {
	m, err := c.k.mustMarket(ctx, c.venue, c.market)
	if err != nil {
		return math.Int{}, err
	}
	return c.k.exchangeRate(ctx, m), nil
}

// ============ Aave ============

type aaveReserve struct {
	k      *Keeper
	market string
}

func (a aaveReserve) Deposit(ctx sdk.Context, from sdk.AccAddress, amount math.Int, referral uint16) error {
	if _, err := a.k.supply(ctx, string(fctypes.VenueAave), a.market, from, amount); err != nil {
		return err
	}
	a.k.logger.Debug("Aave deposit", "market", a.market, "referral", referral)
	return nil
}

func (a aaveReserve) Redeem(ctx sdk.Context, from sdk.AccAddress, amount math.Int) error {
	return a.k.redeemUnderlying(ctx, string(fctypes.VenueAave), a.market, from, amount)
}

func (a aaveReserve) BalanceOf(ctx sdk.Context, owner sdk.AccAddress) (math.Int, error) {
	m, err := a.k.mustMarket(ctx, string(fctypes.VenueAave), a.market)
	if err != nil {
		return math.Int{}, err
	}
	return a.k.ValueOf(ctx, m, owner), nil
}

// ============ KeeperDAO ============

type keeperDaoPool struct {
	k      *Keeper
	market string
}

func (p keeperDaoPool) venue() string { return string(fctypes.VenueKeeperDAO) }

func (p keeperDaoPool) Deposit(ctx sdk.Context, from sdk.AccAddress, amount math.Int) error {
	_, err := p.k.supply(ctx, p.venue(), p.market, from, amount)
	return err
}

func (p keeperDaoPool) Withdraw(ctx sdk.Context, to sdk.AccAddress, kTokens math.Int) error {
	return p.k.redeemShares(ctx, p.venue(), p.market, to, kTokens)
}

func (p keeperDaoPool) ApproveKToken(ctx sdk.Context, owner sdk.AccAddress, amount math.Int) error {
	return p.k.ApproveShares(ctx, owner, p.venue(), p.market, amount)
}

func (p keeperDaoPool) KTokenBalanceOf(ctx sdk.Context, owner sdk.AccAddress) (math.Int, error) {
	return p.k.SharesOf(ctx, p.venue(), p.market, owner), nil
}

func (p keeperDaoPool) KTokenTotalSupply(ctx sdk.Context) (math.Int, error) {
	m, err := p.k.mustMarket(ctx, p.venue(), p.market)
	if err != nil {
		return math.Int{}, err
	}
	return m.TotalShares, nil
}

func (p keeperDaoPool) UnderlyingBalance(ctx sdk.Context) (math.Int, error) {
	m, err := p.k.mustMarket(ctx, p.venue(), p.market)
	if err != nil {
		return math.Int{}, err
	}
	return p.k.TotalUnderlying(ctx, m), nil
}

func (p keeperDaoPool) DepositFeeBps(ctx sdk.Context) (uint64, error) {
	m, err := p.k.mustMarket(ctx, p.venue(), p.market)
	if err != nil {
		return 0, err
	}
	return m.DepositFeeBps, nil
}

// ============ Alpha ============

type alphaBank struct {
	k      *Keeper
	market string
}

func (b alphaBank) venue() string { return string(fctypes.VenueAlpha) }

func (b alphaBank) Deposit(ctx sdk.Context, from sdk.AccAddress, amount math.Int) error {
	_, err := b.k.supply(ctx, b.venue(), b.market, from, amount)
	return err
}

func (b alphaBank) Withdraw(ctx sdk.Context, to sdk.AccAddress, share math.Int) error {
	return b.k.redeemShares(ctx, b.venue(), b.market, to, share)
}

func (b alphaBank) TotalETH(ctx sdk.Context) (math.Int, error) {
	m, err := b.k.mustMarket(ctx, b.venue(), b.market)
	if err != nil {
		return math.Int{}, err
	}
	return b.k.TotalUnderlying(ctx, m), nil
}

func (b alphaBank) TotalSupply(ctx sdk.Context) (math.Int, error) {
	m, err := b.k.mustMarket(ctx, b.venue(), b.market)
	if err != nil {
		return math.Int{}, err
	}
	return m.TotalShares, nil
}

func (b alphaBank) BalanceOf(ctx sdk.Context, owner sdk.AccAddress) (math.Int, error) {
	return b.k.SharesOf(ctx, b.venue(), b.market, owner), nil
}

// ============ Enzyme ============

type enzymeFund struct {
	k           *Keeper
	comptroller string
}

func (f enzymeFund) venue() string { return string(fctypes.VenueEnzyme) }

func (f enzymeFund) BuyShares(ctx sdk.Context, buyer sdk.AccAddress, investment, minShares math.Int) error {
	shares, err := f.k.supply(ctx, f.venue(), f.comptroller, buyer, investment)
	if err != nil {
		return err
	}
	if shares.LT(minShares) {
		return types.ErrSlippage
	}
	return nil
}

func (f enzymeFund) RedeemShares(ctx sdk.Context, redeemer sdk.AccAddress, quantity math.Int) error {
	return f.k.redeemShares(ctx, f.venue(), f.comptroller, redeemer, quantity)
}

func (f enzymeFund) SharesBalanceOf(ctx sdk.Context, owner sdk.AccAddress) (math.Int, error) {
	return f.k.SharesOf(ctx, f.venue(), f.comptroller, owner), nil
}

func (f enzymeFund) GrossShareValue(ctx sdk.Context) (math.Int, error) {
	m, err := f.k.mustMarket(ctx, f.venue(), f.comptroller)
	if err != nil {
		return math.Int{}, err
	}
	return f.k.exchangeRate(ctx, m), nil
}
