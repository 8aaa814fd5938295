package app

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
)

// Simulation messages drive the venue markets and the base asset faucet on
// standalone nodes.
const (
	BankRoute = "bank"

	TypeMsgAccrueYield = "accrue_yield"
	TypeMsgSetPaused   = "set_paused"
	TypeMsgSetFees     = "set_fees"
	TypeMsgFaucet      = "faucet"
)

// MsgAccrueYield grows a market's underlying without minting shares.
type MsgAccrueYield struct {
	Venue  string `json:"venue"`
	Market string `json:"market"`
	Amount string `json:"amount"`
}

// MsgSetPaused pauses or resumes a market
type MsgSetPaused struct {
	Venue  string `json:"venue"`
	Market string `json:"market"`
	Paused bool   `json:"paused"`
}

// MsgSetFees changes the fees a market charges
type MsgSetFees struct {
	Venue          string `json:"venue"`
	Market         string `json:"market"`
	DepositFeeBps  uint64 `json:"deposit_fee_bps"`
	WithdrawFeeBps uint64 `json:"withdraw_fee_bps"`
}

// MsgFaucet mints base asset to an address
type MsgFaucet struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

func parsePositive(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fundtypes.ErrInvalidAmount.Wrapf("cannot parse %q", s)
	}
	if err := fundtypes.RequirePositive(amount); err != nil {
		return math.Int{}, err
	}
	return amount, nil
}

func handleAccrueYield(app *FundApp, ctx sdk.Context, msg *MsgAccrueYield) error {
	amount, err := parsePositive(msg.Amount)
	if err != nil {
		return err
	}
	return app.VenueKeeper.AccrueYield(ctx, msg.Venue, msg.Market, amount)
}

func handleSetPaused(app *FundApp, ctx sdk.Context, msg *MsgSetPaused) error {
	return app.VenueKeeper.SetPaused(ctx, msg.Venue, msg.Market, msg.Paused)
}

func handleSetFees(app *FundApp, ctx sdk.Context, msg *MsgSetFees) error {
	return app.VenueKeeper.SetFees(ctx, msg.Venue, msg.Market, msg.DepositFeeBps, msg.WithdrawFeeBps)
}

func handleFaucet(app *FundApp, ctx sdk.Context, msg *MsgFaucet) error {
	addr, err := fundtypes.ParseAddress(msg.Address)
	if err != nil {
		return err
	}
	amount, err := parsePositive(msg.Amount)
	if err != nil {
		return err
	}
	return app.BankKeeper.MintCoins(ctx, addr, sdk.NewCoins(sdk.NewCoin(app.cfg.BaseDenom, amount)))
}
