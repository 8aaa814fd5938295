package types

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "venuesim"
	StoreKey   = ModuleName

	// TreasuryName derives the address collecting venue fees.
	TreasuryName = ModuleName + "/treasury"
)

// Store key prefixes
var (
	MarketKeyPrefix           = []byte{0x01}
	ShareKeyPrefix            = []byte{0x02}
	UnderlyingAllowancePrefix = []byte{0x03}
	ShareAllowancePrefix      = []byte{0x04}
)

// Venue errors. Their messages are what the fund surfaces verbatim.
var (
	ErrMarketNotFound       = errors.Register(ModuleName, 2, "market does not exist")
	ErrMarketExists         = errors.Register(ModuleName, 3, "market already exists")
	ErrMarketPaused         = errors.Register(ModuleName, 4, "market is paused")
	ErrRedeemExceedsBalance = errors.Register(ModuleName, 5, "redeem amount exceeds balance")
	ErrAllowanceTooLow      = errors.Register(ModuleName, 6, "transfer amount exceeds allowance")
	ErrDepositTooSmall      = errors.Register(ModuleName, 7, "deposit too small to mint shares")
	ErrSlippage             = errors.Register(ModuleName, 8, "shares received below minimum")
	ErrInvalidMarket        = errors.Register(ModuleName, 9, "invalid market config")
	ErrZeroAmount           = errors.Register(ModuleName, 10, "amount must be positive")
)

// Event types
const (
	EventTypeSupply = "venuesim_supply"
	EventTypeRedeem = "venuesim_redeem"
	EventTypeAccrue = "venuesim_accrue"
)

// Market is a share-based lending market. Underlying sits on the market's
// escrow address; shares are the venue's receipt token.
type Market struct {
	Venue  string `json:"venue"`
	Market string `json:"market"`
	Denom  string `json:"denom"`

	DepositFeeBps  uint64 `json:"deposit_fee_bps"`
	WithdrawFeeBps uint64 `json:"withdraw_fee_bps"`
	// RequiresApproval makes deposits pull against an underlying allowance.
	RequiresApproval bool `json:"requires_approval"`
	// RequiresShareApproval makes redemptions pull against a share allowance.
	RequiresShareApproval bool `json:"requires_share_approval"`
	Paused                bool `json:"paused"`

	TotalShares math.Int `json:"total_shares"`
}

// Validate checks a market definition
func (m Market) Validate() error {
	if m.Venue == "" || m.Market == "" || m.Denom == "" {
		return ErrInvalidMarket.Wrap("venue, market and denom are required")
	}
	if m.DepositFeeBps >= 10_000 || m.WithdrawFeeBps >= 10_000 {
		return ErrInvalidMarket.Wrap("fees must be below 100%")
	}
	return nil
}
