package types

import (
	"cosmossdk.io/math"

	fundtypes "github.com/openalpha/yieldfund/types"
)

// ManagerState holds the principals, lifecycle and fee settings of one
// manager instance.
type ManagerState struct {
	Owner          string           `json:"owner"`
	FundController string           `json:"fund_controller"`
	Rebalancer     string           `json:"rebalancer"`
	Status         fundtypes.Status `json:"status"`
	Successor      string           `json:"successor,omitempty"`
	// DataSource is the predecessor allowed to push Accounting during an upgrade.
	DataSource string `json:"data_source,omitempty"`

	// DefaultAccountLimit caps every account without an override. Zero is unlimited.
	DefaultAccountLimit  math.Int `json:"default_account_limit"`
	InterestFeeRateBps   uint64   `json:"interest_fee_rate_bps"`
	FeeMasterBeneficiary string   `json:"fee_master_beneficiary"`
}

// Accounting is the ledger that survives a manager upgrade. Values are signed:
// NetDeposits goes negative once withdrawals include interest.
type Accounting struct {
	NetDeposits math.Int `json:"net_deposits"`
	// RawInterestHighWater is the largest raw interest ever observed. Fees
	// accrue only above it, so a loss and recovery is never charged twice.
	RawInterestHighWater      math.Int `json:"raw_interest_high_water"`
	RawInterestAtRateChange   math.Int `json:"raw_interest_at_rate_change"`
	FeesGeneratedAtRateChange math.Int `json:"fees_generated_at_rate_change"`
	FeesClaimed               math.Int `json:"fees_claimed"`
}

// NewAccounting returns an all-zero ledger.
func NewAccounting() Accounting {
	return Accounting{
		NetDeposits:               math.ZeroInt(),
		RawInterestHighWater:      math.ZeroInt(),
		RawInterestAtRateChange:   math.ZeroInt(),
		FeesGeneratedAtRateChange: math.ZeroInt(),
		FeesClaimed:               math.ZeroInt(),
	}
}

// Normalize replaces nil fields with zero.
func (a Accounting) Normalize() Accounting {
	for _, v := range []*math.Int{&a.NetDeposits, &a.RawInterestHighWater, &a.RawInterestAtRateChange, &a.FeesGeneratedAtRateChange, &a.FeesClaimed} {
		if v.IsNil() {
			*v = math.ZeroInt()
		}
	}
	return a
}

// Params are the tunable constants of a manager instance.
type Params struct {
	BaseDenom string `json:"base_denom"`
}

// DefaultParams returns default manager params
func DefaultParams() Params {
	return Params{BaseDenom: "aeth"}
}

// Validate checks the params
func (p Params) Validate() error {
	if p.BaseDenom == "" {
		return ErrInvalidParams.Wrap("base denom is required")
	}
	return nil
}

// GenesisState is the initial state of a manager instance.
type GenesisState struct {
	Params     Params       `json:"params"`
	State      ManagerState `json:"state"`
	Accounting Accounting   `json:"accounting"`
}

// DefaultGenesis returns an active manager with no principals.
func DefaultGenesis() GenesisState {
	return GenesisState{
		Params: DefaultParams(),
		State: ManagerState{
			Status:              fundtypes.StatusActive,
			DefaultAccountLimit: math.ZeroInt(),
		},
		Accounting: NewAccounting(),
	}
}

// Validate checks the genesis state
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.State.InterestFeeRateBps > fundtypes.BpsDenominator {
		return ErrInvalidFeeRate.Wrapf("got %d", gs.State.InterestFeeRateBps)
	}
	if !gs.State.DefaultAccountLimit.IsNil() && gs.State.DefaultAccountLimit.IsNegative() {
		return ErrInvalidLimit.Wrap("default limit cannot be negative")
	}
	return nil
}
