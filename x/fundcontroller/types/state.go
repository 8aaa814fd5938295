package types

import (
	fundtypes "github.com/openalpha/yieldfund/types"
)

// ControllerState holds the principals and lifecycle of one controller instance.
type ControllerState struct {
	Owner            string           `json:"owner"`
	FundManager      string           `json:"fund_manager"`
	Rebalancer       string           `json:"rebalancer"`
	Status           fundtypes.Status `json:"status"`
	Successor        string           `json:"successor,omitempty"`
	AaveReferralCode uint32           `json:"aave_referral_code"`
}

// Params are the tunable constants of a controller instance.
type Params struct {
	BaseDenom string `json:"base_denom"`
	// MaxPools bounds the registry and therefore the work done by a migration.
	MaxPools uint32 `json:"max_pools"`
	// MigrationDustBps is the rounding loss a migration may incur on top of
	// withdraw-side venue fees.
	MigrationDustBps uint64 `json:"migration_dust_bps"`
}

// DefaultParams returns default controller params
func DefaultParams() Params {
	return Params{
		BaseDenom:        "aeth",
		MaxPools:         32,
		MigrationDustBps: 1,
	}
}

// Validate checks the params
func (p Params) Validate() error {
	if p.BaseDenom == "" {
		return ErrInvalidParams.Wrap("base denom is required")
	}
	if p.MaxPools == 0 {
		return ErrInvalidParams.Wrap("max pools must be positive")
	}
	if p.MigrationDustBps > fundtypes.BpsDenominator {
		return ErrInvalidParams.Wrapf("migration dust %d bps exceeds 100%%", p.MigrationDustBps)
	}
	return nil
}

// GenesisState is the initial state of a controller instance.
type GenesisState struct {
	Params Params          `json:"params"`
	State  ControllerState `json:"state"`
	Pools  []PoolEntry     `json:"pools"`
}

// DefaultGenesis returns an active controller with no pools and no principals.
func DefaultGenesis() GenesisState {
	return GenesisState{
		Params: DefaultParams(),
		State:  ControllerState{Status: fundtypes.StatusActive},
	}
}

// Validate checks the genesis state
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if uint32(len(gs.Pools)) > gs.Params.MaxPools {
		return ErrTooManyPools.Wrapf("%d pools, max %d", len(gs.Pools), gs.Params.MaxPools)
	}
	seen := make(map[uint64]bool, len(gs.Pools))
	for _, pool := range gs.Pools {
		if seen[pool.PoolID] {
			return ErrPoolIDTaken.Wrapf("duplicate pool id %d", pool.PoolID)
		}
		seen[pool.PoolID] = true
		if err := ValidatePoolID(pool.Venue, pool.PoolID); err != nil {
			return err
		}
	}
	return nil
}
