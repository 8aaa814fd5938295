package types

import (
	"fmt"
)

// Venue names an external yield venue.
type Venue string

const (
	VenueDydx      Venue = "dydx"
	VenueCompound  Venue = "compound"
	VenueKeeperDAO Venue = "keeperdao"
	VenueAave      Venue = "aave"
	VenueAlpha     Venue = "alpha"
	VenueEnzyme    Venue = "enzyme"
	VenueFuse      Venue = "fuse"
)

// WellKnownPoolID returns the fixed id of a venue. Fuse has none.
func WellKnownPoolID(venue Venue) (uint64, bool) {
	switch venue {
	case VenueDydx:
		return PoolIDDydx, true
	case VenueCompound:
		return PoolIDCompound, true
	case VenueKeeperDAO:
		return PoolIDKeeperDAO, true
	case VenueAave:
		return PoolIDAave, true
	case VenueAlpha:
		return PoolIDAlpha, true
	case VenueEnzyme:
		return PoolIDEnzyme, true
	}
	return 0, false
}

// ValidatePoolID checks that id is allowed for venue.
func ValidatePoolID(venue Venue, id uint64) error {
	if venue == VenueFuse {
		if id < FirstFusePoolID {
			return ErrInvalidPoolID.Wrapf("fuse pool ids start at %d, got %d", FirstFusePoolID, id)
		}
		return nil
	}
	want, ok := WellKnownPoolID(venue)
	if !ok {
		return ErrUnknownVenue.Wrap(string(venue))
	}
	if id != want {
		return ErrInvalidPoolID.Wrapf("%s uses pool id %d, got %d", venue, want, id)
	}
	return nil
}

// FeeSide tells which leg of a round trip a venue charges on.
type FeeSide string

const (
	FeeSideNone     FeeSide = "none"
	FeeSideDeposit  FeeSide = "deposit"
	FeeSideWithdraw FeeSide = "withdraw"
)

// FeeSpec is the fee a venue takes, in basis points of the moved amount.
type FeeSpec struct {
	Side FeeSide `json:"side"`
	Bps  uint64  `json:"bps"`
}

// NoFee is the FeeSpec of venues that charge nothing.
var NoFee = FeeSpec{Side: FeeSideNone}

// PoolEntry binds a pool id to a venue and market.
type PoolEntry struct {
	PoolID           uint64 `json:"pool_id"`
	Venue            Venue  `json:"venue"`
	Market           string `json:"market"`
	Enabled          bool   `json:"enabled"`
	RegisteredHeight int64  `json:"registered_height"`
	// ReferralCode is filled from controller state when dispatching to Aave.
	ReferralCode uint32 `json:"referral_code,omitempty"`
}

// SameBinding reports whether e and other point at the same venue market.
func (e PoolEntry) SameBinding(other PoolEntry) bool {
	return e.Venue == other.Venue && e.Market == other.Market
}

func (e PoolEntry) String() string {
	return fmt.Sprintf("pool %d (%s/%s)", e.PoolID, e.Venue, e.Market)
}
