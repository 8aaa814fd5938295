package types

import (
	"cosmossdk.io/errors"
)

// Module name and store key
const (
	ModuleName = "claimtoken"
	StoreKey   = ModuleName
)

// Store key prefixes
var (
	BalanceKeyPrefix   = []byte{0x01}
	AllowanceKeyPrefix = []byte{0x02}
	MinterKeyPrefix    = []byte{0x03}
	SupplyKey          = []byte{0x04}
	MetadataKey        = []byte{0x05}
)

// Module specific errors. Shared signals (allowance, authorization) live in
// the fund types package.
var (
	ErrInsufficientBalance = errors.Register(ModuleName, 2, "transfer amount exceeds balance")
	ErrSelfTransfer        = errors.Register(ModuleName, 3, "sender and recipient are the same")
)

// Event types
const (
	EventTypeTransfer       = "claimtoken_transfer"
	EventTypeApproval       = "claimtoken_approval"
	EventTypeMint           = "claimtoken_mint"
	EventTypeBurn           = "claimtoken_burn"
	EventTypeMinterAdded    = "claimtoken_minter_added"
	EventTypeMinterRenounce = "claimtoken_minter_renounced"
)

// Metadata describes the claim token.
type Metadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint32 `json:"decimals"`
}

// DefaultMetadata returns the metadata used when none is configured.
func DefaultMetadata() Metadata {
	return Metadata{
		Name:     "Yield Fund Claim Token",
		Symbol:   "YFCT",
		Decimals: 18,
	}
}
