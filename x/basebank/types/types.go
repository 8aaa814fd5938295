package types

import (
	"cosmossdk.io/errors"
)

// Module name and store key
const (
	ModuleName = "basebank"
	StoreKey   = ModuleName
)

var (
	BalanceKeyPrefix = []byte{0x01}
	SupplyKeyPrefix  = []byte{0x02}
)

var (
	ErrInsufficientFunds = errors.Register(ModuleName, 2, "insufficient funds")
	ErrInvalidCoins      = errors.Register(ModuleName, 3, "invalid coins")
)

// Event types
const (
	EventTypeTransfer = "basebank_transfer"
	EventTypeMint     = "basebank_mint"
)
