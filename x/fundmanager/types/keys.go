package types

// ModuleName is the base name of the module. Each manager instance is
// mounted under its own store key, for example "fundmanager-v1".
const ModuleName = "fundmanager"

// Store key prefixes
var (
	StateKey       = []byte{0x01}
	AccountingKey  = []byte{0x02}
	ParamsKey      = []byte{0x03}
	LimitKeyPrefix = []byte{0x04}
)
