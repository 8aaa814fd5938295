package types

// ModuleName is the base name of the module. Each controller instance is
// mounted under its own store key, for example "fundcontroller-v1".
const ModuleName = "fundcontroller"

// Store key prefixes
var (
	StateKey          = []byte{0x01}
	ParamsKey         = []byte{0x02}
	PoolKeyPrefix     = []byte{0x03}
	ApprovalKeyPrefix = []byte{0x04}
)

// Well-known pool ids. Fuse pools start at FirstFusePoolID.
const (
	PoolIDDydx      uint64 = 0
	PoolIDCompound  uint64 = 1
	PoolIDKeeperDAO uint64 = 2
	PoolIDAave      uint64 = 3
	PoolIDAlpha     uint64 = 4
	PoolIDEnzyme    uint64 = 5

	FirstFusePoolID uint64 = 100
)
