package btree

import "math"

const (
	// InvalidKey marks an empty key slot. It is never a storable key.
	InvalidKey Key = math.MaxUint32

	// InvalidAddr marks a missing node reference.
	InvalidAddr Addr = math.MaxUint32

	// invalidRaw is the raw content of an empty value slot.
	invalidRaw = uint32(math.MaxUint32)
)
