package utils

import "encoding/binary"

// AppendUint32 appends n to b in little-endian order.
func AppendUint32(b []byte, n uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, n)
}
