package utils

import (
	"bytes"
	"testing"
)

func TestAppendUint32(t *testing.T) {
	tests := []struct {
		n    uint32
		want []byte
	}{
		{0, []byte{0xff, 0, 0, 0, 0}},
		{1, []byte{0xff, 1, 0, 0, 0}},
		{0xdeadbeef, []byte{0xff, 0xef, 0xbe, 0xad, 0xde}},
		{^uint32(0), []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, tt := range tests {
		if got := AppendUint32([]byte{0xff}, tt.n); !bytes.Equal(got, tt.want) {
			t.Errorf("AppendUint32(%#x) = %x, want %x", tt.n, got, tt.want)
		}
	}
}
