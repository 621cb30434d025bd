package bitrange

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/bitmatch/errors"
)

func TestView_GetSet(t *testing.T) {
	var reg uint8 = 0x5A
	v := New(&reg, 2, 3)

	assert.Equal(t, uint8(0b110), v.Get())
	assert.Equal(t, uint8(0x1C), v.Mask())
	assert.Equal(t, uint(2), v.Bit())
	assert.Equal(t, uint(3), v.Len())

	v.Set(5)
	assert.Equal(t, uint8(0x56), reg)
	v.Set(5)
	assert.Equal(t, uint8(0x56), reg)
	assert.Equal(t, uint8(5), v.Get())
}

func TestView_SetTruncates(t *testing.T) {
	var reg uint16
	v := New(&reg, 4, 4)
	v.Set(0x1F)
	assert.Equal(t, uint16(0x00F0), reg)
	assert.Equal(t, uint16(0xF), v.Get())
}

func TestView_FullWidth(t *testing.T) {
	var reg uint64 = 0x0123456789ABCDEF
	v := New(&reg, 0, 64)
	assert.Equal(t, ^uint64(0), v.Mask())
	assert.Equal(t, reg, v.Get())

	v.Set(42)
	assert.Equal(t, uint64(42), reg)

	top := New(&reg, 63, 1)
	top.Set(1)
	assert.Equal(t, uint64(1)<<63|42, reg)
}

func TestView_RoundTripPreservesOutside(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 2000; i++ {
		bit := uint(rng.Intn(32))
		length := uint(1 + rng.Intn(32-int(bit)))
		reg := rng.Uint32()
		before := reg

		v := New(&reg, bit, length)
		x := rng.Uint32() & (v.Mask() >> bit)
		v.Set(x)

		require.Equal(t, x, v.Get(), "bit=%d length=%d", bit, length)
		require.Equal(t, before&^v.Mask(), reg&^v.Mask(), "outside bits changed")
	}
}

func TestView_BitAt(t *testing.T) {
	var reg uint8 = 0x5A // 0101_1010
	v := New(&reg, 2, 3)

	assert.False(t, v.GetBitAt(0))
	assert.True(t, v.GetBitAt(1))
	assert.True(t, v.GetBitAt(2))

	v.SetBitAt(0, true)
	assert.Equal(t, uint8(0x5E), reg)
	v.SetBitAt(2, false)
	assert.Equal(t, uint8(0x4E), reg)
	v.SetBitAt(2, false)
	assert.Equal(t, uint8(0x4E), reg)
}

func TestView_AliasesBacking(t *testing.T) {
	var reg uint32
	lo := New(&reg, 0, 16)
	hi := New(&reg, 16, 16)

	lo.Set(0xBEEF)
	hi.Set(0xDEAD)
	assert.Equal(t, uint32(0xDEADBEEF), reg)

	reg = 0x12345678
	assert.Equal(t, uint32(0x5678), lo.Get())
	assert.Equal(t, uint32(0x1234), hi.Get())
}

func TestEqual(t *testing.T) {
	var reg uint16 = 0x0F00
	v := New(&reg, 8, 8)

	assert.True(t, Equal(v, 15))
	assert.True(t, Equal(v, uint8(15)))
	assert.False(t, Equal(v, int64(16)))

	// converted to the right-hand type before comparing
	reg = 0xFF00
	assert.True(t, Equal(v, int8(-1)))
}

func TestView_ContractViolations(t *testing.T) {
	var reg uint8
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil backing", func() { New[uint8](nil, 0, 1) }},
		{"zero length", func() { New(&reg, 0, 0) }},
		{"past width", func() { New(&reg, 6, 3) }},
		{"bit past width", func() { New(&reg, 8, 1) }},
		{"GetBitAt past length", func() { New(&reg, 0, 3).GetBitAt(3) }},
		{"SetBitAt past length", func() { New(&reg, 4, 4).SetBitAt(4, true) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				err, ok := r.(*errors.Error)
				require.True(t, ok)
				assert.Equal(t, errors.KindContract, err.Kind)
			}()
			tt.fn()
		})
	}
}
