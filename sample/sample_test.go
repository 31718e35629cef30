package sample

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juruen/digitpad/raster"
)

func TestEncodeEmpty(t *testing.T) {
	s, err := Encode(raster.New(Width, Height))
	require.NoError(t, err)
	assert.Len(t, s, Len)
	assert.True(t, s.Empty())
	assert.NoError(t, s.Validate())
}

func TestEncodeRowMajor(t *testing.T) {
	r := raster.New(Width, Height)
	r.Set(0, 0, 255)

	s, err := Encode(r)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s[0])
	for i, v := range s[1:] {
		assert.Zero(t, v, "index %d", i+1)
	}
}

func TestEncodeCellOrder(t *testing.T) {
	r := raster.New(Width, Height)
	r.Set(27, 0, 255)
	r.Set(0, 1, 51)
	r.Set(27, 27, 255)

	s, err := Encode(r)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s[27])
	assert.InDelta(t, 0.2, s[28], 1e-9)
	assert.Equal(t, 1.0, s[Len-1])
}

func TestEncodeBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for n := 0; n < 20; n++ {
		r := raster.New(Width, Height)
		for y := 0; y < Height; y++ {
			for x := 0; x < Width; x++ {
				r.Set(x, y, uint8(rnd.Intn(256)))
			}
		}

		s, err := Encode(r)
		require.NoError(t, err)
		require.Len(t, s, Len)
		for _, v := range s {
			require.True(t, v >= 0 && v <= 1, "value %v", v)
		}
	}
}

func TestEncodeWrongSize(t *testing.T) {
	_, err := Encode(raster.New(448, 448))
	require.Error(t, err)
	assert.Equal(t, ErrRasterSize, errors.Cause(err))
}

func TestValidate(t *testing.T) {
	assert.Equal(t, ErrLength, errors.Cause(Sample{0.5}.Validate()))

	s := make(Sample, Len)
	s[10] = 1.5
	assert.Equal(t, ErrRange, errors.Cause(s.Validate()))
}
