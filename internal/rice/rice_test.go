package rice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestEncDecRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Int32Range(-(1 << 24), (1<<24)-1).Draw(t, "x")
		assert.Equal(t, x, Dec(Enc(x)))
	})
}

func TestEncNeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Int32().Draw(t, "x")
		assert.True(t, int32(Enc(x)) >= 0 || Enc(x) > uint32(1<<31))
	})
}

func TestEncZeroAndNegativeShareEvenCodes(t *testing.T) {
	assert.Equal(t, uint32(0), Enc(0))
	assert.Equal(t, uint32(2), Enc(-1))
	assert.Equal(t, uint32(1), Enc(1))
	assert.Equal(t, uint32(4), Enc(-2))
}

func TestBitShiftSaturates(t *testing.T) {
	assert.Equal(t, uint32(1), BitShift(0))
	assert.Equal(t, uint32(1<<31), BitShift(31))
	assert.Equal(t, uint32(0x80000000), BitShift(32))
	assert.Equal(t, uint32(0x80000000), BitShift(1000))
}

func TestShift16IsBitShiftPlusFour(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Uint32Range(0, 40).Draw(t, "n")
		assert.Equal(t, BitShift(n+4), Shift16(n))
	})
}

func TestNewStateInitialParameters(t *testing.T) {
	s := New()
	assert.Equal(t, uint32(10), s.K0)
	assert.Equal(t, uint32(10), s.K1)
	assert.Equal(t, Shift16(10), s.Sum0)
	assert.Equal(t, Shift16(10), s.Sum1)
}

// AdaptK0/AdaptK1 must report the PRE-adaptation k so callers can compare
// an outval against the band that was in effect when it was coded.
func TestAdaptK0ReturnsPreAdaptationK(t *testing.T) {
	s := New()
	before := s.K0
	oldK := s.AdaptK0(1 << 20)
	assert.Equal(t, before, oldK)
}

func TestAdaptTracksRunningMagnitude(t *testing.T) {
	s := New()
	// Feeding consistently large values should eventually raise k0.
	for i := 0; i < 200; i++ {
		s.AdaptK0(1 << 18)
	}
	assert.Greater(t, s.K0, uint32(10))
}

func TestAdaptDecaysTowardZeroOnSmallValues(t *testing.T) {
	s := &State{K0: 15, K1: 15, Sum0: Shift16(15), Sum1: Shift16(15)}
	for i := 0; i < 400; i++ {
		s.AdaptK0(0)
	}
	assert.Less(t, s.K0, uint32(15))
}
