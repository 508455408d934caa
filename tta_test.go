package tta

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// memSeeker is an in-memory io.WriteSeeker, standing in for the seekable
// *os.File the Encoder's seek-table patch-back otherwise expects.
type memSeeker struct {
	buf []byte
	pos int64
}

func (m *memSeeker) Write(p []byte) (int, error) {
	if m.pos+int64(len(p)) > int64(len(m.buf)) {
		grown := make([]byte, m.pos+int64(len(p)))
		copy(grown, m.buf)
		m.buf = grown
	}
	n := copy(m.buf[m.pos:], p)
	m.pos += int64(n)
	return n, nil
}

func (m *memSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		m.pos = offset
	case 1:
		m.pos += offset
	case 2:
		m.pos = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("bad whence %d", whence)
	}
	return m.pos, nil
}

func testInfo(nch uint16, samples uint32) Info {
	return Info{
		Format:        FormatSimple,
		NumChannels:   nch,
		BitsPerSample: 16,
		SampleRate:    10, // frameLenStd = floor(256*10/245) = 10 samples/frame
		Samples:       samples,
	}
}

// requireOK fails the test if a *Error result is non-nil. A plain
// require.NoError misfires here: *Error satisfies error, so a nil *Error
// boxed into that interface is not itself == nil.
func requireOK(t require.TestingT, terr *Error) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	require.Nil(t, terr)
}

// packSamples packs a flat slice of interleaved int32 samples into their
// wire-format PCM bytes at the given depth, mirroring what a real caller
// feeds Encoder.Encode.
func packSamples(samples []int32, depth int32) []byte {
	buf := make([]byte, len(samples)*int(depth))
	for i, v := range samples {
		packSample(v, buf[i*int(depth):], depth)
	}
	return buf
}

// unpackSamples is the inverse of packSamples, mirroring what a real caller
// gets back from Decoder.Decode.
func unpackSamples(pcm []byte, depth int32) []int32 {
	out := make([]int32, len(pcm)/int(depth))
	for i := range out {
		out[i] = unpackSample(pcm[i*int(depth):], depth)
	}
	return out
}

func encodeAll(t *testing.T, info Info, samples []int32, opts ...Option) *memSeeker {
	t.Helper()
	out := &memSeeker{}
	enc, terr := NewEncoder(out, info, opts...)
	requireOK(t, terr)
	pcm := packSamples(samples, info.depth())
	n, terr := enc.Encode(pcm)
	requireOK(t, terr)
	assert.Equal(t, len(samples)/int(info.NumChannels), n)
	requireOK(t, enc.Close())
	return out
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nch := uint16(rapid.IntRange(1, 3).Draw(t, "nch"))
		steps := rapid.IntRange(0, 37).Draw(t, "steps")
		samples := rapid.SliceOfN(rapid.Int32Range(-(1<<14), (1<<14)-1), steps*int(nch), steps*int(nch)).Draw(t, "samples")

		info := testInfo(nch, uint32(steps))
		o := &memSeeker{}
		enc, terr := NewEncoder(o, info)
		requireOK(t, terr)
		_, terr = enc.Encode(packSamples(samples, info.depth()))
		requireOK(t, terr)
		requireOK(t, enc.Close())

		dec, terr := NewDecoder(bytes.NewReader(o.buf))
		requireOK(t, terr)
		got := make([]byte, len(samples)*int(info.depth()))
		n, terr := dec.Decode(got)
		requireOK(t, terr)
		assert.Equal(t, steps, n)
		assert.Equal(t, samples, unpackSamples(got, info.depth()))
	})
}

func TestEncodeDecodeLastFrameShorterThanStandard(t *testing.T) {
	info := testInfo(1, 25) // 25 = 2*10 + 5, last frame is short
	samples := make([]int32, 25)
	for i := range samples {
		samples[i] = int32(i*131 - 900)
	}
	out := encodeAll(t, info, samples)

	dec, terr := NewDecoder(bytes.NewReader(out.buf))
	requireOK(t, terr)
	got := make([]byte, 25*int(info.depth()))
	n, terr := dec.Decode(got)
	requireOK(t, terr)
	assert.Equal(t, 25, n)
	assert.Equal(t, samples, unpackSamples(got, info.depth()))
}

func TestEncodeDecodeZeroSamples(t *testing.T) {
	info := testInfo(2, 0)
	out := encodeAll(t, info, nil)

	dec, terr := NewDecoder(bytes.NewReader(out.buf))
	requireOK(t, terr)
	assert.True(t, dec.Done())
}

func TestEncodeDecodeWithPasswordRoundTrip(t *testing.T) {
	info := testInfo(1, 20)
	samples := make([]int32, 20)
	for i := range samples {
		samples[i] = int32(i*7 - 50)
	}
	out := encodeAll(t, info, samples, WithPassword("hunter2"))

	// Decoding without the password must fail.
	_, terr := NewDecoder(bytes.NewReader(out.buf))
	require.NotNil(t, terr)
	assert.Equal(t, KindPasswordProtected, terr.Kind)

	dec, terr := NewDecoder(bytes.NewReader(out.buf), WithPassword("hunter2"))
	requireOK(t, terr)
	got := make([]byte, 20*int(info.depth()))
	_, terr = dec.Decode(got)
	requireOK(t, terr)
	assert.Equal(t, samples, unpackSamples(got, info.depth()))
	assert.Equal(t, FormatEncrypted, dec.Info.Format)
}

func TestDecodeRecoversFromCorruptedFrameViaSeekTable(t *testing.T) {
	info := testInfo(1, 30) // 3 full frames of 10 samples each
	samples := make([]int32, 30)
	for i := range samples {
		samples[i] = int32(i*3 - 40)
	}
	out := encodeAll(t, info, samples)

	// Corrupt a byte inside the second frame's data, leaving its on-disk
	// length (and thus the seek table) untouched so the decoder can still
	// resynchronize to the third frame.
	frameOffset := int(headerSize) + (3+1)*4
	offsets, ok, terr := readSeekTable(bytes.NewReader(out.buf[headerSize:]), 3)
	requireOK(t, terr)
	require.True(t, ok)
	out.buf[frameOffset+int(offsets[1])+2] ^= 0xff

	dec, terr := NewDecoder(bytes.NewReader(out.buf))
	requireOK(t, terr)

	got := make([]byte, 30*int(info.depth()))
	n, terr := dec.Decode(got)
	// A usable seek table makes this a recoverable error: the decoder
	// resynchronizes to the next frame's recorded offset and keeps going
	// rather than failing the whole call.
	requireOK(t, terr)
	assert.Equal(t, 30, n)

	gotSamples := unpackSamples(got, info.depth())

	// First frame decoded correctly; corrupted frame zeroed; decoder
	// resynchronized via the seek table to decode the third frame correctly.
	assert.Equal(t, samples[0:10], gotSamples[0:10])
	for _, v := range gotSamples[10:20] {
		assert.Equal(t, int32(0), v)
	}
	assert.Equal(t, samples[20:30], gotSamples[20:30])
}

func TestDecodeFrameBoundedSingleFrame(t *testing.T) {
	info := testInfo(2, 10)
	samples := make([]int32, 20)
	for i := range samples {
		samples[i] = int32(i*17 - 100)
	}
	out := encodeAll(t, info, samples)

	offsets, ok, terr := readSeekTable(bytes.NewReader(out.buf[headerSize:]), 1)
	requireOK(t, terr)
	require.True(t, ok)
	_ = offsets

	frameStart := int(headerSize) + (1+1)*4
	frameBytes := out.buf[frameStart:]

	got, terr := DecodeFrame(frameBytes, info, 10)
	requireOK(t, terr)
	assert.Equal(t, samples, unpackSamples(got, info.depth()))
}
