package tta

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadHeaderRoundTrip(t *testing.T) {
	info := Info{
		Format:        FormatSimple,
		NumChannels:   2,
		BitsPerSample: 16,
		SampleRate:    44100,
		Samples:       123456,
	}

	var buf bytes.Buffer
	requireOK(t, writeHeader(&buf, info))
	assert.Equal(t, headerSize, buf.Len())

	got, err := readHeader(&buf)
	requireOK(t, err)
	assert.Equal(t, info, got)
}

func TestReadHeaderRejectsCorruptCRC(t *testing.T) {
	var buf bytes.Buffer
	requireOK(t, writeHeader(&buf, Info{
		Format: FormatSimple, NumChannels: 1, BitsPerSample: 16,
		SampleRate: 44100, Samples: 1000,
	}))
	corrupted := buf.Bytes()
	corrupted[4] ^= 0xff

	_, err := readHeader(bytes.NewReader(corrupted))
	require.NotNil(t, err)
	assert.Equal(t, KindFileCorrupted, err.Kind)
}

func TestReadHeaderRejectsBadSignature(t *testing.T) {
	buf := make([]byte, headerSize)
	copy(buf, "XXXX")
	_, err := readHeader(bytes.NewReader(buf))
	require.NotNil(t, err)
	assert.Equal(t, KindFormatIncompatible, err.Kind)
}

func TestSkipID3v2LeavesNonID3StreamUntouched(t *testing.T) {
	payload := append([]byte("TTA1"), []byte{1, 2, 3}...)
	r := bufio.NewReader(bytes.NewReader(payload))

	n, err := skipID3v2(r)
	requireOK(t, err)
	assert.Equal(t, uint32(0), n)

	rest := make([]byte, len(payload))
	_, rerr := r.Read(rest)
	require.NoError(t, rerr)
	assert.Equal(t, payload, rest)
}

func TestSkipID3v2SkipsTag(t *testing.T) {
	var tag bytes.Buffer
	tag.WriteString("ID3")
	tag.Write([]byte{3, 0, 0}) // version, flags (no footer)
	tagBody := []byte("fake id3 frames")
	// syncsafe size encoding, 4 bytes, 7 bits each
	size := uint32(len(tagBody))
	tag.Write([]byte{
		byte((size >> 21) & 0x7f),
		byte((size >> 14) & 0x7f),
		byte((size >> 7) & 0x7f),
		byte(size & 0x7f),
	})
	tag.Write(tagBody)
	tag.WriteString("TTA1REST")

	r := bufio.NewReader(&tag)
	n, err := skipID3v2(r)
	requireOK(t, err)
	assert.Equal(t, uint32(10+len(tagBody)), n)

	rest := make([]byte, 8)
	_, rerr := r.Read(rest)
	require.NoError(t, rerr)
	assert.Equal(t, "TTA1REST", string(rest))
}
