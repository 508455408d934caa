package tta

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteReadSeekTableRoundTrip(t *testing.T) {
	offsets := []uint64{0, 1000, 2500, 2500, 4000}
	total := uint64(5200)

	var buf bytes.Buffer
	requireOK(t, writeSeekTable(&buf, offsets, total))

	got, ok, err := readSeekTable(&buf, len(offsets))
	requireOK(t, err)
	assert.True(t, ok)
	assert.Equal(t, offsets, got)
}

func TestReadSeekTableDetectsCorruption(t *testing.T) {
	offsets := []uint64{0, 100, 300}
	var buf bytes.Buffer
	requireOK(t, writeSeekTable(&buf, offsets, 500))

	corrupted := buf.Bytes()
	corrupted[0] ^= 0xff

	_, ok, err := readSeekTable(bytes.NewReader(corrupted), len(offsets))
	requireOK(t, err)
	assert.False(t, ok)
}

func TestSeekTableZeroFrames(t *testing.T) {
	var buf bytes.Buffer
	requireOK(t, writeSeekTable(&buf, nil, 0))
	assert.Equal(t, 4, buf.Len())

	offsets, ok, err := readSeekTable(&buf, 0)
	requireOK(t, err)
	assert.True(t, ok)
	assert.Empty(t, offsets)
}
