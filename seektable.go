package tta

import (
	"encoding/binary"
	"hash/crc32"
	"io"
)

// readSeekTable reads the frame-length seek table following the header:
// `frames` little-endian u32 frame lengths (in bytes) followed by a
// trailing CRC-32 over those bytes, mirroring read_seek_table. It returns
// per-frame byte offsets relative to the start of frame data (offset[0] ==
// 0), not the raw lengths, since that is what random access needs.
func readSeekTable(r io.Reader, frames int) (offsets []uint64, ok bool, terr *Error) {
	buf := make([]byte, frames*4+4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, false, newError(KindReadFile, "readSeekTable", err)
	}

	offsets = make([]uint64, frames)
	var pos uint64
	for i := 0; i < frames; i++ {
		offsets[i] = pos
		pos += uint64(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
	}

	wantCRC := binary.LittleEndian.Uint32(buf[frames*4:])
	ok = crc32.ChecksumIEEE(buf[:frames*4]) == wantCRC
	return offsets, ok, nil
}

// writeSeekTable writes the frame lengths (in bytes, derived from
// consecutive offsets plus a final total) and their trailing CRC-32.
func writeSeekTable(w io.Writer, offsets []uint64, total uint64) *Error {
	frames := len(offsets)
	buf := make([]byte, frames*4+4)
	for i := 0; i < frames; i++ {
		var length uint64
		if i+1 < frames {
			length = offsets[i+1] - offsets[i]
		} else {
			length = total - offsets[i]
		}
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(length))
	}
	binary.LittleEndian.PutUint32(buf[frames*4:], crc32.ChecksumIEEE(buf[:frames*4]))

	if _, err := w.Write(buf); err != nil {
		return newError(KindWriteFile, "writeSeekTable", err)
	}
	return nil
}
