package tta

import (
	"bufio"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/icza/bitio"
)

// headerSize is the wire size of the 22-byte TTA1 header, signature
// through trailing CRC-32.
const headerSize = 22

// id3v2HeaderSize is the fixed 10-byte ID3v2 header: "ID3" + 2 version
// bytes + 1 flags byte + 4 syncsafe size bytes.
const id3v2HeaderSize = 10

// skipID3v2 consumes a leading ID3v2 tag if present and returns the number
// of bytes it occupied. It takes a *bufio.Reader so a missing tag can be
// detected with Peek and left entirely unconsumed, exactly reproducing the
// reference's "rewind and retry as a TTA1 signature" behavior without
// needing a seekable source.
//
// The flags byte and the four-byte syncsafe size are the one place this
// format isn't byte-granular: each size byte reserves its own top bit, so
// the 28 significant bits straddle byte boundaries the way a bit cache is
// built to track. That's genuinely github.com/icza/bitio's job; see
// internal/bitio's doc comment for why the sample bitstream itself still
// cannot reuse it.
func skipID3v2(r *bufio.Reader) (uint32, *Error) {
	sig, err := r.Peek(3)
	if err != nil {
		return 0, newError(KindReadFile, "skipID3v2", err)
	}
	if string(sig) != "ID3" {
		return 0, nil
	}
	r.Discard(3)

	br := bitio.NewReader(r)
	if _, err := br.ReadBits(16); err != nil { // 2 version bytes, unused
		return 0, newError(KindReadFile, "skipID3v2", err)
	}

	if _, err := br.ReadBits(3); err != nil { // unsync, ext header, experimental — unused here
		return 0, newError(KindReadFile, "skipID3v2", err)
	}
	footer, err := br.ReadBits(1)
	if err != nil {
		return 0, newError(KindReadFile, "skipID3v2", err)
	}
	if _, err := br.ReadBits(4); err != nil { // reserved low nibble
		return 0, newError(KindReadFile, "skipID3v2", err)
	}

	var words [4]uint64
	for i := range words {
		if _, err := br.ReadBits(1); err != nil { // per-byte reserved top bit
			return 0, newError(KindReadFile, "skipID3v2", err)
		}
		w, err := br.ReadBits(7)
		if err != nil {
			return 0, newError(KindReadFile, "skipID3v2", err)
		}
		words[i] = w
	}

	var size uint32
	if footer != 0 {
		size += 10
	}
	size += uint32(words[0])
	size = (size << 7) | uint32(words[1])
	size = (size << 7) | uint32(words[2])
	size = (size << 7) | uint32(words[3])

	if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
		return 0, newError(KindReadFile, "skipID3v2", err)
	}
	return size + id3v2HeaderSize, nil
}

// readHeader reads the 22-byte TTA1 header (no leading ID3v2 tag — callers
// peel that off first with skipID3v2) and validates its trailing CRC-32.
// Every field here is a whole byte or more, so plain io.Reader suffices.
func readHeader(r io.Reader) (Info, *Error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Info{}, newError(KindReadFile, "readHeader", err)
	}
	if string(buf[0:4]) != "TTA1" {
		return Info{}, newErrorf(KindFormatIncompatible, "readHeader", "missing TTA1 signature")
	}

	var i Info
	i.Format = Format(binary.LittleEndian.Uint16(buf[4:6]))
	i.NumChannels = binary.LittleEndian.Uint16(buf[6:8])
	i.BitsPerSample = binary.LittleEndian.Uint16(buf[8:10])
	i.SampleRate = binary.LittleEndian.Uint32(buf[10:14])
	i.Samples = binary.LittleEndian.Uint32(buf[14:18])
	wantCRC := binary.LittleEndian.Uint32(buf[18:22])

	if crc32.ChecksumIEEE(buf[0:18]) != wantCRC {
		return Info{}, wrapCRC("readHeader", "header")
	}
	return i, nil
}

// writeHeader writes the 22-byte TTA1 header. Every field is a whole byte
// or more, so this writes directly through w rather than wrapping it in a
// bit writer that would never see a sub-byte field.
func writeHeader(w io.Writer, i Info) *Error {
	var buf [22]byte
	copy(buf[0:4], "TTA1")
	binary.LittleEndian.PutUint16(buf[4:6], uint16(i.Format))
	binary.LittleEndian.PutUint16(buf[6:8], i.NumChannels)
	binary.LittleEndian.PutUint16(buf[8:10], i.BitsPerSample)
	binary.LittleEndian.PutUint32(buf[10:14], i.SampleRate)
	binary.LittleEndian.PutUint32(buf[14:18], i.Samples)
	binary.LittleEndian.PutUint32(buf[18:22], crc32.ChecksumIEEE(buf[0:18]))

	if _, err := w.Write(buf[:]); err != nil {
		return newError(KindWriteFile, "writeHeader", err)
	}
	return nil
}
