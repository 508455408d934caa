package tta

// unpackSample reads one little-endian, sign-extended PCM sample of the
// given byte depth (2 for 16-bit, 3 for 24-bit — the only depths
// Info.Validate accepts) from the front of buf.
//
// The reference's READ_BUFFER macro gets the same result through a
// left-shift-then-arithmetic-right-shift trick so it can reuse a single
// misaligned 4-byte load for every depth; Go has no pointer-cast
// equivalent of that load, so this unpacks each depth directly instead.
func unpackSample(buf []byte, depth int32) int32 {
	switch depth {
	case 2:
		return int32(int16(uint16(buf[0]) | uint16(buf[1])<<8))
	case 3:
		v := int32(uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16)
		return (v << 8) >> 8 // sign-extend bit 23 into the top byte
	default:
		panic("tta: unsupported sample depth")
	}
}

// packSample writes value into buf as a little-endian PCM sample of the
// given byte depth, truncating to that width — the inverse of
// unpackSample and of the reference's WRITE_BUFFER macro.
func packSample(value int32, buf []byte, depth int32) {
	switch depth {
	case 2:
		buf[0] = byte(value)
		buf[1] = byte(value >> 8)
	case 3:
		buf[0] = byte(value)
		buf[1] = byte(value >> 8)
		buf[2] = byte(value >> 16)
	default:
		panic("tta: unsupported sample depth")
	}
}
