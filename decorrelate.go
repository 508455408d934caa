package tta

// decorrelateEncode applies TTA1's inter-channel decorrelation transform to
// one time step's raw samples (one int32 per channel, in channel order):
// every channel but the last is replaced by its forward difference with
// the next channel, and the last channel is adjusted by half of the final
// difference. Single-channel streams are passed through unchanged.
//
// Grounded on encoder::process_stream's channel loop (libtta.cpp): for
// channel c < n-1, transformed[c] = raw[c+1] - raw[c]; for the last
// channel, transformed[n-1] = raw[n-1] - transformed[n-2]/2.
func decorrelateEncode(raw []int32) []int32 {
	n := len(raw)
	out := make([]int32, n)
	if n <= 1 {
		copy(out, raw)
		return out
	}
	var res int32
	for c := 0; c < n-1; c++ {
		res = raw[c+1] - raw[c]
		out[c] = res
	}
	out[n-1] = raw[n-1] - res/2
	return out
}

// decorrelateDecode is the inverse of decorrelateEncode: given one time
// step's entropy-decoded (still transformed) values, it returns the raw
// per-channel samples in a new slice (values is left unchanged), following
// decoder::process_stream's cache[] reverse walk exactly.
func decorrelateDecode(values []int32) []int32 {
	n := len(values)
	out := make([]int32, n)
	copy(out, values)
	if n <= 1 {
		return out
	}

	out[n-1] += out[n-2] / 2
	cp := n - 1
	for smp := n - 2; smp > 0; smp-- {
		out[smp] = out[cp] - out[smp]
		cp--
	}
	out[0] = out[cp] - out[0]
	return out
}
