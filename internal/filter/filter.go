// Package filter implements the two prediction stages TTA1 runs on every
// channel's sample history: an 8-tap adaptive hybrid filter and a fixed
// order-1 predictor. Both are reused identically by the encoder and the
// decoder, each simply running the inverse arithmetic of the other.
package filter

// FilterSets gives the hybrid filter's shift for each of the three depth
// classes TTA1 recognizes: 1, 2 or 3 byte samples (bits per sample 1-8,
// 9-16, 17-24); NewHybrid derives round from it. Index with depth-1.
var FilterSets = [3]int32{10, 9, 10}

// Hybrid is the adaptive 8-tap filter state for one channel. QM holds the
// adaptive filter coefficients, DL the recent residual-domain sample
// history, DX the sign-quantized gradient used to nudge QM every sample.
type Hybrid struct {
	Shift int32
	Round int32
	Error int32
	QM    [8]int32
	DL    [8]int32
	DX    [8]int32
}

// NewHybrid creates a hybrid filter state for a channel, seeded from the
// low 8 bytes of key (0 for an unencrypted stream) and the shift/round pair
// selected by the stream's sample depth.
func NewHybrid(key uint64, shift int32) *Hybrid {
	h := &Hybrid{
		Shift: shift,
		Round: 1 << uint(shift-1),
	}
	for i := 0; i < 8; i++ {
		h.QM[i] = int32(int8(key >> uint(i*8)))
	}
	return h
}

func dot(a, b *[8]int32) int32 {
	var sum int32
	for i := 0; i < 8; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// adaptQM nudges the filter coefficients toward the sign of the previous
// call's residual, the hybrid filter's only learning step.
func (h *Hybrid) adaptQM() {
	switch {
	case h.Error < 0:
		for i := 0; i < 8; i++ {
			h.QM[i] -= h.DX[i]
		}
	case h.Error > 0:
		for i := 0; i < 8; i++ {
			h.QM[i] += h.DX[i]
		}
	}
}

// shiftTaps slides DX and DL down by one slot and recomputes the top four DX
// entries from the OLD (pre-shift) DL[4:8], matching the reference's
// sign-quantized gradient update. It must run after adaptQM and before the
// direction-specific trailing DL[4:8] update.
func (h *Hybrid) shiftTaps() {
	oldDL4, oldDL5, oldDL6, oldDL7 := h.DL[4], h.DL[5], h.DL[6], h.DL[7]

	for i := 0; i < 3; i++ {
		h.DX[i] = h.DX[i+1]
		h.DL[i] = h.DL[i+1]
	}
	h.DX[3] = h.DX[4]
	h.DL[3] = h.DL[4]

	h.DX[4] = (oldDL4 >> 30) | 1
	h.DX[5] = ((oldDL5 >> 30) | 2) &^ 1
	h.DX[6] = ((oldDL6 >> 30) | 2) &^ 1
	h.DX[7] = ((oldDL7 >> 30) | 4) &^ 3
}

// Decode runs the hybrid filter's decompression stage in place: it predicts
// from the current state, adds the prediction to value, then folds value
// into the tap history.
func (h *Hybrid) Decode(value *int32) {
	h.adaptQM()
	sum := h.Round + dot(&h.DL, &h.QM)
	h.shiftTaps()

	h.Error = *value
	*value += sum >> uint(h.Shift)

	o5, o6, o7 := h.DL[5], h.DL[6], h.DL[7]
	h.DL[4] = -o5
	h.DL[5] = -o6
	h.DL[6] = *value - o7
	h.DL[7] = *value
	h.DL[5] += h.DL[6]
	h.DL[4] += h.DL[5]
}

// Encode runs the hybrid filter's compression stage in place: the inverse
// of Decode, folding the incoming value into the tap history and then
// subtracting the prediction from it.
func (h *Hybrid) Encode(value *int32) {
	h.adaptQM()
	sum := h.Round + dot(&h.DL, &h.QM)
	h.shiftTaps()

	o5, o6, o7 := h.DL[5], h.DL[6], h.DL[7]
	h.DL[4] = -o5
	h.DL[5] = -o6
	h.DL[6] = *value - o7
	h.DL[7] = *value
	h.DL[5] += h.DL[6]
	h.DL[4] += h.DL[5]

	*value -= sum >> uint(h.Shift)
	h.Error = *value
}

// Predictor1 is the fixed order-1 predictor: a single-pole approximation of
// 31/32 of the previous sample, computed with a pure right shift so the
// encoder's subtraction and the decoder's addition of it (channel.go) are
// exact inverses.
func Predictor1(prev int32) int32 {
	return (prev * 31) >> 5
}
