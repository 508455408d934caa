package tta

import (
	"io"

	"github.com/ttalib/go-tta/internal/bitio"
	"github.com/ttalib/go-tta/internal/dbg"
)

func init() {
	dbg.Debug = false
}

// Encoder writes a TTA1 stream: the 22-byte header, a placeholder seek
// table, then one compressed frame at a time. If the underlying io.Writer
// is also an io.WriteSeeker, Close seeks back and patches the seek table
// with the real per-frame byte lengths — encoder::finalize/write_seek_table.
type Encoder struct {
	w    io.Writer
	bw   *bitio.Writer
	info Info

	depth int32
	nch   int
	key   uint64

	channels []*channel

	flenStd, flenLast uint32
	frames            int
	fnum              int
	fpos              uint32

	frameLens []uint32
	rate      float64
	opts      options
}

// NewEncoder validates info, resolves opts, writes the TTA1 header and
// reserves the seek table placeholder, and readies the per-channel codec
// state for frame 0 — encoder::init.
func NewEncoder(w io.Writer, info Info, opts ...Option) (*Encoder, *Error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if _, terr := resolveImplementation(o.implementation); terr != nil {
		return nil, terr
	}

	if o.password == "" {
		info.Format = FormatSimple
	} else {
		info.Format = FormatEncrypted
	}
	if err := info.Validate(); err != nil {
		return nil, err.(*Error)
	}

	if err := writeHeader(w, info); err != nil {
		return nil, err
	}

	var key uint64
	if o.password != "" {
		key = computeKey(o.password)
	}

	frames, flenLast := info.frameCount()
	e := &Encoder{
		w:         w,
		bw:        bitio.NewWriter(w),
		info:      info,
		depth:     info.depth(),
		nch:       int(info.NumChannels),
		key:       key,
		flenStd:   info.frameLenStd(),
		flenLast:  flenLast,
		frames:    frames,
		frameLens: make([]uint32, 0, frames),
		opts:      o,
	}

	// Reserve the seek table placeholder, even with zero frames: it always
	// ends in a CRC-32 trailer over the (possibly empty) length list, and
	// NewDecoder always expects to read frames*4+4 bytes here.
	if err := e.bw.SkipBytes(uint32(frames+1) * 4); err != nil {
		return nil, newError(KindWriteFile, "NewEncoder", err)
	}
	e.bw.Reset()
	e.channels = newChannels(e.key, e.depth, e.nch)

	return e, nil
}

// curFlen is the sample length of the frame currently in progress.
func (e *Encoder) curFlen() uint32 {
	if e.fnum == e.frames-1 {
		return e.flenLast
	}
	return e.flenStd
}

// Encode compresses one or more whole time steps of interleaved PCM sample
// bytes (len(pcm) must be a multiple of NumChannels*bytes-per-sample) and
// writes their Rice-coded residuals, advancing to the next frame whenever
// the current one's sample length is reached — encoder::process_stream,
// one time step per iteration of its per-channel loop. Each sample is
// unpacked from its wire bytes with unpackSample at this boundary, the
// same seam the reference fills with READ_BUFFER.
func (e *Encoder) Encode(pcm []byte) (int, *Error) {
	step := e.nch * int(e.depth)
	if step == 0 || len(pcm)%step != 0 {
		return 0, newErrorf(KindFormatIncompatible, "Encoder.Encode",
			"pcm byte length %d is not a multiple of %d (nch*depth)", len(pcm), step)
	}

	raw := make([]int32, e.nch)
	steps := len(pcm) / step
	for t := 0; t < steps; t++ {
		if e.fnum >= e.frames {
			return t, newErrorf(KindWriteFile, "Encoder.Encode", "more samples than Info.Samples declared")
		}
		frame := pcm[t*step : (t+1)*step]
		for c := 0; c < e.nch; c++ {
			raw[c] = unpackSample(frame[c*int(e.depth):], e.depth)
		}
		transformed := decorrelateEncode(raw)
		for c := 0; c < e.nch; c++ {
			v := e.channels[c].encode(transformed[c])
			if err := e.bw.WriteValue(e.channels[c].rice, v); err != nil {
				return t, newError(KindWriteFile, "Encoder.Encode", err)
			}
		}
		e.fpos++

		if e.fpos == e.curFlen() {
			if err := e.finishFrame(); err != nil {
				return t + 1, err
			}
		}
	}
	return steps, nil
}

// finishFrame flushes the bit cache and trailing CRC-32 for the frame just
// completed, records its compressed byte length for the seek table, and
// reinitializes per-channel state for the next frame — the tail of
// encoder::process_stream plus encoder::frame_init.
func (e *Encoder) finishFrame() *Error {
	if err := e.bw.Flush(); err != nil {
		return newError(KindWriteFile, "Encoder.finishFrame", err)
	}
	e.frameLens = append(e.frameLens, e.bw.Count())
	e.rate = float64(e.bw.Count()<<3) / 1070
	e.fnum++
	dbg.Println("encoded frame:", e.fnum-1, "bytes:", e.bw.Count(), "rate kbps:", e.rate)
	if e.opts.progress != nil {
		e.opts.progress(e.fnum, e.frames, e.rate)
	}

	if e.fnum < e.frames {
		e.channels = newChannels(e.key, e.depth, e.nch)
	}
	e.bw.Reset()
	e.fpos = 0
	return nil
}

// Rate returns the running compressed bitrate in kbit/s, as of the last
// completed frame — encoder::get_rate.
func (e *Encoder) Rate() float64 {
	return e.rate
}

// ResetFrame rebinds the encoder to w and reinitializes channel state for
// frame, without rewriting the header — encoder::frame_reset. Used by
// segmented or resumed encodes that already know which frame they are
// continuing from.
func (e *Encoder) ResetFrame(frame int, w io.Writer) {
	e.w = w
	e.bw = bitio.NewWriter(w)
	e.fnum = frame
	e.fpos = 0
	e.channels = newChannels(e.key, e.depth, e.nch)
}

// Close flushes any partially-filled final frame, then — if the
// underlying io.Writer is also an io.WriteSeeker — seeks back to the seek
// table placeholder and patches it with the real per-frame byte lengths,
// encoder::finalize/write_seek_table.
func (e *Encoder) Close() *Error {
	if e.fpos > 0 && e.fnum < e.frames {
		if err := e.finishFrame(); err != nil {
			return err
		}
	}

	ws, ok := e.w.(io.WriteSeeker)
	if !ok {
		return nil
	}

	if _, err := ws.Seek(int64(headerSize), io.SeekStart); err != nil {
		return newError(KindSeekFile, "Encoder.Close", err)
	}

	offsets := make([]uint64, len(e.frameLens))
	var total uint64
	for i, l := range e.frameLens {
		offsets[i] = total
		total += uint64(l)
	}
	return writeSeekTable(ws, offsets, total)
}
