package tta

import (
	"bufio"
	"bytes"
	"io"

	"github.com/ttalib/go-tta/internal/bitio"
	"github.com/ttalib/go-tta/internal/bufseekio"
	"github.com/ttalib/go-tta/internal/dbg"
)

// Decoder reads a TTA1 stream: an optional leading ID3v2 tag, the 22-byte
// header, the frame-length seek table, then one compressed frame at a
// time. Random access (SetPosition, frame-resync after a corrupted frame)
// requires the underlying io.Reader to also be an io.ReadSeeker.
type Decoder struct {
	r  io.Reader
	br *bitio.Reader

	Info Info

	depth int32
	nch   int
	key   uint64

	channels []*channel

	frameOffset uint32 // bytes preceding frame data: ID3v2 tag + header + seek table
	seekOffsets []uint64
	seekAllowed bool

	flenStd, flenLast uint32
	frames            int
	fnum              int
	fpos              uint32

	rate float64
	opts options
}

// NewDecoder skips a leading ID3v2 tag if present, reads and validates the
// TTA1 header and seek table, and readies per-channel codec state for
// frame 0 — decoder::init.
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, *Error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if _, terr := resolveImplementation(o.implementation); terr != nil {
		return nil, terr
	}

	var src io.Reader = r
	if rs, ok := r.(io.ReadSeeker); ok {
		// Buffer the seekable source ourselves: a raw io.ReadSeeker (e.g. an
		// *os.File) otherwise pays a syscall per seekFrame/SetPosition call
		// and per small internal read alike.
		src = bufseekio.NewReadSeeker(rs)
	}

	br := bufio.NewReader(src)
	id3Size, terr := skipID3v2(br)
	if terr != nil {
		return nil, terr
	}

	info, terr := readHeader(br)
	if terr != nil {
		return nil, terr
	}
	if err := info.Validate(); err != nil {
		return nil, err.(*Error)
	}

	if info.Format == FormatEncrypted && o.password == "" {
		return nil, newErrorf(KindPasswordProtected, "NewDecoder", "stream requires a password")
	}
	var key uint64
	if o.password != "" {
		key = computeKey(o.password)
	}

	frames, flenLast := info.frameCount()
	offsets, seekAllowed, terr := readSeekTable(br, frames)
	if terr != nil {
		return nil, terr
	}

	d := &Decoder{
		r:           src,
		br:          bitio.NewReader(br),
		Info:        info,
		depth:       info.depth(),
		nch:         int(info.NumChannels),
		key:         key,
		frameOffset: id3Size + headerSize + uint32(frames*4+4),
		seekOffsets: offsets,
		seekAllowed: seekAllowed,
		flenStd:     info.frameLenStd(),
		flenLast:    flenLast,
		frames:      frames,
		opts:        o,
	}
	d.channels = newChannels(d.key, d.depth, d.nch)
	return d, nil
}

// curFlen is the sample length of the frame currently in progress.
func (d *Decoder) curFlen() uint32 {
	if d.fnum == d.frames-1 {
		return d.flenLast
	}
	return d.flenStd
}

// Done reports whether every frame the header declared has been decoded.
func (d *Decoder) Done() bool {
	return d.fnum >= d.frames
}

// Decode fills pcm (whose length must be a multiple of
// NumChannels*bytes-per-sample) with decoded, reconstructed interleaved PCM
// sample bytes, stopping early at the end of the stream, and returns the
// number of time steps produced — decoder::process_stream, one time step
// per iteration of its per-channel loop. Each reconstructed sample is
// packed to its wire bytes with packSample at this boundary, the same seam
// the reference fills with WRITE_BUFFER.
func (d *Decoder) Decode(pcm []byte) (int, *Error) {
	step := d.nch * int(d.depth)
	if step == 0 || len(pcm)%step != 0 {
		return 0, newErrorf(KindFormatIncompatible, "Decoder.Decode",
			"pcm byte length %d is not a multiple of %d (nch*depth)", len(pcm), step)
	}

	raw := make([]int32, d.nch)
	steps := len(pcm) / step
	produced := 0
	for produced < steps && !d.Done() {
		for c := 0; c < d.nch; c++ {
			v, err := d.br.ReadValue(d.channels[c].rice)
			if err != nil {
				return produced, newError(KindReadFile, "Decoder.Decode", err)
			}
			raw[c] = d.channels[c].decode(v)
		}
		decoded := decorrelateDecode(raw)
		frame := pcm[produced*step : (produced+1)*step]
		for c := 0; c < d.nch; c++ {
			packSample(decoded[c], frame[c*int(d.depth):], d.depth)
		}
		produced++
		d.fpos++

		if d.fpos == d.curFlen() {
			frameStart := produced - int(d.fpos)
			if err := d.finishFrame(pcm[frameStart*step : produced*step]); err != nil {
				return produced, err
			}
		}
	}
	return produced, nil
}

// finishFrame checks the frame trailer's CRC-32, updates the running rate
// and fires the progress callback, and — on a CRC mismatch with a usable
// seek table — resynchronizes to the next frame's recorded offset rather
// than trusting the corrupted tail; matches decoder::process_stream's
// crc_flag handling. output is just the PCM bytes belonging to the frame
// that was read, so a CRC failure zeroes that frame alone.
func (d *Decoder) finishFrame(output []byte) *Error {
	mismatch, err := d.br.ReadCRC32()
	if err != nil {
		return newError(KindReadFile, "Decoder.finishFrame", err)
	}
	d.rate = float64(d.br.Count()<<3) / 1070
	d.fnum++
	dbg.Println("decoded frame:", d.fnum-1, "crc mismatch:", mismatch, "rate kbps:", d.rate)
	if d.opts.progress != nil {
		d.opts.progress(d.fnum, d.frames, d.rate)
	}

	if mismatch {
		for i := range output {
			output[i] = 0
		}
		if !d.seekAllowed {
			return wrapCRC("Decoder.finishFrame", "frame")
		}
		if d.fnum < d.frames {
			return d.seekFrame(d.fnum)
		}
		return nil
	}

	if d.fnum < d.frames {
		d.channels = newChannels(d.key, d.depth, d.nch)
	}
	d.br.Reset()
	d.fpos = 0
	return nil
}

// seekFrame reseeks the underlying reader to frame's recorded byte offset
// and reinitializes channel state for it, requiring r to be an
// io.ReadSeeker — decoder::frame_init with seek_needed set.
func (d *Decoder) seekFrame(frame int) *Error {
	rs, ok := d.r.(io.ReadSeeker)
	if !ok {
		return newErrorf(KindSeekFile, "Decoder.seekFrame", "underlying reader is not seekable")
	}
	pos := int64(d.frameOffset) + int64(d.seekOffsets[frame])
	dbg.Println("resyncing to frame:", frame, "offset:", pos)
	if _, err := rs.Seek(pos, io.SeekStart); err != nil {
		return newError(KindSeekFile, "Decoder.seekFrame", err)
	}
	d.br = bitio.NewReader(rs)
	d.fnum = frame
	d.fpos = 0
	d.channels = newChannels(d.key, d.depth, d.nch)
	return nil
}

// SetPosition seeks to the frame covering the given playback second and
// reports the playback second that frame begins at (frame*256/245, rounded
// down) — decoder::set_position. It requires a seekable underlying reader
// and a valid seek table.
func (d *Decoder) SetPosition(seconds uint32) (startSeconds uint32, terr *Error) {
	frame := 245 * seconds / 256
	startSeconds = 256 * frame / 245

	if !d.seekAllowed || int(frame) >= d.frames {
		return 0, newErrorf(KindSeekFile, "Decoder.SetPosition", "position out of range or stream not seekable")
	}
	if err := d.seekFrame(int(frame)); err != nil {
		return 0, err
	}
	return startSeconds, nil
}

// ResetFrame rebinds the decoder to r and reinitializes channel state for
// frame, without rereading the header or seek table — decoder::frame_reset.
func (d *Decoder) ResetFrame(frame int, r io.Reader) {
	d.r = r
	d.br = bitio.NewReader(r)
	d.fnum = frame
	d.fpos = 0
	d.channels = newChannels(d.key, d.depth, d.nch)
}

// Rate returns the running compressed bitrate in kbit/s, as of the last
// completed frame — decoder::get_rate.
func (d *Decoder) Rate() float64 {
	return d.rate
}

// DecodeFrame decodes exactly one self-contained frame of inBytes
// compressed bytes (e.g. a slice cut out with the help of the seek table)
// into interleaved PCM sample bytes, stopping either once the frame's
// sample length is reached or once every byte before the trailing CRC-32
// has been consumed, then checking that CRC — decoder::process_frame, a bounded counterpart to the streaming Decode for
// callers that already know a frame's exact on-disk length. Samples are
// packed to wire bytes with packSample at this boundary, same as Decode.
func DecodeFrame(frameBytes []byte, info Info, flen uint32, opts ...Option) ([]byte, *Error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	var key uint64
	if o.password != "" {
		key = computeKey(o.password)
	}

	nch := int(info.NumChannels)
	depth := info.depth()
	step := nch * int(depth)
	channels := newChannels(key, depth, nch)
	br := bitio.NewReader(bytes.NewReader(frameBytes))

	pcm := make([]byte, 0, int(flen)*step)
	raw := make([]int32, nch)
	inBytes := uint32(len(frameBytes))

	for {
		for c := 0; c < nch; c++ {
			v, err := br.ReadValue(channels[c].rice)
			if err != nil {
				return pcm, newError(KindReadFile, "DecodeFrame", err)
			}
			raw[c] = channels[c].decode(v)
		}
		decoded := decorrelateDecode(raw)
		frame := make([]byte, step)
		for c := 0; c < nch; c++ {
			packSample(decoded[c], frame[c*int(depth):], depth)
		}
		pcm = append(pcm, frame...)

		if uint32(len(pcm)/step) >= flen || br.Count() >= inBytes-4 {
			break
		}
	}

	if mismatch, err := br.ReadCRC32(); err != nil {
		return pcm, newError(KindReadFile, "DecodeFrame", err)
	} else if mismatch {
		for i := range pcm {
			pcm[i] = 0
		}
		return pcm, wrapCRC("DecodeFrame", "frame")
	}
	return pcm, nil
}
