package tta

import (
	"github.com/ttalib/go-tta/internal/filter"
	"github.com/ttalib/go-tta/internal/rice"
)

// channel binds one audio channel's full prediction chain: the adaptive
// hybrid filter, the fixed order-1 predictor and the adaptive Rice coder.
// Grounded on codec_state's composition of hybrid_filter_* with
// PREDICTOR1, and on bufio::get_value/put_value for the Rice half.
type channel struct {
	hybrid *filter.Hybrid
	rice   *rice.State
	prev   int32
}

// newChannel constructs a channel's codec state the way
// decoder::frame_init/encoder::frame_init do: k0 = k1 = 10, hybrid filter
// seeded from the stream's key and shift/round for the given bit depth.
func newChannel(key uint64, depth int32) *channel {
	shift := filter.FilterSets[depth-1]
	return &channel{
		hybrid: filter.NewHybrid(key, shift),
		rice:   rice.New(),
	}
}

// newChannels builds a fresh codec_state per channel, the way
// decoder::frame_init/encoder::frame_init reinitialize every channel's
// filter and Rice state at the start of each frame.
func newChannels(key uint64, depth int32, nch int) []*channel {
	chs := make([]*channel, nch)
	for i := range chs {
		chs[i] = newChannel(key, depth)
	}
	return chs
}

// decode runs both prediction stages in the decompression direction:
// hybrid filter first, then the order-1 predictor, matching
// codec_state::decode<native>.
func (c *channel) decode(value int32) int32 {
	c.hybrid.Decode(&value)
	value += filter.Predictor1(c.prev)
	c.prev = value
	return value
}

// encode runs both prediction stages in the compression direction: order-1
// predictor first, then the hybrid filter, matching
// codec_state::encode<native>.
func (c *channel) encode(value int32) int32 {
	prev := value
	value -= filter.Predictor1(c.prev)
	c.prev = prev
	c.hybrid.Encode(&value)
	return value
}
