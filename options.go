package tta

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"
)

// ProgressFunc is invoked at every frame boundary during Encode/Decode with
// the number of frames completed so far, the total frame count and the
// current throughput in kbit/s. It
// must not call back into the Encoder/Decoder that invoked it.
type ProgressFunc func(frame, frames int, rateKbps float64)

// Implementation selects which filter kernel an Encoder/Decoder uses.
type Implementation int

const (
	// ImplementationAuto picks the best implementation the running binary
	// and CPU support; today that is always ImplementationScalar, since no
	// vector kernel ships in this module.
	ImplementationAuto Implementation = iota
	// ImplementationScalar is the portable, architecture-independent
	// hybrid filter, matching codec_state's scalar path.
	ImplementationScalar
	// ImplementationVector requests a SIMD-accelerated filter kernel.
	// Requesting it always fails with KindUnsupportedArch: no vector
	// kernel is implemented (SIMD is out of scope), but the capability
	// gate and its error path are real.
	ImplementationVector
)

// options collects the settings NewEncoder/NewDecoder accept through
// functional Option values, the idiomatic Go substitute for the CLI
// configuration surface that is out of scope for this library.
type options struct {
	password       string
	progress       ProgressFunc
	implementation Implementation
}

func defaultOptions() options {
	return options{implementation: ImplementationAuto}
}

// An Option configures an Encoder or Decoder.
type Option func(*options)

// WithPassword sets the password a stream is encrypted or decrypted with.
// An empty password (the default) selects FormatSimple; any other password
// selects FormatEncrypted and derives the per-stream key via computeKey.
func WithPassword(password string) Option {
	return func(o *options) { o.password = password }
}

// WithProgress registers a callback invoked at every frame boundary with
// the running frame count and throughput, mirroring the reference's
// get_rate() polling but pushed rather than pulled.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}

// WithImplementation requests a specific filter implementation. The zero
// value, ImplementationAuto, is equivalent to not passing this option.
func WithImplementation(impl Implementation) Option {
	return func(o *options) { o.implementation = impl }
}

// resolveImplementation turns the requested Implementation into the one
// actually in effect, or a KindUnsupportedArch error. The CPU feature bits
// are read only to make that error specific, not to unlock a fast path —
// see the Implementation doc comment.
func resolveImplementation(want Implementation) (Implementation, *Error) {
	switch want {
	case ImplementationAuto, ImplementationScalar:
		return ImplementationScalar, nil
	case ImplementationVector:
		return 0, newErrorf(KindUnsupportedArch, "resolveImplementation",
			"no vector filter kernel built for %s (avx2=%v, avx512=%v)",
			runtime.GOARCH, cpu.X86.HasAVX2, cpu.X86.HasAVX512F)
	default:
		return 0, newErrorf(KindUnsupportedArch, "resolveImplementation", "unknown implementation %v", want)
	}
}

func (i Implementation) String() string {
	switch i {
	case ImplementationAuto:
		return "auto"
	case ImplementationScalar:
		return "scalar"
	case ImplementationVector:
		return "vector"
	default:
		return fmt.Sprintf("Implementation(%d)", int(i))
	}
}
