package tta

import (
	"fmt"

	"github.com/mewkiz/pkg/errutil"
	"github.com/pkg/errors"
)

// Kind classifies a failure the way the original TTA_CODEC_STATUS enum
// does, so callers can branch on error category without string matching.
type Kind int

// Error kinds, one per original tta_error value (TTA_NO_ERROR has no Go
// counterpart — the absence of an error already means success).
const (
	KindOpenFile Kind = iota + 1
	KindFormatIncompatible
	KindFileCorrupted
	KindReadFile
	KindWriteFile
	KindSeekFile
	KindMemoryInsufficient
	KindPasswordProtected
	KindUnsupportedArch
)

func (k Kind) String() string {
	switch k {
	case KindOpenFile:
		return "open file"
	case KindFormatIncompatible:
		return "format incompatible"
	case KindFileCorrupted:
		return "file corrupted"
	case KindReadFile:
		return "read file"
	case KindWriteFile:
		return "write file"
	case KindSeekFile:
		return "seek file"
	case KindMemoryInsufficient:
		return "memory insufficient"
	case KindPasswordProtected:
		return "password protected"
	case KindUnsupportedArch:
		return "unsupported architecture"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every exported entry point of this
// package. It carries a Kind so callers can errors.Is/errors.As against it,
// and wraps the underlying cause (an I/O error, a CRC mismatch, ...) with
// call-site position information via errutil.
type Error struct {
	Kind Kind
	Op   string
	err  error
}

func newError(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, err: errutil.Err(cause)}
}

func newErrorf(kind Kind, op, format string, a ...interface{}) *Error {
	return newError(kind, op, fmt.Errorf(format, a...))
}

func (e *Error) Error() string {
	return fmt.Sprintf("tta: %s: %s: %v", e.Op, e.Kind, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is the same Kind, letting callers write
// errors.Is(err, tta.ErrPasswordProtected) without reaching into Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons; only Kind is inspected by Error.Is.
var (
	ErrOpenFile           = &Error{Kind: KindOpenFile}
	ErrFormatIncompatible = &Error{Kind: KindFormatIncompatible}
	ErrFileCorrupted      = &Error{Kind: KindFileCorrupted}
	ErrReadFile           = &Error{Kind: KindReadFile}
	ErrWriteFile          = &Error{Kind: KindWriteFile}
	ErrSeekFile           = &Error{Kind: KindSeekFile}
	ErrMemoryInsufficient = &Error{Kind: KindMemoryInsufficient}
	ErrPasswordProtected  = &Error{Kind: KindPasswordProtected}
	ErrUnsupportedArch    = &Error{Kind: KindUnsupportedArch}
)

// wrapCRC annotates a CRC mismatch with a stack trace via pkg/errors,
// distinct in shape from errutil's single-frame position — used at the two
// boundaries where a checksum, not an I/O call, is what failed.
func wrapCRC(op, what string) *Error {
	return newError(KindFileCorrupted, op, errors.Wrapf(errFailedCRC, "%s checksum mismatch", what))
}

var errFailedCRC = errors.New("tta")
