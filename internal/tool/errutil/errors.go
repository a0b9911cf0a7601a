// Package errutil classifies tool errors into the kinds reported to the agent.
//
// Tool packages never import this package to build errors. Each typed error
// exposes a behavioural marker method instead (FileMissing, IOError,
// DecodeError, Timeout, InvalidInput) and KindOf inspects the chain.
// KindBlocked is never produced by KindOf: a blocked command is a normal
// result, not an error.
package errutil

import "errors"

// Kind is the error category surfaced to the calling agent.
type Kind string

const (
	KindUnknown         Kind = "unknown"
	KindNotFound        Kind = "not_found"
	KindIO              Kind = "io"
	KindDecode          Kind = "decode"
	KindBlocked         Kind = "blocked"
	KindTimeout         Kind = "timeout"
	KindInvalidArgument Kind = "invalid_argument"
)

type fileMissing interface{ FileMissing() bool }
type ioError interface{ IOError() bool }
type decodeError interface{ DecodeError() bool }
type timeout interface{ Timeout() bool }
type invalidInput interface{ InvalidInput() bool }

// KindOf walks the error chain and returns the most specific kind found.
// Missing-file errors also report IOError, so they are checked first.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var fm fileMissing
	if errors.As(err, &fm) && fm.FileMissing() {
		return KindNotFound
	}
	var ii invalidInput
	if errors.As(err, &ii) && ii.InvalidInput() {
		return KindInvalidArgument
	}
	var to timeout
	if errors.As(err, &to) && to.Timeout() {
		return KindTimeout
	}
	var de decodeError
	if errors.As(err, &de) && de.DecodeError() {
		return KindDecode
	}
	var ie ioError
	if errors.As(err, &ie) && ie.IOError() {
		return KindIO
	}
	return KindUnknown
}
