package model

import "errors"

var (
	// ErrUnknownFormat is returned when input bytes match no recognized
	// wire format.
	ErrUnknownFormat = errors.New("unknown message format")
	// ErrMalformed is returned for structurally invalid input within a
	// recognized format, such as truncated XML or an unterminated MT
	// block.
	ErrMalformed = errors.New("malformed message")
	// ErrUnsupportedTarget is returned when a translation target
	// identifier is not recognized.
	ErrUnsupportedTarget = errors.New("unsupported translation target")
)
