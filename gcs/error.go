// Copyright (c) 2019-2020 The Decred developers
// Copyright (c) 2026 The LBRY developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrNTooBig signifies that the filter can't handle N items.
	ErrNTooBig = ErrorKind("ErrNTooBig")

	// ErrPTooBig signifies that the Golomb-Rice bit parameter exceeds the
	// maximum of 32 bits.
	ErrPTooBig = ErrorKind("ErrPTooBig")

	// ErrPTooSmall signifies that a filter was requested with a Golomb-Rice
	// bit parameter of zero.
	ErrPTooSmall = ErrorKind("ErrPTooSmall")

	// ErrMTooSmall signifies that the inverse false positive rate is zero.
	ErrMTooSmall = ErrorKind("ErrMTooSmall")

	// ErrMTooBig signifies that the inverse false positive rate does not fit
	// in a uint32.
	ErrMTooBig = ErrorKind("ErrMTooBig")

	// ErrMisserialized signifies a filter was misserialized and is missing the
	// number of items or some of the encoded items.
	ErrMisserialized = ErrorKind("ErrMisserialized")

	// ErrUnaryOverflow signifies a unary quotient run in the bitstream that is
	// longer than any valid filter with the same parameters could produce.
	ErrUnaryOverflow = ErrorKind("ErrUnaryOverflow")

	// ErrExcessData signifies that whole bytes remain after the final item of
	// a serialized filter.
	ErrExcessData = ErrorKind("ErrExcessData")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a filter-related error.  It has full support for errors.Is
// and errors.As, so the caller can ascertain the specific reason for the error
// by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
