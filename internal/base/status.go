// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "github.com/cockroachdb/errors"

// Kind is one of a closed set of error kinds. It mirrors leveldb's
// Status::Code, replacing the hand-rolled packed byte buffer of
// leveldb_src/util/status.cc with ordinary Go errors classified by
// errors.Is against the package's sentinels.
type Kind int

const (
	KindOK Kind = iota
	KindNotFound
	KindCorruption
	KindNotSupported
	KindInvalidArgument
	KindIOError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "OK"
	case KindNotFound:
		return "NotFound"
	case KindCorruption:
		return "Corruption"
	case KindNotSupported:
		return "NotSupported"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindIOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// Sentinel errors, one per Kind other than OK. Wrap these with
// errors.Wrap/errors.WithMessage to attach detail; classify any error back
// to its Kind with KindOf.
var (
	ErrNotFound        = errors.New("leveldb: not found")
	ErrCorruption      = errors.New("leveldb: corruption")
	ErrNotSupported    = errors.New("leveldb: not supported")
	ErrInvalidArgument = errors.New("leveldb: invalid argument")
	ErrIOError         = errors.New("leveldb: I/O error")
)

// KindOf classifies err against the package sentinels. A nil error is
// KindOK. An error that doesn't match any sentinel is KindIOError, since
// that is the catch-all leveldb itself uses for environment failures that
// don't fit the other categories.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrCorruption):
		return KindCorruption
	case errors.Is(err, ErrNotSupported):
		return KindNotSupported
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	default:
		return KindIOError
	}
}

// WithDetail attaches a second clause to err, joined with ": ", in the
// spirit of the two-message form of leveldb's Status(code, msg, msg2)
// constructor. The clause comes first: the result's message is
// detail + ": " + err.Error(), and errors.Is still matches err.
func WithDetail(err error, detail string) error {
	if err == nil || detail == "" {
		return err
	}
	return errors.WithMessage(err, detail)
}
