// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOfClassifiesSentinels(t *testing.T) {
	cases := []struct {
		err  error
		kind Kind
	}{
		{nil, KindOK},
		{ErrNotFound, KindNotFound},
		{ErrCorruption, KindCorruption},
		{ErrNotSupported, KindNotSupported},
		{ErrInvalidArgument, KindInvalidArgument},
		{ErrIOError, KindIOError},
	}
	for _, c := range cases {
		require.Equal(t, c.kind, KindOf(c.err))
	}
}

func TestKindOfTreatsUnrecognizedErrorAsIOError(t *testing.T) {
	require.Equal(t, KindIOError, KindOf(errors.New("some other failure")))
}

func TestWithDetailJoinsWithColon(t *testing.T) {
	err := WithDetail(ErrIOError, "db/000001.sst")
	require.ErrorIs(t, err, ErrIOError)
	require.Equal(t, "db/000001.sst: "+ErrIOError.Error(), err.Error())
}

func TestWithDetailNilErrorStaysNil(t *testing.T) {
	require.NoError(t, WithDetail(nil, "detail"))
}
