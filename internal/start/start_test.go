// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package start

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunReturnsFuncError(t *testing.T) {
	log := zap.NewNop()
	want := errors.New("boom")
	err := Run(context.Background(), log, time.Second, func(ctx context.Context) error {
		return want
	})
	require.ErrorIs(t, err, want)
}

func TestGroupFailsFastOnFirstError(t *testing.T) {
	want := errors.New("boom")
	err := Group(context.Background(),
		func(ctx context.Context) error { return want },
		func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	)
	require.ErrorIs(t, err, want)
}

func TestGroupSucceedsWhenAllSucceed(t *testing.T) {
	err := Group(context.Background(),
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return nil },
	)
	require.NoError(t, err)
}
