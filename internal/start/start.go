// Copyright 2026 The Soiacore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package start runs a CLI demo's worker functions to completion or
// until interrupted, logging the outcome through zap. It underlies the
// cmd/soiactl commands that do more than a single in-process call.
package start

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Func is one unit of work that should stop promptly when ctx is
// cancelled.
type Func func(ctx context.Context) error

// Run executes fn, returning early if the process receives SIGINT. If
// fn has not returned within stopTimeout of cancellation, Run gives up
// waiting on it and returns the last error it had recorded, if any.
func Run(ctx context.Context, log *zap.Logger, stopTimeout time.Duration, fn Func) error {
	notify := make(chan os.Signal, 3)
	signal.Notify(notify, os.Interrupt)
	defer signal.Stop(notify)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	var once sync.Once
	var lastErr atomic.Value

	go func() {
		if err := fn(ctx); err != nil {
			lastErr.Store(err)
		}
		once.Do(func() { close(done) })
	}()

	select {
	case <-notify:
		log.Info("received interrupt, shutting down")
	case <-done:
	}
	cancel()

	go func() {
		<-time.After(stopTimeout)
		once.Do(func() { close(done) })
	}()
	<-done

	if err, ok := lastErr.Load().(error); ok {
		return err
	}
	return nil
}

// Group runs every fn concurrently against a shared context, cancelling
// the others and returning the first error if any fn fails
// (golang.org/x/sync/errgroup semantics). cmd/soiactl's smoke command
// uses it to run its per-record round-trip checks concurrently.
func Group(ctx context.Context, fns ...Func) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		fn := fn
		g.Go(func() error { return fn(gctx) })
	}
	return g.Wait()
}
