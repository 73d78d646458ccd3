// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import "context"

// Optimistic is one local-first remote mutation over state of type T.
type Optimistic[T any] struct {
	// Apply mutates the local state immediately.
	Apply func(*T)
	// Remote performs the portal call.
	Remote func(context.Context) error
	// Rollback undoes Apply. Called only when Remote fails.
	Rollback func(*T)
}

// Pending is an applied command awaiting its remote outcome.
type Pending[T any] struct {
	cmd   Optimistic[T]
	state *T
	done  bool
}

// Begin applies the command locally and returns the pending handle. The
// remote half runs wherever the caller schedules it (a bubbletea command
// for the TUI, inline for the REPL).
func Begin[T any](state *T, cmd Optimistic[T]) *Pending[T] {
	cmd.Apply(state)
	return &Pending[T]{cmd: cmd, state: state}
}

// Remote runs the portal call. Safe to invoke from another goroutine; it
// touches no local state.
func (p *Pending[T]) Remote(ctx context.Context) error {
	return p.cmd.Remote(ctx)
}

// Finish settles the command with the remote outcome. On failure the local
// state is rolled back. Finish is idempotent so a duplicate message cannot
// double-rollback.
func (p *Pending[T]) Finish(err error) error {
	if p.done {
		return err
	}
	p.done = true
	if err != nil && p.cmd.Rollback != nil {
		p.cmd.Rollback(p.state)
	}
	return err
}

// Execute runs the full cycle synchronously: apply, remote, settle.
func Execute[T any](ctx context.Context, state *T, cmd Optimistic[T]) error {
	p := Begin(state, cmd)
	return p.Finish(p.Remote(ctx))
}
