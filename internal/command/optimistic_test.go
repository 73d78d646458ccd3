// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type claimState struct {
	LeadName string
}

func TestExecuteKeepsApplyOnSuccess(t *testing.T) {
	state := claimState{}
	err := Execute(context.Background(), &state, Optimistic[claimState]{
		Apply:    func(s *claimState) { s.LeadName = "falken" },
		Remote:   func(context.Context) error { return nil },
		Rollback: func(s *claimState) { s.LeadName = "" },
	})

	require.NoError(t, err)
	assert.Equal(t, "falken", state.LeadName)
}

func TestExecuteRollsBackOnFailure(t *testing.T) {
	state := claimState{LeadName: "mckittrick"}
	remoteErr := errors.New("portal down")

	err := Execute(context.Background(), &state, Optimistic[claimState]{
		Apply:    func(s *claimState) { s.LeadName = "falken" },
		Remote:   func(context.Context) error { return remoteErr },
		Rollback: func(s *claimState) { s.LeadName = "mckittrick" },
	})

	assert.ErrorIs(t, err, remoteErr)
	assert.Equal(t, "mckittrick", state.LeadName)
}

func TestBeginAppliesImmediately(t *testing.T) {
	state := claimState{}
	p := Begin(&state, Optimistic[claimState]{
		Apply:    func(s *claimState) { s.LeadName = "falken" },
		Remote:   func(context.Context) error { return nil },
		Rollback: func(s *claimState) { s.LeadName = "" },
	})

	// Local state reflects the mutation before the remote call runs.
	assert.Equal(t, "falken", state.LeadName)
	require.NoError(t, p.Finish(p.Remote(context.Background())))
	assert.Equal(t, "falken", state.LeadName)
}

func TestFinishIsIdempotent(t *testing.T) {
	state := claimState{}
	rollbacks := 0
	p := Begin(&state, Optimistic[claimState]{
		Apply:    func(s *claimState) { s.LeadName = "falken" },
		Remote:   func(context.Context) error { return errors.New("boom") },
		Rollback: func(s *claimState) { rollbacks++; s.LeadName = "" },
	})

	err := errors.New("boom")
	p.Finish(err)
	p.Finish(err)
	assert.Equal(t, 1, rollbacks)
	assert.Equal(t, "", state.LeadName)
}
