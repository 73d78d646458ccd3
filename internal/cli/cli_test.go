// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/config"
)

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, args := Parse(nil)
	assert.Equal(t, CmdTUI, cmd)
	assert.False(t, args.Quiet)
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"chat", []string{"chat"}, CmdChat},
		{"login", []string{"login"}, CmdLogin},
		{"login alias", []string{"signin"}, CmdLogin},
		{"logout", []string{"logout"}, CmdLogout},
		{"status", []string{"status"}, CmdStatus},
		{"status alias", []string{"s"}, CmdStatus},
		{"config", []string{"config", "show"}, CmdConfig},
		{"feedback", []string{"feedback", "broken"}, CmdFeedback},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"unknown falls to help", []string{"frobnicate"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := Parse(tt.argv)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := Parse([]string{"--server", "https://bd.example.mil", "-q", "status"})
	assert.Equal(t, CmdStatus, cmd)
	assert.Equal(t, "https://bd.example.mil", args.Server)
	assert.True(t, args.Quiet)

	_, args = Parse([]string{"--server=http://localhost:9999", "chat"})
	assert.Equal(t, "http://localhost:9999", args.Server)
}

func TestParseConfigSet(t *testing.T) {
	cmd, args := Parse([]string{"config", "set", "ui.theme", "forest"})
	require.Equal(t, CmdConfig, cmd)
	assert.Equal(t, "set", args.Subcommand)
	assert.Equal(t, "ui.theme", args.ConfigKey)
	assert.Equal(t, "forest", args.ConfigVal)
}

func TestParseFeedbackJoinsQuery(t *testing.T) {
	_, args := Parse([]string{"feedback", "inbox", "sort", "resets"})
	assert.Equal(t, "inbox sort resets", args.Query)
}

func TestApplyConfigKey(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, applyConfigKey(cfg, "ui.theme", "forest"))
	assert.Equal(t, "forest", cfg.UI.Theme)

	require.NoError(t, applyConfigKey(cfg, "chat.markdown", "false"))
	assert.False(t, cfg.Chat.Markdown)

	require.NoError(t, applyConfigKey(cfg, "server.timeout_secs", "60"))
	assert.Equal(t, 60, cfg.Server.TimeoutSecs)

	err := applyConfigKey(cfg, "chat.markdown", "maybe")
	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)

	err = applyConfigKey(cfg, "no.such.key", "x")
	require.ErrorAs(t, err, &usageErr)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitUsageError, GetExitCode(NewUsageError("config", "bad", "")))
	assert.Equal(t, ExitAuthError, GetExitCode(api.ErrUnauthorized))
	assert.Equal(t, ExitNetworkError, GetExitCode(errors.New("dial tcp: connection refused")))
	assert.Equal(t, ExitGeneralError, GetExitCode(errors.New("boom")))
}
