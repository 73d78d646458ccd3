// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for joshua.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdLogin
	CmdLogout
	CmdStatus
	CmdConfig
	CmdFeedback
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Server  string // Override the configured portal URL

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `joshua - BD portal client for government solicitations

JOSHUA tracks government solicitations, scores them against your company's
capability narrative, and answers questions about the library over chat.

Usage:
  joshua                     Start TUI (default)
  joshua login               Sign in to the portal
  joshua logout              End the portal session
  joshua chat                Interactive chat with JOSHUA
  joshua status, s           Show portal and session status
  joshua config [show|set|path]  Configuration
  joshua feedback "text"     Send feedback to the portal team
  joshua version             Show version information

Config Commands:
  joshua config show               Show current configuration
  joshua config set KEY VALUE     Set a configuration value
  joshua config path              Print the config file path

  Keys: server.url, server.timeout_secs, ui.theme, ui.library_sort,
        ui.inbox_sort, ui.show_archived, chat.markdown, chat.wrap_width

Chat Commands (during chat):
  /help, /h           Show available commands
  /clear, /c          Clear conversation history
  /history            Show conversation history
  /quit, /q           Exit chat
  Ctrl+C              Cancel current response
  Ctrl+D              Exit chat

Global Flags:
  --server URL    Override the configured portal URL
  -q, --quiet     Minimal output
  -v, --verbose   Debug output

Environment:
  JOSHUA_SERVER_URL     Portal URL override
  JOSHUA_THEME          UI theme (light, dark, forest)
  JOSHUA_MARKDOWN       Chat markdown rendering (true/false)

Examples:
  joshua                              Start the TUI
  joshua login                        Sign in (prompts for credentials)
  joshua chat                         Chat about the solicitation library
  joshua status                       Check portal connectivity
  joshua config set ui.theme forest   Switch theme
  joshua config set server.url https://bd.example.mil
  joshua feedback "inbox sort resets" Send a report

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("joshua version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "login", "signin":
		return CmdLogin, parsedArgs

	case "logout", "signout":
		return CmdLogout, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "feedback":
		parsedArgs.Query = strings.Join(remaining, " ")
		return CmdFeedback, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: keep it in Raw and fall back to help so a typo
		// never silently opens the TUI.
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--server":
			if i+1 < len(args) {
				i++
				parsedArgs.Server = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--server=") {
				parsedArgs.Server = strings.TrimPrefix(arg, "--server=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp(args Args) {
	if len(args.Raw) > 0 {
		fmt.Printf("unknown command: %s\n\n", args.Raw[0])
	}
	PrintUsage()
}
