// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the joshua CLI.
//
// USABILITY: Markdown rendering and input history for better CLI experience
//
// Handles the "joshua chat" command: a REPL over the same streaming chat
// session the TUI uses, with readline-style history via liner.
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /clear, /c          Clear conversation history
//   /history            Show conversation history
//   /quit, /q           Exit chat
//   Ctrl+C              Cancel current response
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/chat"
	"github.com/jeranaias/joshua-tui/internal/config"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
// USABILITY: Supports arrow keys for history navigation and line editing.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// chatREPL holds the state for one interactive chat run.
type chatREPL struct {
	client   *api.Client
	session  *chat.Session
	input    *ChatCLI
	markdown bool
	wrap     int
	quiet    bool

	// cancel aborts the in-flight stream; set only while one is running.
	cancel context.CancelFunc
}

// HandleChat handles the "chat" command.
func HandleChat(client *api.Client, cfg *config.Config, args Args) error {
	repl := &chatREPL{
		client:   client,
		session:  chat.NewSession(),
		input:    NewChatCLI(),
		markdown: cfg.Chat.Markdown && IsStdoutTTY(),
		wrap:     cfg.Chat.WrapWidth,
		quiet:    args.Quiet,
	}
	if repl.wrap <= 0 {
		repl.wrap = GetTerminalWidth()
	}
	defer repl.input.Close()

	if !repl.quiet {
		printChatWelcome(cfg)
	}

	// First Ctrl+C cancels the current stream rather than the process.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		for range sigChan {
			if repl.cancel != nil {
				repl.cancel()
				fmt.Fprintln(os.Stderr, "\n"+warningStyle.Render("[Cancelled]"))
			}
		}
	}()

	for {
		input, err := repl.input.ReadInput(promptStyle.Render("joshua> "))
		if err != nil {
			// liner.ErrPromptAborted (Ctrl+C) and EOF (Ctrl+D) both exit.
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if !repl.handleSlashCommand(input) {
				return nil
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return nil
		}

		if err := repl.processMessage(input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		}
	}
}

// processMessage runs one exchange, streaming the reply to stdout.
func (r *chatREPL) processMessage(input string) error {
	exchange, payload, ok := r.session.Submit(input)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	defer func() {
		r.cancel = nil
		cancel()
	}()

	fmt.Println()

	// Plain mode streams fragments as they arrive; markdown mode collects
	// the reply and renders it whole so formatting comes out right.
	chat.Run(ctx, r.client, exchange, payload, func(ev chat.Event) {
		r.session.Apply(ev)
		if frag, isFrag := ev.(chat.Fragment); isFrag && !r.markdown {
			fmt.Print(frag.Text)
		}
	})

	msgs := r.session.Messages()
	reply := msgs[len(msgs)-1].Content

	switch {
	case r.session.State() == chat.StateFailed:
		if !r.markdown {
			fmt.Println()
		}
		fmt.Println(errorStyle.Render(chat.ConnectionFailureMessage))

	case r.markdown:
		fmt.Println(renderMarkdown(reply, r.wrap))

	default:
		fmt.Println()
	}
	fmt.Println()
	return nil
}

// handleSlashCommand processes a slash command. Returns false to exit.
func (r *chatREPL) handleSlashCommand(cmd string) bool {
	switch strings.ToLower(strings.Fields(cmd)[0]) {
	case "/help", "/h", "/?", "/":
		printChatHelp()
		return true

	case "/clear", "/c":
		r.session.Clear()
		fmt.Println(okStyle.Render("[Conversation cleared]"))
		return true

	case "/history":
		r.printHistory()
		return true

	case "/quit", "/q", "/exit":
		return false

	default:
		fmt.Fprintf(os.Stderr, "%s unknown command: %s (type /help for commands)\n",
			errorStyle.Render("[Error]"), cmd)
		return true
	}
}

// printHistory prints a one-line preview per message.
func (r *chatREPL) printHistory() {
	msgs := r.session.Messages()
	if len(msgs) == 0 {
		fmt.Println(infoStyle.Render("[No messages yet]"))
		return
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Conversation History"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 25)))
	for i, msg := range msgs {
		preview := strings.ReplaceAll(msg.Preview(100), "\n", " ")
		fmt.Printf("  %d. %s: %s\n", i+1,
			promptStyle.Render(msg.Role.DisplayName()), preview)
	}
	fmt.Println()
}

// =============================================================================
// DISPLAY
// =============================================================================

// renderMarkdown renders the reply through glamour, falling back to the
// raw text on any renderer error.
func renderMarkdown(content string, wrap int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// printChatWelcome prints the welcome banner.
func printChatWelcome(cfg *config.Config) {
	fmt.Println()
	fmt.Println(headerStyle.Render("JOSHUA interactive chat"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 30)))
	fmt.Printf("%s %s\n", infoStyle.Render("Portal:"), cfg.Server.URL)
	fmt.Println()
	fmt.Println(infoStyle.Render("Ask about the solicitation library. Commands: /help, /quit"))
	fmt.Println()
}

// printChatHelp prints available commands.
func printChatHelp() {
	fmt.Println()
	fmt.Println(headerStyle.Render("Available Commands"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 20)))
	fmt.Println()

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/clear, /c", "Clear conversation history"},
		{"/history", "Show conversation history"},
		{"/quit, /q", "Exit chat"},
	}
	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			okStyle.Render(fmt.Sprintf("%-15s", c.cmd)),
			infoStyle.Render(c.desc))
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Tip: Ctrl+C cancels the current response, Ctrl+D exits"))
	fmt.Println()
}
