// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - config command handler: show, set, path.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/joshua-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow()
	case "set":
		return handleConfigSet(args.ConfigKey, args.ConfigVal)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		return NewUsageError("config", "unknown subcommand: "+args.Subcommand,
			"joshua config [show|set|path]")
	}
}

func handleConfigShow() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("joshua configuration"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 25)))
	row := func(key, value string) {
		fmt.Printf("  %s %s\n", infoStyle.Render(fmt.Sprintf("%-22s", key)), value)
	}
	row("server.url", cfg.Server.URL)
	row("server.timeout_secs", strconv.Itoa(cfg.Server.TimeoutSecs))
	row("ui.theme", cfg.UI.Theme)
	row("ui.library_sort", cfg.UI.LibrarySort)
	row("ui.library_sort_desc", strconv.FormatBool(cfg.UI.LibrarySortDesc))
	row("ui.inbox_sort", cfg.UI.InboxSort)
	row("ui.inbox_sort_desc", strconv.FormatBool(cfg.UI.InboxSortDesc))
	row("ui.show_archived", strconv.FormatBool(cfg.UI.ShowArchived))
	row("chat.markdown", strconv.FormatBool(cfg.Chat.Markdown))
	row("chat.wrap_width", strconv.Itoa(cfg.Chat.WrapWidth))
	fmt.Println()
	return nil
}

func handleConfigSet(key, value string) error {
	if key == "" || value == "" {
		return NewUsageError("config set", "key and value are required",
			"joshua config set ui.theme forest")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := applyConfigKey(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("%s %s = %s\n", okStyle.Render("[OK]"), key, value)
	return nil
}

// applyConfigKey sets one dotted config key. Unknown keys are a usage error
// so typos never silently write a dead setting.
func applyConfigKey(cfg *config.Config, key, value string) error {
	boolVal := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, NewUsageError("config set", key+" expects true or false",
				"joshua config set "+key+" true")
		}
		return b, nil
	}
	intVal := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, NewUsageError("config set", key+" expects a number",
				"joshua config set "+key+" 30")
		}
		return n, nil
	}

	switch key {
	case "server.url":
		cfg.Server.URL = value
	case "server.timeout_secs":
		n, err := intVal()
		if err != nil {
			return err
		}
		cfg.Server.TimeoutSecs = n
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.library_sort":
		cfg.UI.LibrarySort = value
	case "ui.library_sort_desc":
		b, err := boolVal()
		if err != nil {
			return err
		}
		cfg.UI.LibrarySortDesc = b
	case "ui.inbox_sort":
		cfg.UI.InboxSort = value
	case "ui.inbox_sort_desc":
		b, err := boolVal()
		if err != nil {
			return err
		}
		cfg.UI.InboxSortDesc = b
	case "ui.show_archived":
		b, err := boolVal()
		if err != nil {
			return err
		}
		cfg.UI.ShowArchived = b
	case "chat.markdown":
		b, err := boolVal()
		if err != nil {
			return err
		}
		cfg.Chat.Markdown = b
	case "chat.wrap_width":
		n, err := intVal()
		if err != nil {
			return err
		}
		cfg.Chat.WrapWidth = n
	default:
		return NewUsageError("config set", "unknown key: "+key,
			"joshua config show")
	}
	return nil
}
