// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/model"
	"github.com/jeranaias/joshua-tui/internal/ui/components"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
	"github.com/jeranaias/joshua-tui/internal/util"
)

// tasksLoadedMsg delivers the developer task list.
type tasksLoadedMsg struct {
	items []model.Task
	err   error
}

// taskToggledMsg reports the outcome of a select toggle. The list is
// refetched afterwards so the server stays authoritative.
type taskToggledMsg struct {
	err error
}

// =============================================================================
// TASKS MODEL
// =============================================================================

// TasksModel is the developer work-item screen: a cursor list of tasks
// with a selected marker and a content preview for the highlighted row.
type TasksModel struct {
	client *api.Client

	tasks  []model.Task
	cursor int
	loaded bool

	width  int
	height int
}

// NewTasksModel creates the tasks screen.
func NewTasksModel(client *api.Client) *TasksModel {
	return &TasksModel{client: client, width: 80, height: 24}
}

// SetSize updates the layout dimensions.
func (m *TasksModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Load fetches the task list.
func (m *TasksModel) Load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := m.client.Tasks(ctx)
		return tasksLoadedMsg{items: items, err: err}
	}
}

// toggle flips the selected flag on the highlighted task.
func (m *TasksModel) toggle(taskID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return taskToggledMsg{err: m.client.SelectTask(ctx, taskID)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles task list keys and round trips.
func (m *TasksModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.err != nil {
			return func() tea.Msg {
				return flashMsg{status: components.StatusError, text: "tasks unavailable: " + msg.err.Error()}
			}
		}
		m.tasks = msg.items
		m.loaded = true
		if m.cursor >= len(m.tasks) {
			m.cursor = len(m.tasks) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return nil

	case taskToggledMsg:
		if msg.err != nil {
			return func() tea.Msg {
				return flashMsg{status: components.StatusError, text: "task not updated: " + msg.err.Error()}
			}
		}
		return m.Load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.cursor < len(m.tasks) {
				return m.toggle(m.tasks[m.cursor].ID)
			}
		}
	}
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// Shortcuts lists the key hints for the status bar.
func (m *TasksModel) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "enter", Desc: "toggle select"},
		{Key: "j/k", Desc: "move"},
	}
}

// View renders the task list with the highlighted task's content below.
func (m *TasksModel) View() string {
	t := styles.Current()

	var b strings.Builder
	b.WriteString(t.ChartTitle.Render("DEVELOPER TASKS"))
	b.WriteString("\n")

	if !m.loaded {
		b.WriteString(t.ChartValue.Render("  loading tasks..."))
		return b.String()
	}
	if len(m.tasks) == 0 {
		b.WriteString(t.ChartValue.Render("  no tasks"))
		return b.String()
	}

	for i, task := range m.tasks {
		marker := "[ ]"
		if task.Selected {
			marker = "[x]"
		}
		line := fmt.Sprintf("%s #%d %s (%s)", marker, task.ID, task.Title, task.Status)
		if i == m.cursor {
			b.WriteString(t.TableRowSelected.Render("> " + line))
		} else {
			b.WriteString(t.TableRow.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if m.cursor < len(m.tasks) {
		task := m.tasks[m.cursor]
		if task.Content != "" {
			b.WriteString("\n")
			b.WriteString(t.DetailLabel.Render("Content"))
			b.WriteString("\n")
			b.WriteString(t.DetailValue.Render(util.TruncateRunes(task.Content, 800)))
		}
		if task.Plan != "" {
			b.WriteString("\n")
			b.WriteString(t.DetailLabel.Render("Plan (" + task.PlanStatus + ")"))
			b.WriteString("\n")
			b.WriteString(t.DetailValue.Render(util.TruncateRunes(task.Plan, 600)))
		}
	}

	return b.String()
}
