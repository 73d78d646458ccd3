// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/joshua-tui/internal/api"
	"github.com/jeranaias/joshua-tui/internal/config"
	"github.com/jeranaias/joshua-tui/internal/model"
	"github.com/jeranaias/joshua-tui/internal/ui/components"
	"github.com/jeranaias/joshua-tui/internal/ui/styles"
)

// =============================================================================
// SCREENS
// =============================================================================

// Screen identifies the active view.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenLibrary
	ScreenInbox
	ScreenDetail
	ScreenChat
	ScreenProfile
	ScreenTasks
	ScreenFeedback
)

// mainScreens is the tab cycle order. Login and Detail are reached by
// auth state and selection, not by tabbing.
var mainScreens = []Screen{ScreenLibrary, ScreenInbox, ScreenChat, ScreenProfile, ScreenTasks, ScreenFeedback}

// tabLabels match mainScreens index for index.
var tabLabels = []string{"Library", "Inbox", "Chat", "Profile", "Tasks", "Feedback"}

// requestTimeout bounds each fetch or mutation issued from the TUI.
const requestTimeout = 30 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

type authCheckedMsg struct {
	user *model.User
	err  error
}

type loginDoneMsg struct {
	user *model.User
	err  error
}

type solicitationsLoadedMsg struct {
	items []model.Solicitation
	err   error
}

type matchesLoadedMsg struct {
	items []model.Match
	err   error
}

// mutationDoneMsg settles an optimistic action. seq ties it back to the
// pending command that issued it.
type mutationDoneMsg struct {
	seq int
	err error
}

type configReloadedMsg struct {
	cfg *config.Config
}

type statusClearMsg struct{}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model.
type App struct {
	client *api.Client
	cfg    *config.Config
	user   *model.User

	screen     Screen
	lastScreen Screen // where Detail returns to on esc

	width  int
	height int

	// Shared data, owned here so every screen sees one copy.
	sols    []model.Solicitation
	matches []model.Match

	header  *components.Header
	status  *components.StatusBar
	keys    KeyMap
	spinner components.Spinner

	login    *LoginModel
	library  *LibraryModel
	inbox    *InboxModel
	detail   *DetailModel
	chat     *ChatModel
	profile  *ProfileModel
	tasks    *TasksModel
	feedback *FeedbackModel

	configUpdates <-chan *config.Config
}

// NewApp builds the root model. The config watcher channel may be nil.
func NewApp(client *api.Client, cfg *config.Config, configUpdates <-chan *config.Config) *App {
	styles.Set(cfg.UI.Theme)

	a := &App{
		client:        client,
		cfg:           cfg,
		screen:        ScreenLogin,
		header:        components.NewHeader(tabLabels),
		status:        components.NewStatusBar(),
		keys:          DefaultKeyMap(),
		spinner:       components.NewSpinner(),
		configUpdates: configUpdates,
	}
	a.login = NewLoginModel(client)
	a.library = NewLibraryModel(cfg)
	a.inbox = NewInboxModel(cfg)
	a.detail = NewDetailModel(client)
	a.chat = NewChatModel(client, cfg)
	a.profile = NewProfileModel(client)
	a.tasks = NewTasksModel(client)
	a.feedback = NewFeedbackModel(client)
	return a
}

// Init checks for an existing session and starts the config watcher pump.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.checkAuth()}
	if a.configUpdates != nil {
		cmds = append(cmds, a.waitForConfig())
	}
	return tea.Batch(cmds...)
}

func (a *App) checkAuth() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := a.client.Me(ctx)
		return authCheckedMsg{user: user, err: err}
	}
}

func (a *App) waitForConfig() tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-a.configUpdates
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// loadData fetches the solicitation library and the match inbox.
func (a *App) loadData() tea.Cmd {
	fetchSols := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := a.client.Solicitations(ctx)
		return solicitationsLoadedMsg{items: items, err: err}
	}
	fetchMatches := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := a.client.Matches(ctx)
		return matchesLoadedMsg{items: items, err: err}
	}
	return tea.Batch(fetchSols, fetchMatches)
}

// flashStatus shows a transient status message.
func (a *App) flashStatus(status components.Status, msg string) tea.Cmd {
	a.status.Set(status, msg)
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages to the active screen after handling the global ones.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.header.SetWidth(msg.Width)
		a.status.SetWidth(msg.Width)
		contentHeight := a.contentHeight()
		a.library.SetSize(msg.Width, contentHeight)
		a.inbox.SetSize(msg.Width, contentHeight)
		a.detail.SetSize(msg.Width, contentHeight)
		a.chat.SetSize(msg.Width, contentHeight)
		a.profile.SetSize(msg.Width, contentHeight)
		a.tasks.SetSize(msg.Width, contentHeight)
		a.feedback.SetSize(msg.Width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleGlobalKey(msg); handled {
			return a, cmd
		}

	case authCheckedMsg:
		if msg.err != nil {
			a.screen = ScreenLogin
			if !errors.Is(msg.err, api.ErrUnauthorized) {
				a.login.SetError(msg.err)
			}
			return a, nil
		}
		return a, a.signIn(msg.user)

	case loginDoneMsg:
		if msg.err != nil {
			a.login.SetError(msg.err)
			return a, nil
		}
		return a, a.signIn(msg.user)

	case solicitationsLoadedMsg:
		if msg.err != nil {
			return a, a.flashStatus(components.StatusError, msg.err.Error())
		}
		a.sols = msg.items
		a.library.SetItems(a.sols)
		a.status.Set(components.StatusReady, "")
		return a, nil

	case matchesLoadedMsg:
		if msg.err != nil {
			return a, a.flashStatus(components.StatusError, msg.err.Error())
		}
		a.matches = msg.items
		a.inbox.SetItems(a.matches)
		return a, nil

	case configReloadedMsg:
		a.applyConfig(msg.cfg)
		return a, a.waitForConfig()

	case statusClearMsg:
		a.status.Set(components.StatusReady, "")
		return a, nil

	case openDetailMsg:
		a.lastScreen = a.screen
		a.detail.SetSolicitation(msg.sol, msg.match)
		a.screen = ScreenDetail
		a.syncHeader()
		return a, a.detail.LoadComments()

	case refreshMsg:
		return a, a.loadData()

	case flashMsg:
		return a, a.flashStatus(msg.status, msg.text)
	}

	return a, a.updateScreen(msg)
}

// signIn records the authenticated user and enters the main app.
func (a *App) signIn(user *model.User) tea.Cmd {
	a.user = user
	a.header.SetUser(user.Username)
	a.profile.SetUser(user)
	a.screen = ScreenLibrary
	a.syncHeader()
	a.status.Set(components.StatusLoading, "Loading portal data")
	return a.loadData()
}

// applyConfig applies a hot-reloaded configuration.
func (a *App) applyConfig(cfg *config.Config) {
	a.cfg = cfg
	styles.Set(cfg.UI.Theme)
	a.library.ApplyConfig(cfg)
	a.inbox.ApplyConfig(cfg)
	a.chat.ApplyConfig(cfg)
}

// handleGlobalKey processes app-level keys. Text-entry screens keep every
// printable key, so only control-key chords are global.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, a.keys.Theme):
		return a.cycleTheme(), true

	case key.Matches(msg, a.keys.Refresh):
		if a.screen == ScreenTasks {
			a.status.Set(components.StatusLoading, "Refreshing")
			return a.tasks.Load(), true
		}
		if a.screen != ScreenLogin {
			a.status.Set(components.StatusLoading, "Refreshing")
			return a.loadData(), true
		}

	case key.Matches(msg, a.keys.NextScreen):
		if a.screen != ScreenLogin && a.screen != ScreenDetail {
			a.cycleScreen(1)
			return a.screenEnterCmd(), true
		}

	case key.Matches(msg, a.keys.PrevScreen):
		if a.screen != ScreenLogin && a.screen != ScreenDetail {
			a.cycleScreen(-1)
			return a.screenEnterCmd(), true
		}

	case key.Matches(msg, a.keys.Back):
		if a.screen == ScreenDetail {
			a.screen = a.lastScreen
			a.syncHeader()
			return nil, true
		}
	}
	return nil, false
}

// cycleScreen moves through the main tab order.
func (a *App) cycleScreen(delta int) {
	idx := 0
	for i, s := range mainScreens {
		if s == a.screen {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(mainScreens)) % len(mainScreens)
	a.screen = mainScreens[idx]
	a.syncHeader()
}

// screenEnterCmd runs any fetch the newly active screen needs. The task
// list loads on first visit; everything else is fetched at sign-in.
func (a *App) screenEnterCmd() tea.Cmd {
	if a.screen == ScreenTasks && !a.tasks.loaded {
		return a.tasks.Load()
	}
	return nil
}

// cycleTheme rotates light -> dark -> forest and persists the choice.
func (a *App) cycleTheme() tea.Cmd {
	names := styles.PaletteNames()
	cur := styles.Current().Palette.Name
	next := names[0]
	for i, n := range names {
		if n == cur {
			next = names[(i+1)%len(names)]
			break
		}
	}
	styles.Set(next)
	a.cfg.UI.Theme = next

	cfg := *a.cfg
	return func() tea.Msg {
		if err := config.Save(&cfg); err != nil {
			return flashMsg{status: components.StatusError, text: "theme not saved: " + err.Error()}
		}
		return flashMsg{status: components.StatusReady, text: "theme: " + next}
	}
}

// syncHeader highlights the tab for the active screen.
func (a *App) syncHeader() {
	for i, s := range mainScreens {
		if s == a.screen || (a.screen == ScreenDetail && s == a.lastScreen) {
			a.header.SetActive(i)
			return
		}
	}
}

// updateScreen forwards a message to the active screen model.
func (a *App) updateScreen(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case ScreenLogin:
		return a.login.Update(msg)
	case ScreenLibrary:
		return a.library.Update(msg)
	case ScreenInbox:
		return a.inbox.Update(msg)
	case ScreenDetail:
		return a.detail.Update(msg)
	case ScreenChat:
		return a.chat.Update(msg)
	case ScreenProfile:
		return a.profile.Update(msg)
	case ScreenTasks:
		return a.tasks.Update(msg)
	case ScreenFeedback:
		return a.feedback.Update(msg)
	}
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

// contentHeight is the rows left between header and status bar.
func (a *App) contentHeight() int {
	h := a.height - 3
	if h < 4 {
		h = 4
	}
	return h
}

// View renders the frame: header, active screen, status bar.
func (a *App) View() string {
	if a.width == 0 {
		return "starting..."
	}

	if a.screen == ScreenLogin {
		return a.login.View(a.width, a.height)
	}

	var body string
	var shortcuts []components.Shortcut
	switch a.screen {
	case ScreenLibrary:
		body = a.library.View()
		shortcuts = a.library.Shortcuts()
	case ScreenInbox:
		body = a.inbox.View()
		shortcuts = a.inbox.Shortcuts()
	case ScreenDetail:
		body = a.detail.View()
		shortcuts = a.detail.Shortcuts()
	case ScreenChat:
		body = a.chat.View()
		shortcuts = a.chat.Shortcuts()
	case ScreenProfile:
		body = a.profile.View()
		shortcuts = a.profile.Shortcuts()
	case ScreenTasks:
		body = a.tasks.View()
		shortcuts = a.tasks.Shortcuts()
	case ScreenFeedback:
		body = a.feedback.View()
		shortcuts = a.feedback.Shortcuts()
	}

	return a.header.View() + "\n" + body + "\n" + a.status.View(shortcuts)
}

// =============================================================================
// CROSS-SCREEN MESSAGES
// =============================================================================

// openDetailMsg asks the root model to show the detail screen. match is
// nil when opened from the library.
type openDetailMsg struct {
	sol   *model.Solicitation
	match *model.Match
}

// refreshMsg asks the root model to refetch portal data.
type refreshMsg struct{}

// flashMsg asks the root model to show a transient status line.
type flashMsg struct {
	status components.Status
	text   string
}
