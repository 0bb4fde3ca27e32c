package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/views/document"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/views/files"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/views/groups"
	"github.com/custodia-labs/treestore/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	groupsView   *groups.View
	filesView    *files.View
	documentView *document.View
	statusBar    *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when help is closed.
	previousView messages.ViewType

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		groupsView:   groups.NewView(s, ports.Tree),
		filesView:    files.NewView(s, ports.Tree),
		documentView: document.NewView(s, ports.Tree),
		statusBar:    status.NewBar(s, km),
		currentView:  messages.ViewGroups,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.statusBar.SetState(status.StateLoading)
	return tea.Batch(
		tea.SetWindowTitle("treestore"),
		a.groupsView.Init(),
		a.waitForChange(),
	)
}

// waitForChange delivers the next store change, if changes are wired.
func (a *App) waitForChange() tea.Cmd {
	changes := a.ports.Changes
	if changes == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			return messages.StoreChanged{Change: change}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.GroupsLoaded:
		a.groupsView, cmd = a.groupsView.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.GroupSelected:
		a.currentView = messages.ViewFiles
		cmd = a.filesView.SetGroup(msg.Group)
		a.syncStatus()
		return a, cmd

	case messages.FilesLoaded:
		a.filesView, cmd = a.filesView.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.FileSelected:
		a.currentView = messages.ViewDocument
		cmd = a.documentView.SetDocument(msg.Group, msg.File)
		a.syncStatus()
		return a, cmd

	case messages.DocumentLoaded:
		a.documentView, cmd = a.documentView.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		a.syncStatus()
		return a, nil

	case messages.StoreChanged:
		return a, tea.Batch(a.refreshFor(msg.Change), a.waitForChange())

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewGroups:
			a.groupsView, cmd = a.groupsView.Update(msg)
		case messages.ViewFiles:
			a.filesView, cmd = a.filesView.Update(msg)
		case messages.ViewDocument:
			a.documentView, cmd = a.documentView.Update(msg)
		case messages.ViewHelp:
			// Help is static
		}
		a.syncStatus()
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		if keymap.Matches(msg.String(), a.keymap.Back) || keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = a.previousView
			a.syncStatus()
		}
		return a, nil
	}

	switch {
	case keymap.Matches(msg.String(), a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(msg.String(), a.keymap.Help):
		a.previousView = a.currentView
		a.currentView = messages.ViewHelp
		a.statusBar.SetState(status.StateHelp)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewGroups:
		a.groupsView, cmd = a.groupsView.Update(msg)
	case messages.ViewFiles:
		a.filesView, cmd = a.filesView.Update(msg)
	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
	case messages.ViewHelp:
		// Handled above
	}
	a.syncStatus()
	return a, cmd
}

// refreshFor reloads the open view when change touches what it shows.
func (a *App) refreshFor(change domain.Change) tea.Cmd {
	switch a.currentView {
	case messages.ViewGroups:
		if change.IsGroup() {
			return a.groupsView.Load()
		}
	case messages.ViewFiles:
		if change.IsRoot() || change.Group == a.filesView.Group() {
			return a.filesView.Load()
		}
	case messages.ViewDocument:
		if result := a.documentView.Result(); result != nil && (change.IsRoot() ||
			change.Group == result.Group && change.File == result.File) {
			return a.documentView.Load()
		}
	case messages.ViewHelp:
		// Nothing to refresh
	}
	return nil
}

// syncStatus mirrors the active view into the status bar.
func (a *App) syncStatus() {
	a.statusBar.Clear()
	switch a.currentView {
	case messages.ViewGroups:
		a.statusFromList(a.groupsView.Err(), a.groupsView.Count())
	case messages.ViewFiles:
		a.statusFromList(a.filesView.Err(), len(a.filesView.Files()))
	case messages.ViewDocument:
		if err := a.documentView.Err(); err != nil {
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(err.Error())
			return
		}
		a.statusBar.SetState(status.StateDocument)
		a.statusBar.SetMessage(a.documentView.Notice())
	case messages.ViewHelp:
		a.statusBar.SetState(status.StateHelp)
	}
}

func (a *App) statusFromList(err error, count int) {
	if err != nil {
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(err.Error())
		return
	}
	a.statusBar.SetItemCount(count)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewFiles:
		body = a.filesView.View()
	case messages.ViewDocument:
		body = a.documentView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.groupsView.View()
	}
	return body + "\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] close help"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// One line for the status bar.
	a.groupsView.SetDimensions(width, height-1)
	a.filesView.SetDimensions(width, height-1)
	a.documentView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
