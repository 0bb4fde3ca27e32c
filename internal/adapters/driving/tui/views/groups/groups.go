// Package groups provides the group list view for the TUI.
package groups

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driving"
)

// View lists every group in the store.
type View struct {
	styles      *styles.Styles
	treeService driving.TreeService

	list    *list.NameList
	groups  []domain.GroupSummary
	width   int
	height  int
	loading bool
	err     error
}

// NewView creates a new groups view.
func NewView(s *styles.Styles, treeService driving.TreeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		treeService: treeService,
		list:        list.NewNameList(s, "No groups"),
	}
}

// Init loads the groups.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that lists the groups.
func (v *View) Load() tea.Cmd {
	v.loading = true
	service := v.treeService
	return func() tea.Msg {
		if service == nil {
			return messages.GroupsLoaded{Err: fmt.Errorf("tree service not available")}
		}
		groups, err := service.ListGroups(context.Background())
		return messages.GroupsLoaded{Groups: groups, Err: err}
	}
}

// Update handles messages for the groups view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.GroupsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.setGroups(msg.Groups)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name, ok := v.list.SelectedName()
		if !ok {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.GroupSelected{Group: name}
		}
	case "r":
		return v, v.Load()
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) setGroups(groups []domain.GroupSummary) {
	v.groups = groups
	items := make([]list.Item, len(groups))
	for i, g := range groups {
		items[i] = list.Item{Name: g.Name}
	}
	v.list.SetItems(items)
}

// View renders the groups view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Groups"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading groups..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] open  [r] reload  [q] quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// Title, blank line, help footer and padding.
	v.list.SetDimensions(width, height-6)
}

// Groups returns the loaded groups.
func (v *View) Groups() []domain.GroupSummary {
	return v.groups
}

// Count returns the number of groups.
func (v *View) Count() int {
	return len(v.groups)
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
