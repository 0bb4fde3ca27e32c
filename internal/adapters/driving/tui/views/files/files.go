// Package files provides the document list view of one group.
package files

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/treestore/internal/core/ports/driving"
)

// View lists the documents of the selected group.
type View struct {
	styles      *styles.Styles
	treeService driving.TreeService

	group   string
	list    *list.NameList
	width   int
	height  int
	loading bool
	err     error
}

// NewView creates a new files view.
func NewView(s *styles.Styles, treeService driving.TreeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		treeService: treeService,
		list:        list.NewNameList(s, "No documents in this group"),
	}
}

// SetGroup switches to group and loads its documents.
func (v *View) SetGroup(group string) tea.Cmd {
	v.group = group
	v.err = nil
	v.list.SetItems(nil)
	return v.Load()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command that lists the documents of the current group.
func (v *View) Load() tea.Cmd {
	v.loading = true
	service, group := v.treeService, v.group
	return func() tea.Msg {
		if service == nil {
			return messages.FilesLoaded{Group: group, Err: fmt.Errorf("tree service not available")}
		}
		files, err := service.ListFiles(context.Background(), group)
		return messages.FilesLoaded{Group: group, Files: files, Err: err}
	}
}

// Update handles messages for the files view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.FilesLoaded:
		// Drop results for a group the user already left.
		if msg.Group != v.group {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			items := make([]list.Item, len(msg.Files))
			for i, f := range msg.Files {
				items[i] = list.Item{Name: f}
			}
			v.list.SetItems(items)
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
		group := v.group
		return v, func() tea.Msg {
			return messages.FileSelected{Group: group, File: name}
		}
	case "esc", "backspace":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewGroups}
		}
	case "r":
		return v, v.Load()
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// View renders the files view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Documents"))
	b.WriteString("\n")
	b.WriteString(v.styles.Breadcrumb.Render(v.group))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] open  [r] reload  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-7)
}

// Group returns the current group.
func (v *View) Group() string {
	return v.group
}

// Files returns the listed document names.
func (v *View) Files() []string {
	items := v.list.Items()
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
