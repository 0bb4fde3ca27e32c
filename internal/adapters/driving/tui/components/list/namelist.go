// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/styles"
)

// Item is one row of a NameList.
type Item struct {
	// Name identifies the item and is returned on selection.
	Name string

	// Detail is shown muted after the name. Optional.
	Detail string
}

// NameList displays named items in a navigable list.
type NameList struct {
	items    []Item
	selected int
	empty    string
	styles   *styles.Styles
	width    int
	height   int
}

// NewNameList creates a list that shows empty when it has no items.
func NewNameList(s *styles.Styles, empty string) *NameList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &NameList{
		empty:  empty,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *NameList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *NameList) Update(msg tea.Msg) (*NameList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.items) > 0 {
				l.selected = len(l.items) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible window of items around the selection.
func (l *NameList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	visible := l.height
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i))
	}
	return strings.Join(lines, "\n")
}

func (l *NameList) renderItem(index int) string {
	item := l.items[index]

	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	maxNameLen := l.width - 4
	if item.Detail != "" {
		maxNameLen -= len(item.Detail) + 2
	}
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	name := item.Name
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	if index == l.selected {
		line := indicator + name
		if item.Detail != "" {
			line += "  " + item.Detail
		}
		return l.styles.Selected.Render(line)
	}

	line := l.styles.Normal.Render(fmt.Sprintf("%s%s", indicator, name))
	if item.Detail != "" {
		line += "  " + l.styles.Muted.Render(item.Detail)
	}
	return line
}

// SetItems replaces the items and resets the selection.
func (l *NameList) SetItems(items []Item) {
	l.items = items
	l.selected = 0
}

// Items returns the current items.
func (l *NameList) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *NameList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index. Out of range indexes are ignored.
func (l *NameList) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// SelectedName returns the name of the selected item, or false if the list
// is empty.
func (l *NameList) SelectedName() (string, bool) {
	if len(l.items) == 0 {
		return "", false
	}
	return l.items[l.selected].Name, true
}

// MoveUp moves selection up.
func (l *NameList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *NameList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *NameList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *NameList) Count() int {
	return len(l.items)
}
