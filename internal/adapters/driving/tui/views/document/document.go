// Package document provides the document view for the TUI.
package document

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/components/tree"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/treestore/internal/core/domain"
	"github.com/custodia-labs/treestore/internal/core/ports/driving"
)

// Mode selects how the document is drawn.
type Mode int

const (
	// ModeTree draws the document as a tree.
	ModeTree Mode = iota
	// ModeRaw shows the indented JSON.
	ModeRaw
)

// View shows one document with scrolling.
type View struct {
	styles      *styles.Styles
	treeService driving.TreeService
	renderer    *tree.Renderer

	group        string
	file         string
	result       *domain.LoadResult
	mode         Mode
	lines        []string
	scrollOffset int
	width        int
	height       int
	loading      bool
	err          error
}

// NewView creates a new document view.
func NewView(s *styles.Styles, treeService driving.TreeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		treeService: treeService,
		renderer:    tree.NewRenderer(s),
		width:       80,
		height:      24,
	}
}

// SetDocument switches to group/file and loads it.
func (v *View) SetDocument(group, file string) tea.Cmd {
	v.group = group
	v.file = file
	v.result = nil
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	return v.Load()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command that loads the current document.
func (v *View) Load() tea.Cmd {
	v.loading = true
	service, group, file := v.treeService, v.group, v.file
	return func() tea.Msg {
		if service == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("tree service not available")}
		}
		return messages.DocumentLoaded{Result: service.Load(context.Background(), group, file)}
	}
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		v.loading = false
		result := msg.Result
		v.result = &result
		// An empty request resolves to the default document.
		v.group, v.file = result.Group, result.File
		v.err = nil
		v.render()
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "t":
		if v.mode == ModeTree {
			v.mode = ModeRaw
		} else {
			v.mode = ModeTree
		}
		v.render()
	case "r":
		return v, v.Load()
	case "esc", "backspace":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewFiles}
		}
	}

	return v, nil
}

// render draws the loaded document in the current mode and clamps the
// scroll offset to the new content.
func (v *View) render() {
	if v.result == nil {
		v.lines = nil
		return
	}

	var text string
	if v.mode == ModeTree {
		rendered, err := v.renderer.Tree(v.result.Content)
		if err != nil {
			text = v.renderer.Raw(v.result.Content)
		} else {
			text = rendered
		}
	} else {
		text = v.renderer.Raw(v.result.Content)
	}

	v.lines = strings.Split(text, "\n")
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// visibleLines returns the number of content lines that fit.
func (v *View) visibleLines() int {
	// Title, breadcrumb, notice, separator, help and padding.
	return max(v.height-8, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document"))
	b.WriteString("\n")
	b.WriteString(v.styles.Breadcrumb.Render(v.breadcrumb()))
	b.WriteString("\n")
	if notice := v.Notice(); notice != "" {
		b.WriteString(v.styles.Warning.Render(notice))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Guide.Render(strings.Repeat("─", min(max(v.width-4, 1), 60))))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading document..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n")
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n")
	default:
		end := min(v.scrollOffset+v.visibleLines(), len(v.lines))
		for _, line := range v.lines[v.scrollOffset:end] {
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(v.lines) > v.visibleLines() {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Line %d-%d of %d", v.scrollOffset+1, end, len(v.lines))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [t] tree/raw  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) breadcrumb() string {
	if v.group == "" && v.file == "" {
		return "default document"
	}
	return v.group + " / " + v.file
}

// Notice describes a placeholder result, or is empty for real content.
func (v *View) Notice() string {
	if v.result == nil || !v.result.IsFallback() {
		return ""
	}
	if v.result.Status == domain.LoadStatusDefaultUnavailable {
		return "Default document unavailable, showing placeholder"
	}
	return "Document could not be read, showing placeholder"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// Mode returns the current display mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Result returns the last load result, or nil before the first load.
func (v *View) Result() *domain.LoadResult {
	return v.result
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
