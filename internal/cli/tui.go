package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glyphforge/glyphforge/pkg/gen"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// KindListModel - Interactive symbol kind selection
// =============================================================================

// KindListModel is the bubbletea model for interactive symbol kind selection.
type KindListModel struct {
	Kinds    []string
	Cursor   int
	Selected string
}

// NewKindListModel creates a new kind list model over the registered
// generator kinds.
func NewKindListModel(kinds []string) KindListModel {
	return KindListModel{Kinds: kinds}
}

func (m KindListModel) Init() tea.Cmd {
	return nil
}

func (m KindListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Kinds)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Kinds[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m KindListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Symbol Kind"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, kind := range m.Kinds {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + kind
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Kinds))))

	return b.String()
}

// =============================================================================
// BatchModel - Progress over multiple kinds
// =============================================================================

// batchResult reports one finished generation in a batch run.
type batchResult struct {
	Kind     string
	Capsules int
	Valid    bool
	Err      error
}

// BatchModel is the bubbletea model driving a batch generation run. It
// executes one kind at a time via the injected run function and renders
// per-kind progress.
type BatchModel struct {
	Kinds   []string
	Results []batchResult
	Run     func(kind string) batchResult

	index   int
	aborted bool
}

// NewBatchModel creates a batch model over kinds. run is called once per
// kind, sequentially, from the bubbletea command goroutine.
func NewBatchModel(kinds []string, run func(kind string) batchResult) BatchModel {
	return BatchModel{Kinds: kinds, Run: run}
}

func (m BatchModel) Init() tea.Cmd {
	return m.runNext()
}

func (m BatchModel) runNext() tea.Cmd {
	kind := m.Kinds[m.index]
	run := m.Run
	return func() tea.Msg {
		return run(kind)
	}
}

func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case batchResult:
		m.Results = append(m.Results, msg)
		m.index++
		if m.index >= len(m.Kinds) {
			return m, tea.Quit
		}
		return m, m.runNext()
	}
	return m, nil
}

func (m BatchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Batch Generation"))
	b.WriteString("\n\n")

	for _, r := range m.Results {
		switch {
		case r.Err != nil:
			b.WriteString(styleIconError.Render(iconError) + " " + r.Kind + listDimStyle.Render("  "+r.Err.Error()))
		case r.Valid:
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + r.Kind + listDimStyle.Render(fmt.Sprintf("  %d capsules", r.Capsules)))
		default:
			b.WriteString(styleIconWarning.Render(iconWarning) + " " + r.Kind + listDimStyle.Render("  failed validation"))
		}
		b.WriteString("\n")
	}
	if m.index < len(m.Kinds) {
		b.WriteString(listDimStyle.Render("… generating " + m.Kinds[m.index]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  q to abort", len(m.Results), len(m.Kinds))))

	return b.String()
}

// pickKind runs the interactive kind picker and returns the chosen kind,
// or "" when the user quits without selecting.
func pickKind() (string, error) {
	model := NewKindListModel(gen.DefaultRegistry().Kinds())
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("kind picker: %w", err)
	}
	if m, ok := final.(KindListModel); ok {
		return m.Selected, nil
	}
	return "", nil
}
