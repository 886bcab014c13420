// Package picker presents a ranked candidate list as an interactive
// terminal chooser. It is only used when stdout is a terminal; editors
// consume the JSON or plain-text output instead.
package picker

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/erlkit/erljump/internal/backend"
)

// ErrCancelled is returned when the user dismisses the picker.
var ErrCancelled = fmt.Errorf("selection cancelled")

const (
	defaultWidth  = 80
	defaultHeight = 14
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))

// item adapts a match to the bubbles list item interface.
type item struct {
	match backend.Match
}

func (i item) Title() string {
	return fmt.Sprintf("%s:%d", i.match.Path, i.match.Line)
}

func (i item) Description() string {
	return i.match.Context
}

func (i item) FilterValue() string {
	return i.match.Path + " " + i.match.Context
}

// model is the bubbletea model for the chooser.
type model struct {
	list      list.Model
	choice    int
	cancelled bool
}

func newModel(symbol string, matches []backend.Match) model {
	items := make([]list.Item, len(matches))
	for i, m := range matches {
		items[i] = item{match: m}
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, defaultWidth, defaultHeight)
	l.Title = fmt.Sprintf("%d candidates for %s", len(matches), symbol)
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{list: l, choice: -1}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Filtering owns the keyboard while active
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			m.choice = m.list.Index()
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.choice >= 0 || m.cancelled {
		return ""
	}
	return m.list.View()
}

// Choose presents the candidates and returns the selected match.
// The chooser renders to stderr so stdout stays machine-readable.
func Choose(symbol string, matches []backend.Match) (*backend.Match, error) {
	if len(matches) == 0 {
		return nil, fmt.Errorf("no candidates to choose from")
	}
	if len(matches) == 1 {
		return &matches[0], nil
	}

	p := tea.NewProgram(newModel(symbol, matches), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}

	m := final.(model)
	if m.cancelled || m.choice < 0 {
		return nil, ErrCancelled
	}
	return &matches[m.choice], nil
}
