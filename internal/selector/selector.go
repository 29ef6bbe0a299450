// Package selector presents filtered paths for manual inclusion before emission.
package selector

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// sessionState is the state of the interactive selection session.
type sessionState int

const (
	stateBrowsing sessionState = iota
	stateConfirmed
	stateCanceled
)

// Result carries the outcome of a selection session. Canceled is distinct from
// an empty selection: a confirmed-empty result still returns Canceled false.
type Result struct {
	Canceled bool
	Selected []string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const helpLine = "↑/↓ move · space toggle · a all · n none · enter confirm · q cancel"

// Model is the bubbletea model driving the selection session. It starts in the
// browsing state with every path pre-selected and transitions to confirmed or
// canceled on discrete key events, so it can be exercised with synthetic event
// sequences without a terminal.
type Model struct {
	paths    []string
	cursor   int
	selected map[int]bool
	state    sessionState
}

// NewModel builds a browsing-state model with all paths selected.
func NewModel(paths []string) Model {
	selected := make(map[int]bool, len(paths))
	for pathIndex := range paths {
		selected[pathIndex] = true
	}
	return Model{
		paths:    paths,
		selected: selected,
		state:    stateBrowsing,
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Cursor movement is clamped to the list bounds.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKey := message.(tea.KeyMsg)
	if !isKey {
		return model, nil
	}
	switch keyMessage.String() {
	case "up", "k":
		if model.cursor > 0 {
			model.cursor--
		}
	case "down", "j":
		if model.cursor < len(model.paths)-1 {
			model.cursor++
		}
	case " ":
		if len(model.paths) > 0 {
			model.selected[model.cursor] = !model.selected[model.cursor]
		}
	case "a":
		for pathIndex := range model.paths {
			model.selected[pathIndex] = true
		}
	case "n":
		for pathIndex := range model.paths {
			model.selected[pathIndex] = false
		}
	case "enter":
		model.state = stateConfirmed
		return model, tea.Quit
	case "q", "esc", "ctrl+c":
		model.state = stateCanceled
		return model, tea.Quit
	}
	return model, nil
}

// View implements tea.Model.
func (model Model) View() string {
	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Select files to include") + "\n\n")
	for pathIndex, path := range model.paths {
		cursorMarker := " "
		if pathIndex == model.cursor {
			cursorMarker = cursorStyle.Render(">")
		}
		selectionMarker := "[ ]"
		line := path
		if model.selected[pathIndex] {
			selectionMarker = selectedStyle.Render("[x]")
			line = selectedStyle.Render(path)
		}
		builder.WriteString(cursorMarker + " " + selectionMarker + " " + line + "\n")
	}
	builder.WriteString("\n" + helpStyle.Render(helpLine) + "\n")
	return builder.String()
}

// Result converts the final model state into a selection result.
func (model Model) Result() Result {
	if model.state == stateCanceled {
		return Result{Canceled: true}
	}
	selectedPaths := make([]string, 0, len(model.paths))
	for pathIndex, path := range model.paths {
		if model.selected[pathIndex] {
			selectedPaths = append(selectedPaths, path)
		}
	}
	return Result{Selected: selectedPaths}
}

// Run presents the interactive selector for the provided paths. When no usable
// terminal is available, or the full-screen session fails to start, the degraded
// line-oriented menu is used instead of aborting.
func Run(paths []string) (Result, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return RunFallback(paths, os.Stdin, os.Stdout)
	}
	program := tea.NewProgram(NewModel(paths))
	finalModel, runError := program.Run()
	if runError != nil {
		return RunFallback(paths, os.Stdin, os.Stdout)
	}
	selectionModel, isSelectionModel := finalModel.(Model)
	if !isSelectionModel {
		return Result{Canceled: true}, nil
	}
	return selectionModel.Result(), nil
}
