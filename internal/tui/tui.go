package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hexlattice/anchorscan/internal/model"
)

type modelT struct {
	res *model.AnalysisResult
}

func initialModel(res *model.AnalysisResult) modelT { return modelT{res: res} }

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vulnerabilities (%d)\n\n", len(m.res.Vulnerabilities))
	for _, v := range m.res.Vulnerabilities {
		fmt.Fprintf(&b, "[%s] %s:%d %s\n", strings.ToUpper(string(v.Severity)), v.Location.File, v.Location.Line, v.Description)
	}
	fmt.Fprintf(&b, "\nWarnings (%d)\n\n", len(m.res.Warnings))
	for _, w := range m.res.Warnings {
		fmt.Fprintf(&b, "%s:%d %s\n", w.Location.File, w.Location.Line, w.Description)
	}
	b.WriteString("\npress q to quit\n")
	return b.String()
}

// Run launches a minimal TUI list view of the findings
func Run(res *model.AnalysisResult) error {
	p := tea.NewProgram(initialModel(res))
	_, err := p.Run()
	return err
}
