package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hexlattice/anchorscan/internal/model"
)

func TestViewListsFindings(t *testing.T) {
	res := model.NewAnalysisResult()
	res.AddVulnerability(model.SeverityCritical, "Potential arbitrary CPI vulnerability detected",
		model.Location{File: "src/lib.rs", Line: 7}, "")
	res.AddWarning("Large integer literal detected: 5000000000",
		model.Location{File: "src/lib.rs", Line: 9}, "")

	view := initialModel(res).View()
	for _, want := range []string{
		"Vulnerabilities (1)",
		"[CRITICAL] src/lib.rs:7 Potential arbitrary CPI vulnerability detected",
		"Warnings (1)",
		"press q to quit",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuitKeys(t *testing.T) {
	m := initialModel(model.NewAnalysisResult())
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(t, key))
		if cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}
	if _, cmd := m.Update(keyMsg(t, "x")); cmd != nil {
		t.Error("unrelated key should not quit")
	}
}

func keyMsg(t *testing.T, key string) tea.KeyMsg {
	t.Helper()
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
