package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/hexlattice/anchorscan/internal/model"
)

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "anchorscan"}
	AddCommands(root)
	return root
}

func writeProject(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "lib.rs"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestScanWritesJSONReport(t *testing.T) {
	proj := writeProject(t, `
pub fn initialize(ctx: Context<Initialize>) -> Result<()> {
    ctx.accounts.state.value = 1;
    Ok(())
}
`)
	out := filepath.Join(t.TempDir(), "report.json")

	root := newRoot()
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"scan", proj, "--format", "json", "--out", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var res model.AnalysisResult
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(res.Vulnerabilities) != 1 {
		t.Errorf("vulns = %d, want 1", len(res.Vulnerabilities))
	}
}

func TestScanFailOn(t *testing.T) {
	proj := writeProject(t, `
pub fn initialize(ctx: Context<Initialize>) -> Result<()> {
    ctx.accounts.state.value = 1;
    Ok(())
}
`)
	root := newRoot()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"scan", proj, "--format", "table", "--fail-on", "high"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected fail-on error for high severity finding")
	}

	root = newRoot()
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"scan", proj, "--format", "table", "--fail-on", "critical"})
	if err := root.Execute(); err != nil {
		t.Fatalf("critical fail-on should pass with only high findings: %v", err)
	}
}

func TestScanSeverityThreshold(t *testing.T) {
	proj := writeProject(t, `
pub fn initialize(ctx: Context<Initialize>) -> Result<()> {
    ctx.accounts.state.value = 1;
    Ok(())
}
`)
	var buf bytes.Buffer
	root := newRoot()
	root.SetOut(&buf)
	root.SetArgs([]string{"scan", proj, "--format", "table", "--severity-threshold", "critical"})
	if err := root.Execute(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "Vulnerabilities: 0") {
		t.Errorf("high finding should be filtered out, got %q", got)
	}
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	root := newRoot()
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"init", "--dir", dir})
	if err := root.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".anchorscan.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
}

func TestCatalogList(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "arbitrary-cpi.json"),
		[]byte(`{"description":"First line\nsecond line"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	root := newRoot()
	root.SetOut(&buf)
	root.SetArgs([]string{"catalog", "list", "--catalog", dir})
	if err := root.Execute(); err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	if got := buf.String(); got != "arbitrary-cpi\tFirst line\n" {
		t.Errorf("output = %q", got)
	}
}
