package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	stddec "github.com/shopspring/decimal"

	"github.com/fireplan/fire-calculator/internal/config"
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/fireplan/fire-calculator/internal/output"
)

func TestFormatters(t *testing.T) {
	d1 := stddec.NewFromFloat(123.45)
	if got := output.FormatCurrency(d1); got != "$123.45" {
		t.Fatalf("FormatCurrency got %s", got)
	}
	// FormatPercentage expects a 0-1 fraction
	d2 := stddec.NewFromFloat(0.1234)
	if got := output.FormatPercentage(d2); got != "12.34%" {
		t.Fatalf("FormatPercentage got %s", got)
	}
}

func TestSaveProfile_WritesFile(t *testing.T) {
	parser := config.NewInputParser()
	out := filepath.Join(t.TempDir(), "profile.yaml")
	if err := parser.SaveProfile(parser.CreateExampleProfile(), out); err != nil {
		t.Fatalf("SaveProfile error: %v", err)
	}
	fi, err := os.Stat(out)
	if err != nil {
		t.Fatalf("expected file exists, err: %v", err)
	}
	if fi.Size() == 0 {
		t.Fatalf("expected non-empty file")
	}
	if _, err := parser.LoadFromFile(out); err != nil {
		t.Fatalf("reloading saved profile: %v", err)
	}
}

func TestRender_EmptyReport(t *testing.T) {
	// A report with no run, solve or comparison must still render in every format
	report := &domain.Report{RunID: "empty", GeneratedAt: "2025-01-01T00:00:00Z"}
	for _, name := range output.AvailableFormatterNames() {
		var b strings.Builder
		if err := output.Render(&b, report, name); err != nil {
			t.Fatalf("Render %s error: %v", name, err)
		}
	}
}
