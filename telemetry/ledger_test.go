package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("disabled manager: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// All operations are no-ops on a disabled manager.
	if err := om.WriteSeason(SeasonRecord{Season: 1}); err != nil {
		t.Errorf("nil WriteSeason: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("nil Dir = %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestLedgerWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating manager: %v", err)
	}

	records := []SeasonRecord{
		{Season: 1, Funds: 450, Overhead: 50, Strains: 2, Harvested: 120, BasePrice: 10.5, Trend: "C"},
		{Season: 2, Funds: 610, Overhead: 100, Strains: 3, SoldUnits: 90, Revenue: 820, Trend: "L"},
	}
	for _, rec := range records {
		if err := om.WriteSeason(rec); err != nil {
			t.Fatalf("season %d: %v", rec.Season, err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ledger.csv"))
	if err != nil {
		t.Fatalf("reading ledger: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("ledger has %d lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "season,") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.HasPrefix(lines[1], "season,") || strings.HasPrefix(lines[2], "season,") {
		t.Error("header repeated in data rows")
	}
	if !strings.HasPrefix(lines[1], "1,450,") || !strings.HasPrefix(lines[2], "2,610,") {
		t.Errorf("rows = %q / %q", lines[1], lines[2])
	}
}
