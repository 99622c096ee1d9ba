// Package telemetry provides structured run output: a per-season CSV
// ledger, distribution statistics, and session snapshot types for the
// external save/load collaborator.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/cultivar/config"
)

// SeasonRecord is one ledger row, written after each season advance.
type SeasonRecord struct {
	Season       int     `csv:"season"`
	Funds        int     `csv:"funds"`
	Overhead     int     `csv:"overhead"`
	Strains      int     `csv:"strains"`
	Batches      int     `csv:"batches"`
	Harvested    int     `csv:"harvested_g"`
	SoldUnits    int     `csv:"sold_g"`
	Revenue      int     `csv:"revenue"`
	SpoiledUnits int     `csv:"spoiled_g"`
	BasePrice    float64 `csv:"base_price"`
	Trend        string  `csv:"trend"`
	PotencyMean  float64 `csv:"potency_mean"`
	PotencyP90   float64 `csv:"potency_p90"`
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	ledgerFile *os.File

	ledgerHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	ledgerPath := filepath.Join(dir, "ledger.csv")
	f, err := os.Create(ledgerPath)
	if err != nil {
		return nil, fmt.Errorf("creating ledger.csv: %w", err)
	}
	om.ledgerFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteSeason writes one season record to ledger.csv.
func (om *OutputManager) WriteSeason(rec SeasonRecord) error {
	if om == nil {
		return nil
	}

	records := []SeasonRecord{rec}

	if !om.ledgerHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.ledgerFile); err != nil {
			return fmt.Errorf("writing ledger: %w", err)
		}
		om.ledgerHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.ledgerFile); err != nil {
			return fmt.Errorf("writing ledger: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the ledger.
func (om *OutputManager) Close() error {
	if om == nil || om.ledgerFile == nil {
		return nil
	}
	return om.ledgerFile.Close()
}
