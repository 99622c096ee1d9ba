package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Economy.StartingFunds <= 0 {
		t.Error("starting funds not set")
	}
	if cfg.Breeding.Mode != "mendelian" {
		t.Errorf("default mode = %q, want mendelian", cfg.Breeding.Mode)
	}
	if cfg.Growth.VarianceMin >= cfg.Growth.VarianceMax {
		t.Errorf("variance band [%.2f, %.2f] inverted", cfg.Growth.VarianceMin, cfg.Growth.VarianceMax)
	}
	if cfg.Curing.DeepTicks <= cfg.Curing.CureTicks {
		t.Error("deep cure not longer than standard cure")
	}
	if len(cfg.Founders) == 0 {
		t.Error("no founders configured")
	}
	if _, ok := cfg.Facility.Substrates["soil"]; !ok {
		t.Error("soil substrate missing")
	}
	if len(cfg.Derived.UpgradeIndex) != len(cfg.Upgrades) {
		t.Errorf("upgrade index has %d entries, want %d", len(cfg.Derived.UpgradeIndex), len(cfg.Upgrades))
	}
}

func TestLoadOverridesMergeWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	override := `
economy:
  starting_funds: 9999
breeding:
  mode: blend
`
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Economy.StartingFunds != 9999 {
		t.Errorf("starting funds = %d, want 9999", cfg.Economy.StartingFunds)
	}
	if cfg.Breeding.Mode != "blend" {
		t.Errorf("mode = %q, want blend", cfg.Breeding.Mode)
	}

	// Untouched fields keep their defaults.
	defaults, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Growth.YieldMultiplier != defaults.Growth.YieldMultiplier {
		t.Error("override clobbered growth defaults")
	}
	if len(cfg.Founders) != len(defaults.Founders) {
		t.Error("override clobbered founders")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Economy.StartingFunds = 777
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if reloaded.Economy.StartingFunds != 777 {
		t.Errorf("starting funds = %d, want 777", reloaded.Economy.StartingFunds)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	old := global
	global = nil
	defer func() {
		global = old
		if r := recover(); r == nil {
			t.Error("Cfg() before Init() did not panic")
		}
	}()
	Cfg()
}
