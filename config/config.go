// Package config provides configuration loading and access for the
// simulation core.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation tuning parameters.
type Config struct {
	Economy   EconomyConfig   `yaml:"economy"`
	Breeding  BreedingConfig  `yaml:"breeding"`
	Growth    GrowthConfig    `yaml:"growth"`
	Curing    CuringConfig    `yaml:"curing"`
	Market    MarketConfig    `yaml:"market"`
	Facility  FacilityConfig  `yaml:"facility"`
	Upgrades  []UpgradeConfig `yaml:"upgrades"`
	Founders  []FounderConfig `yaml:"founders"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// EconomyConfig holds session-level money parameters.
type EconomyConfig struct {
	StartingFunds   int `yaml:"starting_funds"`
	Overhead        int `yaml:"overhead"`      // due at each season advance
	OverheadStep    int `yaml:"overhead_step"` // overhead increase per season
	BreedsPerSeason int `yaml:"breeds_per_season"`
	SellsPerSeason  int `yaml:"sells_per_season"`
}

// BreedingConfig holds breeding engine parameters.
type BreedingConfig struct {
	Mode              string  `yaml:"mode"` // "mendelian" or "blend"
	Cost              int     `yaml:"cost"`
	StabilityDecayMin int     `yaml:"stability_decay_min"` // per-cross decay, lower bound
	StabilityDecayMax int     `yaml:"stability_decay_max"` // per-cross decay, upper bound
	StabilityFloor    int     `yaml:"stability_floor"`
	BlendNoiseBase    float64 `yaml:"blend_noise_base"`  // blend-mode noise range at stability 0
	BlendNoiseSlope   float64 `yaml:"blend_noise_slope"` // range shrink per stability point
	QuirkBaseChance   float64 `yaml:"quirk_base_chance"` // per-quirk pass-down base
	QuirkNegativeMult float64 `yaml:"quirk_negative_mult"`
	NameDistance      int     `yaml:"name_distance"` // min edit distance between strain names
}

// GrowthConfig holds growth engine parameters.
type GrowthConfig struct {
	BaseCost        int     `yaml:"base_cost"`
	PerDayRate      int     `yaml:"per_day_rate"` // cost per missing growth-speed point
	YieldMultiplier float64 `yaml:"yield_multiplier"`
	VarianceMin     float64 `yaml:"variance_min"`
	VarianceMax     float64 `yaml:"variance_max"`
	UpgradeYield    float64 `yaml:"upgrade_yield"` // per yield upgrade, e.g. 1.2
	RiskHardy       float64 `yaml:"risk_hardy"`
	RiskSensitive   float64 `yaml:"risk_sensitive"`
	RiskMitigation  float64 `yaml:"risk_mitigation"` // multiplier with pest control
	LossFraction    float64 `yaml:"loss_fraction"`   // yield lost on a risk trigger
	RevealBase      float64 `yaml:"reveal_base"`     // quirk reveal chance floor
	RevealPerGrow   float64 `yaml:"reveal_per_grow"` // added per previous grow
	RevealHardy     float64 `yaml:"reveal_hardy"`    // added for hardy strains
	RevealCap       float64 `yaml:"reveal_cap"`
	StabilizeMin    int     `yaml:"stabilize_min"` // stability gain per grow, lower bound
	StabilizeMax    int     `yaml:"stabilize_max"` // stability gain per grow, upper bound
}

// CuringConfig holds curing pipeline parameters.
type CuringConfig struct {
	CureTicks     int     `yaml:"cure_ticks"`      // seasons for a standard cure
	DeepTicks     int     `yaml:"deep_ticks"`      // seasons for a deep cure
	DeepSpoilRate float64 `yaml:"deep_spoil_rate"` // chance a deep cure is destroyed
}

// MarketConfig holds market engine parameters.
type MarketConfig struct {
	Seed             int64   `yaml:"seed"` // base seed for per-season derivation
	BasePriceMin     float64 `yaml:"base_price_min"`
	BasePriceMax     float64 `yaml:"base_price_max"`
	ReferencePotency float64 `yaml:"reference_potency"`
	TrendBonus       float64 `yaml:"trend_bonus"`  // aroma matches the trending terpene
	PurityBonus      float64 `yaml:"purity_bonus"` // homozygous aroma premium
	FreshMult        float64 `yaml:"fresh_mult"`
	StandardMult     float64 `yaml:"standard_mult"`
	ArtisanalMult    float64 `yaml:"artisanal_mult"`
	BrandingBonus    float64 `yaml:"branding_bonus"` // flat percentage with branding
}

// FacilityConfig holds grow-room parameters.
type FacilityConfig struct {
	Rooms      int                        `yaml:"rooms"`
	Substrates map[string]SubstrateConfig `yaml:"substrates"`
}

// SubstrateConfig modifies a room's cycle economics.
type SubstrateConfig struct {
	YieldMult float64 `yaml:"yield_mult"`
	CostDelta int     `yaml:"cost_delta"`
}

// UpgradeConfig is one purchasable upgrade in the shop catalog.
type UpgradeConfig struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Cost int    `yaml:"cost"`
	Desc string `yaml:"desc"`
}

// FounderConfig seeds one starting strain.
type FounderConfig struct {
	Name      string              `yaml:"name"`
	Genetics  map[string][]string `yaml:"genetics"` // locus key -> 2 allele symbols
	Quirks    []string            `yaml:"quirks"`
	Stability int                 `yaml:"stability"`
}

// TelemetryConfig holds ledger output parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty = disabled
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	UpgradeIndex map[string]UpgradeConfig // key -> catalog row
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.UpgradeIndex = make(map[string]UpgradeConfig, len(c.Upgrades))
	for _, u := range c.Upgrades {
		c.Derived.UpgradeIndex[u.Key] = u
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
