package components

// Upgrade is a purchasable facility unlock that tweaks engine coefficients.
type Upgrade string

const (
	// UpgradeHydroponics boosts cycle yield.
	UpgradeHydroponics Upgrade = "hydroponics"
	// UpgradeLEDLights boosts cycle yield (stacks with hydroponics).
	UpgradeLEDLights Upgrade = "led_lights"
	// UpgradePestControl halves crop-loss risk.
	UpgradePestControl Upgrade = "pest_control"
	// UpgradeSequencer reveals a child's full genotype at breeding time.
	UpgradeSequencer Upgrade = "sequencer"
	// UpgradeBranding adds a flat percentage to every sale.
	UpgradeBranding Upgrade = "branding"
)

// UpgradeSet is the session's unlocked upgrade collection.
type UpgradeSet map[Upgrade]bool

// Has reports whether the upgrade is unlocked. Safe on a nil set.
func (s UpgradeSet) Has(u Upgrade) bool {
	return s[u]
}

// Clone returns an independent copy.
func (s UpgradeSet) Clone() UpgradeSet {
	out := make(UpgradeSet, len(s))
	for u, ok := range s {
		if ok {
			out[u] = true
		}
	}
	return out
}

// Names returns unlocked upgrade names in stable catalog order.
func (s UpgradeSet) Names() []string {
	var names []string
	for _, u := range []Upgrade{UpgradeHydroponics, UpgradeLEDLights, UpgradePestControl, UpgradeSequencer, UpgradeBranding} {
		if s.Has(u) {
			names = append(names, string(u))
		}
	}
	return names
}
