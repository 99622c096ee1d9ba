package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// ErrCorruptSave flags malformed persisted state. Loads abort without
// touching in-memory session state.
var ErrCorruptSave = errors.New("corrupt save data")

// Snapshot holds the complete session state for save/load. Allele pairs
// serialize as 2-element sequences keyed by locus name.
type Snapshot struct {
	Version int `json:"version"`

	Funds      int      `json:"funds"`
	Season     int      `json:"season"`
	Overhead   int      `json:"overhead"`
	BreedsLeft int      `json:"breeds_left"`
	SellsLeft  int      `json:"sells_left"`
	Upgrades   []string `json:"upgrades,omitempty"`

	Strains []StrainState `json:"strains"`
	Batches []BatchState  `json:"batches"`
	Rooms   []RoomState   `json:"rooms"`
}

// StrainState holds one strain's persisted state.
type StrainState struct {
	ID         uint32 `json:"id"`
	Name       string `json:"name"`
	Generation int    `json:"generation"`
	ParentA    uint32 `json:"parent_a,omitempty"`
	ParentB    uint32 `json:"parent_b,omitempty"`

	Genetics map[string][]string `json:"genetics"`

	Potency     int  `json:"potency"`
	YieldAmount int  `json:"yield"`
	GrowthSpeed int  `json:"speed"`
	Stability   int  `json:"stability"`
	Proven      bool `json:"proven"`
	TimesGrown  int  `json:"times_grown"`

	KnownGenes []string `json:"known_genes,omitempty"`
	Quirks     []string `json:"quirks,omitempty"`
	Known      []string `json:"known_quirks,omitempty"`

	OnHandStandard  int `json:"on_hand_standard"`
	OnHandArtisanal int `json:"on_hand_artisanal"`
}

// BatchState holds one batch's persisted state.
type BatchState struct {
	ID        uint32 `json:"id"`
	StrainID  uint32 `json:"strain_id"`
	Amount    int    `json:"amount"`
	Season    int    `json:"season"`
	Status    uint8  `json:"status"`
	Remaining int    `json:"remaining"`
}

// RoomState holds one room's persisted state.
type RoomState struct {
	ID        uint32 `json:"id"`
	StrainID  uint32 `json:"strain_id,omitempty"`
	Occupied  bool   `json:"occupied"`
	Substrate string `json:"substrate,omitempty"`
	Nutrients string `json:"nutrients,omitempty"`
}

// SaveSnapshot writes a snapshot to a file.
func SaveSnapshot(snap *Snapshot, path string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot from a file. Structural problems surface
// as ErrCorruptSave.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w: %v", ErrCorruptSave, err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d: %w", snap.Version, SnapshotVersion, ErrCorruptSave)
	}
	return &snap, nil
}
