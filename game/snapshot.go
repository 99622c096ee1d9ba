package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/config"
	"github.com/pthm-cable/cultivar/genetics"
	"github.com/pthm-cable/cultivar/telemetry"
)

// ErrCorruptSave re-exports the load failure sentinel.
var ErrCorruptSave = telemetry.ErrCorruptSave

// Snapshot captures the full session state for the save/load collaborator.
func (s *Session) Snapshot() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		Funds:      s.funds,
		Season:     s.season,
		Overhead:   s.overhead,
		BreedsLeft: s.breedsLeft,
		SellsLeft:  s.sellsLeft,
		Upgrades:   s.upgrades.Names(),
	}

	s.EachStrain(func(_ ecs.Entity, strain *components.Strain) {
		state := telemetry.StrainState{
			ID:              strain.ID,
			Name:            strain.Name,
			Generation:      strain.Generation,
			ParentA:         strain.ParentA,
			ParentB:         strain.ParentB,
			Genetics:        make(map[string][]string, len(strain.Genome)),
			Potency:         strain.Potency,
			YieldAmount:     strain.YieldAmount,
			GrowthSpeed:     strain.GrowthSpeed,
			Stability:       strain.Stability,
			Proven:          strain.Proven,
			TimesGrown:      strain.TimesGrown,
			OnHandStandard:  strain.OnHandStandard,
			OnHandArtisanal: strain.OnHandArtisanal,
		}
		for _, gene := range genetics.Genes() {
			pair := strain.Genome[gene]
			state.Genetics[gene.String()] = []string{string(pair[0]), string(pair[1])}
			if strain.KnownGenes[gene] {
				state.KnownGenes = append(state.KnownGenes, gene.String())
			}
		}
		for _, q := range strain.Quirks {
			state.Quirks = append(state.Quirks, q.String())
			if strain.Known[q] {
				state.Known = append(state.Known, q.String())
			}
		}
		snap.Strains = append(snap.Strains, state)
	})

	s.EachBatch(func(_ ecs.Entity, batch *components.Batch) {
		snap.Batches = append(snap.Batches, telemetry.BatchState{
			ID:        batch.ID,
			StrainID:  batch.StrainID,
			Amount:    batch.Amount,
			Season:    batch.Season,
			Status:    uint8(batch.Status),
			Remaining: batch.Remaining,
		})
	})

	s.EachRoom(func(_ ecs.Entity, room *components.Room) {
		snap.Rooms = append(snap.Rooms, telemetry.RoomState{
			ID:        room.ID,
			StrainID:  room.StrainID,
			Occupied:  room.Occupied,
			Substrate: room.Substrate,
			Nutrients: room.Nutrients,
		})
	})

	return snap
}

// RestoreSession rebuilds a session from a snapshot. The snapshot is fully
// validated before any state is constructed; on error the caller's prior
// session is left untouched.
func RestoreSession(cfg *config.Config, snap *telemetry.Snapshot, seed int64) (*Session, error) {
	if err := validateSnapshot(snap); err != nil {
		return nil, err
	}

	s := newEmptySession(cfg, seed)
	s.funds = snap.Funds
	s.season = snap.Season
	s.overhead = snap.Overhead
	s.breedsLeft = snap.BreedsLeft
	s.sellsLeft = snap.SellsLeft
	for _, u := range snap.Upgrades {
		s.upgrades[components.Upgrade(u)] = true
	}

	for _, st := range snap.Strains {
		genome, err := parseGenetics(st.Genetics)
		if err != nil {
			return nil, fmt.Errorf("strain %q: %v: %w", st.Name, err, ErrCorruptSave)
		}

		strain := components.Strain{
			ID:              st.ID,
			Name:            st.Name,
			Generation:      st.Generation,
			ParentA:         st.ParentA,
			ParentB:         st.ParentB,
			Genome:          genome,
			Potency:         st.Potency,
			YieldAmount:     st.YieldAmount,
			GrowthSpeed:     st.GrowthSpeed,
			Stability:       st.Stability,
			Proven:          st.Proven,
			TimesGrown:      st.TimesGrown,
			OnHandStandard:  st.OnHandStandard,
			OnHandArtisanal: st.OnHandArtisanal,
			KnownGenes:      make(map[genetics.Gene]bool),
			Known:           make(map[genetics.Quirk]bool),
		}
		for _, key := range st.KnownGenes {
			if gene, ok := genetics.GeneByKey(key); ok {
				strain.KnownGenes[gene] = true
			}
		}
		for _, name := range st.Quirks {
			q, ok := quirkByName(name)
			if !ok {
				return nil, fmt.Errorf("strain %q: unknown quirk %q: %w", st.Name, name, ErrCorruptSave)
			}
			strain.Quirks = append(strain.Quirks, q)
		}
		for _, name := range st.Known {
			if q, ok := quirkByName(name); ok {
				strain.Known[q] = true
			}
		}

		e := s.strainMapper.NewEntity(&strain)
		s.strainByID[strain.ID] = e
		if strain.ID > s.nextStrainID {
			s.nextStrainID = strain.ID
		}
	}

	for _, b := range snap.Batches {
		s.batchMapper.NewEntity(&components.Batch{
			ID:         b.ID,
			StrainID:   b.StrainID,
			StrainName: s.strainMapper.Get(s.strainByID[b.StrainID]).Name,
			Amount:     b.Amount,
			Season:     b.Season,
			Status:     components.BatchStatus(b.Status),
			Remaining:  b.Remaining,
		})
		if b.ID > s.nextBatchID {
			s.nextBatchID = b.ID
		}
	}

	for _, r := range snap.Rooms {
		s.roomMapper.NewEntity(&components.Room{
			ID:        r.ID,
			StrainID:  r.StrainID,
			Occupied:  r.Occupied,
			Substrate: r.Substrate,
			Nutrients: r.Nutrients,
		})
		if r.ID > s.nextRoomID {
			s.nextRoomID = r.ID
		}
	}

	return s, nil
}

// validateSnapshot rejects structurally invalid persisted state before any
// session construction happens.
func validateSnapshot(snap *telemetry.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot: %w", ErrCorruptSave)
	}
	if snap.Version != telemetry.SnapshotVersion {
		return fmt.Errorf("snapshot version %d: %w", snap.Version, ErrCorruptSave)
	}
	if snap.Season < 1 {
		return fmt.Errorf("season %d: %w", snap.Season, ErrCorruptSave)
	}

	strainIDs := make(map[uint32]bool, len(snap.Strains))
	for _, st := range snap.Strains {
		if st.ID == 0 {
			return fmt.Errorf("strain %q has zero id: %w", st.Name, ErrCorruptSave)
		}
		if strainIDs[st.ID] {
			return fmt.Errorf("duplicate strain id %d: %w", st.ID, ErrCorruptSave)
		}
		strainIDs[st.ID] = true
		for key, pair := range st.Genetics {
			if len(pair) != 2 {
				return fmt.Errorf("strain %q locus %q: %d alleles: %w", st.Name, key, len(pair), ErrCorruptSave)
			}
		}
	}

	for _, b := range snap.Batches {
		status := components.BatchStatus(b.Status)
		if status.Terminal() {
			// Terminal batches are purged in the step that produced them;
			// a persisted one means the save is inconsistent.
			return fmt.Errorf("batch %d persisted as %s: %w", b.ID, status, ErrCorruptSave)
		}
		if status != components.BatchFresh && status != components.BatchCuring && status != components.BatchDeepCuring {
			return fmt.Errorf("batch %d status %d: %w", b.ID, b.Status, ErrCorruptSave)
		}
		if status != components.BatchFresh && b.Remaining < 1 {
			return fmt.Errorf("batch %d curing with remaining %d: %w", b.ID, b.Remaining, ErrCorruptSave)
		}
		if !strainIDs[b.StrainID] {
			return fmt.Errorf("batch %d references unknown strain %d: %w", b.ID, b.StrainID, ErrCorruptSave)
		}
	}

	for _, r := range snap.Rooms {
		if r.Occupied && !strainIDs[r.StrainID] {
			return fmt.Errorf("room %d references unknown strain %d: %w", r.ID, r.StrainID, ErrCorruptSave)
		}
	}

	return nil
}
