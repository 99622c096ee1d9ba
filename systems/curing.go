package systems

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/config"
)

// CureEvent reports one batch resolution during a season tick.
type CureEvent struct {
	BatchID uint32
	Strain  string
	Status  components.BatchStatus // BatchFinished or BatchDestroyed
	Amount  int
	Grade   components.Grade // grade credited on a finish
}

// String renders the event for logs.
func (e CureEvent) String() string {
	if e.Status == components.BatchDestroyed {
		return fmt.Sprintf("batch %d (%s) spoiled, %dg forfeited", e.BatchID, e.Strain, e.Amount)
	}
	return fmt.Sprintf("batch %d (%s) finished as %s, %dg", e.BatchID, e.Strain, e.Grade, e.Amount)
}

// CuringSystem advances harvested batches through their aging stages once
// per season. Fresh batches are untouched; they either get assigned to a
// cure or are sold directly by the session.
type CuringSystem struct {
	world    *ecs.World
	batches  *ecs.Filter1[components.Batch]
	batchMap *ecs.Map1[components.Batch]
	strains  *ecs.Filter1[components.Strain]
	cfg      *config.Config
	rng      *rand.Rand
}

// NewCuringSystem creates a new curing system.
func NewCuringSystem(w *ecs.World, cfg *config.Config, rng *rand.Rand) *CuringSystem {
	return &CuringSystem{
		world:    w,
		batches:  ecs.NewFilter1[components.Batch](w),
		batchMap: ecs.NewMap1[components.Batch](w),
		strains:  ecs.NewFilter1[components.Strain](w),
		cfg:      cfg,
		rng:      rng,
	}
}

// StartCure moves a fresh batch into a curing stage. Deep cures take longer
// and can spoil, but finish at the artisanal grade.
func (s *CuringSystem) StartCure(e ecs.Entity, deep bool) error {
	batch := s.batchMap.Get(e)
	if batch.Status != components.BatchFresh {
		return fmt.Errorf("batch %d is %s, not fresh: %w", batch.ID, batch.Status, ErrInvalidSelection)
	}
	if deep {
		batch.Status = components.BatchDeepCuring
		batch.Remaining = s.cfg.Curing.DeepTicks
	} else {
		batch.Status = components.BatchCuring
		batch.Remaining = s.cfg.Curing.CureTicks
	}
	return nil
}

// resolution is a batch that reached the end of its curing stage.
type resolution struct {
	entity ecs.Entity
	batch  components.Batch
	deep   bool
	spoil  bool
}

// Advance ticks every curing batch by one season and resolves the ones
// that reach zero. Terminal batches are credited (or forfeited) and removed
// from the world within this same call; no terminal-status batch survives
// to the next read.
func (s *CuringSystem) Advance() []CureEvent {
	// First pass: decrement counters and collect resolutions. Structural
	// changes must wait until the query is consumed.
	var resolved []resolution

	query := s.batches.Query()
	for query.Next() {
		batch := query.Get()
		if batch.Status != components.BatchCuring && batch.Status != components.BatchDeepCuring {
			continue
		}

		batch.Remaining--
		if batch.Remaining > 0 {
			continue
		}

		r := resolution{entity: query.Entity()}
		if batch.Status == components.BatchDeepCuring {
			r.deep = true
			// Deep curing always finishes; it just sometimes finishes badly.
			r.spoil = s.rng.Float64() < s.cfg.Curing.DeepSpoilRate
		}
		if r.spoil {
			batch.Status = components.BatchDestroyed
		} else {
			batch.Status = components.BatchFinished
		}
		r.batch = *batch
		resolved = append(resolved, r)
	}

	// Second pass: credit inventories and purge terminal batches.
	events := make([]CureEvent, 0, len(resolved))
	for _, r := range resolved {
		ev := CureEvent{
			BatchID: r.batch.ID,
			Strain:  r.batch.StrainName,
			Status:  r.batch.Status,
			Amount:  r.batch.Amount,
		}

		if !r.spoil {
			if strain := s.findStrain(r.batch.StrainID); strain != nil {
				// Deep cures finish at the artisanal grade.
				if r.deep {
					strain.OnHandArtisanal += r.batch.Amount
					ev.Grade = components.GradeArtisanal
				} else {
					strain.OnHandStandard += r.batch.Amount
					ev.Grade = components.GradeStandard
				}
			}
		}

		s.world.RemoveEntity(r.entity)
		events = append(events, ev)
	}

	return events
}

// findStrain locates a strain by ID. Linear scan; strain counts are small.
func (s *CuringSystem) findStrain(id uint32) *components.Strain {
	var found *components.Strain
	query := s.strains.Query()
	for query.Next() {
		strain := query.Get()
		if strain.ID == id {
			found = strain
		}
	}
	return found
}
