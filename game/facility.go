package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/systems"
)

// RoomResult reports one room's outcome in a facility cycle.
type RoomResult struct {
	RoomID  uint32
	Strain  string
	BatchID uint32
	Result  systems.CycleResult
}

// FacilityReport is the outcome of a full facility run.
type FacilityReport struct {
	TotalCost int
	Rooms     []RoomResult
}

// AssignRoom puts a strain into an empty room.
func (s *Session) AssignRoom(room, strain ecs.Entity) error {
	r := s.roomMapper.Get(room)
	if r.Occupied {
		return fmt.Errorf("room %d is already assigned: %w", r.ID, ErrInvalidSelection)
	}
	r.Assign(s.strainMapper.Get(strain).ID)
	return nil
}

// ConfigureRoom sets a room's cultivation configuration. The substrate must
// exist in the facility catalog.
func (s *Session) ConfigureRoom(room ecs.Entity, substrate, nutrients string) error {
	if _, ok := s.cfg.Facility.Substrates[substrate]; !ok {
		return fmt.Errorf("unknown substrate %q: %w", substrate, ErrInvalidSelection)
	}
	r := s.roomMapper.Get(room)
	r.Substrate = substrate
	r.Nutrients = nutrients
	return nil
}

// RunGrowthCycle grows a single strain outside the room system, producing a
// fresh batch on success. Funds are deducted here, not in the engine.
func (s *Session) RunGrowthCycle(strain ecs.Entity) (systems.CycleResult, error) {
	if s.gameOver {
		return systems.CycleResult{}, fmt.Errorf("session is over: %w", ErrInvalidSelection)
	}

	res, err := s.growth.RunCycle(strain, "", s.funds, s.upgrades)
	if err != nil {
		return systems.CycleResult{}, err
	}

	s.funds -= res.Cost
	batchID := s.createBatch(s.strainMapper.Get(strain), res.Yield)
	s.logCycle(s.strainMapper.Get(strain).Name, batchID, res)
	return res, nil
}

// RunFacilityCycle runs every occupied room through one cultivation cycle.
// The run is atomic: if the aggregate cost exceeds funds, nothing is
// mutated. On success all rooms are cleared and replaced by fresh batches.
func (s *Session) RunFacilityCycle() (FacilityReport, error) {
	if s.gameOver {
		return FacilityReport{}, fmt.Errorf("session is over: %w", ErrInvalidSelection)
	}

	// Collect assignments first; batch creation below is a structural
	// change and must not run inside the query.
	type assignment struct {
		room      ecs.Entity
		roomID    uint32
		strain    ecs.Entity
		substrate string
	}
	var work []assignment

	query := s.roomFilter.Query()
	for query.Next() {
		room := query.Get()
		if !room.Occupied {
			continue
		}
		strain, ok := s.strainByID[room.StrainID]
		if !ok {
			continue
		}
		work = append(work, assignment{
			room:      query.Entity(),
			roomID:    room.ID,
			strain:    strain,
			substrate: room.Substrate,
		})
	}

	// Aggregate funds check before any mutation.
	total := 0
	for _, a := range work {
		total += s.growth.CycleCost(s.strainMapper.Get(a.strain), a.substrate)
	}
	if total > s.funds {
		return FacilityReport{}, fmt.Errorf("facility cycle costs %d with %d available: %w",
			total, s.funds, ErrInsufficientFunds)
	}

	report := FacilityReport{TotalCost: total}
	for _, a := range work {
		res, err := s.growth.RunCycle(a.strain, a.substrate, s.funds, s.upgrades)
		if err != nil {
			// Unreachable after the aggregate check; surface it anyway.
			return FacilityReport{}, err
		}

		strain := s.strainMapper.Get(a.strain)
		batchID := s.createBatch(strain, res.Yield)
		s.roomMapper.Get(a.room).Clear()
		s.logCycle(strain.Name, batchID, res)

		report.Rooms = append(report.Rooms, RoomResult{
			RoomID:  a.roomID,
			Strain:  strain.Name,
			BatchID: batchID,
			Result:  res,
		})
	}
	s.funds -= total

	return report, nil
}

// createBatch converts a harvest into a fresh batch entity.
func (s *Session) createBatch(strain *components.Strain, amount int) uint32 {
	s.nextBatchID++
	batch := components.Batch{
		ID:         s.nextBatchID,
		StrainID:   strain.ID,
		StrainName: strain.Name,
		Amount:     amount,
		Season:     s.season,
		Status:     components.BatchFresh,
	}
	s.batchMapper.NewEntity(&batch)
	return batch.ID
}

func (s *Session) logCycle(strain string, batchID uint32, res systems.CycleResult) {
	Logf("[HARVEST] %s: %dg (cost %d) -> batch %d", strain, res.Yield, res.Cost, batchID)
	for _, ev := range res.Events {
		Logf("[HARVEST]   %s", ev)
	}
}
