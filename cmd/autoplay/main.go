// Package main runs a headless scripted playthrough of the cultivation
// core: every season it fills the rooms, runs the facility, cures or sells
// the output, and advances. Useful for sanity-checking the tuning in
// config/defaults.yaml and producing ledger CSVs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cultivar/components"
	"github.com/pthm-cable/cultivar/config"
	"github.com/pthm-cable/cultivar/game"
	"github.com/pthm-cable/cultivar/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	seasons := flag.Int("seasons", 20, "Number of seasons to simulate")
	seed := flag.Int64("seed", 42, "Gameplay RNG seed")
	outputDir := flag.String("output", "", "Output directory for ledger CSV (empty = stdout only)")
	quiet := flag.Bool("quiet", false, "Suppress per-event logging")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	if *quiet {
		devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err == nil {
			defer devNull.Close()
			game.SetLogWriter(devNull)
		}
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to create output manager: %v", err)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		log.Fatalf("failed to write config: %v", err)
	}

	session, err := game.NewSession(cfg, *seed)
	if err != nil {
		log.Fatalf("failed to create session: %v", err)
	}

	for i := 0; i < *seasons; i++ {
		tally := playSeason(session)

		report := session.AdvanceSeason()
		rec := seasonRecord(session, report, tally)
		if err := out.WriteSeason(rec); err != nil {
			log.Fatalf("failed to write ledger: %v", err)
		}

		if report.GameOver {
			fmt.Printf("bankrupt in season %d\n", report.Season)
			break
		}
	}

	summarize(session)
}

// seasonTally accumulates the season's throughput for the ledger.
type seasonTally struct {
	harvested int
	sold      int
	revenue   int
}

// playSeason runs one season of the scripted policy: assign the best
// yielders to empty rooms, run the facility, deep-cure large batches, sell
// the rest fresh, then move finished inventory.
func playSeason(s *game.Session) seasonTally {
	var tally seasonTally

	// Spend the season's breeding action on the two most potent strains.
	if s.BreedsLeft() > 0 {
		if a, b, ok := topPotencyPair(s); ok {
			name := crossNames[(s.Season()-1)%len(crossNames)]
			if _, err := s.Breed(a, b, name); err != nil {
				game.Logf("[AUTO] breed skipped: %v", err)
			}
		}
	}
	// Fill empty rooms with the highest-yield proven strains.
	var empty []ecs.Entity
	s.EachRoom(func(e ecs.Entity, room *components.Room) {
		if !room.Occupied {
			empty = append(empty, e)
		}
	})
	for _, room := range empty {
		if best, ok := bestYielder(s); ok {
			if err := s.AssignRoom(room, best); err != nil {
				break
			}
		}
	}

	if report, err := s.RunFacilityCycle(); err != nil {
		game.Logf("[AUTO] facility skipped: %v", err)
	} else {
		for _, room := range report.Rooms {
			tally.harvested += room.Result.Yield
		}
	}

	// Large batches go to a deep cure, mid-size to a standard cure, small
	// ones are flipped fresh for quick cash.
	var fresh []ecs.Entity
	s.EachBatch(func(e ecs.Entity, b *components.Batch) {
		if b.Status == components.BatchFresh {
			fresh = append(fresh, e)
		}
	})
	for _, e := range fresh {
		b := s.Batch(e)
		switch {
		case b.Amount >= 100:
			_ = s.CureBatch(e, true)
		case b.Amount >= 50:
			_ = s.CureBatch(e, false)
		default:
			amount := b.Amount
			if proceeds, err := s.SellFreshBatch(e); err != nil {
				_ = s.CureBatch(e, false)
			} else {
				tally.sold += amount
				tally.revenue += proceeds
			}
		}
	}

	// Sell finished inventory while sale actions remain.
	s.EachStrain(func(e ecs.Entity, strain *components.Strain) {
		if s.SellsLeft() == 0 {
			return
		}
		if amount := strain.OnHandArtisanal; amount > 0 {
			if proceeds, err := s.SellInventory(e, components.GradeArtisanal, amount); err == nil {
				tally.sold += amount
				tally.revenue += proceeds
			}
		}
		if amount := strain.OnHandStandard; s.SellsLeft() > 0 && amount > 0 {
			if proceeds, err := s.SellInventory(e, components.GradeStandard, amount); err == nil {
				tally.sold += amount
				tally.revenue += proceeds
			}
		}
	})

	return tally
}

// crossNames seeds each season's breeding action. The entries are pairwise
// distinct enough to clear the name-similarity check.
var crossNames = []string{
	"Aurora Veil", "Basalt Haze", "Cinder Bloom", "Driftwood", "Ember Crown",
	"Fjord Mist", "Granite Kiss", "Harbor Glow", "Iron Petal", "Juniper Drift",
	"Kelp Shadow", "Lantern Moss", "Mesa Thunder", "Night Orchard", "Opal Thicket",
	"Pale Comet", "Quarry Rose", "River Static", "Saffron Gale", "Tundra Spark",
}

// topPotencyPair picks the two most potent distinct strains as breeding
// parents.
func topPotencyPair(s *game.Session) (ecs.Entity, ecs.Entity, bool) {
	type ranked struct {
		e       ecs.Entity
		potency int
	}
	var first, second ranked
	first.potency, second.potency = -1, -1
	s.EachStrain(func(e ecs.Entity, strain *components.Strain) {
		switch {
		case strain.Potency > first.potency:
			second = first
			first = ranked{e, strain.Potency}
		case strain.Potency > second.potency:
			second = ranked{e, strain.Potency}
		}
	})
	return first.e, second.e, second.potency >= 0
}

// bestYielder picks the strain with the highest yield potential.
func bestYielder(s *game.Session) (ecs.Entity, bool) {
	var best ecs.Entity
	bestYield := -1
	s.EachStrain(func(e ecs.Entity, strain *components.Strain) {
		if strain.YieldAmount > bestYield {
			best = e
			bestYield = strain.YieldAmount
		}
	})
	return best, bestYield >= 0
}

// seasonRecord builds one ledger row from the session after an advance.
func seasonRecord(s *game.Session, report game.SeasonReport, tally seasonTally) telemetry.SeasonRecord {
	var potencies []float64
	s.EachStrain(func(_ ecs.Entity, strain *components.Strain) {
		potencies = append(potencies, float64(strain.Potency))
	})
	dist := telemetry.Distribution(potencies)

	spoiled := 0
	for _, ev := range report.CureEvents {
		if ev.Status == components.BatchDestroyed {
			spoiled += ev.Amount
		}
	}

	return telemetry.SeasonRecord{
		Season:       report.Season,
		Funds:        s.Funds(),
		Overhead:     s.Overhead(),
		Strains:      s.StrainCount(),
		Batches:      s.BatchCount(),
		Harvested:    tally.harvested,
		SoldUnits:    tally.sold,
		Revenue:      tally.revenue,
		SpoiledUnits: spoiled,
		BasePrice:    report.BasePrice,
		Trend:        string(report.Trend),
		PotencyMean:  dist.Mean,
		PotencyP90:   dist.P90,
	}
}

// summarize prints the final session state.
func summarize(s *game.Session) {
	fmt.Printf("seasons: %d  funds: %d  strains: %d  batches: %d\n",
		s.Season(), s.Funds(), s.StrainCount(), s.BatchCount())

	var potencies []float64
	s.EachStrain(func(_ ecs.Entity, strain *components.Strain) {
		potencies = append(potencies, float64(strain.Potency))
	})
	dist := telemetry.Distribution(potencies)
	fmt.Printf("potency: mean %.1f  p50 %.1f  p90 %.1f\n", dist.Mean, dist.P50, dist.P90)
}
