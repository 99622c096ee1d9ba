package game

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cultivar/components"
)

// Breed crosses two parent strains into a new one. Selection rules (a
// strain cannot be crossed with itself, names must be distinct) and the
// season breeding quota are enforced here, before the engine runs; the
// breeding system itself is total over valid inputs.
func (s *Session) Breed(parentA, parentB ecs.Entity, name string) (ecs.Entity, error) {
	if s.gameOver {
		return ecs.Entity{}, fmt.Errorf("session is over: %w", ErrInvalidSelection)
	}
	if parentA == parentB {
		return ecs.Entity{}, fmt.Errorf("cannot breed a strain with itself: %w", ErrInvalidSelection)
	}
	if s.breedsLeft <= 0 {
		return ecs.Entity{}, fmt.Errorf("no breeding actions left this season: %w", ErrInvalidSelection)
	}
	if err := s.checkName(name); err != nil {
		return ecs.Entity{}, err
	}
	if s.funds < s.cfg.Breeding.Cost {
		return ecs.Entity{}, fmt.Errorf("breeding costs %d with %d available: %w",
			s.cfg.Breeding.Cost, s.funds, ErrInsufficientFunds)
	}

	s.nextStrainID++
	child := s.breeding.Breed(parentA, parentB, s.nextStrainID, name, s.upgrades)
	s.strainByID[s.nextStrainID] = child

	s.funds -= s.cfg.Breeding.Cost
	s.breedsLeft--

	c := s.strainMapper.Get(child)
	Logf("[BREED] %s (gen %d) from %s x %s",
		c.Name, c.Generation, s.strainMapper.Get(parentA).Name, s.strainMapper.Get(parentB).Name)

	return child, nil
}

// checkName rejects empty names and names within edit distance of an
// existing strain, so near-duplicates like "Haze" vs "Haze " never enter
// the catalog.
func (s *Session) checkName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("strain name is empty: %w", ErrInvalidSelection)
	}

	var clash string
	s.EachStrain(func(_ ecs.Entity, strain *components.Strain) {
		dist := levenshtein.ComputeDistance(strings.ToLower(trimmed), strings.ToLower(strain.Name))
		if dist < s.cfg.Breeding.NameDistance {
			clash = strain.Name
		}
	})
	if clash != "" {
		return fmt.Errorf("name %q is too close to existing strain %q: %w", trimmed, clash, ErrInvalidSelection)
	}
	return nil
}
