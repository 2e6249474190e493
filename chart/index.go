package chart

import (
	"github.com/mingli/ziwei/errors"
	"github.com/mingli/ziwei/ganzhi"
)

// StarLocation is where a star ended up on the ring.
type StarLocation struct {
	Position int           `json:"position"`
	Branch   ganzhi.Branch `json:"branch"`
	Palace   PalaceName    `json:"palace"`
	Category Category      `json:"-"`
}

// StarIndex maps every placed star to its location. Built once after
// placement finishes; reads never touch the palace lists again.
type StarIndex map[Star]StarLocation

// Locate returns a star's location. A miss on a valid star means the
// index was built before placement finished, which the build guards
// against, so callers treat it as a lookup failure.
func (ix StarIndex) Locate(s Star) (StarLocation, error) {
	loc, ok := ix[s]
	if !ok {
		return StarLocation{}, errors.NewLookupMissf("star %s not in index", s)
	}
	return loc, nil
}

// buildStarIndex walks the ring and records every placed star. The
// catalog is closed and placement is total, so a duplicate or an absent
// star is a derivation bug, not bad input.
func buildStarIndex(ws *Workspace) (StarIndex, error) {
	idx := make(StarIndex, len(starRegistry))
	for i := range ws.Palaces {
		p := &ws.Palaces[i]
		for _, ps := range p.AllStars() {
			if prev, dup := idx[ps.Star]; dup {
				return nil, errors.NewInvariantf("star %s placed at both %s and %s",
					ps.Star, prev.Branch, p.Branch)
			}
			idx[ps.Star] = StarLocation{
				Position: p.Position,
				Branch:   p.Branch,
				Palace:   p.Name,
				Category: ps.Star.Category(),
			}
		}
	}
	for _, e := range starRegistry {
		if _, ok := idx[e.star]; !ok {
			return nil, errors.NewInvariantf("star %s never placed", e.star)
		}
	}
	return idx, nil
}
