package chart

import (
	"github.com/mingli/ziwei/errors"
	"github.com/mingli/ziwei/ganzhi"
	"github.com/mingli/ziwei/lunar"
)

// Result is a finished chart. It shares no memory with the workspace that
// produced it; renderers and callers may hold it indefinitely.
type Result struct {
	ChartID string `json:"chart_id"`

	Input Input      `json:"input"`
	Lunar lunar.Date `json:"lunar"`

	YearStem   ganzhi.Stem     `json:"year_stem"`
	YearBranch ganzhi.Branch   `json:"year_branch"`
	Polarity   ganzhi.Polarity `json:"polarity"`

	LifePos  int    `json:"life_pos"`
	BodyPos  int    `json:"body_pos"`
	Bureau   Bureau `json:"bureau"`
	ZiweiPos int    `json:"ziwei_pos"`

	// Headline is the life palace's lead primary star glyph, empty when
	// the life palace houses no primary.
	Headline string `json:"headline,omitempty"`

	Palaces [PalaceCount]Palace `json:"palaces"`

	Index StarIndex `json:"index"`

	Trace []TraceEntry `json:"trace,omitempty"`
}

// PalaceAt returns the palace at a ring position, 1..12.
func (r *Result) PalaceAt(position int) *Palace {
	return &r.Palaces[((position-1)%PalaceCount+PalaceCount)%PalaceCount]
}

// PalaceNamed returns the palace carrying a domain name.
func (r *Result) PalaceNamed(name PalaceName) (*Palace, error) {
	for i := range r.Palaces {
		if r.Palaces[i].Name == name {
			return &r.Palaces[i], nil
		}
	}
	return nil, errors.NewInvariantf("no palace named %s on the ring", name)
}

// LifePalace returns the life palace.
func (r *Result) LifePalace() *Palace {
	return r.PalaceAt(r.LifePos)
}

// BodyPalace returns the palace carrying the body anchor.
func (r *Result) BodyPalace() *Palace {
	return r.PalaceAt(r.BodyPos)
}

// freeze copies the finished workspace into a Result. Every slice is
// cloned so later workspace reuse cannot reach published charts.
func freeze(ws *Workspace) (*Result, error) {
	if ws.Index == nil {
		return nil, errors.NewInvariantf("index not built before freeze")
	}
	if ws.LifePos == 0 || ws.BodyPos == 0 {
		return nil, errors.NewInvariantf("palaces not located before freeze")
	}

	r := &Result{
		ChartID:    ws.ChartID,
		Input:      ws.Input,
		Lunar:      ws.Lunar,
		YearStem:   ws.YearStem,
		YearBranch: ws.YearBranch,
		Polarity:   ws.Polarity,
		LifePos:    ws.LifePos,
		BodyPos:    ws.BodyPos,
		Bureau:     ws.Bureau,
		ZiweiPos:   ws.ZiweiPos,
		Index:      make(StarIndex, len(ws.Index)),
	}

	for i := range ws.Palaces {
		r.Palaces[i] = clonePalace(&ws.Palaces[i])
	}
	for s, loc := range ws.Index {
		r.Index[s] = loc
	}
	if ws.Trace != nil {
		r.Trace = make([]TraceEntry, len(ws.Trace))
		copy(r.Trace, ws.Trace)
	}

	life := ws.LifePalace()
	if life.HasMajor() {
		r.Headline = life.Majors[0].Star.Glyph()
	}
	return r, nil
}

func clonePalace(p *Palace) Palace {
	out := *p
	out.Majors = clonePlaced(p.Majors)
	out.Auxiliaries = clonePlaced(p.Auxiliaries)
	out.YearStars = clonePlaced(p.YearStars)
	out.MonthStars = clonePlaced(p.MonthStars)
	out.DayStars = clonePlaced(p.DayStars)
	out.HourStars = clonePlaced(p.HourStars)
	out.SelfInfluences = cloneInfluences(p.SelfInfluences)
	out.OppositeInfluences = cloneInfluences(p.OppositeInfluences)
	return out
}

func clonePlaced(src []PlacedStar) []PlacedStar {
	if src == nil {
		return nil
	}
	out := make([]PlacedStar, len(src))
	copy(out, src)
	for i := range out {
		if out[i].Transforms != nil {
			t := make([]Transform, len(out[i].Transforms))
			copy(t, out[i].Transforms)
			out[i].Transforms = t
		}
	}
	return out
}

func cloneInfluences(src []Influence) []Influence {
	if src == nil {
		return nil
	}
	out := make([]Influence, len(src))
	copy(out, src)
	return out
}
