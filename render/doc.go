// Package render turns a finished chart into terminal, JSON, TOML, or
// YAML output. The terminal form draws the traditional 4×4 plate; the
// marshaled forms are stable documents for files and pipes.
package render

import (
	"fmt"

	"github.com/mingli/ziwei/chart"
	"github.com/mingli/ziwei/ganzhi"
)

// Document is the flat export view of a chart used for the TOML and YAML
// formats. Every field is a plain string, number, or bool so the output
// reads the same in either encoding.
type Document struct {
	ChartID    string `json:"chart_id" toml:"chart_id" yaml:"chart_id"`
	Label      string `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	Born       string `json:"born" toml:"born" yaml:"born"`
	Lunar      string `json:"lunar" toml:"lunar" yaml:"lunar"`
	YearPillar string `json:"year_pillar" toml:"year_pillar" yaml:"year_pillar"`
	Polarity   string `json:"polarity" toml:"polarity" yaml:"polarity"`
	Bureau     string `json:"bureau" toml:"bureau" yaml:"bureau"`
	Headline   string `json:"headline,omitempty" toml:"headline,omitempty" yaml:"headline,omitempty"`
	AsOf       int    `json:"as_of" toml:"as_of" yaml:"as_of"`

	Transforms map[string]string `json:"transforms" toml:"transforms" yaml:"transforms"`

	Palaces []PalaceDoc `json:"palaces" toml:"palaces" yaml:"palaces"`
}

// PalaceDoc is one palace in ring order. Stars carry the compact
// traditional notation: glyph, brightness grade, then 化X tags.
type PalaceDoc struct {
	Name     string   `json:"name" toml:"name" yaml:"name"`
	Pillar   string   `json:"pillar" toml:"pillar" yaml:"pillar"`
	Body     bool     `json:"body,omitempty" toml:"body,omitempty" yaml:"body,omitempty"`
	Stars    []string `json:"stars" toml:"stars" yaml:"stars"`
	Limit    string   `json:"limit" toml:"limit" yaml:"limit"`
	FlowYear int      `json:"flow_year" toml:"flow_year" yaml:"flow_year"`
	FlowStem string   `json:"flow_stem" toml:"flow_stem" yaml:"flow_stem"`

	SelfInfluences     []string `json:"self_influences,omitempty" toml:"self_influences,omitempty" yaml:"self_influences,omitempty"`
	OppositeInfluences []string `json:"opposite_influences,omitempty" toml:"opposite_influences,omitempty" yaml:"opposite_influences,omitempty"`
}

// NewDocument flattens a result into its export view.
func NewDocument(r *chart.Result) *Document {
	d := &Document{
		ChartID:    r.ChartID,
		Label:      r.Input.Label,
		Born:       bornLine(r),
		Lunar:      r.Lunar.String(),
		YearPillar: r.YearStem.Glyph() + r.YearBranch.Glyph(),
		Polarity:   r.Polarity.String() + r.Input.Gender.Glyph(),
		Bureau:     r.Bureau.Glyph(),
		Headline:   r.Headline,
		AsOf:       r.Input.AsOfYear,
		Transforms: make(map[string]string, chart.TransformCount),
		Palaces:    make([]PalaceDoc, 0, chart.PalaceCount),
	}

	for pos := 1; pos <= chart.PalaceCount; pos++ {
		p := r.PalaceAt(pos)
		self := selfLookup(p)

		pd := PalaceDoc{
			Name:     p.Name.Glyph(),
			Pillar:   p.Stem.Glyph() + p.Branch.Glyph(),
			Body:     p.Body,
			Stars:    make([]string, 0, len(p.Majors)),
			Limit:    fmt.Sprintf("%d-%d", p.Limit.StartAge, p.Limit.EndAge),
			FlowYear: p.Flow.Year,
			FlowStem: p.Flow.Stem.Glyph(),
		}
		for _, ps := range p.AllStars() {
			pd.Stars = append(pd.Stars, starToken(ps, self))
			for _, tr := range ps.Transforms {
				d.Transforms[tr.Glyph()] = ps.Star.Glyph()
			}
		}
		for _, inf := range p.SelfInfluences {
			pd.SelfInfluences = append(pd.SelfInfluences, influenceToken(inf))
		}
		for _, inf := range p.OppositeInfluences {
			pd.OppositeInfluences = append(pd.OppositeInfluences, influenceToken(inf))
		}
		d.Palaces = append(d.Palaces, pd)
	}
	return d
}

func bornLine(r *chart.Result) string {
	in := r.Input
	return fmt.Sprintf("%04d-%02d-%02d %s时",
		in.Year, in.Month, in.Day, ganzhi.HourBranch(in.Hour).Glyph())
}

// starToken renders one placed star in compact notation, e.g. 太阳陷化禄
// or 贪狼旺自化禄.
func starToken(ps chart.PlacedStar, self map[chart.Star]chart.Transform) string {
	token := ps.Star.Glyph() + string(ps.Brightness)
	for _, tr := range ps.Transforms {
		token += "化" + tr.Glyph()
	}
	if kind, ok := self[ps.Star]; ok {
		token += "自化" + kind.Glyph()
	}
	return token
}

func influenceToken(inf chart.Influence) string {
	return inf.Kind.Glyph() + "→" + inf.Star.Glyph()
}

func selfLookup(p *chart.Palace) map[chart.Star]chart.Transform {
	if len(p.SelfInfluences) == 0 {
		return nil
	}
	m := make(map[chart.Star]chart.Transform, len(p.SelfInfluences))
	for _, inf := range p.SelfInfluences {
		m[inf.Star] = inf.Kind
	}
	return m
}
