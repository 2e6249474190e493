package chart

import (
	"github.com/mingli/ziwei/ganzhi"
)

// PalaceName is one of the 12 semantic life-domain names. Names are
// assigned by walking counter-clockwise from the life palace, so the enum
// order is the walk order.
type PalaceName int

const (
	PalaceLife     PalaceName = iota // 命宫
	PalaceSiblings                   // 兄弟
	PalaceSpouse                     // 夫妻
	PalaceChildren                   // 子女
	PalaceWealth                     // 财帛
	PalaceHealth                     // 疾厄
	PalaceTravel                     // 迁移
	PalaceFriends                    // 交友
	PalaceCareer                     // 官禄
	PalaceProperty                   // 田宅
	PalaceFortune                    // 福德
	PalaceParents                    // 父母
)

// PalaceCount is the fixed ring size.
const PalaceCount = 12

var palaceNameGlyphs = [...]string{
	"命宫", "兄弟", "夫妻", "子女", "财帛", "疾厄",
	"迁移", "交友", "官禄", "田宅", "福德", "父母",
}

var glyphToPalaceName map[string]PalaceName

func init() {
	glyphToPalaceName = make(map[string]PalaceName, len(palaceNameGlyphs))
	for i, g := range palaceNameGlyphs {
		glyphToPalaceName[g] = PalaceName(i)
	}
}

// Valid reports whether n is one of the 12 names.
func (n PalaceName) Valid() bool {
	return n >= PalaceLife && n <= PalaceParents
}

// Glyph returns the Chinese name.
func (n PalaceName) Glyph() string {
	if !n.Valid() {
		return "?"
	}
	return palaceNameGlyphs[n]
}

// String implements fmt.Stringer as the glyph.
func (n PalaceName) String() string {
	return n.Glyph()
}

// MarshalJSON encodes a palace name as its glyph.
func (n PalaceName) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.Glyph() + `"`), nil
}

// PalaceNameFromGlyph resolves a palace name glyph to its typed constant.
func PalaceNameFromGlyph(glyph string) (PalaceName, bool) {
	n, ok := glyphToPalaceName[glyph]
	return n, ok
}

// PlacedStar is one star as it sits in a palace: the catalog identity plus
// everything the pipeline attached to it there.
type PlacedStar struct {
	Star       Star        `json:"star"`
	Brightness Brightness  `json:"brightness,omitempty"`
	Transforms []Transform `json:"transforms,omitempty"`

	// SelfInfluence is set when the owning palace's stem targets this
	// star in its own rule set.
	SelfInfluence bool `json:"self_influence,omitempty"`
}

// Influence records one transformation effect a palace receives, either
// from its own stem or from stars sitting in its opposite palace.
type Influence struct {
	Kind Transform `json:"kind"`
	Star Star      `json:"star"`
}

// FlowYear is the annual overlay assigned to a palace: the calendar year
// in the evaluation window whose branch matches the palace branch.
type FlowYear struct {
	Year int         `json:"year"`
	Stem ganzhi.Stem `json:"stem"`
}

// LimitBand is a palace's decade age range, inclusive on both ends.
type LimitBand struct {
	StartAge int `json:"start_age"`
	EndAge   int `json:"end_age"`
}

// Palace is one of the 12 ring positions of the chart workspace. Position
// and Branch are fixed by the ring; everything else is assigned stage by
// stage.
type Palace struct {
	// Position is the fixed ring slot, 1 through 12. Position 1 carries
	// branch 寅 and the ring walks 寅卯辰巳午未申酉戌亥子丑.
	Position int `json:"position"`

	// Branch is the permanent earthly branch of this position.
	Branch ganzhi.Branch `json:"branch"`

	// Stem is assigned by the year-stem rotation.
	Stem ganzhi.Stem `json:"stem"`

	// Name is the semantic life-domain name assigned from the life palace.
	Name PalaceName `json:"name"`

	// Body marks the body palace supplement anchor.
	Body bool `json:"body,omitempty"`

	// Majors holds the anchor-derived primary stars.
	Majors []PlacedStar `json:"majors"`

	// Auxiliaries holds the month/hour auxiliary stars.
	Auxiliaries []PlacedStar `json:"auxiliaries"`

	// Timeframe lists hold the support stars by the birth component that
	// placed them.
	YearStars  []PlacedStar `json:"year_stars,omitempty"`
	MonthStars []PlacedStar `json:"month_stars,omitempty"`
	DayStars   []PlacedStar `json:"day_stars,omitempty"`
	HourStars  []PlacedStar `json:"hour_stars,omitempty"`

	// Limit is the decade band assigned by the major-limit stage.
	Limit LimitBand `json:"limit"`

	// Flow is the annual overlay year for the evaluation window.
	Flow FlowYear `json:"flow"`

	// SelfInfluences are transformation effects the palace's own stem
	// applies to stars it houses.
	SelfInfluences []Influence `json:"self_influences,omitempty"`

	// OppositeInfluences are effects the palace receives from stars in
	// its fixed opposite counterpart, evaluated under this palace's stem.
	OppositeInfluences []Influence `json:"opposite_influences,omitempty"`
}

// OppositePosition returns the ring position 6 slots away, the fixed
// involution used for cross-palace influence and selector fallback.
func OppositePosition(position int) int {
	return (position-1+PalaceCount/2)%PalaceCount + 1
}

// PositionBranch returns the permanent branch of a ring position.
func PositionBranch(position int) ganzhi.Branch {
	return ganzhi.BranchAt(position + 1)
}

// BranchPosition returns the ring position that permanently carries the
// branch.
func BranchPosition(b ganzhi.Branch) int {
	return (int(b)-2+ganzhi.BranchCount)%ganzhi.BranchCount + 1
}

// HasMajor reports whether the palace houses at least one primary star.
func (p *Palace) HasMajor() bool {
	return len(p.Majors) > 0
}

// AllStars returns every star in the palace across all lists, majors
// first, in placement order.
func (p *Palace) AllStars() []PlacedStar {
	out := make([]PlacedStar, 0,
		len(p.Majors)+len(p.Auxiliaries)+len(p.YearStars)+len(p.MonthStars)+len(p.DayStars)+len(p.HourStars))
	out = append(out, p.Majors...)
	out = append(out, p.Auxiliaries...)
	out = append(out, p.YearStars...)
	out = append(out, p.MonthStars...)
	out = append(out, p.DayStars...)
	out = append(out, p.HourStars...)
	return out
}

// findStar locates a star in the palace's major or auxiliary lists, the
// two tiers transformation rules may target. Returns nil when absent.
func (p *Palace) findStar(s Star) *PlacedStar {
	for i := range p.Majors {
		if p.Majors[i].Star == s {
			return &p.Majors[i]
		}
	}
	for i := range p.Auxiliaries {
		if p.Auxiliaries[i].Star == s {
			return &p.Auxiliaries[i]
		}
	}
	return nil
}
