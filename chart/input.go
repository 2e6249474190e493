package chart

import (
	"github.com/mingli/ziwei/errors"
	"github.com/mingli/ziwei/lunar"
)

// Gender selects the direction of the decade-limit walk.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale           // 男
	GenderFemale         // 女
)

var genderGlyphs = [...]string{"?", "男", "女"}

// Valid reports whether g is a concrete gender.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Glyph returns the Chinese gender glyph.
func (g Gender) Glyph() string {
	if g < GenderUnknown || int(g) >= len(genderGlyphs) {
		return "?"
	}
	return genderGlyphs[g]
}

// String implements fmt.Stringer as the glyph.
func (g Gender) String() string {
	return g.Glyph()
}

// MarshalJSON encodes a gender as its glyph.
func (g Gender) MarshalJSON() ([]byte, error) {
	return []byte(`"` + g.Glyph() + `"`), nil
}

// ParseGender accepts the glyph or an ASCII spelling.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "男", "male", "m", "M":
		return GenderMale, nil
	case "女", "female", "f", "F":
		return GenderFemale, nil
	}
	return GenderUnknown, errors.NewInvalidInputf("unrecognized gender %q", s)
}

// Input is one chart request: a Gregorian birth moment, the subject's
// gender, a display label, and the year the annual overlay is evaluated
// against. All derivation is a pure function of this struct.
type Input struct {
	// Year, Month, Day are the Gregorian birth date.
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`

	// Hour is the birth hour on the 24-hour clock, 0 through 23. Hours
	// map to double-hour branches; both 23 and 0 land in 子.
	Hour int `json:"hour"`

	Gender Gender `json:"gender"`

	// Label names the chart subject in rendered output. Optional.
	Label string `json:"label,omitempty"`

	// AsOfYear anchors the 12-year annual-flow window. Callers that want
	// "now" pass the current lunar year.
	AsOfYear int `json:"as_of_year"`
}

// Validate checks ranges before any table work. Calendar existence of the
// date itself is checked by the lunar conversion.
func (in Input) Validate() error {
	if in.Year < lunar.MinYear || in.Year > lunar.MaxYear {
		return errors.NewInvalidInputf("birth year %d outside supported range %d..%d",
			in.Year, lunar.MinYear, lunar.MaxYear)
	}
	if in.Month < 1 || in.Month > 12 {
		return errors.NewInvalidInputf("birth month %d outside 1..12", in.Month)
	}
	if in.Day < 1 || in.Day > 31 {
		return errors.NewInvalidInputf("birth day %d outside 1..31", in.Day)
	}
	if in.Hour < 0 || in.Hour > 23 {
		return errors.NewInvalidInputf("birth hour %d outside 0..23", in.Hour)
	}
	if !in.Gender.Valid() {
		return errors.NewInvalidInputf("gender must be 男 or 女")
	}
	if in.AsOfYear < lunar.MinYear || in.AsOfYear > lunar.MaxYear {
		return errors.NewInvalidInputf("as-of year %d outside supported range %d..%d",
			in.AsOfYear, lunar.MinYear, lunar.MaxYear)
	}
	return nil
}
