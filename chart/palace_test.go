package chart

import (
	"testing"

	"github.com/mingli/ziwei/ganzhi"
)

func TestPalaceNameOrder(t *testing.T) {
	want := []string{
		"命宫", "兄弟", "夫妻", "子女", "财帛", "疾厄",
		"迁移", "交友", "官禄", "田宅", "福德", "父母",
	}
	for i, g := range want {
		n := PalaceName(i)
		if n.Glyph() != g {
			t.Errorf("name %d glyph = %s, want %s", i, n.Glyph(), g)
		}
		back, ok := PalaceNameFromGlyph(g)
		if !ok || back != n {
			t.Errorf("round trip failed for %s", g)
		}
	}
	if PalaceName(12).Valid() {
		t.Error("PalaceName(12) should be invalid")
	}
}

func TestPositionBranchRoundTrip(t *testing.T) {
	if PositionBranch(1) != ganzhi.BranchYin {
		t.Fatalf("position 1 carries %s, want 寅", PositionBranch(1))
	}
	if PositionBranch(12) != ganzhi.BranchChou {
		t.Fatalf("position 12 carries %s, want 丑", PositionBranch(12))
	}
	for pos := 1; pos <= PalaceCount; pos++ {
		if BranchPosition(PositionBranch(pos)) != pos {
			t.Errorf("position %d does not round trip", pos)
		}
	}
	for b := ganzhi.BranchZi; b <= ganzhi.BranchHai; b++ {
		if PositionBranch(BranchPosition(b)) != b {
			t.Errorf("branch %s does not round trip", b)
		}
	}
}

func TestOppositePosition(t *testing.T) {
	for pos := 1; pos <= PalaceCount; pos++ {
		opp := OppositePosition(pos)
		if opp < 1 || opp > PalaceCount {
			t.Fatalf("opposite of %d = %d out of range", pos, opp)
		}
		if OppositePosition(opp) != pos {
			t.Errorf("opposite is not an involution at %d", pos)
		}
		if PositionBranch(opp) != PositionBranch(pos).Opposite() {
			t.Errorf("position opposite disagrees with branch opposite at %d", pos)
		}
	}
	if OppositePosition(1) != 7 {
		t.Errorf("opposite of 1 = %d, want 7", OppositePosition(1))
	}
}

func TestPalaceStarHelpers(t *testing.T) {
	p := Palace{
		Position: 1,
		Branch:   ganzhi.BranchYin,
		Majors: []PlacedStar{
			{Star: StarTanlang},
		},
		Auxiliaries: []PlacedStar{
			{Star: StarWenqu},
		},
		YearStars: []PlacedStar{
			{Star: StarLucun},
		},
	}

	if !p.HasMajor() {
		t.Error("palace with 贪狼 should report a primary")
	}
	if got := p.findStar(StarTanlang); got == nil || got.Star != StarTanlang {
		t.Error("findStar missed a primary")
	}
	if got := p.findStar(StarWenqu); got == nil || got.Star != StarWenqu {
		t.Error("findStar missed an auxiliary")
	}
	if p.findStar(StarLucun) != nil {
		t.Error("findStar should not reach timeframe lists")
	}

	all := p.AllStars()
	if len(all) != 3 {
		t.Fatalf("AllStars = %d entries, want 3", len(all))
	}
	if all[0].Star != StarTanlang || all[1].Star != StarWenqu || all[2].Star != StarLucun {
		t.Error("AllStars order should be majors, auxiliaries, timeframe")
	}

	// findStar returns a pointer into the palace, so tags stick.
	p.findStar(StarTanlang).Transforms = append(p.findStar(StarTanlang).Transforms, TransformLu)
	if len(p.Majors[0].Transforms) != 1 {
		t.Error("transform tag did not reach the stored star")
	}
}

func TestGenderParse(t *testing.T) {
	cases := map[string]Gender{
		"男": GenderMale, "male": GenderMale, "m": GenderMale, "M": GenderMale,
		"女": GenderFemale, "female": GenderFemale, "f": GenderFemale, "F": GenderFemale,
	}
	for in, want := range cases {
		got, err := ParseGender(in)
		if err != nil || got != want {
			t.Errorf("ParseGender(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseGender("x"); err == nil {
		t.Error("ParseGender(x) should fail")
	}
}
