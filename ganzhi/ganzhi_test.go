package ganzhi

import "testing"

func TestStemGlyphRoundTrip(t *testing.T) {
	for i := 0; i < StemCount; i++ {
		s := Stem(i)
		got, ok := StemFromGlyph(s.Glyph())
		if !ok {
			t.Errorf("StemFromGlyph(%q) not found", s.Glyph())
			continue
		}
		if got != s {
			t.Errorf("StemFromGlyph(%q) = %d, want %d", s.Glyph(), got, s)
		}
	}
}

func TestBranchGlyphRoundTrip(t *testing.T) {
	for i := 0; i < BranchCount; i++ {
		b := Branch(i)
		got, ok := BranchFromGlyph(b.Glyph())
		if !ok {
			t.Errorf("BranchFromGlyph(%q) not found", b.Glyph())
			continue
		}
		if got != b {
			t.Errorf("BranchFromGlyph(%q) = %d, want %d", b.Glyph(), got, b)
		}
	}
}

func TestNoDuplicateGlyphs(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range stemRegistry {
		if seen[e.glyph] {
			t.Errorf("duplicate stem glyph %q", e.glyph)
		}
		seen[e.glyph] = true
	}
	for _, e := range branchRegistry {
		if seen[e.glyph] {
			t.Errorf("duplicate branch glyph %q", e.glyph)
		}
		seen[e.glyph] = true
	}
}

func TestRegistryOrder(t *testing.T) {
	for i, e := range stemRegistry {
		if int(e.stem) != i {
			t.Errorf("stem registry entry %d holds stem %d", i, e.stem)
		}
	}
	for i, e := range branchRegistry {
		if int(e.branch) != i {
			t.Errorf("branch registry entry %d holds branch %d", i, e.branch)
		}
	}
}

func TestShiftWraparound(t *testing.T) {
	if got := StemGui.Shift(1); got != StemJia {
		t.Errorf("癸 shifted +1 = %s, want 甲", got)
	}
	if got := StemJia.Shift(-1); got != StemGui {
		t.Errorf("甲 shifted -1 = %s, want 癸", got)
	}
	if got := BranchHai.Shift(1); got != BranchZi {
		t.Errorf("亥 shifted +1 = %s, want 子", got)
	}
	if got := BranchZi.Shift(-1); got != BranchHai {
		t.Errorf("子 shifted -1 = %s, want 亥", got)
	}
	if got := BranchZi.Shift(-25); got != BranchHai {
		t.Errorf("子 shifted -25 = %s, want 亥", got)
	}
}

func TestOpposite(t *testing.T) {
	cases := []struct {
		in, want Branch
	}{
		{BranchZi, BranchWu},
		{BranchChou, BranchWei},
		{BranchYin, BranchShen},
		{BranchSi, BranchHai},
	}
	for _, c := range cases {
		if got := c.in.Opposite(); got != c.want {
			t.Errorf("%s opposite = %s, want %s", c.in, got, c.want)
		}
		if got := c.want.Opposite(); got != c.in {
			t.Errorf("%s opposite = %s, want %s", c.want, got, c.in)
		}
	}
}

func TestYearPillar(t *testing.T) {
	cases := []struct {
		year   int
		stem   Stem
		branch Branch
	}{
		{1984, StemJia, BranchZi},  // 甲子, cycle anchor
		{1990, StemGeng, BranchWu}, // 庚午
		{2000, StemGeng, BranchChen},
		{2022, StemRen, BranchYin}, // 壬寅
		{2024, StemJia, BranchChen},
		{1923, StemGui, BranchHai}, // one step before the anchor cycle
		{1924, StemJia, BranchZi},
	}
	for _, c := range cases {
		s, b := YearPillar(c.year)
		if s != c.stem || b != c.branch {
			t.Errorf("YearPillar(%d) = %s%s, want %s%s", c.year, s, b, c.stem, c.branch)
		}
	}
}

func TestYearPolarity(t *testing.T) {
	if got := YearStem(1990).Polarity(); got != Yang {
		t.Errorf("1990 (庚) polarity = %s, want 阳", got)
	}
	if got := YearStem(1991).Polarity(); got != Yin {
		t.Errorf("1991 (辛) polarity = %s, want 阴", got)
	}
}

func TestHourBranch(t *testing.T) {
	cases := []struct {
		hour int
		want Branch
	}{
		{23, BranchZi},
		{0, BranchZi},
		{1, BranchChou},
		{2, BranchChou},
		{3, BranchYin},
		{10, BranchSi},
		{11, BranchWu},
		{12, BranchWu},
		{13, BranchWei},
		{22, BranchHai},
	}
	for _, c := range cases {
		if got := HourBranch(c.hour); got != c.want {
			t.Errorf("HourBranch(%d) = %s, want %s", c.hour, got, c.want)
		}
	}
}

func TestStemAtNegative(t *testing.T) {
	if got := StemAt(-1); got != StemGui {
		t.Errorf("StemAt(-1) = %s, want 癸", got)
	}
	if got := BranchAt(-3); got != BranchYou {
		t.Errorf("BranchAt(-3) = %s, want 酉", got)
	}
}
