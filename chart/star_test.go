package chart

import (
	"encoding/json"
	"testing"
)

func TestStarRegistryClosed(t *testing.T) {
	if len(starRegistry) != 33 {
		t.Fatalf("registry holds %d stars, want 33", len(starRegistry))
	}
	seen := map[string]Star{}
	for i, e := range starRegistry {
		if int(e.star) != i {
			t.Errorf("registry order broken at %d: %s", i, e.glyph)
		}
		if prev, dup := seen[e.glyph]; dup {
			t.Errorf("glyph %s registered twice: %d and %d", e.glyph, prev, e.star)
		}
		seen[e.glyph] = e.star
	}
}

func TestStarGlyphRoundTrip(t *testing.T) {
	for _, e := range starRegistry {
		got, ok := StarFromGlyph(e.star.Glyph())
		if !ok || got != e.star {
			t.Errorf("round trip failed for %s", e.glyph)
		}
	}
	if _, ok := StarFromGlyph("天狗"); ok {
		t.Error("unknown glyph resolved")
	}
	if Star(-1).Glyph() != "?" || Star(33).Glyph() != "?" {
		t.Error("out-of-range stars should render ?")
	}
}

func TestStarCategories(t *testing.T) {
	for s := StarZiwei; s <= StarPojun; s++ {
		if s.Category() != CategoryMajor {
			t.Errorf("%s should be a primary", s)
		}
	}
	for s := StarZuofu; s <= StarWenqu; s++ {
		if s.Category() != CategoryAuxiliary {
			t.Errorf("%s should be an auxiliary", s)
		}
	}
	for s := StarLucun; s <= StarLingxing; s++ {
		if s.Category() != CategoryTimeframe {
			t.Errorf("%s should be a timeframe star", s)
		}
	}
}

func TestStarJSON(t *testing.T) {
	b, err := json.Marshal(StarZiwei)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"紫微"` {
		t.Errorf("marshal = %s, want \"紫微\"", b)
	}

	// Star-keyed maps marshal by glyph.
	m, err := json.Marshal(map[Star]int{StarTianfu: 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(m) != `{"天府":1}` {
		t.Errorf("map marshal = %s", m)
	}
}

func TestTransformGlyphs(t *testing.T) {
	want := map[Transform]string{
		TransformLu:   "禄",
		TransformQuan: "权",
		TransformKe:   "科",
		TransformJi:   "忌",
	}
	for tr, g := range want {
		if tr.Glyph() != g {
			t.Errorf("%d glyph = %s, want %s", tr, tr.Glyph(), g)
		}
		if !tr.Valid() {
			t.Errorf("%s should be valid", g)
		}
	}
	if Transform(4).Valid() {
		t.Error("Transform(4) should be invalid")
	}
}
