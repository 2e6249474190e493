// Package ganzhi defines the two cyclic numbering systems the chart engine
// runs on: the ten heavenly stems (天干) and the twelve earthly branches
// (地支). Both are closed sets; this package provides the Go-native typed
// constants, glyph registries, and the wraparound arithmetic every pipeline
// stage depends on.
//
// All cycle arithmetic normalizes with ((x%N)+N)%N so a negative or
// zero-adjusted index can never escape as a raw array subscript.
package ganzhi

// Stem is one of the ten heavenly stems, numbered 0 (甲) through 9 (癸).
type Stem int

// The ten heavenly stems in cycle order.
const (
	StemJia  Stem = iota // 甲
	StemYi               // 乙
	StemBing             // 丙
	StemDing             // 丁
	StemWu               // 戊
	StemJi               // 己
	StemGeng             // 庚
	StemXin              // 辛
	StemRen              // 壬
	StemGui              // 癸
)

// StemCount is the length of the stem cycle.
const StemCount = 10

// Branch is one of the twelve earthly branches, numbered 0 (子) through 11 (亥).
type Branch int

// The twelve earthly branches in cycle order.
const (
	BranchZi   Branch = iota // 子
	BranchChou               // 丑
	BranchYin                // 寅
	BranchMao                // 卯
	BranchChen               // 辰
	BranchSi                 // 巳
	BranchWu                 // 午
	BranchWei                // 未
	BranchShen               // 申
	BranchYou                // 酉
	BranchXu                 // 戌
	BranchHai                // 亥
)

// BranchCount is the length of the branch cycle.
const BranchCount = 12

// Polarity is the yin-yang tag derived from the year stem.
type Polarity int

const (
	Yang Polarity = iota // 阳: even stem index
	Yin                  // 阴: odd stem index
)

// stemEntry binds a stem to its glyph and transliteration.
type stemEntry struct {
	stem   Stem
	glyph  string
	pinyin string
}

// branchEntry binds a branch to its glyph, transliteration, and zodiac animal.
type branchEntry struct {
	branch Branch
	glyph  string
	pinyin string
	animal string
}

// stemRegistry is the canonical stem catalog. Order matches cycle order.
var stemRegistry = []stemEntry{
	{StemJia, "甲", "jia"},
	{StemYi, "乙", "yi"},
	{StemBing, "丙", "bing"},
	{StemDing, "丁", "ding"},
	{StemWu, "戊", "wu"},
	{StemJi, "己", "ji"},
	{StemGeng, "庚", "geng"},
	{StemXin, "辛", "xin"},
	{StemRen, "壬", "ren"},
	{StemGui, "癸", "gui"},
}

// branchRegistry is the canonical branch catalog. Order matches cycle order;
// the animal labels surface in rendered charts, not in any calculation.
var branchRegistry = []branchEntry{
	{BranchZi, "子", "zi", "rat"},
	{BranchChou, "丑", "chou", "ox"},
	{BranchYin, "寅", "yin", "tiger"},
	{BranchMao, "卯", "mao", "rabbit"},
	{BranchChen, "辰", "chen", "dragon"},
	{BranchSi, "巳", "si", "snake"},
	{BranchWu, "午", "wu", "horse"},
	{BranchWei, "未", "wei", "goat"},
	{BranchShen, "申", "shen", "monkey"},
	{BranchYou, "酉", "you", "rooster"},
	{BranchXu, "戌", "xu", "dog"},
	{BranchHai, "亥", "hai", "pig"},
}

// Lookup tables built from the registries at init time.
var (
	glyphToStem   map[string]Stem
	glyphToBranch map[string]Branch
)

func init() {
	glyphToStem = make(map[string]Stem, len(stemRegistry))
	for _, e := range stemRegistry {
		glyphToStem[e.glyph] = e.stem
	}
	glyphToBranch = make(map[string]Branch, len(branchRegistry))
	for _, e := range branchRegistry {
		glyphToBranch[e.glyph] = e.branch
	}
}

// norm normalizes x into [0, n) with the wraparound form that is safe for
// negative intermediate values.
func norm(x, n int) int {
	return ((x % n) + n) % n
}

// StemAt returns the stem at cycle index i, wrapping in either direction.
func StemAt(i int) Stem {
	return Stem(norm(i, StemCount))
}

// BranchAt returns the branch at cycle index i, wrapping in either direction.
func BranchAt(i int) Branch {
	return Branch(norm(i, BranchCount))
}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool {
	return s >= StemJia && s <= StemGui
}

// Shift returns the stem n steps forward in the cycle (negative n walks
// backward).
func (s Stem) Shift(n int) Stem {
	return StemAt(int(s) + n)
}

// Glyph returns the Chinese glyph for the stem.
func (s Stem) Glyph() string {
	if !s.Valid() {
		return "?"
	}
	return stemRegistry[s].glyph
}

// Pinyin returns the transliterated name for the stem.
func (s Stem) Pinyin() string {
	if !s.Valid() {
		return "?"
	}
	return stemRegistry[s].pinyin
}

// String implements fmt.Stringer as the glyph; logs and rendered charts
// show stems the way chart readers expect them.
func (s Stem) String() string {
	return s.Glyph()
}

// Polarity returns Yang for even stem indices, Yin for odd.
func (s Stem) Polarity() Polarity {
	if int(s)%2 == 0 {
		return Yang
	}
	return Yin
}

// MarshalJSON encodes a stem as its glyph.
func (s Stem) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.Glyph() + `"`), nil
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool {
	return b >= BranchZi && b <= BranchHai
}

// Shift returns the branch n steps forward in the cycle (negative n walks
// backward).
func (b Branch) Shift(n int) Branch {
	return BranchAt(int(b) + n)
}

// Opposite returns the branch six positions away, the fixed counterpart
// used for cross-palace influence.
func (b Branch) Opposite() Branch {
	return b.Shift(BranchCount / 2)
}

// Glyph returns the Chinese glyph for the branch.
func (b Branch) Glyph() string {
	if !b.Valid() {
		return "?"
	}
	return branchRegistry[b].glyph
}

// Pinyin returns the transliterated name for the branch.
func (b Branch) Pinyin() string {
	if !b.Valid() {
		return "?"
	}
	return branchRegistry[b].pinyin
}

// Animal returns the zodiac animal associated with the branch.
func (b Branch) Animal() string {
	if !b.Valid() {
		return "?"
	}
	return branchRegistry[b].animal
}

// String implements fmt.Stringer as the glyph.
func (b Branch) String() string {
	return b.Glyph()
}

// MarshalJSON encodes a branch as its glyph.
func (b Branch) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.Glyph() + `"`), nil
}

// String returns the polarity glyph.
func (p Polarity) String() string {
	if p == Yang {
		return "阳"
	}
	return "阴"
}

// MarshalJSON encodes a polarity as its glyph.
func (p Polarity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// StemFromGlyph resolves a stem glyph back to its typed constant. The bool
// is false for any string outside the closed set.
func StemFromGlyph(glyph string) (Stem, bool) {
	s, ok := glyphToStem[glyph]
	return s, ok
}

// BranchFromGlyph resolves a branch glyph back to its typed constant.
func BranchFromGlyph(glyph string) (Branch, bool) {
	b, ok := glyphToBranch[glyph]
	return b, ok
}

// sexagenaryEpoch is a year known to be 甲子 (stem 0, branch 0). Every
// stem/branch year derivation anchors here.
const sexagenaryEpoch = 1984

// YearStem returns the heavenly stem of a lunisolar year.
func YearStem(year int) Stem {
	return StemAt(year - sexagenaryEpoch)
}

// YearBranch returns the earthly branch of a lunisolar year.
func YearBranch(year int) Branch {
	return BranchAt(year - sexagenaryEpoch)
}

// YearPillar returns both cyclic tags of a lunisolar year.
func YearPillar(year int) (Stem, Branch) {
	return YearStem(year), YearBranch(year)
}

// HourBranch folds a 24-hour clock hour into its double-hour branch:
// 23:00–00:59 子, 01:00–02:59 丑, and so on around the ring. Hour 23 folds
// into 子 with no day rollover.
func HourBranch(hour int) Branch {
	return BranchAt((hour + 1) / 2)
}
