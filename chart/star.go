// Package chart computes a Zi Wei Dou Shu natal chart. Given a birth date,
// time, and gender it derives the 12-palace structure deterministically: a
// fourteen-stage pipeline mutates a private workspace, and the frozen
// result carries star placements, calendrical tags, the five-element
// bureau, decade limit bands, a yearly overlay, and rule-driven star
// transformations.
package chart

// Star identifies one star of the closed catalog. The catalog has three
// tiers: the 14 majors placed from the ziwei anchor, the 4 month/hour
// auxiliaries, and the support stars filed under per-timeframe lists.
type Star int

// The fourteen major stars, in placement order.
const (
	StarZiwei    Star = iota // 紫微
	StarTianji               // 天机
	StarTaiyang              // 太阳
	StarWuqu                 // 武曲
	StarTiantong             // 天同
	StarLianzhen             // 廉贞
	StarTianfu               // 天府
	StarTaiyin               // 太阴
	StarTanlang              // 贪狼
	StarJumen                // 巨门
	StarTianxiang            // 天相
	StarTianliang            // 天梁
	StarQisha                // 七杀
	StarPojun                // 破军

	// The four auxiliaries: two placed by lunar month, two by birth hour.
	StarZuofu    // 左辅
	StarYoubi    // 右弼
	StarWenchang // 文昌
	StarWenqu    // 文曲

	// Support stars keyed by the year pillar.
	StarLucun    // 禄存
	StarQingyang // 擎羊
	StarTuoluo   // 陀罗
	StarTiankui  // 天魁
	StarTianyue  // 天钺
	StarHongluan // 红鸾
	StarTianxi   // 天喜

	// Support stars keyed by the lunar month.
	StarTianxing // 天刑
	StarTianyao  // 天姚

	// Support stars keyed by the lunar day.
	StarSantai // 三台
	StarBazuo  // 八座

	// Support stars keyed by the birth hour.
	StarDikong   // 地空
	StarDijie    // 地劫
	StarHuoxing  // 火星
	StarLingxing // 铃星
)

// MajorStarCount is the size of the primary catalog every chart places in
// full.
const MajorStarCount = 14

// Category groups stars by how the pipeline places them.
type Category int

const (
	CategoryMajor     Category = iota // the 14 anchor-derived primaries
	CategoryAuxiliary                 // month/hour auxiliaries
	CategoryTimeframe                 // year/month/day/hour support stars
)

// Timeframe tags which birth component placed a support star.
type Timeframe int

const (
	TimeframeYear Timeframe = iota
	TimeframeMonth
	TimeframeDay
	TimeframeHour
)

// starEntry binds a star to its glyph and placement tier.
type starEntry struct {
	star     Star
	glyph    string
	category Category
}

// starRegistry is the canonical closed catalog. Order matches the constant
// block; the pipeline never handles a star outside this set.
var starRegistry = []starEntry{
	{StarZiwei, "紫微", CategoryMajor},
	{StarTianji, "天机", CategoryMajor},
	{StarTaiyang, "太阳", CategoryMajor},
	{StarWuqu, "武曲", CategoryMajor},
	{StarTiantong, "天同", CategoryMajor},
	{StarLianzhen, "廉贞", CategoryMajor},
	{StarTianfu, "天府", CategoryMajor},
	{StarTaiyin, "太阴", CategoryMajor},
	{StarTanlang, "贪狼", CategoryMajor},
	{StarJumen, "巨门", CategoryMajor},
	{StarTianxiang, "天相", CategoryMajor},
	{StarTianliang, "天梁", CategoryMajor},
	{StarQisha, "七杀", CategoryMajor},
	{StarPojun, "破军", CategoryMajor},
	{StarZuofu, "左辅", CategoryAuxiliary},
	{StarYoubi, "右弼", CategoryAuxiliary},
	{StarWenchang, "文昌", CategoryAuxiliary},
	{StarWenqu, "文曲", CategoryAuxiliary},
	{StarLucun, "禄存", CategoryTimeframe},
	{StarQingyang, "擎羊", CategoryTimeframe},
	{StarTuoluo, "陀罗", CategoryTimeframe},
	{StarTiankui, "天魁", CategoryTimeframe},
	{StarTianyue, "天钺", CategoryTimeframe},
	{StarHongluan, "红鸾", CategoryTimeframe},
	{StarTianxi, "天喜", CategoryTimeframe},
	{StarTianxing, "天刑", CategoryTimeframe},
	{StarTianyao, "天姚", CategoryTimeframe},
	{StarSantai, "三台", CategoryTimeframe},
	{StarBazuo, "八座", CategoryTimeframe},
	{StarDikong, "地空", CategoryTimeframe},
	{StarDijie, "地劫", CategoryTimeframe},
	{StarHuoxing, "火星", CategoryTimeframe},
	{StarLingxing, "铃星", CategoryTimeframe},
}

var glyphToStar map[string]Star

func init() {
	glyphToStar = make(map[string]Star, len(starRegistry))
	for _, e := range starRegistry {
		glyphToStar[e.glyph] = e.star
	}
}

// Valid reports whether s is in the closed catalog.
func (s Star) Valid() bool {
	return s >= StarZiwei && int(s) < len(starRegistry)
}

// Glyph returns the star's Chinese name.
func (s Star) Glyph() string {
	if !s.Valid() {
		return "?"
	}
	return starRegistry[s].glyph
}

// String implements fmt.Stringer as the glyph.
func (s Star) String() string {
	return s.Glyph()
}

// Category returns the star's placement tier.
func (s Star) Category() Category {
	if !s.Valid() {
		return CategoryTimeframe
	}
	return starRegistry[s].category
}

// MarshalJSON encodes a star as its glyph.
func (s Star) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.Glyph() + `"`), nil
}

// MarshalText keys star-indexed maps by glyph in encoded output.
func (s Star) MarshalText() ([]byte, error) {
	return []byte(s.Glyph()), nil
}

// StarFromGlyph resolves a star name back to its typed constant.
func StarFromGlyph(glyph string) (Star, bool) {
	s, ok := glyphToStar[glyph]
	return s, ok
}

// Transform is one of the four star transformation kinds.
type Transform int

const (
	TransformLu   Transform = iota // 禄: prosperity
	TransformQuan                  // 权: authority
	TransformKe                    // 科: merit
	TransformJi                    // 忌: obstruction
)

// TransformCount is the number of rules in every stem's rule set.
const TransformCount = 4

var transformGlyphs = [...]string{"禄", "权", "科", "忌"}

// Valid reports whether t is one of the four kinds.
func (t Transform) Valid() bool {
	return t >= TransformLu && t <= TransformJi
}

// Glyph returns the single-character tag for the kind.
func (t Transform) Glyph() string {
	if !t.Valid() {
		return "?"
	}
	return transformGlyphs[t]
}

// String implements fmt.Stringer as the glyph.
func (t Transform) String() string {
	return t.Glyph()
}

// MarshalJSON encodes a transformation kind as its glyph.
func (t Transform) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Glyph() + `"`), nil
}

// Brightness grades how strongly a major star expresses in a given branch.
// The empty value means the catalog assigns no grade for that star.
type Brightness string

const (
	BrightnessNone   Brightness = ""
	BrightnessTemple Brightness = "庙"
	BrightnessBright Brightness = "旺"
	BrightnessFavor  Brightness = "得"
	BrightnessGain   Brightness = "利"
	BrightnessEven   Brightness = "平"
	BrightnessWeak   Brightness = "不"
	BrightnessFallen Brightness = "陷"
)
