package chart

import (
	"github.com/mingli/ziwei/errors"
	"github.com/mingli/ziwei/ganzhi"
)

// Bureau is the five-element classification of the life palace. The
// numeric value is the bureau number itself, which doubles as the decade
// start age and the ziwei quotient divisor.
type Bureau int

const (
	BureauWater2 Bureau = 2 // 水二局
	BureauWood3  Bureau = 3 // 木三局
	BureauMetal4 Bureau = 4 // 金四局
	BureauEarth5 Bureau = 5 // 土五局
	BureauFire6  Bureau = 6 // 火六局
)

var bureauGlyphs = map[Bureau]string{
	BureauWater2: "水二局",
	BureauWood3:  "木三局",
	BureauMetal4: "金四局",
	BureauEarth5: "土五局",
	BureauFire6:  "火六局",
}

// Valid reports whether b is one of the five bureaus.
func (b Bureau) Valid() bool {
	_, ok := bureauGlyphs[b]
	return ok
}

// Number returns the bureau number, 2 through 6.
func (b Bureau) Number() int {
	return int(b)
}

// Glyph returns the full bureau name, e.g. 火六局.
func (b Bureau) Glyph() string {
	if g, ok := bureauGlyphs[b]; ok {
		return g
	}
	return "?"
}

// Element returns just the element glyph, e.g. 火.
func (b Bureau) Element() string {
	if g, ok := bureauGlyphs[b]; ok {
		return g[:len("水")]
	}
	return "?"
}

// String implements fmt.Stringer as the full glyph.
func (b Bureau) String() string {
	return b.Glyph()
}

// MarshalJSON encodes a bureau as its full glyph.
func (b Bureau) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.Glyph() + `"`), nil
}

// anchorStemFor returns the stem placed on 寅 for a birth-year stem, the
// start of the clockwise stem rotation. Year stems five apart share an
// anchor.
func anchorStemFor(yearStem ganzhi.Stem) (ganzhi.Stem, error) {
	if !yearStem.Valid() {
		return 0, errors.NewInvalidInputf("year stem %d outside the cycle", int(yearStem))
	}
	switch int(yearStem) % 5 {
	case 0: // 甲 己
		return ganzhi.StemBing, nil
	case 1: // 乙 庚
		return ganzhi.StemWu, nil
	case 2: // 丙 辛
		return ganzhi.StemGeng, nil
	case 3: // 丁 壬
		return ganzhi.StemRen, nil
	case 4: // 戊 癸
		return ganzhi.StemJia, nil
	}
	return 0, errors.NewInvariantf("stem %s escaped the five anchor groups", yearStem)
}

// lifeBranchTable and bodyBranchTable map (lunar month - 1, hour branch)
// to the palace branch. Filled at init from the counting rules: both
// counts start at 寅 and walk the month forward, then the life count
// walks the hour backward and the body count forward.
var (
	lifeBranchTable [12][ganzhi.BranchCount]ganzhi.Branch
	bodyBranchTable [12][ganzhi.BranchCount]ganzhi.Branch
)

func init() {
	for m := 0; m < 12; m++ {
		for h := 0; h < ganzhi.BranchCount; h++ {
			lifeBranchTable[m][h] = ganzhi.BranchAt(2 + m - h)
			bodyBranchTable[m][h] = ganzhi.BranchAt(2 + m + h)
		}
	}
}

func lifePalaceBranch(month int, hour ganzhi.Branch) (ganzhi.Branch, error) {
	if month < 1 || month > 12 || !hour.Valid() {
		return 0, errors.NewLookupMissf("no life-palace entry for month %d hour %s", month, hour)
	}
	return lifeBranchTable[month-1][hour], nil
}

func bodyPalaceBranch(month int, hour ganzhi.Branch) (ganzhi.Branch, error) {
	if month < 1 || month > 12 || !hour.Valid() {
		return 0, errors.NewLookupMissf("no body-palace entry for month %d hour %s", month, hour)
	}
	return bodyBranchTable[month-1][hour], nil
}

// bureauTable maps (stem pair, branch group) to the five-element bureau.
// Stems pair 甲乙 丙丁 戊己 庚辛 壬癸; branches group into thirds 子丑/午未,
// 寅卯/申酉, 辰巳/戌亥.
var bureauTable = [5][3]Bureau{
	{BureauMetal4, BureauWater2, BureauFire6}, // 甲乙
	{BureauWater2, BureauFire6, BureauEarth5}, // 丙丁
	{BureauFire6, BureauEarth5, BureauWood3},  // 戊己
	{BureauEarth5, BureauWood3, BureauMetal4}, // 庚辛
	{BureauWood3, BureauMetal4, BureauWater2}, // 壬癸
}

func bureauFor(stem ganzhi.Stem, branch ganzhi.Branch) (Bureau, error) {
	if !stem.Valid() || !branch.Valid() {
		return 0, errors.NewLookupMissf("no bureau entry for stem %d branch %d", int(stem), int(branch))
	}
	return bureauTable[int(stem)/2][(int(branch)/2)%3], nil
}

// maxLunarDay bounds the ziwei table; lunar months never exceed 30 days.
const maxLunarDay = 30

var bureauOrder = [...]Bureau{BureauWater2, BureauWood3, BureauMetal4, BureauEarth5, BureauFire6}

// ziweiTable maps (bureau, lunar day - 1) to the anchor star's branch.
// Filled at init from the quotient rule: pad the day up to the next
// multiple of the bureau number, count the quotient off 寅, then step the
// padding forward if even, backward if odd.
var ziweiTable [len(bureauOrder)][maxLunarDay]ganzhi.Branch

func init() {
	for r, bu := range bureauOrder {
		n := bu.Number()
		for d := 1; d <= maxLunarDay; d++ {
			q := (d + n - 1) / n
			diff := q*n - d
			idx := 2 + (q - 1)
			if diff%2 == 0 {
				idx += diff
			} else {
				idx -= diff
			}
			ziweiTable[r][d-1] = ganzhi.BranchAt(idx)
		}
	}
}

func ziweiBranch(b Bureau, day int) (ganzhi.Branch, error) {
	if !b.Valid() {
		return 0, errors.NewLookupMissf("no ziwei row for bureau %d", int(b))
	}
	if day < 1 || day > maxLunarDay {
		return 0, errors.NewLookupMissf("no ziwei entry for lunar day %d", day)
	}
	return ziweiTable[int(b)-2][day-1], nil
}

// majorLayout returns the branch of each of the 14 primaries given the
// anchor's branch, indexed by Star. The 紫微 chain counts backward from
// the anchor with fixed gaps; 天府 mirrors the anchor across the 寅申 axis
// and its chain counts forward.
func majorLayout(z ganzhi.Branch) [MajorStarCount]ganzhi.Branch {
	var out [MajorStarCount]ganzhi.Branch
	zi := int(z)
	out[StarZiwei] = z
	out[StarTianji] = ganzhi.BranchAt(zi - 1)
	out[StarTaiyang] = ganzhi.BranchAt(zi - 3)
	out[StarWuqu] = ganzhi.BranchAt(zi - 4)
	out[StarTiantong] = ganzhi.BranchAt(zi - 5)
	out[StarLianzhen] = ganzhi.BranchAt(zi - 8)

	f := ganzhi.BranchAt(4 - zi)
	fi := int(f)
	out[StarTianfu] = f
	out[StarTaiyin] = ganzhi.BranchAt(fi + 1)
	out[StarTanlang] = ganzhi.BranchAt(fi + 2)
	out[StarJumen] = ganzhi.BranchAt(fi + 3)
	out[StarTianxiang] = ganzhi.BranchAt(fi + 4)
	out[StarTianliang] = ganzhi.BranchAt(fi + 5)
	out[StarQisha] = ganzhi.BranchAt(fi + 6)
	out[StarPojun] = ganzhi.BranchAt(fi + 10)
	return out
}

// starAt pairs a star with the branch a placement rule assigns it.
type starAt struct {
	star   Star
	branch ganzhi.Branch
}

// auxiliaryBranches places the four month/hour auxiliaries. 左辅 counts
// forward from 辰 by month, 右弼 backward from 戌; 文昌 counts backward
// from 戌 by hour, 文曲 forward from 辰.
func auxiliaryBranches(month int, hour ganzhi.Branch) ([]starAt, error) {
	if month < 1 || month > 12 || !hour.Valid() {
		return nil, errors.NewLookupMissf("no auxiliary entry for month %d hour %s", month, hour)
	}
	h := int(hour)
	return []starAt{
		{StarZuofu, ganzhi.BranchAt(4 + month - 1)},
		{StarYoubi, ganzhi.BranchAt(10 - (month - 1))},
		{StarWenchang, ganzhi.BranchAt(10 - h)},
		{StarWenqu, ganzhi.BranchAt(4 + h)},
	}, nil
}

// transformRules maps a stem to the star receiving each of 禄 权 科 忌.
// Rows are indexed by stem, columns by Transform.
var transformRules = [ganzhi.StemCount][TransformCount]Star{
	ganzhi.StemJia:  {StarLianzhen, StarPojun, StarWuqu, StarTaiyang},
	ganzhi.StemYi:   {StarTianji, StarTianliang, StarZiwei, StarTaiyin},
	ganzhi.StemBing: {StarTiantong, StarTianji, StarWenchang, StarLianzhen},
	ganzhi.StemDing: {StarTaiyin, StarTiantong, StarTianji, StarJumen},
	ganzhi.StemWu:   {StarTanlang, StarTaiyin, StarYoubi, StarTianji},
	ganzhi.StemJi:   {StarWuqu, StarTanlang, StarTianliang, StarWenqu},
	ganzhi.StemGeng: {StarTaiyang, StarWuqu, StarTaiyin, StarTiantong},
	ganzhi.StemXin:  {StarJumen, StarTaiyang, StarWenqu, StarWenchang},
	ganzhi.StemRen:  {StarTianliang, StarZiwei, StarZuofu, StarWuqu},
	ganzhi.StemGui:  {StarPojun, StarJumen, StarTaiyin, StarTanlang},
}

func transformRule(stem ganzhi.Stem) ([TransformCount]Star, error) {
	if !stem.Valid() {
		return [TransformCount]Star{}, errors.NewLookupMissf("no transformation row for stem %d", int(stem))
	}
	return transformRules[stem], nil
}

// lucunBranch maps the year stem to 禄存's branch.
var lucunBranch = [ganzhi.StemCount]ganzhi.Branch{
	ganzhi.StemJia:  ganzhi.BranchYin,
	ganzhi.StemYi:   ganzhi.BranchMao,
	ganzhi.StemBing: ganzhi.BranchSi,
	ganzhi.StemDing: ganzhi.BranchWu,
	ganzhi.StemWu:   ganzhi.BranchSi,
	ganzhi.StemJi:   ganzhi.BranchWu,
	ganzhi.StemGeng: ganzhi.BranchShen,
	ganzhi.StemXin:  ganzhi.BranchYou,
	ganzhi.StemRen:  ganzhi.BranchHai,
	ganzhi.StemGui:  ganzhi.BranchZi,
}

// kuiYueBranches maps the year stem to the 天魁, 天钺 pair.
var kuiYueBranches = [ganzhi.StemCount][2]ganzhi.Branch{
	ganzhi.StemJia:  {ganzhi.BranchChou, ganzhi.BranchWei},
	ganzhi.StemYi:   {ganzhi.BranchZi, ganzhi.BranchShen},
	ganzhi.StemBing: {ganzhi.BranchHai, ganzhi.BranchYou},
	ganzhi.StemDing: {ganzhi.BranchHai, ganzhi.BranchYou},
	ganzhi.StemWu:   {ganzhi.BranchChou, ganzhi.BranchWei},
	ganzhi.StemJi:   {ganzhi.BranchZi, ganzhi.BranchShen},
	ganzhi.StemGeng: {ganzhi.BranchChou, ganzhi.BranchWei},
	ganzhi.StemXin:  {ganzhi.BranchWu, ganzhi.BranchYin},
	ganzhi.StemRen:  {ganzhi.BranchMao, ganzhi.BranchSi},
	ganzhi.StemGui:  {ganzhi.BranchMao, ganzhi.BranchSi},
}

// yearStarBranches places the seven year-keyed support stars. 擎羊 and
// 陀罗 flank 禄存; 天喜 sits opposite 红鸾.
func yearStarBranches(stem ganzhi.Stem, branch ganzhi.Branch) ([]starAt, error) {
	if !stem.Valid() || !branch.Valid() {
		return nil, errors.NewLookupMissf("no year-star entry for stem %d branch %d", int(stem), int(branch))
	}
	lucun := lucunBranch[stem]
	kui, yue := kuiYueBranches[stem][0], kuiYueBranches[stem][1]
	hongluan := ganzhi.BranchAt(3 - int(branch))
	return []starAt{
		{StarLucun, lucun},
		{StarQingyang, lucun.Shift(1)},
		{StarTuoluo, lucun.Shift(-1)},
		{StarTiankui, kui},
		{StarTianyue, yue},
		{StarHongluan, hongluan},
		{StarTianxi, hongluan.Shift(6)},
	}, nil
}

// monthStarBranches places the two month-keyed support stars: 天刑 counts
// from 酉, 天姚 from 丑.
func monthStarBranches(month int) ([]starAt, error) {
	if month < 1 || month > 12 {
		return nil, errors.NewLookupMissf("no month-star entry for month %d", month)
	}
	return []starAt{
		{StarTianxing, ganzhi.BranchAt(9 + month - 1)},
		{StarTianyao, ganzhi.BranchAt(1 + month - 1)},
	}, nil
}

// dayStarBranches places the two day-keyed support stars, which count off
// the auxiliaries: 三台 forward from 左辅, 八座 backward from 右弼.
func dayStarBranches(month, day int) ([]starAt, error) {
	if month < 1 || month > 12 || day < 1 || day > maxLunarDay {
		return nil, errors.NewLookupMissf("no day-star entry for month %d day %d", month, day)
	}
	zuofu := 4 + month - 1
	youbi := 10 - (month - 1)
	return []starAt{
		{StarSantai, ganzhi.BranchAt(zuofu + day - 1)},
		{StarBazuo, ganzhi.BranchAt(youbi - (day - 1))},
	}, nil
}

// huoxingStart maps the year-branch trine to 火星's counting start. The
// four trines partition the branches by index mod 4.
var huoxingStart = [4]ganzhi.Branch{
	ganzhi.BranchYin,  // 申子辰
	ganzhi.BranchMao,  // 巳酉丑
	ganzhi.BranchChou, // 寅午戌
	ganzhi.BranchYou,  // 亥卯未
}

// hourStarBranches places the four hour-keyed support stars. 地空 counts
// backward from 亥 and 地劫 forward; 火星 and 铃星 count forward by hour
// from trine-dependent starts.
func hourStarBranches(yearBranch, hour ganzhi.Branch) ([]starAt, error) {
	if !yearBranch.Valid() || !hour.Valid() {
		return nil, errors.NewLookupMissf("no hour-star entry for branch %d hour %d", int(yearBranch), int(hour))
	}
	h := int(hour)
	huo := huoxingStart[int(yearBranch)%4]
	ling := ganzhi.BranchXu
	if int(yearBranch)%4 == 2 { // 寅午戌
		ling = ganzhi.BranchMao
	}
	return []starAt{
		{StarDikong, ganzhi.BranchAt(11 - h)},
		{StarDijie, ganzhi.BranchAt(11 + h)},
		{StarHuoxing, huo.Shift(h)},
		{StarLingxing, ling.Shift(h)},
	}, nil
}

// brightnessRows gives each primary's grade across the branches 子 through
// 亥, one glyph per branch.
var brightnessRows = [MajorStarCount]string{
	StarZiwei:     "平庙庙旺得旺庙庙旺平得旺",
	StarTianji:    "庙陷得旺利平庙陷得旺利平",
	StarTaiyang:   "陷陷旺庙旺旺庙得得平陷陷",
	StarWuqu:      "旺庙得利庙平旺庙得利庙平",
	StarTiantong:  "旺不利平平庙陷不旺平平庙",
	StarLianzhen:  "平利庙平利陷平利庙平利陷",
	StarTianfu:    "庙庙庙得庙得旺庙得旺庙得",
	StarTaiyin:    "庙庙平陷陷陷陷平利旺旺庙",
	StarTanlang:   "旺庙平利庙陷旺庙平利庙陷",
	StarJumen:     "旺陷庙庙陷平旺陷庙庙陷旺",
	StarTianxiang: "庙庙庙陷得得庙得庙陷得得",
	StarTianliang: "庙旺庙庙庙陷庙旺陷得庙陷",
	StarQisha:     "旺庙庙旺庙平旺庙庙旺庙平",
	StarPojun:     "庙旺得旺旺平庙旺陷陷旺平",
}

var brightnessTable [MajorStarCount][ganzhi.BranchCount]Brightness

func init() {
	for s, row := range brightnessRows {
		i := 0
		for _, r := range row {
			brightnessTable[s][i] = Brightness(r)
			i++
		}
	}
}

// brightnessOf returns the grade of a primary at a branch. Stars outside
// the 14 primaries carry no grade.
func brightnessOf(s Star, b ganzhi.Branch) Brightness {
	if !s.Valid() || s.Category() != CategoryMajor || !b.Valid() {
		return BrightnessNone
	}
	return brightnessTable[s][b]
}
