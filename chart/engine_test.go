package chart

import (
	"context"
	"sort"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mingli/ziwei/errors"
	"github.com/mingli/ziwei/ganzhi"
	"github.com/mingli/ziwei/lunar"
)

// goldenInput is a fully hand-derived reference subject: 庚午 year, lunar
// 五月廿三, 巳 double-hour, male.
func goldenInput() Input {
	return Input{
		Year:     1990,
		Month:    6,
		Day:      15,
		Hour:     10,
		Gender:   GenderMale,
		Label:    "庚午男命",
		AsOfYear: 2022,
	}
}

type goldenChart struct {
	YearStem    string            `toml:"year_stem"`
	YearBranch  string            `toml:"year_branch"`
	Polarity    string            `toml:"polarity"`
	Lunar       string            `toml:"lunar"`
	LifeBranch  string            `toml:"life_branch"`
	BodyBranch  string            `toml:"body_branch"`
	Bureau      string            `toml:"bureau"`
	ZiweiBranch string            `toml:"ziwei_branch"`
	Headline    string            `toml:"headline"`
	Stars       map[string]string `toml:"stars"`
	Transforms  map[string]string `toml:"transforms"`
}

func TestComputeGoldenChart(t *testing.T) {
	var want goldenChart
	_, err := toml.DecodeFile("testdata/golden_19900615.toml", &want)
	require.NoError(t, err)
	require.Len(t, want.Stars, len(starRegistry), "fixture must pin every star")

	r, err := NewEngine().Compute(context.Background(), goldenInput())
	require.NoError(t, err)

	assert.Equal(t, want.YearStem, r.YearStem.Glyph())
	assert.Equal(t, want.YearBranch, r.YearBranch.Glyph())
	assert.Equal(t, want.Polarity, r.Polarity.String())
	assert.Equal(t, want.Lunar, r.Lunar.String())
	assert.Equal(t, want.Bureau, r.Bureau.Glyph())
	assert.Equal(t, want.LifeBranch, r.LifePalace().Branch.Glyph())
	assert.Equal(t, want.BodyBranch, r.BodyPalace().Branch.Glyph())
	assert.True(t, r.BodyPalace().Body)
	assert.Equal(t, want.ZiweiBranch, PositionBranch(r.ZiweiPos).Glyph())
	assert.Equal(t, want.Headline, r.Headline)

	for glyph, branch := range want.Stars {
		s, ok := StarFromGlyph(glyph)
		require.True(t, ok, "unknown fixture star %s", glyph)
		loc, err := r.Index.Locate(s)
		require.NoError(t, err, "star %s missing from index", glyph)
		assert.Equal(t, branch, loc.Branch.Glyph(), "star %s", glyph)
	}

	transformByGlyph := map[string]Transform{
		"禄": TransformLu,
		"权": TransformQuan,
		"科": TransformKe,
		"忌": TransformJi,
	}
	tagged := map[Transform][]Star{}
	for i := range r.Palaces {
		for _, ps := range r.Palaces[i].AllStars() {
			for _, tr := range ps.Transforms {
				tagged[tr] = append(tagged[tr], ps.Star)
			}
		}
	}
	for trGlyph, starGlyph := range want.Transforms {
		tr, ok := transformByGlyph[trGlyph]
		require.True(t, ok, "unknown fixture transform %s", trGlyph)
		require.Len(t, tagged[tr], 1, "transform %s must tag exactly one star", trGlyph)
		assert.Equal(t, starGlyph, tagged[tr][0].Glyph(), "transform %s", trGlyph)
	}
}

func TestComputePalaceNames(t *testing.T) {
	r, err := NewEngine().Compute(context.Background(), goldenInput())
	require.NoError(t, err)

	// Life sits at 丑; the remaining names walk the ring counter-clockwise.
	wantNames := map[ganzhi.Branch]PalaceName{
		ganzhi.BranchChou: PalaceLife,
		ganzhi.BranchZi:   PalaceSiblings,
		ganzhi.BranchHai:  PalaceSpouse,
		ganzhi.BranchXu:   PalaceChildren,
		ganzhi.BranchYou:  PalaceWealth,
		ganzhi.BranchShen: PalaceHealth,
		ganzhi.BranchWei:  PalaceTravel,
		ganzhi.BranchWu:   PalaceFriends,
		ganzhi.BranchSi:   PalaceCareer,
		ganzhi.BranchChen: PalaceProperty,
		ganzhi.BranchMao:  PalaceFortune,
		ganzhi.BranchYin:  PalaceParents,
	}
	seen := map[PalaceName]bool{}
	for i := range r.Palaces {
		p := &r.Palaces[i]
		assert.Equal(t, wantNames[p.Branch], p.Name, "palace %s", p.Branch)
		assert.False(t, seen[p.Name], "duplicate palace name %s", p.Name)
		seen[p.Name] = true
	}
}

func TestComputePalaceStems(t *testing.T) {
	r, err := NewEngine().Compute(context.Background(), goldenInput())
	require.NoError(t, err)

	// 庚 year anchors 戊 on 寅 and the stems rotate from there.
	want := []ganzhi.Stem{
		ganzhi.StemWu, ganzhi.StemJi, ganzhi.StemGeng, ganzhi.StemXin,
		ganzhi.StemRen, ganzhi.StemGui, ganzhi.StemJia, ganzhi.StemYi,
		ganzhi.StemBing, ganzhi.StemDing, ganzhi.StemWu, ganzhi.StemJi,
	}
	for pos := 1; pos <= PalaceCount; pos++ {
		assert.Equal(t, want[pos-1], r.PalaceAt(pos).Stem, "position %d", pos)
	}
}

func TestComputeDecadeLimits(t *testing.T) {
	eng := NewEngine()

	// Yang male: bands run clockwise from the life palace, opening at the
	// bureau number.
	male, err := eng.Compute(context.Background(), goldenInput())
	require.NoError(t, err)
	assert.Equal(t, LimitBand{StartAge: 6, EndAge: 15}, male.PalaceAt(12).Limit)
	assert.Equal(t, LimitBand{StartAge: 16, EndAge: 25}, male.PalaceAt(1).Limit)
	assert.Equal(t, LimitBand{StartAge: 26, EndAge: 35}, male.PalaceAt(2).Limit)
	assert.Equal(t, LimitBand{StartAge: 116, EndAge: 125}, male.PalaceAt(11).Limit)

	// Yang female: same opening band, walking the other way.
	in := goldenInput()
	in.Gender = GenderFemale
	female, err := eng.Compute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, LimitBand{StartAge: 6, EndAge: 15}, female.PalaceAt(12).Limit)
	assert.Equal(t, LimitBand{StartAge: 16, EndAge: 25}, female.PalaceAt(11).Limit)
	assert.Equal(t, LimitBand{StartAge: 116, EndAge: 125}, female.PalaceAt(1).Limit)

	// Swapping gender flips the walk direction and nothing else.
	assert.Equal(t, male.Index, female.Index)
	assert.Equal(t, male.LifePos, female.LifePos)
	assert.Equal(t, male.Bureau, female.Bureau)

	// The twelve bands partition [bureau, bureau+119].
	for _, r := range []*Result{male, female} {
		bands := make([]LimitBand, 0, PalaceCount)
		for i := range r.Palaces {
			bands = append(bands, r.Palaces[i].Limit)
		}
		sort.Slice(bands, func(i, j int) bool { return bands[i].StartAge < bands[j].StartAge })
		start := r.Bureau.Number()
		for i, band := range bands {
			assert.Equal(t, LimitBand{StartAge: start + 10*i, EndAge: start + 10*i + 9}, band)
		}
	}
}

type failingCalendar struct{}

func (failingCalendar) FromYMD(int, int, int) (lunar.Date, error) {
	return lunar.Date{}, errors.NewLookupMissf("no table row")
}

func TestComputeCalendarOption(t *testing.T) {
	eng := NewEngine(WithCalendar(failingCalendar{}))
	r, err := eng.Compute(context.Background(), goldenInput())
	assert.Nil(t, r)
	require.Error(t, err)
	assert.True(t, errors.IsLookupMiss(err))
	se, ok := AsStageError(err)
	require.True(t, ok)
	assert.Equal(t, "lunisolar", se.Stage)
}

func TestComputeAnnualFlow(t *testing.T) {
	r, err := NewEngine().Compute(context.Background(), goldenInput())
	require.NoError(t, err)

	// 2022 is a 寅 year, so the window anchors there and each palace takes
	// the unique matching year in 2022..2033.
	cases := []struct {
		branch ganzhi.Branch
		year   int
		stem   ganzhi.Stem
	}{
		{ganzhi.BranchYin, 2022, ganzhi.StemRen},
		{ganzhi.BranchWu, 2026, ganzhi.StemBing},
		{ganzhi.BranchChou, 2033, ganzhi.StemGui},
	}
	for _, c := range cases {
		p := r.PalaceAt(BranchPosition(c.branch))
		assert.Equal(t, FlowYear{Year: c.year, Stem: c.stem}, p.Flow, "branch %s", c.branch)
	}

	years := map[int]bool{}
	for i := range r.Palaces {
		y := r.Palaces[i].Flow.Year
		assert.GreaterOrEqual(t, y, 2022)
		assert.Less(t, y, 2034)
		assert.False(t, years[y], "year %d assigned twice", y)
		years[y] = true
		assert.Equal(t, r.Palaces[i].Branch, ganzhi.YearBranch(y), "flow year branch mismatch")
	}
}

func TestComputeIndexCoversEveryStar(t *testing.T) {
	r, err := NewEngine().Compute(context.Background(), goldenInput())
	require.NoError(t, err)

	require.Len(t, r.Index, len(starRegistry))
	placed := 0
	for i := range r.Palaces {
		p := &r.Palaces[i]
		for _, ps := range p.AllStars() {
			placed++
			loc, err := r.Index.Locate(ps.Star)
			require.NoError(t, err)
			assert.Equal(t, p.Position, loc.Position, "star %s", ps.Star)
			assert.Equal(t, p.Branch, loc.Branch, "star %s", ps.Star)
			assert.Equal(t, p.Name, loc.Palace, "star %s", ps.Star)
			assert.Equal(t, ps.Star.Category(), loc.Category, "star %s", ps.Star)
		}
	}
	assert.Equal(t, len(starRegistry), placed, "every star placed exactly once")

	_, err = r.Index.Locate(Star(999))
	assert.True(t, errors.IsLookupMiss(err))
}

func TestComputeDeterministic(t *testing.T) {
	eng := NewEngine()
	first, err := eng.Compute(context.Background(), goldenInput())
	require.NoError(t, err)
	second, err := eng.Compute(context.Background(), goldenInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.ChartID, second.ChartID)
	assert.Equal(t, "z", first.ChartID[:1])

	second.ChartID = first.ChartID
	assert.Equal(t, first, second)
}

func TestComputeHourFolding(t *testing.T) {
	// 23:00 and 00:00 both fall in the 子 double-hour; everything except
	// the echoed input matches.
	eng := NewEngine()

	early := goldenInput()
	early.Hour = 0
	late := goldenInput()
	late.Hour = 23

	a, err := eng.Compute(context.Background(), early)
	require.NoError(t, err)
	b, err := eng.Compute(context.Background(), late)
	require.NoError(t, err)

	assert.Equal(t, a.LifePos, b.LifePos)
	assert.Equal(t, a.BodyPos, b.BodyPos)
	assert.Equal(t, a.Bureau, b.Bureau)
	assert.Equal(t, a.Index, b.Index)
}

func TestComputeInputErrors(t *testing.T) {
	eng := NewEngine()
	mutate := func(f func(*Input)) Input {
		in := goldenInput()
		f(&in)
		return in
	}

	cases := []struct {
		name  string
		in    Input
		stage string
	}{
		{"month out of range", mutate(func(in *Input) { in.Month = 13 }), "input"},
		{"day out of range", mutate(func(in *Input) { in.Day = 32 }), "input"},
		{"hour out of range", mutate(func(in *Input) { in.Hour = 24 }), "input"},
		{"year below window", mutate(func(in *Input) { in.Year = 1899 }), "input"},
		{"flow year above window", mutate(func(in *Input) { in.AsOfYear = 2101 }), "input"},
		{"gender unset", mutate(func(in *Input) { in.Gender = GenderUnknown }), "input"},
		{"nonexistent calendar date", mutate(func(in *Input) {
			in.Year, in.Month, in.Day = 2023, 2, 29
		}), "lunisolar"},
		{"day past end of month", mutate(func(in *Input) { in.Month, in.Day = 6, 31 }), "lunisolar"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := eng.Compute(context.Background(), c.in)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.IsInvalidInput(err), "want invalid input, got %v", err)
			se, ok := AsStageError(err)
			require.True(t, ok)
			assert.Equal(t, c.stage, se.Stage)
		})
	}
}

func TestComputeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := NewEngine().Compute(ctx, goldenInput())
	assert.Nil(t, r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestComputeTrace(t *testing.T) {
	plain, err := NewEngine().Compute(context.Background(), goldenInput())
	require.NoError(t, err)
	assert.Nil(t, plain.Trace)

	traced, err := NewEngine(WithTracing()).Compute(context.Background(), goldenInput())
	require.NoError(t, err)
	require.NotEmpty(t, traced.Trace)
	assert.Equal(t, "calendrical", traced.Trace[0].Stage)
}

func TestClonePlacedDetaches(t *testing.T) {
	src := []PlacedStar{{Star: StarWuqu, Transforms: []Transform{TransformQuan}}}
	out := clonePlaced(src)

	src[0].Transforms[0] = TransformJi
	src[0].Star = StarPojun

	assert.Equal(t, StarWuqu, out[0].Star)
	assert.Equal(t, TransformQuan, out[0].Transforms[0])
}

func TestNewChartID(t *testing.T) {
	a := NewChartID()
	b := NewChartID()
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('z'), a[0])
	assert.Greater(t, len(a), 20)
}
