package chart

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mingli/ziwei/errors"
	"github.com/mingli/ziwei/ganzhi"
	"github.com/mingli/ziwei/logger"
)

// stage is one named step of the derivation pipeline.
type stage struct {
	name string
	run  func(*Workspace) error
}

// pipeline returns the derivation stages in run order. Each stage reads
// what earlier stages wrote, so the order is load-bearing.
func (e *Engine) pipeline() []stage {
	return []stage{
		{"calendrical", e.stageCalendrical},
		{"stems", e.stageStems},
		{"life-palace", e.stageLifePalace},
		{"names", e.stageNames},
		{"bureau", e.stageBureau},
		{"ziwei", e.stageZiwei},
		{"primary", e.stagePrimary},
		{"support", e.stageSupport},
		{"transform", e.stageTransform},
		{"limits", e.stageLimits},
		{"flow", e.stageFlow},
		{"index", e.stageIndex},
		{"influence", e.stageInfluence},
		{"freeze", e.stageFreeze},
	}
}

// stageCalendrical fixes the year pillar, its polarity, and the
// double-hour branch. The year tags key the stem rotation, the year
// support stars, and the transformation rules; polarity keys the limit
// walk direction.
func (e *Engine) stageCalendrical(ws *Workspace) error {
	ws.YearStem, ws.YearBranch = ganzhi.YearPillar(ws.Lunar.Year)
	ws.Polarity = ws.YearStem.Polarity()
	ws.HourBranch = ganzhi.HourBranch(ws.Input.Hour)

	ws.trace("calendrical", fmt.Sprintf("%s%s年 %s %s时",
		ws.YearStem, ws.YearBranch, ws.Polarity, ws.HourBranch))
	logger.StageLogger(ws.logger(), "calendrical").Debugw("year pillar fixed",
		logger.FieldStem, ws.YearStem.Glyph(),
		logger.FieldBranch, ws.YearBranch.Glyph(),
		"polarity", ws.Polarity.String(),
		"hour_branch", ws.HourBranch.Glyph(),
	)
	return nil
}

// stageStems rotates stems around the ring: the year group's anchor stem
// lands on 寅 and runs clockwise. Year stems five apart share a rotation.
func (e *Engine) stageStems(ws *Workspace) error {
	anchor, err := anchorStemFor(ws.YearStem)
	if err != nil {
		return err
	}
	for i := range ws.Palaces {
		ws.Palaces[i].Stem = anchor.Shift(i)
	}

	ws.trace("stems", fmt.Sprintf("%s起%s", anchor, ganzhi.BranchYin))
	logger.StageLogger(ws.logger(), "stems").Debugw("stem rotation applied",
		logger.FieldStem, anchor.Glyph(),
	)
	return nil
}

// stageLifePalace locates the life and body palaces from the birth month
// and double-hour. The branch lookups are total over valid input; the
// ring scan resolving each branch to a palace must always hit.
func (e *Engine) stageLifePalace(ws *Workspace) error {
	lifeBranch, err := lifePalaceBranch(ws.Lunar.Month, ws.HourBranch)
	if err != nil {
		return err
	}
	bodyBranch, err := bodyPalaceBranch(ws.Lunar.Month, ws.HourBranch)
	if err != nil {
		return err
	}

	life, body := 0, 0
	for i := range ws.Palaces {
		if ws.Palaces[i].Branch == lifeBranch {
			life = ws.Palaces[i].Position
		}
		if ws.Palaces[i].Branch == bodyBranch {
			body = ws.Palaces[i].Position
		}
	}
	if life == 0 {
		return errors.NewInvariantf("no palace carries life branch %s", lifeBranch)
	}
	if body == 0 {
		return errors.NewInvariantf("no palace carries body branch %s", bodyBranch)
	}

	ws.LifePos = life
	ws.BodyPos = body
	ws.PalaceAt(body).Body = true

	ws.trace("life-palace", fmt.Sprintf("命宫%s 身宫%s", lifeBranch, bodyBranch))
	logger.StageLogger(ws.logger(), "life-palace").Debugw("life palace located",
		logger.FieldBranch, lifeBranch.Glyph(),
		"body_branch", bodyBranch.Glyph(),
	)
	return nil
}

// stageNames walks the twelve domain names counter-clockwise from the
// life palace.
func (e *Engine) stageNames(ws *Workspace) error {
	if ws.LifePos == 0 {
		return errors.NewInvariantf("life palace not located before naming")
	}
	lifeIdx := ws.LifePos - 1
	for i := 0; i < PalaceCount; i++ {
		idx := ((lifeIdx-i)%PalaceCount + PalaceCount) % PalaceCount
		ws.Palaces[idx].Name = PalaceName(i)
	}
	return nil
}

// stageBureau classifies the life palace's pillar into its five-element
// bureau, which sets both the anchor lookup and the decade start age.
func (e *Engine) stageBureau(ws *Workspace) error {
	life := ws.LifePalace()
	b, err := bureauFor(life.Stem, life.Branch)
	if err != nil {
		return err
	}
	ws.Bureau = b

	ws.trace("bureau", b.Glyph())
	logger.StageLogger(ws.logger(), "bureau").Debugw("bureau classified",
		logger.FieldBureau, b.Glyph(),
		logger.FieldStem, life.Stem.Glyph(),
		logger.FieldBranch, life.Branch.Glyph(),
	)
	return nil
}

// stageZiwei places the anchor star from the bureau and the lunar day.
func (e *Engine) stageZiwei(ws *Workspace) error {
	zb, err := ziweiBranch(ws.Bureau, ws.Lunar.Day)
	if err != nil {
		return err
	}
	p := ws.PalaceWithBranch(zb)
	ws.ZiweiPos = p.Position

	log := logger.StageLogger(ws.logger(), "ziwei")
	e.place(ws, log, p, StarZiwei, &p.Majors)

	ws.trace("ziwei", zb.Glyph())
	log.Debugw("anchor placed", logger.FieldBranch, zb.Glyph())
	return nil
}

// stagePrimary lays the 13 remaining primaries off the anchor: the 紫微
// chain counts backward with fixed gaps, the 天府 chain forward from the
// anchor's mirror across the 寅申 axis.
func (e *Engine) stagePrimary(ws *Workspace) error {
	if !ws.PalaceAt(ws.ZiweiPos).HasMajor() {
		return errors.NewInvariantf("anchor star missing before primary layout")
	}
	log := logger.StageLogger(ws.logger(), "primary")
	layout := majorLayout(PositionBranch(ws.ZiweiPos))
	for s := StarZiwei + 1; int(s) < MajorStarCount; s++ {
		p := ws.PalaceWithBranch(layout[s])
		e.place(ws, log, p, s, &p.Majors)
	}
	return nil
}

// stageSupport places the month/hour auxiliaries, then the year, month,
// day, and hour support stars into their timeframe lists.
func (e *Engine) stageSupport(ws *Workspace) error {
	log := logger.StageLogger(ws.logger(), "support")

	aux, err := auxiliaryBranches(ws.Lunar.Month, ws.HourBranch)
	if err != nil {
		return err
	}
	for _, sa := range aux {
		p := ws.PalaceWithBranch(sa.branch)
		e.place(ws, log, p, sa.star, &p.Auxiliaries)
	}

	year, err := yearStarBranches(ws.YearStem, ws.YearBranch)
	if err != nil {
		return err
	}
	for _, sa := range year {
		p := ws.PalaceWithBranch(sa.branch)
		e.place(ws, log, p, sa.star, &p.YearStars)
	}

	month, err := monthStarBranches(ws.Lunar.Month)
	if err != nil {
		return err
	}
	for _, sa := range month {
		p := ws.PalaceWithBranch(sa.branch)
		e.place(ws, log, p, sa.star, &p.MonthStars)
	}

	day, err := dayStarBranches(ws.Lunar.Month, ws.Lunar.Day)
	if err != nil {
		return err
	}
	for _, sa := range day {
		p := ws.PalaceWithBranch(sa.branch)
		e.place(ws, log, p, sa.star, &p.DayStars)
	}

	hour, err := hourStarBranches(ws.YearBranch, ws.HourBranch)
	if err != nil {
		return err
	}
	for _, sa := range hour {
		p := ws.PalaceWithBranch(sa.branch)
		e.place(ws, log, p, sa.star, &p.HourStars)
	}
	return nil
}

// stageTransform applies the birth-year stem's four transformation tags.
// Each rule tags the first palace in ring order housing its target;
// placement uniqueness makes the target unambiguous, but the scan order
// stays fixed anyway.
func (e *Engine) stageTransform(ws *Workspace) error {
	rule, err := transformRule(ws.YearStem)
	if err != nil {
		return err
	}
	log := logger.StageLogger(ws.logger(), "transform")
	for t := TransformLu; int(t) < TransformCount; t++ {
		target := rule[t]
		var tagged *PlacedStar
		var at *Palace
		for pos := 1; pos <= PalaceCount; pos++ {
			p := ws.PalaceAt(pos)
			if ps := p.findStar(target); ps != nil {
				tagged, at = ps, p
				break
			}
		}
		if tagged == nil {
			return errors.NewLookupMissf("transformation %s target %s not on the chart", t, target)
		}
		tagged.Transforms = append(tagged.Transforms, t)

		ws.trace("transform", fmt.Sprintf("%s化%s", target, t))
		log.Debugw("transformation tagged",
			logger.FieldStar, target.Glyph(),
			"tag", t.Glyph(),
			logger.FieldBranch, at.Branch.Glyph(),
		)
	}
	return nil
}

// stageLimits assigns decade age bands outward from the life palace. The
// walk runs clockwise for yang males and yin females, counter-clockwise
// otherwise; the bureau number is the starting age.
func (e *Engine) stageLimits(ws *Workspace) error {
	if !ws.Bureau.Valid() {
		return errors.NewInvariantf("bureau not classified before limits")
	}
	start := ws.Bureau.Number()
	step := -1
	if (ws.Input.Gender == GenderMale) == (ws.Polarity == ganzhi.Yang) {
		step = 1
	}
	for i := 0; i < PalaceCount; i++ {
		p := ws.PalaceAt(ws.LifePos + i*step)
		p.Limit = LimitBand{StartAge: start + 10*i, EndAge: start + 10*i + 9}
	}

	logger.StageLogger(ws.logger(), "limits").Debugw("decade bands assigned",
		"start_age", start,
		"clockwise", step == 1,
	)
	return nil
}

// stageFlow gives each palace the one year in the twelve-year window
// whose branch matches the palace branch.
func (e *Engine) stageFlow(ws *Workspace) error {
	base := ws.Input.AsOfYear
	for i := range ws.Palaces {
		p := &ws.Palaces[i]
		found := false
		for y := base; y < base+PalaceCount; y++ {
			if ganzhi.YearBranch(y) == p.Branch {
				p.Flow = FlowYear{Year: y, Stem: ganzhi.YearStem(y)}
				found = true
				break
			}
		}
		if !found {
			return errors.NewInvariantf("no year in %d..%d carries branch %s",
				base, base+PalaceCount-1, p.Branch)
		}
	}
	return nil
}

// stageIndex builds the star index and verifies placement totality.
func (e *Engine) stageIndex(ws *Workspace) error {
	idx, err := buildStarIndex(ws)
	if err != nil {
		return err
	}
	ws.Index = idx

	if logger.ShouldOutput(e.verbosity, logger.OutputIndexDump) {
		log := logger.StageLogger(ws.logger(), "index")
		for _, entry := range starRegistry {
			loc := idx[entry.star]
			log.Debugw("index entry",
				logger.FieldStar, entry.glyph,
				logger.FieldBranch, loc.Branch.Glyph(),
				logger.FieldPalace, loc.Palace.Glyph(),
			)
		}
	}
	return nil
}

// stageInfluence resolves per-palace transformation influences, own stem
// against own stars and against the opposite palace's stars.
func (e *Engine) stageInfluence(ws *Workspace) error {
	return resolveInfluences(ws)
}

// stageFreeze deep-copies the workspace into the immutable result.
func (e *Engine) stageFreeze(ws *Workspace) error {
	r, err := freeze(ws)
	if err != nil {
		return err
	}
	ws.result = r
	return nil
}

// place appends a star to one of a palace's lists, grading primaries as
// they land.
func (e *Engine) place(ws *Workspace, log *zap.SugaredLogger, p *Palace, s Star, list *[]PlacedStar) {
	ps := PlacedStar{Star: s, Brightness: brightnessOf(s, p.Branch)}
	*list = append(*list, ps)

	if logger.ShouldOutput(e.verbosity, logger.OutputPlacements) {
		kv := []interface{}{
			logger.FieldStar, s.Glyph(),
			logger.FieldBranch, p.Branch.Glyph(),
			logger.FieldPalace, p.Name.Glyph(),
		}
		if ps.Brightness != BrightnessNone {
			kv = append(kv, "grade", string(ps.Brightness))
		}
		log.Debugw("star placed", kv...)
	}
}
