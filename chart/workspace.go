package chart

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mingli/ziwei/errors"
	"github.com/mingli/ziwei/ganzhi"
	"github.com/mingli/ziwei/logger"
	"github.com/mingli/ziwei/lunar"
)

// Workspace is the mutable chart under construction. Stages read what
// earlier stages wrote and fill in their own slice of the state; nothing
// here is shared outside the pipeline until the freeze stage copies it
// into a Result.
type Workspace struct {
	Input Input

	// ChartID is the reference tag carried through logs and the result.
	ChartID string

	// Lunar is the converted birth date the whole derivation runs on.
	Lunar lunar.Date

	// YearStem, YearBranch, Polarity come from the calendrical resolver.
	YearStem   ganzhi.Stem
	YearBranch ganzhi.Branch
	Polarity   ganzhi.Polarity

	// HourBranch is the double-hour branch of the birth hour.
	HourBranch ganzhi.Branch

	// Palaces is the fixed ring, indexed by position-1.
	Palaces [PalaceCount]Palace

	// LifePos and BodyPos are ring positions, set by the location stage.
	LifePos int
	BodyPos int

	// Bureau is the five-element classification of the life palace.
	Bureau Bureau

	// ZiweiPos is the anchor star's ring position.
	ZiweiPos int

	// Index locates every placed star once placement is done.
	Index StarIndex

	// Trace accumulates per-stage notes when tracing is enabled.
	Trace []TraceEntry

	tracing bool
	log     *zap.SugaredLogger

	// result is written by the freeze stage and handed out by the engine.
	result *Result
}

// logger returns the per-derivation logger, falling back to the package
// global so workspaces built directly in tests still log safely.
func (ws *Workspace) logger() *zap.SugaredLogger {
	if ws.log == nil {
		return logger.Logger
	}
	return ws.log
}

// TraceEntry is one diagnostic breadcrumb from a pipeline stage.
type TraceEntry struct {
	Stage string `json:"stage"`
	Note  string `json:"note"`
}

// newWorkspace seeds the fixed ring: positions 1..12 with their permanent
// branches. Everything else starts zero.
func newWorkspace(in Input, tracing bool) *Workspace {
	ws := &Workspace{Input: in, tracing: tracing}
	for i := range ws.Palaces {
		ws.Palaces[i].Position = i + 1
		ws.Palaces[i].Branch = PositionBranch(i + 1)
	}
	return ws
}

// PalaceAt returns the palace at a ring position, 1..12.
func (ws *Workspace) PalaceAt(position int) *Palace {
	return &ws.Palaces[((position-1)%PalaceCount+PalaceCount)%PalaceCount]
}

// PalaceWithBranch returns the palace permanently carrying the branch.
func (ws *Workspace) PalaceWithBranch(b ganzhi.Branch) *Palace {
	return ws.PalaceAt(BranchPosition(b))
}

// PalaceNamed scans the ring for the palace holding a semantic name.
// Names are total after the naming stage, so a miss is an invariant
// failure, not user error.
func (ws *Workspace) PalaceNamed(name PalaceName) (*Palace, error) {
	for i := range ws.Palaces {
		if ws.Palaces[i].Name == name {
			return &ws.Palaces[i], nil
		}
	}
	return nil, errors.NewInvariantf("no palace named %s on the ring", name)
}

// LifePalace returns the life palace. Valid after the location stage.
func (ws *Workspace) LifePalace() *Palace {
	return ws.PalaceAt(ws.LifePos)
}

// Opposite returns the palace 6 positions across from p.
func (ws *Workspace) Opposite(p *Palace) *Palace {
	return ws.PalaceAt(OppositePosition(p.Position))
}

func (ws *Workspace) trace(stage, note string) {
	if !ws.tracing {
		return
	}
	ws.Trace = append(ws.Trace, TraceEntry{Stage: stage, Note: note})
}

// snapshot renders a one-line ring summary for dump logging: each branch
// followed by the stars it currently holds.
func (ws *Workspace) snapshot() string {
	var b strings.Builder
	for i := range ws.Palaces {
		p := &ws.Palaces[i]
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Branch.Glyph())
		b.WriteByte('[')
		for j, ps := range p.AllStars() {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(ps.Star.Glyph())
		}
		b.WriteByte(']')
	}
	return b.String()
}
