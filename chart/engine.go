package chart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"go.uber.org/zap"

	"github.com/mingli/ziwei/errors"
	"github.com/mingli/ziwei/logger"
	"github.com/mingli/ziwei/lunar"
)

// Calendar converts a Gregorian birth date to its lunisolar form. The
// packed-table converter in the lunar package is the production
// implementation.
type Calendar interface {
	FromYMD(year, month, day int) (lunar.Date, error)
}

// Engine derives natal charts. It holds no per-chart state; concurrent
// Compute calls are independent.
type Engine struct {
	cal       Calendar
	log       *zap.SugaredLogger
	verbosity int
	tracing   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithVerbosity passes the CLI -v count through so placement and dump
// logging can gate on it.
func WithVerbosity(v int) Option {
	return func(e *Engine) { e.verbosity = v }
}

// WithTracing records per-stage notes into the result.
func WithTracing() Option {
	return func(e *Engine) { e.tracing = true }
}

// WithLogger replaces the component logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCalendar replaces the lunisolar converter.
func WithCalendar(c Calendar) Option {
	return func(e *Engine) { e.cal = c }
}

// NewEngine builds a chart engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cal: lunar.Calendar{},
		log: logger.ComponentLogger("chart.engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewChartID returns a fresh chart reference: z plus the base58 form of a
// random UUID.
func NewChartID() string {
	u := uuid.New()
	return "z" + base58.Encode(u[:])
}

// Compute validates in, converts the birth date, and runs the pipeline.
// The returned Result shares no state with the engine or the workspace.
func (e *Engine) Compute(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()

	if err := in.Validate(); err != nil {
		return nil, NewStageError("input", err)
	}

	ld, err := e.cal.FromYMD(in.Year, in.Month, in.Day)
	if err != nil {
		return nil, NewStageError("lunisolar", err)
	}

	chartID := NewChartID()
	log := e.log.With(logger.FieldChartID, chartID)

	if logger.ShouldOutput(e.verbosity, logger.OutputConversion) {
		log.Infow("lunisolar conversion",
			"gregorian", fmt.Sprintf("%04d-%02d-%02d", in.Year, in.Month, in.Day),
			"lunar", ld.String(),
		)
	}

	ws := newWorkspace(in, e.tracing)
	ws.ChartID = chartID
	ws.Lunar = ld
	ws.log = log

	for _, st := range e.pipeline() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "derivation canceled before stage %s", st.name)
		}
		if err := st.run(ws); err != nil {
			log.Errorw("stage failed",
				logger.FieldStage, st.name,
				logger.FieldError, err,
			)
			return nil, NewStageError(st.name, err)
		}
		if logger.ShouldOutput(e.verbosity, logger.OutputWorkspaceDump) {
			log.Debugw("workspace after stage",
				logger.FieldStage, st.name,
				"ring", ws.snapshot(),
			)
		}
	}
	if ws.result == nil {
		return nil, errors.NewInvariantf("pipeline finished without freezing a result")
	}

	if logger.ShouldOutput(e.verbosity, logger.OutputTiming) {
		log.Infow("chart derived",
			logger.FieldBureau, ws.Bureau.Glyph(),
			logger.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}

	return ws.result, nil
}
