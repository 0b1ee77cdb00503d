package patch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/logging"
	"github.com/Manu343726/bodypatch/pkg/patch/edit"
	"github.com/Manu343726/bodypatch/pkg/patch/match"
	"github.com/Manu343726/bodypatch/pkg/utils"
	"github.com/google/uuid"
	"golang.org/x/tools/container/intsets"
)

// Orchestrator runs the routes of target methods. It is created once by its owner at start-up and
// keeps no global state: running it again is up to the owner.
type Orchestrator struct {
	logger *slog.Logger
	newRun func() string
}

// Option customizes an orchestrator
type Option func(*Orchestrator)

// WithRunIDs overrides the generator of run identifiers attached to diagnostics
func WithRunIDs(generator func() string) Option {
	return func(o *Orchestrator) {
		o.newRun = generator
	}
}

// NewOrchestrator creates an orchestrator reporting diagnostics to the given logger. A nil logger
// discards diagnostics
func NewOrchestrator(logger *slog.Logger, options ...Option) *Orchestrator {
	if logger == nil {
		logger = logging.Discard()
	}

	o := &Orchestrator{
		logger: logger,
		newRun: uuid.NewString,
	}

	for _, option := range options {
		option(o)
	}

	return o
}

// run state of a Patch() call
type run struct {
	log     *slog.Logger
	method  il.MethodID
	current il.Stream
	// Positions of the current stream written by routes applied earlier in this run
	touched intsets.Sparse
}

// Patch runs the routes in order against the current, possibly already edited, stream of the
// method and returns the final stream and one result per route. It never panics: a failing route is
// rolled back and reported, and the remaining routes keep running on the last good stream.
// Every route that did not match or failed is reported with exactly one warning.
func (o *Orchestrator) Patch(method il.MethodID, original il.Stream, routes []Route) (final il.Stream, results []Result) {
	r := &run{
		log:     o.logger.With(slog.String("run", o.newRun()), slog.String("method", method.String())),
		method:  method,
		current: original,
	}

	results = make([]Result, 0, len(routes))

	defer func() {
		if fault := recover(); fault != nil {
			r.log.Error("unexpected fault patching method, keeping last good body",
				slog.Any("fault", fault), slog.String("stack", string(debug.Stack())))
			final = r.current
		}
	}()

	for _, route := range routes {
		results = append(results, r.apply(route))
	}

	summary := Summarize(results)
	r.log.Debug("method patched",
		slog.Int("applied", summary.Applied), slog.Int("notMatched", summary.NotMatched), slog.Int("failed", summary.Failed),
		slog.Int("before", original.Len()), slog.Int("after", r.current.Len()))

	return r.current, results
}

func (r *run) apply(route Route) (result Result) {
	log := r.log.With(slog.String("route", route.Name))
	anchor := -1

	defer func() {
		if fault := recover(); fault != nil {
			result = failed(r.method, route, anchor, utils.MakeError(ErrInternalFault, "%v", fault))
			log.Error(result.Diagnostic, slog.Any("fault", fault), slog.String("stack", string(debug.Stack())))
		}
	}()

	if err := route.Validate(); err != nil {
		result = failed(r.method, route, anchor, err)
		r.warn(log, route, result)
		return result
	}

	strategy := route.strategy()
	outcome := strategy.Find(r.current, route.Rule)

	if !outcome.Found {
		log.Log(context.Background(), logging.LevelTrace, "anchor search failed",
			slog.String("strategy", strategy.String()), slog.Int("closest", outcome.Closest.Anchor), slog.String("rule", route.Rule.String()))

		result = notMatched(r.method, route, outcome.Reason)
		r.warn(log, route, result)
		return result
	}

	anchor = outcome.Anchor
	log.Log(context.Background(), logging.LevelTrace, "anchor found",
		slog.String("strategy", strategy.String()), slog.Int("anchor", anchor))

	for _, position := range route.Plan.Footprint(anchor) {
		if r.touched.Has(position) {
			result = failed(r.method, route, anchor, utils.MakeError(edit.ErrApplyConflict,
				"instruction %d was already edited by an earlier route of this run", position))
			r.warn(log, route, result)
			return result
		}
	}

	done, err := edit.Apply(r.current, anchor, route.Region(), route.Plan)
	if err != nil {
		result = failed(r.method, route, anchor, err)
		r.warn(log, route, result)
		return result
	}

	r.commit(done)

	result = applied(r.method, route, anchor)
	log.Debug(result.Diagnostic, slog.Int("anchor", anchor), slog.String("edits", route.Plan.String()))
	return result
}

func (r *run) warn(log *slog.Logger, route Route, result Result) {
	log.Warn(result.Diagnostic,
		slog.String("feature", feature(route)), slog.String("cause", result.Cause()), slog.Any("reason", result.Err))
}

// Replaces the current stream, carrying the touched positions over to the new stream positions
func (r *run) commit(done edit.Applied) {
	var touched intsets.Sparse

	for _, position := range r.touched.AppendTo(nil) {
		if mapped := done.Mapping[position]; mapped >= 0 {
			touched.Insert(mapped)
		}
	}

	for _, position := range done.Written {
		touched.Insert(position)
	}

	r.touched.Copy(&touched)
	r.current = done.Stream
}

// Skip reports every route of a method whose body could not be obtained as NotMatched, with one
// warning each
func (o *Orchestrator) Skip(method il.MethodID, routes []Route, cause error) []Result {
	log := o.logger.With(slog.String("run", o.newRun()), slog.String("method", method.String()))
	results := make([]Result, 0, len(routes))

	for _, route := range routes {
		result := notMatched(method, route, fmt.Errorf("%w: method body unavailable: %w", match.ErrPatternNotFound, cause))
		log.With(slog.String("route", route.Name)).Warn(result.Diagnostic,
			slog.String("feature", feature(route)), slog.String("cause", result.Cause()), slog.Any("reason", result.Err))
		results = append(results, result)
	}

	return results
}
