package filter

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pipedag/pipedag/dag"
)

// PassResult records the outcome of one pass.
type PassResult struct {
	Pass     string
	Affected int
	Warning  string
}

// Report is the per-pass and cumulative outcome of a pipeline run.
type Report struct {
	Passes []PassResult
	Total  int
}

func (r *Report) record(pass string, affected int, warning string) {
	r.Passes = append(r.Passes, PassResult{Pass: pass, Affected: affected, Warning: warning})
	r.Total += affected
}

// Pipeline runs the fixed, ordered pass sequence over a graph. Each
// pass works on a fresh copy, so every intermediate graph stays
// available for delta reporting.
type Pipeline struct {
	mode Mode
	log  zerolog.Logger

	reachability   *Reachability
	unused         *UnusedData
	exclude        *ExcludeModules
	resolveParents bool
	trackLiveness  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMode selects remove vs highlight. The default is ModeRemove.
func WithMode(mode Mode) Option {
	return func(p *Pipeline) {
		p.mode = mode
	}
}

// WithLogger sets the logger for per-pass reporting.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithRoots enables the reachability pass for the given root data item
// names.
func WithRoots(names ...string) Option {
	return func(p *Pipeline) {
		if len(names) > 0 {
			if p.reachability == nil {
				p.reachability = &Reachability{}
			}
			p.reachability.Roots = names
		}
	}
}

// WithSourceModules switches reachability to the source-module-rooted
// variant.
func WithSourceModules(names ...string) Option {
	return func(p *Pipeline) {
		if len(names) > 0 {
			if p.reachability == nil {
				p.reachability = &Reachability{}
			}
			p.reachability.SourceModules = names
		}
	}
}

// WithUnusedData enables the unused-data pass for the given categories.
func WithUnusedData(categories ...dag.Category) Option {
	return func(p *Pipeline) {
		if len(categories) > 0 {
			p.unused = &UnusedData{Categories: categories}
		}
	}
}

// WithExcludedModules enables the module-type exclusion pass.
func WithExcludedModules(names ...string) Option {
	return func(p *Pipeline) {
		if len(names) > 0 {
			p.exclude = &ExcludeModules{Names: names}
		}
	}
}

// WithoutParentResolution disables the multi-parent resolution pass,
// which is on by default.
func WithoutParentResolution() Option {
	return func(p *Pipeline) {
		p.resolveParents = false
	}
}

// WithLivenessTracking enables the liveness edge-styling pass. Fatal
// at run time when the graph carries no liveness annotations.
func WithLivenessTracking() Option {
	return func(p *Pipeline) {
		p.trackLiveness = true
	}
}

// New creates a pipeline. Without options it only runs multi-parent
// resolution.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		mode:           ModeRemove,
		log:            zerolog.Nop(),
		resolveParents: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mode returns the removal strategy the pipeline runs with.
func (p *Pipeline) Mode() Mode {
	return p.mode
}

// Run executes the configured passes in their fixed order and returns
// the final graph with a per-pass report. The input graph is never
// mutated.
func (p *Pipeline) Run(g *dag.Graph) (*dag.Graph, Report, error) {
	var report Report
	current := g

	structural := 0 // affected count of passes 2+3, gates voided cleanup

	if p.reachability != nil {
		next, affected, err := p.applyPass(current, p.reachability)
		if err != nil {
			if !errors.Is(err, ErrNoMatchingRoots) {
				return nil, report, err
			}
			// Non-fatal: degrade to a no-op with a warning.
			p.log.Warn().Strs("roots", p.reachability.Roots).Msg("no requested root matches a candidate root, skipping reachability filter")
			report.record(p.reachability.Name(), 0, err.Error())
		} else {
			current = next
			report.record(p.reachability.Name(), affected, "")
		}
	}

	if p.unused != nil {
		next, affected, err := p.applyPass(current, p.unused)
		if err != nil {
			return nil, report, err
		}
		current = next
		structural += affected
		report.record(p.unused.Name(), affected, "")
	}

	if p.exclude != nil {
		next, affected, err := p.applyPass(current, p.exclude)
		if err != nil {
			return nil, report, err
		}
		current = next
		structural += affected
		report.record(p.exclude.Name(), affected, "")
	}

	if structural > 0 {
		cleanup := &VoidedCleanup{}
		next, affected, err := p.applyPass(current, cleanup)
		if err != nil {
			return nil, report, err
		}
		current = next
		report.record(cleanup.Name(), affected, "")
	}

	if p.resolveParents {
		resolve := &MultiParent{}
		next, affected, err := p.applyPass(current, resolve)
		if err != nil {
			return nil, report, err
		}
		current = next
		report.record(resolve.Name(), affected, "")
	}

	if p.trackLiveness {
		styling := &LivenessStyling{}
		next, styled, err := p.applyPass(current, styling)
		if err != nil {
			return nil, report, fmt.Errorf("liveness styling: %w", err)
		}
		current = next
		report.record(styling.Name(), styled, "")
	}

	p.log.Debug().Int("total_affected", report.Total).Int("nodes", current.NodeCount()).Int("edges", current.EdgeCount()).Msg("filter pipeline finished")
	return current, report, nil
}

func (p *Pipeline) applyPass(g *dag.Graph, pass Pass) (*dag.Graph, int, error) {
	next := g.Clone()
	affected, err := pass.Apply(next, p.mode)
	if err != nil {
		return nil, 0, err
	}
	p.log.Debug().Str("pass", pass.Name()).Str("mode", p.mode.String()).Int("affected", affected).Msg("filter pass applied")
	return next, affected, nil
}
