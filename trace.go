package potrace

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidArgument is wrapped by all errors reported for out-of-range
// options or an invalid raster. It is returned before the pipeline starts.
var ErrInvalidArgument = errors.New("invalid argument")

// ProgressLevel identifies the pipeline phase a progress report refers to.
type ProgressLevel int

const (
	// ProgressPathList covers contour extraction and despeckling.
	ProgressPathList ProgressLevel = iota
	// ProgressTracing covers the per-path analysis stages.
	ProgressTracing
)

func (l ProgressLevel) String() string {
	switch l {
	case ProgressPathList:
		return "PathListGeneration"
	case ProgressTracing:
		return "Tracing"
	default:
		return "InvalidProgressLevel"
	}
}

// Options control tracing. The zero value is not valid; start from
// [DefaultOptions].
type Options struct {
	// TurdSize drops contours that enclose TurdSize pixels or fewer.
	// It must be in [0, 1000].
	TurdSize int

	// TurnPolicy resolves ambiguous diagonal crossings during contour
	// extraction.
	TurnPolicy TurnPolicy

	// AlphaMax is the corner threshold: vertices whose shape parameter
	// reaches it become pointed corners. It must be in [0, 1.334]; 0
	// traces everything as corners, values near the upper bound produce
	// no corners at all.
	AlphaMax float64

	// OptTolerance is the maximum deviation allowed when fusing adjacent
	// Bézier segments into one. It must be in [0, 5]; 0 disables the
	// optimization stage entirely.
	OptTolerance float64

	// RandomSeed seeds the PRNG used by [TurnRandom], making such traces
	// reproducible. The coin flip is uniform, unlike Potrace's, which
	// inherits a bias from its host library. Other turn policies ignore
	// the seed.
	RandomSeed uint64

	// Progress, if non-nil, receives progress reports: a fraction in
	// [0, 1] per level, non-decreasing within each level. It may be
	// called from multiple goroutines, but never concurrently.
	Progress func(level ProgressLevel, fraction float64)
}

// DefaultOptions returns the default tracing options.
func DefaultOptions() Options {
	return Options{
		TurdSize:     2,
		TurnPolicy:   TurnMinority,
		AlphaMax:     1.0,
		OptTolerance: 0.2,
		RandomSeed:   1,
	}
}

func (opts *Options) validate() error {
	if opts.TurdSize < 0 || opts.TurdSize > 1000 {
		return fmt.Errorf("potrace: %w: turd size %d outside [0, 1000]", ErrInvalidArgument, opts.TurdSize)
	}
	if opts.TurnPolicy < TurnBlack || opts.TurnPolicy > TurnRandom {
		return fmt.Errorf("potrace: %w: unknown turn policy %d", ErrInvalidArgument, opts.TurnPolicy)
	}
	if math.IsNaN(opts.AlphaMax) || opts.AlphaMax < 0 || opts.AlphaMax > 1.334 {
		return fmt.Errorf("potrace: %w: alphamax %v outside [0, 1.334]", ErrInvalidArgument, opts.AlphaMax)
	}
	if math.IsNaN(opts.OptTolerance) || opts.OptTolerance < 0 || opts.OptTolerance > 5 {
		return fmt.Errorf("potrace: %w: opttolerance %v outside [0, 5]", ErrInvalidArgument, opts.OptTolerance)
	}
	return nil
}

// progress serializes reports to the user's sink and enforces monotonicity
// per level, which the parallel tracing stage would otherwise violate.
type progress struct {
	sink func(ProgressLevel, float64)
	mu   sync.Mutex
	last [2]float64
}

func (pr *progress) report(level ProgressLevel, f float64) {
	if pr.sink == nil {
		return
	}
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if f > pr.last[level] {
		pr.last[level] = f
		pr.sink(level, f)
	}
}

// Result is a finished trace: a tree of outlines.
type Result struct {
	root *Path
}

// Root returns the first top-level path of the trace, or nil if the raster
// had no contours left after despeckling.
func (r *Result) Root() *Path {
	return r.root
}

// Paths returns an iterator over all paths of the trace, in the order of the
// Next chain.
func (r *Result) Paths() iter.Seq[*Path] {
	return func(yield func(*Path) bool) {
		for p := r.root; p != nil; p = p.Next {
			if !yield(p) {
				return
			}
		}
	}
}

// Trace vectorizes the bitmap: it extracts the contours separating
// foreground from background, arranges them into a tree by containment, and
// fits a closed curve of line and Bézier segments to each. The bitmap is not
// modified; the pipeline works on a private copy.
//
// A raster with no foreground pixels produces a Result with a nil root and
// no error. Cancellation of ctx is honored at every pipeline checkpoint and
// surfaces as the context's error; no partial result is returned.
func Trace(ctx context.Context, bm *Bitmap, opts Options) (*Result, error) {
	if bm == nil {
		return nil, fmt.Errorf("potrace: %w: nil bitmap", ErrInvalidArgument)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	prog := &progress{sink: opts.Progress}

	work := bm.Clone()
	plist, err := decompose(ctx, bm, work, &opts, prog)
	if err != nil {
		return nil, err
	}
	if len(plist) == 0 {
		prog.report(ProgressTracing, 1)
		return &Result{}, nil
	}

	// decompose leaves the working bitmap all zero, ready to serve as the
	// scratch space for insideness testing
	root, err := buildTree(ctx, plist, work)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	var done atomic.Int64
	for _, p := range plist {
		g.Go(func() error {
			if err := analyzePath(gctx, p, &opts); err != nil {
				return err
			}
			prog.report(ProgressTracing, float64(done.Add(1))/float64(len(plist)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{root: root}, nil
}

// analyzePath runs the five analysis stages on one contour, checking for
// cancellation at stage boundaries. Intermediate tables are dropped as soon
// as the remaining stages no longer read them.
func analyzePath(ctx context.Context, p *Path, opts *Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a := newAnalysis(p)
	a.computeSums()
	a.computeLon()
	if err := ctx.Err(); err != nil {
		return err
	}
	a.optimalPolygon()
	a.lon = nil
	if err := ctx.Err(); err != nil {
		return err
	}
	a.adjustVertices(p.Sign)
	a.sums = nil
	a.po = nil
	if err := ctx.Err(); err != nil {
		return err
	}
	a.smooth(opts.AlphaMax)
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.OptTolerance > 0 {
		a.optimizeCurve(opts.OptTolerance)
		p.Curve = a.ocurve.public()
	} else {
		p.Curve = a.curve.public()
	}
	return ctx.Err()
}
