// Package combine implements the WindowCombiner stage: weighting each
// window's PartialSum by 2^bit_index and summing into the final MSM
// result, per spec.md §4.6.
package combine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/aaneelshalman/msm/curve"
)

// PartialSum is one window's contribution, tagged with its bit offset and
// its bit width (needed to know how many doublings it represents in the
// sequential / strategy-b folds).
type PartialSum[P any] struct {
	BitIndex int
	Width    int
	Sum      P
}

// Sequential folds partial sums in descending bit_index order using
// double-and-add: result <- double(result) Width times, then result <-
// result + Sum. partials must already be sorted descending by BitIndex
// (the orchestrator builds them that way).
func Sequential[P any, S any](g curve.Group[P, S], partials []PartialSum[P]) P {
	result := g.Zero()
	for _, p := range partials {
		for i := 0; i < p.Width; i++ {
			result = g.Double(result)
		}
		result = g.Add(result, p.Sum)
	}
	return result
}

// ParallelFieldMul implements window combiner strategy (a): each window's
// PartialSum is computed by an independent worker, then weighted by the
// field-valued scalar 2^bit_index via ScalarMulScalar and summed. Because
// the weighting is commutative, worker completion order does not matter.
//
// work[j] is invoked once per window and must be safe to call concurrently
// with the others; it returns that window's (unweighted) PartialSum.
// Workers run under an errgroup.Group capped at runtime.NumCPU(), mirroring
// the teacher's bounded fan-out (bandersnatch/multiexp_fixedbasis.go,
// pipfixedbasis/precomp.go) rather than one goroutine per window with no
// limit. A panic inside any worker is recovered and surfaced as a single
// WorkerFault-style error at the join point (spec.md §7), discarding all
// partial results.
func ParallelFieldMul[P any, S any](g curve.Group[P, S], windows []PartialSumWork[P]) (P, error) {
	results := make([]PartialSum[P], len(windows))

	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(runtime.NumCPU())
	for j := range windows {
		j := j
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &WorkerPanic{Value: r}
				}
			}()
			results[j] = PartialSum[P]{
				BitIndex: windows[j].BitIndex,
				Width:    windows[j].Width,
				Sum:      windows[j].Compute(),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		var zero P
		return zero, err
	}

	result := g.Zero()
	for _, r := range results {
		weight := g.ScalarFromUint64(uint64(1) << uint(r.BitIndex))
		result = g.Add(result, g.ScalarMulScalar(r.Sum, weight))
	}
	return result, nil
}

// ParallelDoubleAndAdd implements window combiner strategy (b): the same
// per-window fan-out as ParallelFieldMul, but the join folds results with
// the double-and-add recurrence from Sequential, which requires descending
// bit_index order and replaces one scalar multiplication per window with
// Width doublings per window.
func ParallelDoubleAndAdd[P any, S any](g curve.Group[P, S], windows []PartialSumWork[P]) (P, error) {
	results := make([]PartialSum[P], len(windows))

	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(runtime.NumCPU())
	for j := range windows {
		j := j
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &WorkerPanic{Value: r}
				}
			}()
			results[j] = PartialSum[P]{
				BitIndex: windows[j].BitIndex,
				Width:    windows[j].Width,
				Sum:      windows[j].Compute(),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		var zero P
		return zero, err
	}

	// windows is already supplied high-to-low by the orchestrator, and
	// goroutine completion order does not affect the results slice since
	// each worker writes only its own index.
	return Sequential(g, results), nil
}

// PartialSumWork describes one window's deferred reduction, handed to the
// parallel combiners so they can invoke it inside a worker.
type PartialSumWork[P any] struct {
	BitIndex int
	Width    int
	Compute  func() P
}

// WorkerPanic is the error surfaced when a combiner worker panics; the
// recovered value is preserved for diagnostics. It corresponds to
// spec.md §7's WorkerFault: any panic inside a parallel worker is
// propagated to the caller as a single unrecoverable fault and all partial
// results are discarded.
type WorkerPanic struct {
	Value any
}

func (e *WorkerPanic) Error() string {
	return "msm: worker panicked while computing a window partial sum"
}

func (e *WorkerPanic) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
