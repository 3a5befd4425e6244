package worker

import (
	"sort"

	"github.com/lgbarn/chessindex/internal/position"
)

// DuplicateChecker records positions and reports ones already recorded.
// hashing.PositionSet satisfies it.
type DuplicateChecker interface {
	CheckAndAdd(p *position.Position) (bool, error)
}

// DecodeOption configures DecodeAll.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	seen        DuplicateChecker
	stopOnError bool
}

// WithDuplicates marks every result whose position was already decoded on
// an earlier line.
func WithDuplicates(seen DuplicateChecker) DecodeOption {
	return func(o *decodeOptions) {
		o.seen = seen
	}
}

// WithStopOnError ends the batch at the first line that fails to decode.
func WithStopOnError(stop bool) DecodeOption {
	return func(o *decodeOptions) {
		o.stopOnError = stop
	}
}

// Decoder returns a ProcessFunc that decodes FEN lines.
func Decoder() ProcessFunc {
	return func(item WorkItem) ProcessResult {
		res := ProcessResult{FEN: item.FEN, Index: item.Index}
		p, err := position.Decode(item.FEN)
		if err != nil {
			res.Error = err
			return res
		}
		res.Position = p
		return res
	}
}

// DecodeAll decodes lines on a pool of workers and returns the results in
// input order. Duplicates are marked after decoding, in input order, so
// the first copy of a position is never the one marked.
//
// With WithStopOnError the pool is stopped at the first failure, and the
// results end with the failing line of lowest index. Every earlier line
// has been picked up by a worker before that one, so none is skipped.
func DecodeAll(lines []string, workers int, opts ...DecodeOption) []ProcessResult {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	pool := NewPool(Decoder(), WithWorkers(workers), WithBufferSize(2*workers))
	pool.Start()

	go func() {
		for i, line := range lines {
			if pool.IsStopped() {
				break
			}
			pool.Submit(WorkItem{FEN: line, Index: i})
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, len(lines))
	for res := range pool.Results() {
		if res.Error != nil && o.stopOnError {
			pool.Stop()
		}
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	if o.stopOnError {
		for i, res := range results {
			if res.Error != nil {
				results = results[:i+1]
				break
			}
		}
	}

	if o.seen != nil {
		for i := range results {
			if results[i].Error != nil {
				continue
			}
			dup, err := o.seen.CheckAndAdd(results[i].Position)
			if err != nil {
				results[i].Error = err
				continue
			}
			results[i].Duplicate = dup
		}
	}
	return results
}
