package evaluate

import (
	"context"
	"fmt"

	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/model"
	"golang.org/x/sync/errgroup"
)

// Request is one input to evaluate in a batch
type Request struct {
	Kind  exercise.Kind
	Input string
}

// Result pairs a batch request with its outcome.
// Err holds per-input failures such as an unparsable factorial input or overflow
// under CheckOverflow; Record may be set even when Err is.
type Result struct {
	Request Request
	Record  *model.EvaluationRecord
	Err     error
}

// Evaluate dispatches a single request to the matching exercise
func (uc *EvaluateUseCase) Evaluate(ctx context.Context, req Request) (*model.EvaluationRecord, error) {
	switch req.Kind {
	case exercise.Parens:
		return uc.ValidateExpression(ctx, req.Input)
	case exercise.Factorial:
		n, err := ParseFactorialInput(req.Input)
		if err != nil {
			return nil, err
		}
		return uc.Factorial(ctx, n)
	default:
		return nil, fmt.Errorf("unknown exercise kind: %s", req.Kind)
	}
}

// EvaluateBatch evaluates requests with at most concurrency running at once.
// Results are returned in request order. Each evaluation owns its own stack,
// so the only shared state is the repository.
// The returned error is non-nil only when ctx is cancelled before the batch completes.
func (uc *EvaluateUseCase) EvaluateBatch(ctx context.Context, requests []Request, concurrency int) ([]Result, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := uc.Evaluate(gctx, req)
			results[i] = Result{Request: req, Record: record, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
