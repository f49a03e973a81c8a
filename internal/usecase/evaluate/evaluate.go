package evaluate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mrled/stackcalc/internal/evalid"
	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/factorial"
	"github.com/mrled/stackcalc/internal/logger"
	"github.com/mrled/stackcalc/internal/model"
	"github.com/mrled/stackcalc/internal/validation"
)

// MaxFactorialInput is the largest n Factorial accepts. The stack holds n-1 values,
// so the bound keeps a single evaluation's memory small.
const MaxFactorialInput = 100000

// ErrInputTooLarge is returned for factorial inputs above MaxFactorialInput
var ErrInputTooLarge = errors.New("factorial input too large")

// Options tune how evaluations are reported
type Options struct {
	// CheckOverflow makes Factorial return factorial.ErrOverflow alongside the record
	// when n! does not fit in an int64
	CheckOverflow bool

	// Now supplies evaluation timestamps; time.Now when nil
	Now func() time.Time
}

// EvaluateUseCase runs stack exercises and records their outcomes
type EvaluateUseCase struct {
	repository model.EvaluationRepository
	opts       Options
	log        *slog.Logger
}

// NewEvaluateUseCase creates a new evaluate use case.
// repo may be nil, in which case nothing is recorded.
func NewEvaluateUseCase(repo model.EvaluationRepository, opts Options) *EvaluateUseCase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &EvaluateUseCase{
		repository: repo,
		opts:       opts,
		log:        logger.WithService(slog.Default(), "evaluate"),
	}
}

// ValidateExpression checks expr for balanced parentheses.
// An unbalanced expression is not an error; the record carries Valid=false and the reason.
func (uc *EvaluateUseCase) ValidateExpression(ctx context.Context, expr string) (*model.EvaluationRecord, error) {
	id, err := evalid.CalculateV1(string(exercise.Parens), expr)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate record ID: %w", err)
	}

	valid, reason := validation.Validate(expr)

	record := &model.EvaluationRecord{
		ID:       id,
		Kind:     exercise.Parens,
		Input:    expr,
		Valid:    valid,
		EvalTime: uc.opts.Now().UTC(),
	}
	if reason != nil {
		record.Reason = reason.Error()
	}

	uc.log.Debug("Validated expression",
		slog.String("expression", expr),
		slog.Bool("valid", valid))

	return uc.save(ctx, record)
}

// Factorial computes n! with int64 arithmetic. n above MaxFactorialInput is rejected
// with ErrInputTooLarge before anything is computed.
// The record always holds the unchecked product and flags overflow past factorial.MaxExact;
// with CheckOverflow set an overflowing input also returns an error wrapping factorial.ErrOverflow.
func (uc *EvaluateUseCase) Factorial(ctx context.Context, n int) (*model.EvaluationRecord, error) {
	if n > MaxFactorialInput {
		return nil, fmt.Errorf("%d is above %d: %w", n, MaxFactorialInput, ErrInputTooLarge)
	}
	input := strconv.Itoa(n)

	id, err := evalid.CalculateV1(string(exercise.Factorial), input)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate record ID: %w", err)
	}

	record := &model.EvaluationRecord{
		ID:       id,
		Kind:     exercise.Factorial,
		Input:    input,
		Valid:    true,
		EvalTime: uc.opts.Now().UTC(),
	}

	result, overflowErr := factorial.ComputeChecked(n)
	record.Result = result
	if overflowErr != nil {
		// The checked pass stops early; only the wrapped product needs the full pass
		record.Result = factorial.Compute(n)
		record.Valid = false
		record.Overflow = true
		record.Reason = overflowErr.Error()
	}

	uc.log.Debug("Computed factorial",
		slog.Int("n", n),
		slog.Int64("result", record.Result),
		slog.Bool("overflow", record.Overflow))

	saved, err := uc.save(ctx, record)
	if err != nil {
		return nil, err
	}

	if uc.opts.CheckOverflow && saved.Overflow {
		return saved, fmt.Errorf("%d!: %w", n, factorial.ErrOverflow)
	}
	return saved, nil
}

// save stores record when a repository is configured.
// A record that already exists is not an error: evaluations are deterministic,
// so the stored copy is returned in its place.
func (uc *EvaluateUseCase) save(ctx context.Context, record *model.EvaluationRecord) (*model.EvaluationRecord, error) {
	if uc.repository == nil {
		return record, nil
	}

	err := uc.repository.Store(ctx, record)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, model.ErrAlreadyExists) {
		return nil, fmt.Errorf("failed to store evaluation record: %w", err)
	}

	existing, err := uc.repository.Get(ctx, record.Kind, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing evaluation record: %w", err)
	}
	uc.log.Debug("Evaluation already recorded",
		slog.String("kind", string(record.Kind)),
		slog.String("id", record.ID))
	return existing, nil
}

// Forget removes the stored record for input under kind
func (uc *EvaluateUseCase) Forget(ctx context.Context, kind exercise.Kind, input string) error {
	if uc.repository == nil {
		return model.ErrNotFound
	}

	if kind == exercise.Factorial {
		n, err := ParseFactorialInput(input)
		if err != nil {
			return err
		}
		input = strconv.Itoa(n)
	}

	id, err := evalid.CalculateV1(string(kind), input)
	if err != nil {
		return fmt.Errorf("failed to calculate record ID: %w", err)
	}
	return uc.repository.Delete(ctx, kind, id)
}

// ParseFactorialInput parses a decimal integer, tolerating surrounding whitespace.
// Values above MaxFactorialInput are rejected with ErrInputTooLarge.
func ParseFactorialInput(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("factorial input %q is not an integer", s)
	}
	if n > MaxFactorialInput {
		return 0, fmt.Errorf("factorial input %d is above %d: %w", n, MaxFactorialInput, ErrInputTooLarge)
	}
	return n, nil
}
