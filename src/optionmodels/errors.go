package optionmodels

import (
	"errors"
	"fmt"
)

// ErrIVNotFound is returned by the implied volatility solver when no
// volatility reproduces the observed price within the iteration
// budget. It is a normal outcome for illiquid or mispriced quotes: the
// contract is skipped, the screening batch carries on.
var ErrIVNotFound = errors.New("implied volatility not found")

// InvalidInputError reports a precondition violation on a pricing
// call. It is always surfaced to the immediate caller, never swallowed.
type InvalidInputError struct {
	Op    string
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %v", e.Op, e.Field, e.Value)
}

func NewInvalidInputError(op, field string, value float64) *InvalidInputError {
	return &InvalidInputError{Op: op, Field: field, Value: value}
}

// ProbabilityInputError carries the original request alongside the
// reason, so a caller logging a rejected probability calculation can
// see exactly what was asked for.
type ProbabilityInputError struct {
	Request ProbabilityRequest
	Reason  string
}

func (e *ProbabilityInputError) Error() string {
	return fmt.Sprintf("AssignmentProbability: %s: underlying=%v strike=%v days=%d vol=%v rate=%v type=%s",
		e.Reason, e.Request.Underlying, e.Request.Strike, e.Request.DaysToExpiry, e.Request.Vol, e.Request.Rate, e.Request.OptionType)
}
