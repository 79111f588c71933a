package aggregate

import (
	"errors"
	"fmt"

	"github.com/ougirez/carbon4c/internal/domain"
)

var (
	ErrUndefinedAggregate = errors.New("undefined aggregate")
	ErrMissingPolicy      = errors.New("missing aggregation policy")
	ErrDuplicateKey       = errors.New("duplicate record key")
	ErrAlreadyAggregated  = errors.New("records are already aggregated")
	ErrLevelMismatch      = errors.New("record level does not match input level")
	ErrUnknownParent      = errors.New("entity has no parent in hierarchy")
	ErrNonFiniteValue     = errors.New("record value is not finite")
	ErrInvalidPolicy      = errors.New("invalid aggregation policy")
)

// UndefinedAggregateError is returned when the weights of a weighted average
// sum to zero for a grouping key.
type UndefinedAggregateError struct {
	Key        domain.RecordKey
	WeightCode string
}

func (e *UndefinedAggregateError) Error() string {
	return fmt.Sprintf("%s: %s: sum of %s weights is zero", ErrUndefinedAggregate, e.Key, e.WeightCode)
}

func (e *UndefinedAggregateError) Is(target error) bool { return target == ErrUndefinedAggregate }

type MissingPolicyError struct {
	IndicatorCode string
}

func (e *MissingPolicyError) Error() string {
	return fmt.Sprintf("%s: indicator %q", ErrMissingPolicy, e.IndicatorCode)
}

func (e *MissingPolicyError) Is(target error) bool { return target == ErrMissingPolicy }

type DuplicateKeyError struct {
	Level domain.Level
	Key   domain.RecordKey
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %s at level %s", ErrDuplicateKey, e.Key, e.Level)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// LevelError reports a record fed into the wrong aggregation hop. It matches
// ErrAlreadyAggregated when the record comes from a higher level than the hop
// input, and ErrLevelMismatch otherwise.
type LevelError struct {
	Want domain.Level
	Got  domain.Level
	Key  domain.RecordKey
}

func (e *LevelError) Error() string {
	if e.Got.Above(e.Want) || e.Want == domain.LevelNational {
		return fmt.Sprintf("%s: %s is %s, hop expects %s", ErrAlreadyAggregated, e.Key, e.Got, e.Want)
	}
	return fmt.Sprintf("%s: %s is %s, hop expects %s", ErrLevelMismatch, e.Key, e.Got, e.Want)
}

func (e *LevelError) Is(target error) bool {
	if target == ErrAlreadyAggregated {
		return e.Got.Above(e.Want) || e.Want == domain.LevelNational
	}
	return target == ErrLevelMismatch
}

type RecordError struct {
	Key   domain.RecordKey
	Cause error
}

func (e *RecordError) Error() string { return fmt.Sprintf("%s: %s", e.Key, e.Cause) }

func (e *RecordError) Unwrap() error { return e.Cause }
