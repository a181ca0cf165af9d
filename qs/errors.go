package qs

import "errors"

var (
	// ErrInsufficientRelations means a round ended before |base|+1 relations
	// were held. Split recovers by growing the factor base.
	ErrInsufficientRelations = errors.New("insufficient relations")
	// ErrNoNontrivialCongruence means every dependency tried gave x ≡ ±y.
	// Split recovers by collecting more relations.
	ErrNoNontrivialCongruence = errors.New("no non-trivial congruence")
	// ErrSearchBudgetExhausted means the round, base-size or time budget ran
	// out, or the context was cancelled.
	ErrSearchBudgetExhausted = errors.New("search budget exhausted")
	// ErrInvalidInput rejects n <= 1, and prime n where a composite is required.
	ErrInvalidInput = errors.New("invalid input")
)
