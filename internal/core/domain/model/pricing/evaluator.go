package pricing

import "time"

// ConditionEvaluator evaluates a modifier's free-form condition expression
// against a property snapshot at a given instant.
//
// The expression is an opaque string from the modifier's point of view; only
// the evaluator interprets it. Implementations are supplied by the caller
// (for example an embedded expression engine or a remote rules service).
//
// Evaluation failures are treated as "not applicable" by the modifier
// (fail-closed): an error or panic from Evaluate never propagates out of
// PriceModifier.IsApplicableFor.
type ConditionEvaluator interface {
	// Evaluate reports whether the expression holds for the given property
	// snapshot at the given instant.
	Evaluate(expression string, properties map[string]string, asOf time.Time) (bool, error)
}
