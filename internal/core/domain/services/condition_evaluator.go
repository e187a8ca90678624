package services

import (
	"fmt"
	"strings"
	"time"
)

// PropertyConditionEvaluator is the default pricing.ConditionEvaluator.
// It understands a small conjunction grammar over the property snapshot:
//
//	material == oak
//	material == oak && coating != matte
//
// Clauses are joined with "&&"; each clause compares one property value with
// "==" or "!=". Comparison is case-sensitive on values and keys. A clause
// referencing a property absent from the snapshot evaluates to false for
// "==" and true for "!=".
//
// Malformed expressions return an error, which the modifier treats as
// not applicable.
type PropertyConditionEvaluator struct{}

// NewPropertyConditionEvaluator creates the default condition evaluator.
func NewPropertyConditionEvaluator() PropertyConditionEvaluator {
	return PropertyConditionEvaluator{}
}

// Evaluate reports whether every clause of the expression holds for the
// given property snapshot. The asOf instant is unused by this grammar;
// date windows are handled by the modifier itself.
func (PropertyConditionEvaluator) Evaluate(
	expression string,
	properties map[string]string,
	_ time.Time,
) (bool, error) {
	if strings.TrimSpace(expression) == "" {
		return false, fmt.Errorf("empty condition expression")
	}

	for _, clause := range strings.Split(expression, "&&") {
		holds, err := evaluateClause(clause, properties)
		if err != nil {
			return false, err
		}
		if !holds {
			return false, nil
		}
	}
	return true, nil
}

func evaluateClause(clause string, properties map[string]string) (bool, error) {
	var key, value string
	var negated bool

	switch {
	case strings.Contains(clause, "!="):
		parts := strings.SplitN(clause, "!=", 2)
		key, value = parts[0], parts[1]
		negated = true
	case strings.Contains(clause, "=="):
		parts := strings.SplitN(clause, "==", 2)
		key, value = parts[0], parts[1]
	default:
		return false, fmt.Errorf("clause %q has no comparison operator", strings.TrimSpace(clause))
	}

	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return false, fmt.Errorf("clause %q is missing an operand", strings.TrimSpace(clause))
	}

	matches := properties[key] == value
	if negated {
		return !matches, nil
	}
	return matches, nil
}
