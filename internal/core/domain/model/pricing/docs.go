// Package pricing implements the price modifier domain model.
//
// A PriceModifier is a single pricing rule that adjusts a product price
// based on the order's selected properties: a type (fixed price, percentage,
// fixed amount, per-unit, multiplier), a magnitude, an optional property
// binding, an optional validity window, an optional free-form condition
// expression and an application priority.
//
// Applicability of a modifier to a concrete property snapshot is decided by
// PriceModifier.IsApplicableFor; complex boolean conditions are delegated to
// an externally supplied ConditionEvaluator strategy, with evaluation
// failures downgraded to "not applicable" so pricing fails closed.
//
// The ordering and application of applicable modifiers to a base price is
// the responsibility of the calculation services (see the services package);
// this package only models the rules themselves.
package pricing
