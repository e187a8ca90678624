// Package services contains domain services implementing business logic
// that doesn't naturally belong to a single aggregate.
//
// Domain services coordinate entities from different aggregates. They are
// stateless and pure: all collaborators arrive as arguments, so concurrent
// invocations are independent.
//
// Services:
//   - PriceCalculator: generic price calculation — one running price walked
//     through the applicable modifiers in priority order
//   - ProductPriceCalculator: product and dimension driven calculation —
//     additive then multiplicative modifier phases over the product's base
//     price, scaled by the unit measurement
package services
