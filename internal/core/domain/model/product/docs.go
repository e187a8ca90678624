// Package product models the read-only product catalog consumed by the
// product-aware price calculation: base price, unit type (area, linear or
// per-piece), default dimensions and default property activations.
//
// Products are owned by an external catalog service; this bounded context
// only restores them through the product repository port and never mutates
// them.
package product
