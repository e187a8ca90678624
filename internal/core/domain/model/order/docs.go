// Package order contains the Order aggregate of the order management domain.
//
// The aggregate is a tree: Order owns OrderSections, which own OrderItems,
// which own immutable PropertyInOrder snapshots. All mutation goes through
// the Order root so that capacity ceilings, status gating and the derived
// total amount stay consistent.
//
// Key components:
//   - Order: aggregate root with lifecycle status, payment status, advisory
//     lock and derived total amount
//   - OrderSection: named grouping of items, unique by section number
//   - OrderItem: priced line item with a property snapshot frozen at add time
//   - PropertyInOrder: immutable property binding captured on an item
//   - Status: lifecycle state machine driven by an explicit transition table
//   - LockInfo: advisory edit lock with a time-based expiry predicate
//
// Business rules such as capacity ceilings, the deadline rule and the
// confirmation gate live in rules.go as small specification types, so the
// limits are visible in one place instead of scattered through mutators.
package order
