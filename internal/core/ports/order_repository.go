package ports

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// OrderFilter narrows GetAll results. Zero-valued fields are ignored.
type OrderFilter struct {
	ClientID int64
	Status   order.Status
	From     *time.Time
	To       *time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders by their
// business number, client and lifecycle status.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its sections, items and properties.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderNumber retrieves an order aggregate by its business number.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// ExistsByOrderNumber reports whether an order with the given business
	// number already exists. Used to enforce order number uniqueness.
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// GetAll retrieves orders matching the filter, newest first.
	GetAll(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// Delete removes an order aggregate with its sections and items.
	Delete(ctx context.Context, id kernel.UUID) error

	// NextOrderNumber generates the next sequential business number.
	NextOrderNumber(ctx context.Context) (string, error)

	// GetLockedBefore retrieves orders whose advisory lock was acquired
	// before the given instant. Feeds the lock expiry job.
	GetLockedBefore(ctx context.Context, lockedBefore time.Time) ([]*order.Order, error)
}
