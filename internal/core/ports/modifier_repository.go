package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"
)

// ModifierRepository defines the persistence contract for price modifiers.
type ModifierRepository interface {
	// Add persists a new price modifier.
	// The modifier must be valid and its code must be unique.
	Add(ctx context.Context, aggregate *pricing.PriceModifier) error

	// Update persists changes to an existing price modifier.
	Update(ctx context.Context, aggregate *pricing.PriceModifier) error

	// Get retrieves a price modifier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pricing.PriceModifier, error)

	// GetByCode retrieves a price modifier by its unique business code.
	GetByCode(ctx context.Context, code string) (*pricing.PriceModifier, error)

	// ExistsByCode reports whether a modifier with the given code exists.
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// GetAllActive retrieves all active modifiers ordered by ascending
	// priority. This is the candidate set of every price calculation.
	GetAllActive(ctx context.Context) ([]*pricing.PriceModifier, error)

	// GetByPropertyID retrieves the modifiers bound to the given property.
	GetByPropertyID(ctx context.Context, propertyID kernel.UUID) ([]*pricing.PriceModifier, error)

	// Delete removes a price modifier.
	Delete(ctx context.Context, id kernel.UUID) error
}
