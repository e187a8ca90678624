package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/product"
)

// ProductRepository defines the read contract for the product catalog.
// The catalog is maintained elsewhere; pricing only needs lookups.
type ProductRepository interface {
	// Get retrieves a product by its unique identifier, with its default
	// dimensions and default property activations.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
}
