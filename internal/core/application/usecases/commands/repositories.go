// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"workshop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ModifierRepoFactory provides access to the modifier repository within a transaction.
	ModifierRepoFactory interface {
		ModifierRepository() ports.ModifierRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ModifierUoW manages transactions for price modifier operations.
	ModifierUoW interface {
		TxManager
		ModifierRepoFactory
	}

	// ModifierUoWFactory creates new modifier unit of work instances.
	ModifierUoWFactory interface {
		Create() ModifierUoW
	}

	// PricingUoW manages transactions for commands that price order items:
	// they read the product catalog and the active modifier set while
	// mutating an order aggregate.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   productRepo := uow.ProductRepository()
	//   modifierRepo := uow.ModifierRepository()
	//   // ... price the item, mutate the order
	//
	//   err = uow.Commit(ctx)
	PricingUoW interface {
		TxManager
		OrderRepoFactory
		ModifierRepoFactory
		ProductRepoFactory
	}

	// PricingUoWFactory creates new pricing unit of work instances.
	PricingUoWFactory interface {
		Create() PricingUoW
	}
)
