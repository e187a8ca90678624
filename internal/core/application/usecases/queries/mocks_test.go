package queries_test

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/core/domain/model/product"

	"github.com/stretchr/testify/mock"
)

// MockModifierRepository is a testify mock implementing ports.ModifierRepository.
type MockModifierRepository struct {
	mock.Mock
}

func (m *MockModifierRepository) Add(ctx context.Context, aggregate *pricing.PriceModifier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockModifierRepository) Update(ctx context.Context, aggregate *pricing.PriceModifier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockModifierRepository) Get(ctx context.Context, id kernel.UUID) (*pricing.PriceModifier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceModifier), args.Error(1)
}

func (m *MockModifierRepository) GetByCode(ctx context.Context, code string) (*pricing.PriceModifier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceModifier), args.Error(1)
}

func (m *MockModifierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockModifierRepository) GetAllActive(ctx context.Context) ([]*pricing.PriceModifier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.PriceModifier), args.Error(1)
}

func (m *MockModifierRepository) GetByPropertyID(
	ctx context.Context,
	propertyID kernel.UUID,
) ([]*pricing.PriceModifier, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.PriceModifier), args.Error(1)
}

func (m *MockModifierRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a testify mock implementing ports.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

// stubEvaluator treats every condition expression as satisfied.
type stubEvaluator struct{}

func (stubEvaluator) Evaluate(string, map[string]string, time.Time) (bool, error) {
	return true, nil
}
