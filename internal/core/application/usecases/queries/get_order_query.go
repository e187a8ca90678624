// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order with its full section and item tree.
// Returns everything a client editing screen needs in one round trip.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	orderView, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve order: %w", err)
//	}
//
//	fmt.Printf("Order %s: %d sections, total %.2f\n",
//	    orderView.OrderNumber, len(orderView.Sections), orderView.TotalAmount)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the full order read model, including the lock
// holder when the order is currently being edited.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	ClientID      int64
	ClientName    string
	Status        string
	PaymentStatus string
	Deadline      *time.Time
	LockedBy      *int64
	LockedAt      *time.Time
	Notes         string
	TotalAmount   float64
	Sections      []OrderSectionResponse
}

// OrderSectionResponse represents one section of the order read model.
// The total amount is derived from the section's items.
type OrderSectionResponse struct {
	SectionNumber int
	Name          string
	Description   *string
	TotalAmount   float64
	Items         []OrderItemResponse
}

// OrderItemResponse represents one priced item of the order read model.
type OrderItemResponse struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	Quantity    float64
	Unit        float64
	Coefficient float64
	BasePrice   float64
	FinalPrice  float64
	TotalPrice  float64
	Properties  []OrderItemPropertyResponse
}

// OrderItemPropertyResponse is a property value frozen into an order item
// at the time the item was priced.
type OrderItemPropertyResponse struct {
	PropertyID   kernel.UUID
	PropertyCode string
	PropertyName string
	Value        string
}
