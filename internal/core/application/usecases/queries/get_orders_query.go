package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery retrieves order summaries matching optional filters.
// All filters combine with AND; a zero-valued filter is not applied.
//
// Example:
//
//	// All confirmed orders for one client created with a deadline this month.
//	query, err := NewGetOrdersQuery(42, "CONFIRMED", &monthStart, &monthEnd)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := NewGetOrdersQueryHandler(db).Handle(ctx, query)
type GetOrdersQuery struct {
	clientID int64
	status   string
	from     *time.Time
	to       *time.Time

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an order listing query.
//
// A zero clientID matches all clients and an empty status matches all
// statuses; a non-empty status must parse to a known order status. The from
// and to bounds filter on the order deadline and are inclusive.
func NewGetOrdersQuery(clientID int64, status string, from, to *time.Time) (GetOrdersQuery, error) {
	if clientID < 0 {
		return GetOrdersQuery{}, errs.NewValueIsInvalidError("clientID")
	}

	if status != "" {
		if _, err := order.StatusFromString(status); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	if from != nil && to != nil && to.Before(*from) {
		return GetOrdersQuery{}, errs.NewValueIsInvalidError("to")
	}

	return GetOrdersQuery{
		clientID: clientID,
		status:   status,
		from:     from,
		to:       to,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ClientID returns the client filter, or zero when all clients match.
func (q GetOrdersQuery) ClientID() int64 {
	return q.clientID
}

// Status returns the status filter, or empty when all statuses match.
func (q GetOrdersQuery) Status() string {
	return q.status
}

// From returns the inclusive lower deadline bound, or nil.
func (q GetOrdersQuery) From() *time.Time {
	return q.from
}

// To returns the inclusive upper deadline bound, or nil.
func (q GetOrdersQuery) To() *time.Time {
	return q.to
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// GetOrdersQueryResponse is one row of the order listing read model.
// Carries enough for a worklist screen without loading the item tree.
type GetOrdersQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	ClientID      int64
	ClientName    string
	Status        string
	PaymentStatus string
	Deadline      *time.Time
	TotalAmount   float64
}
