package queries

import (
	"context"

	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves order summaries from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetOrdersQueryHandler(db)
//	query, _ := NewGetOrdersQuery(0, "", nil, nil)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list orders: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d orders\n", len(orders))
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query with the filters the query carries.
// Returns summary rows sorted by order number for consistent output.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_number,
			client_id,
			client_name,
			status,
			payment_status,
			deadline,
			total_amount
		FROM orders
		WHERE 1 = 1
	`
	args := make([]interface{}, 0)

	if query.ClientID() != 0 {
		sql += " AND client_id = ?"
		args = append(args, query.ClientID())
	}
	if query.Status() != "" {
		sql += " AND status = ?"
		args = append(args, query.Status())
	}
	if query.From() != nil {
		sql += " AND deadline >= ?"
		args = append(args, *query.From())
	}
	if query.To() != nil {
		sql += " AND deadline <= ?"
		args = append(args, *query.To())
	}
	sql += " ORDER BY order_number"

	orders := make([]GetOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&orderResp.OrderNumber,
			&orderResp.ClientID,
			&orderResp.ClientName,
			&orderResp.Status,
			&orderResp.PaymentStatus,
			&orderResp.Deadline,
			&orderResp.TotalAmount,
		)
		if err != nil {
			return nil, err
		}

		orderResp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
