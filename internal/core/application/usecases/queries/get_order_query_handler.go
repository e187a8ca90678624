package queries

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler assembles the full order read model from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	orderView, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and assembles the order tree: the order row,
// its sections sorted by section number, and each section's items with
// their frozen property values.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.fetchOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	sections, err := h.fetchSections(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	items, err := h.fetchItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	for idx := range sections {
		sectionItems := items[sections[idx].SectionNumber]
		for _, item := range sectionItems {
			sections[idx].TotalAmount += item.TotalPrice
		}
		sections[idx].Items = sectionItems
	}
	response.Sections = sections

	return response, nil
}

func (h GetOrderQueryHandler) fetchOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			client_id,
			client_name,
			status,
			payment_status,
			deadline,
			locked_by,
			locked_at,
			notes,
			total_amount
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	var response GetOrderQueryResponse
	var id uuid.UUID

	err = rows.Scan(
		&id,
		&response.OrderNumber,
		&response.ClientID,
		&response.ClientName,
		&response.Status,
		&response.PaymentStatus,
		&response.Deadline,
		&response.LockedBy,
		&response.LockedAt,
		&response.Notes,
		&response.TotalAmount,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) fetchSections(ctx context.Context, orderID kernel.UUID) ([]OrderSectionResponse, error) {
	sections := make([]OrderSectionResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			section_number,
			name,
			description
		FROM order_sections
		WHERE order_id = ?
		ORDER BY section_number
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var section OrderSectionResponse
		err = rows.Scan(&section.SectionNumber, &section.Name, &section.Description)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}

// fetchItems returns the order's items keyed by section number, each item
// carrying its frozen properties. Items and properties come back in two
// scans to avoid fanning out the item rows across a join.
func (h GetOrderQueryHandler) fetchItems(ctx context.Context, orderID kernel.UUID) (map[int][]OrderItemResponse, error) {
	items := make(map[int][]OrderItemResponse)
	positions := make(map[uuid.UUID]func(OrderItemPropertyResponse))

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			section_number,
			product_id,
			product_name,
			quantity,
			unit,
			coefficient,
			base_price,
			final_price,
			total_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY section_number, position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var sectionNumber int
		var id, productID uuid.UUID

		err = rows.Scan(
			&id,
			&sectionNumber,
			&productID,
			&item.ProductName,
			&item.Quantity,
			&item.Unit,
			&item.Coefficient,
			&item.BasePrice,
			&item.FinalPrice,
			&item.TotalPrice,
		)
		if err != nil {
			return nil, err
		}

		item.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		item.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return nil, err
		}
		item.Properties = make([]OrderItemPropertyResponse, 0)

		items[sectionNumber] = append(items[sectionNumber], item)
		section, position := sectionNumber, len(items[sectionNumber])-1
		positions[id] = func(property OrderItemPropertyResponse) {
			items[section][position].Properties = append(items[section][position].Properties, property)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = h.attachProperties(ctx, orderID, positions); err != nil {
		return nil, err
	}

	return items, nil
}

func (h GetOrderQueryHandler) attachProperties(
	ctx context.Context,
	orderID kernel.UUID,
	positions map[uuid.UUID]func(OrderItemPropertyResponse),
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.item_id,
			p.property_id,
			p.property_code,
			p.property_name,
			p.value
		FROM order_item_properties p
		JOIN order_items i ON i.id = p.item_id
		WHERE i.order_id = ?
		ORDER BY p.property_code
	`, orderID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var property OrderItemPropertyResponse
		var itemID, propertyID uuid.UUID

		err = rows.Scan(
			&itemID,
			&propertyID,
			&property.PropertyCode,
			&property.PropertyName,
			&property.Value,
		)
		if err != nil {
			return err
		}

		property.PropertyID, err = kernel.UUIDFromBytes(propertyID[:])
		if err != nil {
			return err
		}

		if attach, ok := positions[itemID]; ok {
			attach(property)
		}
	}

	return rows.Err()
}
