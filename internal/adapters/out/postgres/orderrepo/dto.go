// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by client, status and lock expiry.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber   string    `gorm:"size:50;uniqueIndex"`
	ClientID      int64     `gorm:"index"`
	ClientName    string    `gorm:"size:200"`
	Status        string    `gorm:"size:20;index"`
	PaymentStatus string    `gorm:"size:20"`
	Deadline      *time.Time
	LockedBy      *int64
	LockedAt      *time.Time `gorm:"index"`
	Notes         string
	TotalAmount   float64
	Sections      []OrderSectionDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderSectionDTO represents one section row. Sections are keyed by their
// order and section number, matching the uniqueness rule of the aggregate.
type OrderSectionDTO struct {
	OrderID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SectionNumber int        `gorm:"primaryKey"`
	Name          string     `gorm:"size:200"`
	HeaderID      *uuid.UUID `gorm:"type:uuid"`
	Description   *string
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID,SectionNumber;references:OrderID,SectionNumber;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order section rows.
func (OrderSectionDTO) TableName() string {
	return "order_sections"
}

// OrderItemDTO represents one priced item row with its calculated prices
// frozen at the time the item was added. Position keeps the item's place
// within its section, so reads reproduce the aggregate's insertion order.
type OrderItemDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	SectionNumber int
	Position      int
	ProductID     uuid.UUID `gorm:"type:uuid"`
	ProductName   string    `gorm:"size:200"`
	Quantity      float64
	Unit          float64
	Coefficient   float64
	BasePrice     float64
	FinalPrice    float64
	TotalPrice    float64
	Properties    []OrderItemPropertyDTO `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order item rows.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderItemPropertyDTO represents one property value frozen into an item.
type OrderItemPropertyDTO struct {
	ItemID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyCode string    `gorm:"size:100"`
	PropertyName string    `gorm:"size:200"`
	Value        string
}

// TableName specifies the database table name for item property rows.
func (OrderItemPropertyDTO) TableName() string {
	return "order_item_properties"
}

// fromDomain converts an order domain aggregate to its database representation,
// including the full section and item tree.
func fromDomain(aggregate *order.Order) OrderDTO {
	var lockedBy *int64
	var lockedAt *time.Time
	if lock := aggregate.Lock(); lock != nil {
		userID := lock.UserID()
		at := lock.LockedAt()
		lockedBy = &userID
		lockedAt = &at
	}

	sections := make([]OrderSectionDTO, 0, len(aggregate.Sections()))
	for _, section := range aggregate.Sections() {
		sections = append(sections, sectionFromDomain(aggregate.ID().Bytes(), section))
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		ClientID:      aggregate.ClientID(),
		ClientName:    aggregate.ClientName(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		Deadline:      aggregate.Deadline(),
		LockedBy:      lockedBy,
		LockedAt:      lockedAt,
		Notes:         aggregate.Notes(),
		TotalAmount:   aggregate.TotalAmount().Float64(),
		Sections:      sections,
	}
}

func sectionFromDomain(orderID uuid.UUID, section *order.OrderSection) OrderSectionDTO {
	var headerID *uuid.UUID
	if id := section.HeaderID(); id != nil {
		raw := id.Bytes()
		headerID = &raw
	}

	items := make([]OrderItemDTO, 0, len(section.Items()))
	for position, item := range section.Items() {
		items = append(items, itemFromDomain(orderID, section.SectionNumber(), position, item))
	}

	return OrderSectionDTO{
		OrderID:       orderID,
		SectionNumber: section.SectionNumber(),
		Name:          section.Name(),
		HeaderID:      headerID,
		Description:   section.Description(),
		Items:         items,
	}
}

func itemFromDomain(orderID uuid.UUID, sectionNumber int, position int, item *order.OrderItem) OrderItemDTO {
	properties := make([]OrderItemPropertyDTO, 0, len(item.Properties()))
	for _, property := range item.Properties() {
		properties = append(properties, OrderItemPropertyDTO{
			ItemID:       item.ID().Bytes(),
			PropertyID:   property.PropertyID().Bytes(),
			PropertyCode: property.PropertyCode(),
			PropertyName: property.PropertyName(),
			Value:        property.Value(),
		})
	}

	return OrderItemDTO{
		ID:            item.ID().Bytes(),
		OrderID:       orderID,
		SectionNumber: sectionNumber,
		Position:      position,
		ProductID:     item.ProductID().Bytes(),
		ProductName:   item.ProductName(),
		Quantity:      item.Quantity(),
		Unit:          item.Unit(),
		Coefficient:   item.Coefficient(),
		BasePrice:     item.BasePrice().Float64(),
		FinalPrice:    item.FinalPrice().Float64(),
		TotalPrice:    item.TotalPrice().Float64(),
		Properties:    properties,
	}
}

// toDomain converts a database DTO tree to an order domain aggregate.
// Reconstructs the complete aggregate including sections, items and the
// advisory lock using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var lock *order.LockInfo
	if dto.LockedBy != nil && dto.LockedAt != nil {
		restored, lockErr := order.NewLockInfo(*dto.LockedBy, *dto.LockedAt)
		if lockErr != nil {
			return nil, lockErr
		}
		lock = &restored
	}

	sections := make([]*order.OrderSection, 0, len(dto.Sections))
	for _, sectionDTO := range dto.Sections {
		section, sectionErr := sectionToDomain(sectionDTO)
		if sectionErr != nil {
			return nil, sectionErr
		}
		sections = append(sections, section)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		dto.ClientID,
		dto.ClientName,
		status,
		paymentStatus,
		dto.Deadline,
		lock,
		sections,
		dto.Notes,
	)
}

func sectionToDomain(dto OrderSectionDTO) (*order.OrderSection, error) {
	var headerID *kernel.UUID
	if dto.HeaderID != nil {
		restored, err := kernel.UUIDFromBytes((*dto.HeaderID)[:])
		if err != nil {
			return nil, err
		}
		headerID = &restored
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := itemToDomain(itemDTO)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrderSection(dto.SectionNumber, dto.Name, headerID, dto.Description, items)
}

func itemToDomain(dto OrderItemDTO) (*order.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	basePrice, err := kernel.NewMoneyFromFloat(dto.BasePrice)
	if err != nil {
		return nil, err
	}
	finalPrice, err := kernel.NewMoneyFromFloat(dto.FinalPrice)
	if err != nil {
		return nil, err
	}
	totalPrice, err := kernel.NewMoneyFromFloat(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	properties := make([]order.PropertyInOrder, 0, len(dto.Properties))
	for _, propertyDTO := range dto.Properties {
		propertyID, propertyErr := kernel.UUIDFromBytes(propertyDTO.PropertyID[:])
		if propertyErr != nil {
			return nil, propertyErr
		}

		property, propertyErr := order.NewPropertyInOrder(
			propertyID,
			propertyDTO.PropertyCode,
			propertyDTO.PropertyName,
			propertyDTO.Value,
		)
		if propertyErr != nil {
			return nil, propertyErr
		}
		properties = append(properties, property)
	}

	return order.NewOrderItem(
		id,
		productID,
		dto.ProductName,
		dto.Quantity,
		dto.Unit,
		dto.Coefficient,
		order.ItemPrices{Base: basePrice, Final: finalPrice, Total: totalPrice},
		properties,
	)
}
