package order

import (
	"errors"
	"fmt"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an OrderItem instance was not
// created through the NewOrderItem factory method.
var ErrItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")

// ItemPrices groups the three monetary attributes of an order item.
// The base price is the product price before modifiers, the final price is
// the per-piece price after the calculation engine ran, and the total price
// is the final price times quantity.
type ItemPrices struct {
	Base  kernel.Money
	Final kernel.Money
	Total kernel.Money
}

// OrderItem is a priced line within an order section: a product reference,
// quantities and coefficients, the calculated prices and the property
// selections the price was derived from.
//
// OrderItem follows these invariants:
//   - Quantity, unit and coefficient are strictly positive (coefficient defaults to 1)
//   - Base price is non-negative
//   - Total price equals final price times quantity within the monetary tolerance
//   - Property bindings are unique by property identifier, capped at MaxPropertiesPerItem
//
// Items carry no independent lifecycle: they are created, owned and removed
// exclusively through their order aggregate.
type OrderItem struct {
	id          kernel.UUID
	productID   kernel.UUID
	productName string
	quantity    float64
	unit        float64
	coefficient float64
	basePrice   kernel.Money
	finalPrice  kernel.Money
	totalPrice  kernel.Money
	properties  []PropertyInOrder

	isConstructed bool
}

// NewOrderItem creates a new OrderItem with validation.
//
// A zero coefficient is replaced by the default of 1; a negative coefficient
// fails. Prices usually come from the price calculation engine; the total
// price consistency rule is enforced here regardless of where they came from.
func NewOrderItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	quantity float64,
	unit float64,
	coefficient float64,
	prices ItemPrices,
	properties []PropertyInOrder,
) (*OrderItem, error) {
	item := &OrderItem{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProduct(productID, productName),
		item.setQuantity(quantity),
		item.setUnit(unit),
		item.setCoefficient(coefficient),
		item.setPrices(prices),
		item.setProperties(properties),
	); err != nil {
		return nil, err
	}

	if err := (TotalPriceConsistencyRule{}).Assert(item.finalPrice, item.totalPrice, item.quantity); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the OrderItem was created via NewOrderItem.
func (i *OrderItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// ProductID returns the identifier of the ordered product.
func (i *OrderItem) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the display name of the ordered product.
func (i *OrderItem) ProductName() string {
	return i.productName
}

// Quantity returns the ordered quantity.
func (i *OrderItem) Quantity() float64 {
	return i.quantity
}

// Unit returns the unit measure the price scales with.
func (i *OrderItem) Unit() float64 {
	return i.unit
}

// Coefficient returns the price coefficient (1 by default).
func (i *OrderItem) Coefficient() float64 {
	return i.coefficient
}

// BasePrice returns the product price before modifiers.
func (i *OrderItem) BasePrice() kernel.Money {
	return i.basePrice
}

// FinalPrice returns the per-piece price after modifiers.
func (i *OrderItem) FinalPrice() kernel.Money {
	return i.finalPrice
}

// TotalPrice returns the line total (final price times quantity).
func (i *OrderItem) TotalPrice() kernel.Money {
	return i.totalPrice
}

// Properties returns the property selections the price was derived from.
func (i *OrderItem) Properties() []PropertyInOrder {
	return i.properties
}

// PropertySnapshot returns the item's properties keyed by property
// identifier, in the shape the pricing applicability check consumes.
func (i *OrderItem) PropertySnapshot() map[string]string {
	snapshot := make(map[string]string, len(i.properties))
	for _, p := range i.properties {
		snapshot[p.PropertyID().String()] = p.Value()
	}
	return snapshot
}

func (i *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setProduct(productID kernel.UUID, productName string) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	productName = strings.TrimSpace(productName)
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	if err := (NameLengthRule{}).Assert("productName", productName); err != nil {
		return err
	}

	i.productID = productID
	i.productName = productName
	return nil
}

func (i *OrderItem) setQuantity(quantity float64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%g is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *OrderItem) setUnit(unit float64) error {
	if unit <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit",
			fmt.Errorf("%g is not greater than 0", unit))
	}
	i.unit = unit
	return nil
}

func (i *OrderItem) setCoefficient(coefficient float64) error {
	if coefficient == 0 {
		coefficient = 1
	}
	if coefficient < 0 {
		return errs.NewValueIsInvalidErrorWithCause("coefficient",
			fmt.Errorf("%g is not greater than 0", coefficient))
	}
	i.coefficient = coefficient
	return nil
}

func (i *OrderItem) setPrices(prices ItemPrices) error {
	if err := errors.Join(
		prices.Base.Validate(),
		prices.Final.Validate(),
		prices.Total.Validate(),
	); err != nil {
		return err
	}

	if prices.Base.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("basePrice",
			fmt.Errorf("%s is negative", prices.Base))
	}

	i.basePrice = prices.Base
	i.finalPrice = prices.Final
	i.totalPrice = prices.Total
	return nil
}

func (i *OrderItem) setProperties(properties []PropertyInOrder) error {
	if len(properties) > MaxPropertiesPerItem {
		return errs.NewOperationNotAllowedErrorWithCause("addProperty",
			fmt.Errorf("item has %d properties (max %d)", len(properties), MaxPropertiesPerItem))
	}

	seen := make(map[string]struct{}, len(properties))
	for _, p := range properties {
		if err := p.Validate(); err != nil {
			return err
		}
		key := p.PropertyID().String()
		if _, ok := seen[key]; ok {
			return errs.NewValueIsInvalidErrorWithCause("properties",
				fmt.Errorf("duplicate property %s", key))
		}
		seen[key] = struct{}{}
	}

	i.properties = properties
	return nil
}
