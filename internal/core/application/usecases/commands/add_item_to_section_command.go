package commands

import (
	"errors"
	"fmt"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrAddItemToSectionCommandIsNotConstructed = errors.New(
	"AddItemToSectionCommand must be created via NewAddItemToSectionCommand constructor",
)

// ItemProperty is one property selection for an item being added: which
// property, its human-readable naming and the chosen value. The selection is
// frozen onto the item at add time.
type ItemProperty struct {
	PropertyID   kernel.UUID
	PropertyCode string
	PropertyName string
	Value        string
}

// AddItemToSectionCommand represents a request to add a product item to an
// order section. The item's prices are not supplied by the caller: the
// handler prices it through the calculation engine using the active
// modifier set.
//
// Example:
//
//	cmd, err := NewAddItemToSectionCommand(orderID, 1, itemID, productID,
//	    2, 1.5, 0, []ItemProperty{{PropertyID: materialID,
//	        PropertyCode: "MATERIAL", PropertyName: "Material", Value: "oak"}})
//	if err != nil {
//	    return err
//	}
//
//	handler := NewAddItemToSectionCommandHandler(uowFactory, calculator, evaluator)
//	err = handler.Handle(ctx, cmd)
type AddItemToSectionCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	sectionNumber int
	itemID        kernel.UUID
	productID     kernel.UUID
	quantity      float64
	unit          float64
	coefficient   float64
	properties    []ItemProperty

	guard guard.ConstructorGuard
}

// NewAddItemToSectionCommand creates a command to add a priced item to a
// section. Quantity and unit must be strictly positive; a zero coefficient
// means "no coefficient" and defaults to one downstream.
func NewAddItemToSectionCommand(
	orderID kernel.UUID,
	sectionNumber int,
	itemID kernel.UUID,
	productID kernel.UUID,
	quantity float64,
	unit float64,
	coefficient float64,
	properties []ItemProperty,
) (AddItemToSectionCommand, error) {
	cmd := AddItemToSectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, itemID, productID),
		cmd.setMeasures(quantity, unit, coefficient),
	); err != nil {
		return AddItemToSectionCommand{}, err
	}

	if sectionNumber <= 0 {
		return AddItemToSectionCommand{}, errs.NewValueIsInvalidError("sectionNumber")
	}

	cmd.sectionNumber = sectionNumber
	cmd.properties = properties
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddItemToSectionCommand) Validate() error {
	return c.guard.Validate(ErrAddItemToSectionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being changed.
func (c AddItemToSectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SectionNumber returns the number of the target section.
func (c AddItemToSectionCommand) SectionNumber() int {
	return c.sectionNumber
}

// ItemID returns the identifier assigned to the new item.
func (c AddItemToSectionCommand) ItemID() kernel.UUID {
	return c.itemID
}

// ProductID returns the identifier of the ordered product.
func (c AddItemToSectionCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the number of units ordered.
func (c AddItemToSectionCommand) Quantity() float64 {
	return c.quantity
}

// Unit returns the unit measurement of one item.
func (c AddItemToSectionCommand) Unit() float64 {
	return c.unit
}

// Coefficient returns the price coefficient, zero meaning default.
func (c AddItemToSectionCommand) Coefficient() float64 {
	return c.coefficient
}

// Properties returns the property selections for the item.
func (c AddItemToSectionCommand) Properties() []ItemProperty {
	return c.properties
}

func (c *AddItemToSectionCommand) setIDs(orderID, itemID, productID kernel.UUID) error {
	if err := errors.Join(
		orderID.Validate(),
		itemID.Validate(),
		productID.Validate(),
	); err != nil {
		return err
	}

	c.orderID = orderID
	c.itemID = itemID
	c.productID = productID
	return nil
}

func (c *AddItemToSectionCommand) setMeasures(quantity, unit, coefficient float64) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%v is not greater than 0", quantity))
	}
	if unit <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit",
			fmt.Errorf("%v is not greater than 0", unit))
	}
	if coefficient < 0 {
		return errs.NewValueIsInvalidErrorWithCause("coefficient",
			fmt.Errorf("%v is negative", coefficient))
	}

	c.quantity = quantity
	c.unit = unit
	c.coefficient = coefficient
	return nil
}
