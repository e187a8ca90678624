package order

import (
	"fmt"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// Capacity ceilings and length bounds enforced across the order aggregate.
const (
	// MaxSectionsPerOrder caps the number of sections an order may hold.
	MaxSectionsPerOrder = 50

	// MaxItemsPerSection caps the number of items a section may hold.
	MaxItemsPerSection = 100

	// MaxPropertiesPerItem caps the number of property bindings an item may hold.
	MaxPropertiesPerItem = 50

	// MinNameLength is the minimum length of section and product names.
	MinNameLength = 1

	// MaxNameLength is the maximum length of section and product names.
	MaxNameLength = 200
)

// The rules below are standalone predicate/assert pairs. The aggregate's
// mutators call Assert; orchestration code that wants to pre-check without
// failing calls IsSatisfiedBy. Keeping both on one type lets a rule be
// composed without duplicating its definition.

// SectionCapacityRule guards the section ceiling of an order.
type SectionCapacityRule struct{}

// IsSatisfiedBy reports whether one more section fits.
func (SectionCapacityRule) IsSatisfiedBy(currentCount int) bool {
	return currentCount < MaxSectionsPerOrder
}

// Assert fails when the order cannot take another section.
func (r SectionCapacityRule) Assert(currentCount int) error {
	if !r.IsSatisfiedBy(currentCount) {
		return errs.NewOperationNotAllowedErrorWithCause("addSection",
			fmt.Errorf("order already has %d sections (max %d)", currentCount, MaxSectionsPerOrder))
	}
	return nil
}

// ItemCapacityRule guards the item ceiling of a section.
type ItemCapacityRule struct{}

// IsSatisfiedBy reports whether one more item fits.
func (ItemCapacityRule) IsSatisfiedBy(currentCount int) bool {
	return currentCount < MaxItemsPerSection
}

// Assert fails when the section cannot take another item.
func (r ItemCapacityRule) Assert(currentCount int) error {
	if !r.IsSatisfiedBy(currentCount) {
		return errs.NewOperationNotAllowedErrorWithCause("addItem",
			fmt.Errorf("section already has %d items (max %d)", currentCount, MaxItemsPerSection))
	}
	return nil
}

// PropertyCapacityRule guards the property ceiling of an item.
type PropertyCapacityRule struct{}

// IsSatisfiedBy reports whether one more property fits.
func (PropertyCapacityRule) IsSatisfiedBy(currentCount int) bool {
	return currentCount < MaxPropertiesPerItem
}

// Assert fails when the item cannot take another property.
func (r PropertyCapacityRule) Assert(currentCount int) error {
	if !r.IsSatisfiedBy(currentCount) {
		return errs.NewOperationNotAllowedErrorWithCause("addProperty",
			fmt.Errorf("item already has %d properties (max %d)", currentCount, MaxPropertiesPerItem))
	}
	return nil
}

// NameLengthRule bounds section and product names to [MinNameLength, MaxNameLength].
type NameLengthRule struct{}

// IsSatisfiedBy reports whether the name length is within bounds.
func (NameLengthRule) IsSatisfiedBy(name string) bool {
	return len(name) >= MinNameLength && len(name) <= MaxNameLength
}

// Assert fails when the name length is out of bounds.
func (r NameLengthRule) Assert(paramName, name string) error {
	if !r.IsSatisfiedBy(name) {
		return errs.NewValueIsOutOfRangeError(paramName, len(name), MinNameLength, MaxNameLength)
	}
	return nil
}

// DeadlineRule requires a deadline to be strictly in the future.
// Applied at order creation only; a restored order may legitimately carry a
// deadline that has since passed.
type DeadlineRule struct{}

// IsSatisfiedBy reports whether the deadline is strictly after now.
func (DeadlineRule) IsSatisfiedBy(deadline, now time.Time) bool {
	return deadline.After(now)
}

// Assert fails when the deadline is not strictly in the future.
func (r DeadlineRule) Assert(deadline, now time.Time) error {
	if !r.IsSatisfiedBy(deadline, now) {
		return errs.NewValueIsInvalidErrorWithCause("deadline",
			fmt.Errorf("%s is not after %s", deadline.Format(time.RFC3339), now.Format(time.RFC3339)))
	}
	return nil
}

// TotalPriceConsistencyRule requires an item's total price to equal its
// final price times quantity within the monetary tolerance.
type TotalPriceConsistencyRule struct{}

// IsSatisfiedBy reports whether totalPrice ≈ finalPrice × quantity.
func (TotalPriceConsistencyRule) IsSatisfiedBy(finalPrice, totalPrice kernel.Money, quantity float64) bool {
	return totalPrice.ApproxEqual(finalPrice.MulFloat(quantity))
}

// Assert fails when the item's totals are inconsistent.
func (r TotalPriceConsistencyRule) Assert(finalPrice, totalPrice kernel.Money, quantity float64) error {
	if !r.IsSatisfiedBy(finalPrice, totalPrice, quantity) {
		return errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("%s does not match final price %s times quantity %g",
				totalPrice, finalPrice, quantity))
	}
	return nil
}

// ConfirmationRule is the composite gate for the Draft to Confirmed
// transition: the order must have at least one section, a strictly positive
// total, and no empty sections.
type ConfirmationRule struct{}

// IsSatisfiedBy reports whether the order is ready for confirmation.
func (r ConfirmationRule) IsSatisfiedBy(o *Order) bool {
	return r.Assert(o) == nil
}

// Assert fails with the first confirmation requirement the order misses.
func (ConfirmationRule) Assert(o *Order) error {
	if len(o.sections) == 0 {
		return errs.NewOperationNotAllowedErrorWithCause("confirm",
			fmt.Errorf("order %s has no sections", o.orderNumber))
	}

	for _, section := range o.sections {
		if len(section.items) == 0 {
			return errs.NewOperationNotAllowedErrorWithCause("confirm",
				fmt.Errorf("section %d of order %s has no items", section.sectionNumber, o.orderNumber))
		}
	}

	if !o.totalAmount.IsPositive() {
		return errs.NewOperationNotAllowedErrorWithCause("confirm",
			fmt.Errorf("order %s total %s is not positive", o.orderNumber, o.totalAmount))
	}

	return nil
}
