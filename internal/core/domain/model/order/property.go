package order

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

// ErrPropertyIsNotConstructed is returned when attempting to use an improperly
// initialized PropertyInOrder. Properties must be created via NewPropertyInOrder.
var ErrPropertyIsNotConstructed = errs.NewValueIsRequiredError(
	"property must be created via NewPropertyInOrder constructor")

// PropertyInOrder is an immutable value object binding a selected property
// value to an order item: the property's identity, business code, display
// name and the chosen value. All four attributes are required and cannot
// change after creation — reconfiguring an item means replacing it.
type PropertyInOrder struct { //nolint:recvcheck //using for validation
	propertyID   kernel.UUID
	propertyCode string
	propertyName string
	value        string
	guard        guard.ConstructorGuard
}

// NewPropertyInOrder creates a validated PropertyInOrder.
func NewPropertyInOrder(propertyID kernel.UUID, propertyCode, propertyName, value string) (PropertyInOrder, error) {
	p := PropertyInOrder{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setPropertyID(propertyID),
		p.setPropertyCode(propertyCode),
		p.setPropertyName(propertyName),
		p.setValue(value),
	); err != nil {
		return PropertyInOrder{}, err
	}

	return p, nil
}

// Validate ensures the PropertyInOrder was created via its constructor.
func (p PropertyInOrder) Validate() error {
	return p.guard.Validate(ErrPropertyIsNotConstructed)
}

// PropertyID returns the identifier of the bound property.
func (p PropertyInOrder) PropertyID() kernel.UUID {
	return p.propertyID
}

// PropertyCode returns the property's business code.
func (p PropertyInOrder) PropertyCode() string {
	return p.propertyCode
}

// PropertyName returns the property's display name.
func (p PropertyInOrder) PropertyName() string {
	return p.propertyName
}

// Value returns the selected property value.
func (p PropertyInOrder) Value() string {
	return p.value
}

func (p *PropertyInOrder) setPropertyID(propertyID kernel.UUID) error {
	if err := propertyID.Validate(); err != nil {
		return err
	}
	p.propertyID = propertyID
	return nil
}

func (p *PropertyInOrder) setPropertyCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("propertyCode")
	}
	p.propertyCode = code
	return nil
}

func (p *PropertyInOrder) setPropertyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("propertyName")
	}
	p.propertyName = name
	return nil
}

func (p *PropertyInOrder) setValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError("value")
	}
	p.value = value
	return nil
}
