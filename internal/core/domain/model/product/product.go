package product

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct factory method.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrPropertyActivationIsNotConstructed is returned when a PropertyActivation
	// was not created through NewPropertyActivation.
	ErrPropertyActivationIsNotConstructed = errs.NewValueIsRequiredError(
		"property activation must be created via NewPropertyActivation constructor")
)

// PropertyActivation is an immutable value object describing a product's
// default property selection: which property, which value, and whether the
// selection is active out of the box. Inactive defaults can still be
// re-activated by a caller's explicit selection during price calculation.
type PropertyActivation struct { //nolint:recvcheck //using for validation
	propertyID kernel.UUID
	value      string
	isActive   bool
	guard      guard.ConstructorGuard
}

// NewPropertyActivation creates a validated PropertyActivation.
func NewPropertyActivation(propertyID kernel.UUID, value string, isActive bool) (PropertyActivation, error) {
	if err := propertyID.Validate(); err != nil {
		return PropertyActivation{}, err
	}
	if strings.TrimSpace(value) == "" {
		return PropertyActivation{}, errs.NewValueIsRequiredError("value")
	}

	return PropertyActivation{
		propertyID: propertyID,
		value:      value,
		isActive:   isActive,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the PropertyActivation was created via its constructor.
func (p PropertyActivation) Validate() error {
	return p.guard.Validate(ErrPropertyActivationIsNotConstructed)
}

// PropertyID returns the identifier of the property this activation binds.
func (p PropertyActivation) PropertyID() kernel.UUID {
	return p.propertyID
}

// Value returns the property value of this activation.
func (p PropertyActivation) Value() string {
	return p.value
}

// IsActive reports whether the activation applies by default.
func (p PropertyActivation) IsActive() bool {
	return p.isActive
}

// Product is a read-only catalog entity consumed by the product-aware price
// calculation: base price, dimension-scaling behavior, default dimensions and
// default property activations. Products are managed outside this bounded
// context and only restored from the product repository here.
type Product struct {
	id                kernel.UUID
	name              string
	basePrice         kernel.Money
	unitType          UnitType
	defaultDimensions Dimensions
	defaultProperties []PropertyActivation

	isConstructed bool
}

// NewProduct creates a Product with validation.
//
// The base price must be non-negative, the unit type valid, the default
// dimensions constructed, and every default property activation valid.
func NewProduct(
	id kernel.UUID,
	name string,
	basePrice kernel.Money,
	unitType UnitType,
	defaultDimensions Dimensions,
	defaultProperties []PropertyActivation,
) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setBasePrice(basePrice),
		p.setUnitType(unitType),
		p.setDefaultDimensions(defaultDimensions),
		p.setDefaultProperties(defaultProperties),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Product was created via NewProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// BasePrice returns the product's base price per unit measure.
func (p *Product) BasePrice() kernel.Money {
	return p.basePrice
}

// UnitType returns how the product's price scales with dimensions.
func (p *Product) UnitType() UnitType {
	return p.unitType
}

// DefaultDimensions returns the product's default physical size.
func (p *Product) DefaultDimensions() Dimensions {
	return p.defaultDimensions
}

// DefaultProperties returns the product's default property activations.
func (p *Product) DefaultProperties() []PropertyActivation {
	return p.defaultProperties
}

// ActivePropertySnapshot returns the product's active default properties as
// a snapshot keyed by property identifier, suitable for overlaying with
// caller-selected properties during price calculation.
func (p *Product) ActivePropertySnapshot() map[string]string {
	snapshot := make(map[string]string, len(p.defaultProperties))
	for _, activation := range p.defaultProperties {
		if activation.IsActive() {
			snapshot[activation.PropertyID().String()] = activation.Value()
		}
	}
	return snapshot
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setBasePrice(basePrice kernel.Money) error {
	if err := basePrice.Validate(); err != nil {
		return err
	}
	if basePrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("basePrice",
			errors.New(basePrice.String()+" is negative"))
	}
	p.basePrice = basePrice
	return nil
}

func (p *Product) setUnitType(unitType UnitType) error {
	if err := unitType.Validate(); err != nil {
		return err
	}
	p.unitType = unitType
	return nil
}

func (p *Product) setDefaultDimensions(dimensions Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	p.defaultDimensions = dimensions
	return nil
}

func (p *Product) setDefaultProperties(properties []PropertyActivation) error {
	for _, activation := range properties {
		if err := activation.Validate(); err != nil {
			return err
		}
	}
	p.defaultProperties = properties
	return nil
}
