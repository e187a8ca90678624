package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrModifierIsNotConstructed is returned when a PriceModifier instance was not
	// created through the NewPriceModifier or RestorePriceModifier factory methods.
	ErrModifierIsNotConstructed = errors.New(
		"PriceModifier must be created via NewPriceModifier or RestorePriceModifier")

	// ErrModifierAlreadyActive is returned when activating a modifier that is already active.
	ErrModifierAlreadyActive = errs.NewOperationNotAllowedErrorWithCause("activate",
		errors.New("modifier is already active"))

	// ErrModifierAlreadyInactive is returned when deactivating a modifier that is already inactive.
	ErrModifierAlreadyInactive = errs.NewOperationNotAllowedErrorWithCause("deactivate",
		errors.New("modifier is already inactive"))
)

// ModifierOptions groups the optional attributes of a price modifier.
// The zero value means no property binding, no condition expression and no
// temporal window.
type ModifierOptions struct {
	// PropertyID and PropertyValue bind the modifier to a property selection.
	// Either both are set or neither: a half-set pair fails validation.
	PropertyID    *kernel.UUID
	PropertyValue *string

	// ConditionExpression is an opaque expression interpreted only by an
	// externally supplied ConditionEvaluator.
	ConditionExpression *string

	// StartDate and EndDate bound the modifier's validity window. Each side
	// is optional; when both are set, StartDate must not be after EndDate.
	StartDate *time.Time
	EndDate   *time.Time
}

// PriceModifier is a single pricing rule: a type, a magnitude, an optional
// property binding, an optional time window, an optional free-form condition
// and a priority. Modifiers with lower priority apply earlier in the
// calculation chain.
//
// PriceModifier follows these invariants:
//   - Must have a valid unique identifier and a non-empty code and name
//   - The magnitude must satisfy the type-specific bounds (see ModifierType.ValidateValue)
//   - Priority must be >= 0
//   - Property binding is all-or-nothing (id and value together)
//   - StartDate <= EndDate when both are present
//   - Can only be created through its factory methods
type PriceModifier struct {
	id                  kernel.UUID
	code                string
	name                string
	modifierType        ModifierType
	value               decimal.Decimal
	priority            int
	isActive            bool
	propertyID          *kernel.UUID
	propertyValue       *string
	conditionExpression *string
	startDate           *time.Time
	endDate             *time.Time

	isConstructed bool
}

// NewPriceModifier creates a new active PriceModifier with validation.
// This is the only way to create a modifier for a new pricing rule, ensuring
// all business invariants are maintained.
func NewPriceModifier(
	id kernel.UUID,
	code string,
	name string,
	modifierType ModifierType,
	value decimal.Decimal,
	priority int,
	opts ModifierOptions,
) (*PriceModifier, error) {
	m := &PriceModifier{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		m.setID(id),
		m.setCode(code),
		m.setType(modifierType),
		m.setInfo(name, value, priority, opts),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestorePriceModifier reconstructs a PriceModifier from persisted state.
// All invariants are re-validated so corrupt storage cannot produce an
// invalid aggregate.
func RestorePriceModifier(
	id kernel.UUID,
	code string,
	name string,
	modifierType ModifierType,
	value decimal.Decimal,
	priority int,
	isActive bool,
	opts ModifierOptions,
) (*PriceModifier, error) {
	m, err := NewPriceModifier(id, code, name, modifierType, value, priority, opts)
	if err != nil {
		return nil, err
	}

	m.isActive = isActive
	return m, nil
}

// Validate ensures the PriceModifier instance was properly constructed
// through one of the factory methods.
func (m *PriceModifier) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrModifierIsNotConstructed
	}
	return nil
}

// IsEqual compares two modifiers by their unique identifiers.
func (m *PriceModifier) IsEqual(other *PriceModifier) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the modifier's unique identifier.
func (m *PriceModifier) ID() kernel.UUID {
	return m.id
}

// Code returns the modifier's unique business code.
func (m *PriceModifier) Code() string {
	return m.code
}

// Name returns the modifier's display name.
func (m *PriceModifier) Name() string {
	return m.name
}

// Type returns the modifier's type.
func (m *PriceModifier) Type() ModifierType {
	return m.modifierType
}

// Value returns the modifier's magnitude. Its semantics depend on the type.
func (m *PriceModifier) Value() decimal.Decimal {
	return m.value
}

// Priority returns the application priority. Lower values apply earlier.
func (m *PriceModifier) Priority() int {
	return m.priority
}

// IsActive reports whether the modifier participates in calculations.
func (m *PriceModifier) IsActive() bool {
	return m.isActive
}

// PropertyID returns the bound property identifier, or nil when unbound.
func (m *PriceModifier) PropertyID() *kernel.UUID {
	return m.propertyID
}

// PropertyValue returns the bound property value, or nil when unbound.
func (m *PriceModifier) PropertyValue() *string {
	return m.propertyValue
}

// ConditionExpression returns the opaque condition expression, or nil when unset.
func (m *PriceModifier) ConditionExpression() *string {
	return m.conditionExpression
}

// StartDate returns the start of the validity window, or nil when open-ended.
func (m *PriceModifier) StartDate() *time.Time {
	return m.startDate
}

// EndDate returns the end of the validity window, or nil when open-ended.
func (m *PriceModifier) EndDate() *time.Time {
	return m.endDate
}

// UpdateInfo replaces the modifier's mutable attributes, re-validating every
// invariant. The identifier, code and type are fixed for the modifier's
// lifetime; the magnitude is re-checked against the existing type.
func (m *PriceModifier) UpdateInfo(name string, value decimal.Decimal, priority int, opts ModifierOptions) error {
	if err := m.Validate(); err != nil {
		return err
	}

	return m.setInfo(name, value, priority, opts)
}

// Activate marks the modifier as active. Activating an already-active
// modifier fails with ErrModifierAlreadyActive.
func (m *PriceModifier) Activate() error {
	if err := m.Validate(); err != nil {
		return err
	}

	if m.isActive {
		return ErrModifierAlreadyActive
	}

	m.isActive = true
	return nil
}

// Deactivate marks the modifier as inactive. Deactivating an already-inactive
// modifier fails with ErrModifierAlreadyInactive.
func (m *PriceModifier) Deactivate() error {
	if err := m.Validate(); err != nil {
		return err
	}

	if !m.isActive {
		return ErrModifierAlreadyInactive
	}

	m.isActive = false
	return nil
}

// IsApplicableFor decides whether the modifier applies to a property snapshot
// at a given instant.
//
// The decision proceeds as follows:
//  1. An inactive modifier never applies.
//  2. If a condition expression is set and an evaluator is supplied, the
//     evaluator decides. Any error or panic from the evaluator downgrades to
//     "not applicable" (fail-closed). If no evaluator is supplied, a modifier
//     carrying a condition expression is applicable by default; callers that
//     rely on conditions must wire an evaluator.
//  3. Otherwise the temporal window is checked against asOf.
//  4. Otherwise the property binding is compared by exact string equality
//     against the snapshot value for the bound property.
//
// Properties are keyed by property identifier (kernel.UUID string form).
func (m *PriceModifier) IsApplicableFor(
	properties map[string]string,
	asOf time.Time,
	evaluator ConditionEvaluator,
) bool {
	if !m.isActive {
		return false
	}

	if m.conditionExpression != nil {
		if evaluator == nil {
			return true
		}
		return m.evaluateCondition(evaluator, properties, asOf)
	}

	if m.startDate != nil && asOf.Before(*m.startDate) {
		return false
	}
	if m.endDate != nil && asOf.After(*m.endDate) {
		return false
	}

	if m.propertyID != nil {
		value, ok := properties[m.propertyID.String()]
		if !ok || value != *m.propertyValue {
			return false
		}
	}

	return true
}

// evaluateCondition delegates to the evaluator, downgrading errors and panics
// to "not applicable". Pricing must never fail open on a broken expression.
func (m *PriceModifier) evaluateCondition(
	evaluator ConditionEvaluator,
	properties map[string]string,
	asOf time.Time,
) (applicable bool) {
	defer func() {
		if r := recover(); r != nil {
			applicable = false
		}
	}()

	ok, err := evaluator.Evaluate(*m.conditionExpression, properties, asOf)
	if err != nil {
		return false
	}
	return ok
}

func (m *PriceModifier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *PriceModifier) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	m.code = code
	return nil
}

func (m *PriceModifier) setType(modifierType ModifierType) error {
	if err := modifierType.Validate(); err != nil {
		return err
	}
	m.modifierType = modifierType
	return nil
}

// setInfo assigns the mutable attributes as a unit. It is shared by the
// factory and UpdateInfo so every construction and every update enforce the
// same invariants.
func (m *PriceModifier) setInfo(name string, value decimal.Decimal, priority int, opts ModifierOptions) error {
	return errors.Join(
		m.setName(name),
		m.setValue(value),
		m.setPriority(priority),
		m.setPropertyBinding(opts.PropertyID, opts.PropertyValue),
		m.setConditionExpression(opts.ConditionExpression),
		m.setDates(opts.StartDate, opts.EndDate),
	)
}

func (m *PriceModifier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}

func (m *PriceModifier) setValue(value decimal.Decimal) error {
	if err := m.modifierType.ValidateValue(value); err != nil {
		return err
	}
	m.value = value
	return nil
}

func (m *PriceModifier) setPriority(priority int) error {
	if priority < 0 {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is not greater or equal to 0", priority))
	}
	m.priority = priority
	return nil
}

func (m *PriceModifier) setPropertyBinding(propertyID *kernel.UUID, propertyValue *string) error {
	if (propertyID == nil) != (propertyValue == nil) {
		return errs.NewValueIsInvalidErrorWithCause("propertyBinding",
			errors.New("propertyId and propertyValue must be set together"))
	}

	if propertyID != nil {
		if err := propertyID.Validate(); err != nil {
			return err
		}
		if *propertyValue == "" {
			return errs.NewValueIsRequiredError("propertyValue")
		}
	}

	m.propertyID = propertyID
	m.propertyValue = propertyValue
	return nil
}

func (m *PriceModifier) setConditionExpression(expression *string) error {
	if expression != nil && strings.TrimSpace(*expression) == "" {
		return errs.NewValueIsRequiredError("conditionExpression")
	}
	m.conditionExpression = expression
	return nil
}

func (m *PriceModifier) setDates(startDate, endDate *time.Time) error {
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return errs.NewValueIsInvalidErrorWithCause("dates",
			fmt.Errorf("startDate %s is after endDate %s", startDate, endDate))
	}
	m.startDate = startDate
	m.endDate = endDate
	return nil
}
