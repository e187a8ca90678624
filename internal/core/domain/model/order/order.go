package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the order management domain. It owns a tree
// of sections, items and property bindings, and is the only way to mutate
// any of them.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Client identifier is positive, client name non-empty
//   - Status transitions follow the state machine in statusTransitions
//   - Section numbers are unique within the order, capped at MaxSectionsPerOrder
//   - The advisory lock is either fully present (owner and timestamp) or absent
//   - totalAmount is derived bottom-up (item, section, order) after every
//     structural change and is never set directly
//
// The aggregate is not internally synchronized: each fetch-mutate-save cycle
// must be serialized by the caller. The advisory lock is a convention between
// cooperating callers, not an enforced mutual exclusion.
type Order struct {
	id            kernel.UUID
	orderNumber   string
	clientID      int64
	clientName    string
	status        Status
	paymentStatus PaymentStatus
	deadline      *time.Time
	lock          *LockInfo
	sections      []*OrderSection
	notes         string
	totalAmount   kernel.Money

	isConstructed bool
}

// NewOrder creates a new Order in Draft status with validation.
//
// The order number, client name and notes are trimmed. The deadline, when
// present, must be strictly in the future at creation time; restored orders
// are exempt from this check.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	clientID int64,
	clientName string,
	deadline *time.Time,
	notes string,
) (*Order, error) {
	o := &Order{
		status:        Draft,
		paymentStatus: Unpaid,
		totalAmount:   kernel.ZeroMoney(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setClient(clientID, clientName),
		o.setDeadlineAtCreation(deadline),
		o.setNotes(notes),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state.
//
// All structural invariants are re-validated, except the deadline-in-future
// rule, which applies at creation only. The total amount is re-derived from
// the restored sections rather than trusted from storage.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	clientID int64,
	clientName string,
	status Status,
	paymentStatus PaymentStatus,
	deadline *time.Time,
	lock *LockInfo,
	sections []*OrderSection,
	notes string,
) (*Order, error) {
	o := &Order{
		totalAmount:   kernel.ZeroMoney(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setClient(clientID, clientName),
		o.setStatus(status),
		o.setPaymentStatus(paymentStatus),
		o.setLock(lock),
		o.setNotes(notes),
	); err != nil {
		return nil, err
	}

	o.deadline = deadline

	if err := o.restoreSections(sections); err != nil {
		return nil, err
	}

	o.recalculateTotal()
	return o, nil
}

// Validate ensures the Order instance was properly constructed through one
// of the factory methods. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the order's unique business number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// ClientID returns the ordering client's identifier.
func (o *Order) ClientID() int64 {
	return o.clientID
}

// ClientName returns the ordering client's display name.
func (o *Order) ClientName() string {
	return o.clientName
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Deadline returns the requested completion date, or nil.
func (o *Order) Deadline() *time.Time {
	return o.deadline
}

// Lock returns the advisory lock currently held on the order, or nil.
func (o *Order) Lock() *LockInfo {
	return o.lock
}

// Sections returns the order's sections in insertion order.
func (o *Order) Sections() []*OrderSection {
	return o.sections
}

// Notes returns the free-form order notes.
func (o *Order) Notes() string {
	return o.notes
}

// TotalAmount returns the derived order total: the sum of section totals,
// which are each the sum of their items' total prices.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// CanBeModified reports whether structural mutation is currently allowed.
func (o *Order) CanBeModified() bool {
	return o.status.CanBeModified()
}

// AddSection attaches a new section to the order.
//
// Fails when the order is not modifiable, the section ceiling is reached,
// or a section with the same number already exists.
func (o *Order) AddSection(section *OrderSection) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := section.Validate(); err != nil {
		return err
	}
	if err := o.assertModifiable("addSection"); err != nil {
		return err
	}
	if err := (SectionCapacityRule{}).Assert(len(o.sections)); err != nil {
		return err
	}

	if o.findSection(section.SectionNumber()) != nil {
		return errs.NewValueIsInvalidErrorWithCause("sectionNumber",
			fmt.Errorf("section %d already exists in order %s", section.SectionNumber(), o.orderNumber))
	}

	o.sections = append(o.sections, section)
	o.recalculateTotal()
	return nil
}

// RemoveSection detaches the section with the given number, with its items.
func (o *Order) RemoveSection(sectionNumber int) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.assertModifiable("removeSection"); err != nil {
		return err
	}

	for idx, section := range o.sections {
		if section.SectionNumber() == sectionNumber {
			o.sections = append(o.sections[:idx], o.sections[idx+1:]...)
			o.recalculateTotal()
			return nil
		}
	}

	return errs.NewObjectNotFoundError("section", sectionNumber)
}

// AddItemToSection attaches a priced item to the section with the given
// number and re-derives the order total.
func (o *Order) AddItemToSection(sectionNumber int, item *OrderItem) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.assertModifiable("addItem"); err != nil {
		return err
	}

	section := o.findSection(sectionNumber)
	if section == nil {
		return errs.NewObjectNotFoundError("section", sectionNumber)
	}

	if err := section.addItem(item); err != nil {
		return err
	}

	o.recalculateTotal()
	return nil
}

// RemoveItemFromSection detaches the item with the given identifier from the
// section with the given number and re-derives the order total.
func (o *Order) RemoveItemFromSection(sectionNumber int, itemID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.assertModifiable("removeItem"); err != nil {
		return err
	}

	section := o.findSection(sectionNumber)
	if section == nil {
		return errs.NewObjectNotFoundError("section", sectionNumber)
	}

	if err := section.removeItem(itemID); err != nil {
		return err
	}

	o.recalculateTotal()
	return nil
}

// ChangeStatus moves the order to the next lifecycle status according to the
// transition table. Requesting the current status again is a no-op. The
// Draft to Confirmed transition additionally requires the confirmation rule
// to hold.
func (o *Order) ChangeStatus(next Status) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if next == o.status {
		return nil
	}

	if o.status == Draft && next == Confirmed {
		if err := (ConfirmationRule{}).Assert(o); err != nil {
			return err
		}
	}

	newStatus, err := o.status.Transition(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// UpdatePaymentStatus replaces the payment status. Payment state carries no
// transition graph; any valid value is accepted.
func (o *Order) UpdatePaymentStatus(paymentStatus PaymentStatus) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.setPaymentStatus(paymentStatus)
}

// AcquireLock acquires or refreshes the advisory lock for the given user.
//
// An unlocked order is locked with a fresh timestamp. A repeated acquire by
// the current holder refreshes the timestamp (keep-alive). An acquire by a
// different user fails.
func (o *Order) AcquireLock(userID int64) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.lock != nil && !o.lock.IsHeldBy(userID) {
		return errs.NewOperationNotAllowedErrorWithCause("lock",
			fmt.Errorf("order %s is locked by user %d", o.orderNumber, o.lock.UserID()))
	}

	lock, err := NewLockInfo(userID, time.Now())
	if err != nil {
		return err
	}

	o.lock = &lock
	return nil
}

// ReleaseLock releases the advisory lock held by the given user.
//
// Releasing an unlocked order is a no-op. A release by a non-holder fails.
func (o *Order) ReleaseLock(userID int64) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.lock == nil {
		return nil
	}

	if !o.lock.IsHeldBy(userID) {
		return errs.NewOperationNotAllowedErrorWithCause("unlock",
			fmt.Errorf("order %s is locked by user %d, not %d", o.orderNumber, o.lock.UserID(), userID))
	}

	o.lock = nil
	return nil
}

// ForceReleaseExpiredLock releases the lock regardless of owner when it has
// expired as of the given instant. Returns true when a lock was released.
// Intended for the background actor that polls for stale locks.
func (o *Order) ForceReleaseExpiredLock(asOf time.Time, timeout time.Duration) bool {
	if o.lock == nil || !o.lock.IsExpired(asOf, timeout) {
		return false
	}

	o.lock = nil
	return true
}

// UpdateInfo replaces the order's client name, deadline and notes.
// Allowed only while the order is modifiable. The deadline-in-future rule
// applies at creation only, so no temporal check happens here.
func (o *Order) UpdateInfo(clientName string, deadline *time.Time, notes string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.assertModifiable("updateInfo"); err != nil {
		return err
	}

	if err := errors.Join(
		o.setClient(o.clientID, clientName),
		o.setNotes(notes),
	); err != nil {
		return err
	}

	o.deadline = deadline
	return nil
}

// CalculateTotalAmount re-derives and returns the order total. The total is
// already maintained by every structural mutator; this method exists for
// callers that restored or rebuilt state out of band.
func (o *Order) CalculateTotalAmount() kernel.Money {
	o.recalculateTotal()
	return o.totalAmount
}

// findSection returns the section with the given number, or nil.
func (o *Order) findSection(sectionNumber int) *OrderSection {
	for _, section := range o.sections {
		if section.SectionNumber() == sectionNumber {
			return section
		}
	}
	return nil
}

// recalculateTotal re-derives totalAmount bottom-up from the section totals.
func (o *Order) recalculateTotal() {
	total := kernel.ZeroMoney()
	for _, section := range o.sections {
		total = total.Add(section.TotalAmount())
	}
	o.totalAmount = total
}

func (o *Order) assertModifiable(operation string) error {
	if !o.status.CanBeModified() {
		return errs.NewOperationNotAllowedErrorWithCause(operation,
			fmt.Errorf("order %s in status %s cannot be modified", o.orderNumber, o.status))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setClient(clientID int64, clientName string) error {
	if clientID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("clientId",
			fmt.Errorf("%d is not greater than 0", clientID))
	}

	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return errs.NewValueIsRequiredError("clientName")
	}

	o.clientID = clientID
	o.clientName = clientName
	return nil
}

func (o *Order) setDeadlineAtCreation(deadline *time.Time) error {
	if deadline != nil {
		if err := (DeadlineRule{}).Assert(*deadline, time.Now()); err != nil {
			return err
		}
	}
	o.deadline = deadline
	return nil
}

func (o *Order) setNotes(notes string) error {
	o.notes = strings.TrimSpace(notes)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(paymentStatus PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}
	o.paymentStatus = paymentStatus
	return nil
}

func (o *Order) setLock(lock *LockInfo) error {
	if lock != nil {
		if err := lock.Validate(); err != nil {
			return err
		}
	}
	o.lock = lock
	return nil
}

func (o *Order) restoreSections(sections []*OrderSection) error {
	if len(sections) > MaxSectionsPerOrder {
		return errs.NewOperationNotAllowedErrorWithCause("addSection",
			fmt.Errorf("order has %d sections (max %d)", len(sections), MaxSectionsPerOrder))
	}

	seen := make(map[int]struct{}, len(sections))
	for _, section := range sections {
		if err := section.Validate(); err != nil {
			return err
		}
		if _, ok := seen[section.SectionNumber()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("sectionNumber",
				fmt.Errorf("duplicate section %d", section.SectionNumber()))
		}
		seen[section.SectionNumber()] = struct{}{}
	}

	o.sections = sections
	return nil
}
