package order

import (
	"errors"
	"fmt"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// ErrSectionIsNotConstructed is returned when an OrderSection instance was not
// created through the NewOrderSection factory method.
var ErrSectionIsNotConstructed = errors.New("OrderSection must be created via NewOrderSection constructor")

// OrderSection groups related items within an order (for example one room of
// a fitted kitchen). Sections are numbered uniquely within their order and
// own their items exclusively.
type OrderSection struct {
	sectionNumber int
	name          string
	headerID      *kernel.UUID
	description   *string
	items         []*OrderItem

	isConstructed bool
}

// NewOrderSection creates a new empty OrderSection with validation.
//
// The section number must be positive (uniqueness within the order is
// enforced by Order.AddSection) and the name must be 1 to 200 characters.
func NewOrderSection(sectionNumber int, name string, headerID *kernel.UUID, description *string) (*OrderSection, error) {
	section := &OrderSection{
		isConstructed: true,
	}

	if err := errors.Join(
		section.setSectionNumber(sectionNumber),
		section.setName(name),
		section.setHeader(headerID, description),
	); err != nil {
		return nil, err
	}

	return section, nil
}

// RestoreOrderSection reconstructs an OrderSection with its items from
// persisted state. Items are attached without the capacity and duplicate
// checks applied during editing; the structural invariants of the section
// itself are still re-validated.
func RestoreOrderSection(
	sectionNumber int,
	name string,
	headerID *kernel.UUID,
	description *string,
	items []*OrderItem,
) (*OrderSection, error) {
	section, err := NewOrderSection(sectionNumber, name, headerID, description)
	if err != nil {
		return nil, err
	}

	if err := section.restoreItems(items); err != nil {
		return nil, err
	}

	return section, nil
}

// Validate ensures the OrderSection was created via NewOrderSection.
func (s *OrderSection) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSectionIsNotConstructed
	}
	return nil
}

// SectionNumber returns the section's number within its order.
func (s *OrderSection) SectionNumber() int {
	return s.sectionNumber
}

// Name returns the section's display name.
func (s *OrderSection) Name() string {
	return s.name
}

// HeaderID returns the optional header reference, or nil.
func (s *OrderSection) HeaderID() *kernel.UUID {
	return s.headerID
}

// Description returns the optional free-form description, or nil.
func (s *OrderSection) Description() *string {
	return s.description
}

// Items returns the section's items in insertion order.
func (s *OrderSection) Items() []*OrderItem {
	return s.items
}

// TotalAmount returns the sum of the items' total prices.
func (s *OrderSection) TotalAmount() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range s.items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// addItem appends a validated item, enforcing the section's item ceiling.
// Exposed only through Order.AddItemToSection so total recalculation always
// follows.
func (s *OrderSection) addItem(item *OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	if err := (ItemCapacityRule{}).Assert(len(s.items)); err != nil {
		return err
	}

	for _, existing := range s.items {
		if existing.ID().IsEqual(item.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("item",
				fmt.Errorf("item %s already exists in section %d", item.ID(), s.sectionNumber))
		}
	}

	s.items = append(s.items, item)
	return nil
}

// removeItem deletes the item with the given identifier.
// Exposed only through Order.RemoveItemFromSection.
func (s *OrderSection) removeItem(itemID kernel.UUID) error {
	for idx, item := range s.items {
		if item.ID().IsEqual(itemID) {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("item", itemID.String())
}

// restoreItems attaches persisted items without capacity or duplicate checks
// beyond validation; used by RestoreOrder.
func (s *OrderSection) restoreItems(items []*OrderItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	s.items = items
	return nil
}

func (s *OrderSection) setSectionNumber(sectionNumber int) error {
	if sectionNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("sectionNumber",
			fmt.Errorf("%d is not greater than 0", sectionNumber))
	}
	s.sectionNumber = sectionNumber
	return nil
}

func (s *OrderSection) setName(name string) error {
	name = strings.TrimSpace(name)
	if err := (NameLengthRule{}).Assert("name", name); err != nil {
		return err
	}
	s.name = name
	return nil
}

func (s *OrderSection) setHeader(headerID *kernel.UUID, description *string) error {
	if headerID != nil {
		if err := headerID.Validate(); err != nil {
			return err
		}
	}
	s.headerID = headerID
	s.description = description
	return nil
}
