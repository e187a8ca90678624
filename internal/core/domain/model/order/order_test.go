package order_test

import (
	"testing"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureTime(t *testing.T) *time.Time {
	t.Helper()
	deadline := time.Now().Add(72 * time.Hour)
	return &deadline
}

func newDraftOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-2025-001", 42, "Acme Interiors", nil, "")
	require.NoError(t, err)
	return o
}

// newConfirmableOrder returns a draft order with one section holding one item,
// so the confirmation rule is satisfied.
func newConfirmableOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newDraftOrder(t)

	section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
	require.NoError(t, err)
	require.NoError(t, o.AddSection(section))
	require.NoError(t, o.AddItemToSection(1, newTestItem(t)))
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		deadline := futureTime(t)

		o, err := order.NewOrder(validID, "ORD-2025-001", 42, "Acme Interiors", deadline, "call before delivery")

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, "ORD-2025-001", o.OrderNumber())
		assert.Equal(t, int64(42), o.ClientID())
		assert.Equal(t, "Acme Interiors", o.ClientName())
		assert.Equal(t, order.Draft, o.Status())
		assert.Equal(t, order.Unpaid, o.PaymentStatus())
		assert.Equal(t, deadline, o.Deadline())
		assert.Equal(t, "call before delivery", o.Notes())
		assert.Nil(t, o.Lock())
		assert.Empty(t, o.Sections())
		assert.True(t, o.TotalAmount().IsZero())
	})

	t.Run("should trim order number, client name and notes", func(t *testing.T) {
		o, err := order.NewOrder(validID, "  ORD-2025-002  ", 42, "  Acme  ", nil, "  note  ")

		require.NoError(t, err)
		assert.Equal(t, "ORD-2025-002", o.OrderNumber())
		assert.Equal(t, "Acme", o.ClientName())
		assert.Equal(t, "note", o.Notes())
	})

	t.Run("should fail with blank order number", func(t *testing.T) {
		o, err := order.NewOrder(validID, "   ", 42, "Acme", nil, "")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "orderNumber")
	})

	t.Run("should fail with non-positive client id", func(t *testing.T) {
		for _, clientID := range []int64{0, -1} {
			_, err := order.NewOrder(validID, "ORD-2025-001", clientID, "Acme", nil, "")

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "clientId")
		}
	})

	t.Run("should fail with blank client name", func(t *testing.T) {
		_, err := order.NewOrder(validID, "ORD-2025-001", 42, "   ", nil, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "clientName")
	})

	t.Run("should fail with deadline in the past", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)

		_, err := order.NewOrder(validID, "ORD-2025-001", 42, "Acme", &past, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "deadline")
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := order.NewOrder(invalidID, "", 0, "", nil, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "orderNumber")
		assert.Contains(t, err.Error(), "clientId")
		assert.Contains(t, err.Error(), "clientName")
	})

	t.Run("should fail validation for default constructed order", func(t *testing.T) {
		var o order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrderSections(t *testing.T) {
	t.Run("should add section and derive total", func(t *testing.T) {
		o := newDraftOrder(t)
		section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
		require.NoError(t, err)

		require.NoError(t, o.AddSection(section))

		assert.Len(t, o.Sections(), 1)
		assert.True(t, o.TotalAmount().IsZero())
	})

	t.Run("should reject duplicate section number", func(t *testing.T) {
		o := newDraftOrder(t)
		first, err := order.NewOrderSection(1, "Kitchen", nil, nil)
		require.NoError(t, err)
		second, err := order.NewOrderSection(1, "Bedroom", nil, nil)
		require.NoError(t, err)

		require.NoError(t, o.AddSection(first))
		err = o.AddSection(second)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("should enforce the section ceiling", func(t *testing.T) {
		o := newDraftOrder(t)
		for i := 1; i <= order.MaxSectionsPerOrder; i++ {
			section, err := order.NewOrderSection(i, "Section", nil, nil)
			require.NoError(t, err)
			require.NoError(t, o.AddSection(section))
		}

		overflow, err := order.NewOrderSection(order.MaxSectionsPerOrder+1, "Overflow", nil, nil)
		require.NoError(t, err)
		err = o.AddSection(overflow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOperationNotAllowed)
	})

	t.Run("should remove section with its items and derive total", func(t *testing.T) {
		o := newConfirmableOrder(t)
		require.True(t, o.TotalAmount().IsPositive())

		require.NoError(t, o.RemoveSection(1))

		assert.Empty(t, o.Sections())
		assert.True(t, o.TotalAmount().IsZero())
	})

	t.Run("should fail to remove missing section", func(t *testing.T) {
		o := newDraftOrder(t)

		err := o.RemoveSection(7)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject structural changes outside draft and confirmed", func(t *testing.T) {
		o := newConfirmableOrder(t)
		require.NoError(t, o.ChangeStatus(order.Confirmed))
		require.NoError(t, o.ChangeStatus(order.InProduction))

		section, err := order.NewOrderSection(2, "Bedroom", nil, nil)
		require.NoError(t, err)

		assert.ErrorIs(t, o.AddSection(section), errs.ErrOperationNotAllowed)
		assert.ErrorIs(t, o.RemoveSection(1), errs.ErrOperationNotAllowed)
		assert.ErrorIs(t, o.AddItemToSection(1, newTestItem(t)), errs.ErrOperationNotAllowed)
		assert.ErrorIs(t, o.RemoveItemFromSection(1, kernel.NewUUID()), errs.ErrOperationNotAllowed)
	})
}

func TestOrderItems(t *testing.T) {
	t.Run("should add item and derive totals bottom-up", func(t *testing.T) {
		o := newDraftOrder(t)
		section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
		require.NoError(t, err)
		require.NoError(t, o.AddSection(section))

		item := newTestItem(t)
		require.NoError(t, o.AddItemToSection(1, item))

		assert.Len(t, section.Items(), 1)
		assert.True(t, section.TotalAmount().IsEqual(item.TotalPrice()))
		assert.True(t, o.TotalAmount().IsEqual(item.TotalPrice()))
	})

	t.Run("should sum totals across sections", func(t *testing.T) {
		o := newDraftOrder(t)
		for i := 1; i <= 2; i++ {
			section, err := order.NewOrderSection(i, "Section", nil, nil)
			require.NoError(t, err)
			require.NoError(t, o.AddSection(section))
			require.NoError(t, o.AddItemToSection(i, newTestItem(t)))
		}

		expected := mustMoney(t, 4800)
		assert.True(t, o.TotalAmount().IsEqual(expected),
			"total %s, expected %s", o.TotalAmount(), expected)
	})

	t.Run("should fail to add item to missing section", func(t *testing.T) {
		o := newDraftOrder(t)

		err := o.AddItemToSection(1, newTestItem(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject duplicate item identifier within a section", func(t *testing.T) {
		o := newDraftOrder(t)
		section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
		require.NoError(t, err)
		require.NoError(t, o.AddSection(section))

		item := newTestItem(t)
		require.NoError(t, o.AddItemToSection(1, item))
		err = o.AddItemToSection(1, item)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should enforce the item ceiling per section", func(t *testing.T) {
		o := newDraftOrder(t)
		section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
		require.NoError(t, err)
		require.NoError(t, o.AddSection(section))

		for i := 0; i < order.MaxItemsPerSection; i++ {
			require.NoError(t, o.AddItemToSection(1, newTestItem(t)))
		}

		err = o.AddItemToSection(1, newTestItem(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOperationNotAllowed)
	})

	t.Run("should remove item and derive totals", func(t *testing.T) {
		o := newDraftOrder(t)
		section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
		require.NoError(t, err)
		require.NoError(t, o.AddSection(section))

		item := newTestItem(t)
		require.NoError(t, o.AddItemToSection(1, item))
		require.NoError(t, o.RemoveItemFromSection(1, item.ID()))

		assert.Empty(t, section.Items())
		assert.True(t, o.TotalAmount().IsZero())
	})

	t.Run("should fail to remove missing item", func(t *testing.T) {
		o := newDraftOrder(t)
		section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
		require.NoError(t, err)
		require.NoError(t, o.AddSection(section))

		err = o.RemoveItemFromSection(1, kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrderChangeStatus(t *testing.T) {
	t.Run("should walk the full lifecycle to delivered", func(t *testing.T) {
		o := newConfirmableOrder(t)

		require.NoError(t, o.ChangeStatus(order.Confirmed))
		require.NoError(t, o.ChangeStatus(order.InProduction))
		require.NoError(t, o.ChangeStatus(order.Ready))
		require.NoError(t, o.ChangeStatus(order.Delivered))

		assert.Equal(t, order.Delivered, o.Status())
		assert.True(t, o.Status().IsTerminal())
	})

	t.Run("should treat requesting the current status as a no-op", func(t *testing.T) {
		o := newDraftOrder(t)

		require.NoError(t, o.ChangeStatus(order.Draft))

		assert.Equal(t, order.Draft, o.Status())
	})

	t.Run("should reject confirmation of an order without sections", func(t *testing.T) {
		o := newDraftOrder(t)

		err := o.ChangeStatus(order.Confirmed)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOperationNotAllowed)
		assert.Equal(t, order.Draft, o.Status())
	})

	t.Run("should reject confirmation when a section has no items", func(t *testing.T) {
		o := newDraftOrder(t)
		section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
		require.NoError(t, err)
		require.NoError(t, o.AddSection(section))

		err = o.ChangeStatus(order.Confirmed)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOperationNotAllowed)
	})

	t.Run("should reject illegal transition", func(t *testing.T) {
		o := newDraftOrder(t)

		err := o.ChangeStatus(order.Ready)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOperationNotAllowed)
		assert.Equal(t, order.Draft, o.Status())
	})

	t.Run("should allow cancellation from draft", func(t *testing.T) {
		o := newDraftOrder(t)

		require.NoError(t, o.ChangeStatus(order.Cancelled))

		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrderUpdatePaymentStatus(t *testing.T) {
	t.Run("should accept any valid payment status", func(t *testing.T) {
		o := newDraftOrder(t)

		for _, s := range []order.PaymentStatus{
			order.PartiallyPaid, order.Paid, order.Refunded, order.Unpaid,
		} {
			require.NoError(t, o.UpdatePaymentStatus(s))
			assert.Equal(t, s, o.PaymentStatus())
		}
	})

	t.Run("should reject invalid payment status", func(t *testing.T) {
		o := newDraftOrder(t)

		err := o.UpdatePaymentStatus(order.PaymentStatus(99))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrderLocking(t *testing.T) {
	t.Run("should acquire lock on unlocked order", func(t *testing.T) {
		o := newDraftOrder(t)

		require.NoError(t, o.AcquireLock(100))

		require.NotNil(t, o.Lock())
		assert.Equal(t, int64(100), o.Lock().UserID())
	})

	t.Run("should refresh timestamp on repeated acquire by holder", func(t *testing.T) {
		o := newDraftOrder(t)
		require.NoError(t, o.AcquireLock(100))
		first := o.Lock().LockedAt()

		require.NoError(t, o.AcquireLock(100))

		require.NotNil(t, o.Lock())
		assert.Equal(t, int64(100), o.Lock().UserID())
		assert.False(t, o.Lock().LockedAt().Before(first))
	})

	t.Run("should reject acquire by another user", func(t *testing.T) {
		o := newDraftOrder(t)
		require.NoError(t, o.AcquireLock(100))

		err := o.AcquireLock(200)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOperationNotAllowed)
		assert.Equal(t, int64(100), o.Lock().UserID())
	})

	t.Run("should release lock held by the same user", func(t *testing.T) {
		o := newDraftOrder(t)
		require.NoError(t, o.AcquireLock(100))

		require.NoError(t, o.ReleaseLock(100))

		assert.Nil(t, o.Lock())
	})

	t.Run("should treat release of unlocked order as a no-op", func(t *testing.T) {
		o := newDraftOrder(t)

		require.NoError(t, o.ReleaseLock(100))

		assert.Nil(t, o.Lock())
	})

	t.Run("should reject release by non-holder", func(t *testing.T) {
		o := newDraftOrder(t)
		require.NoError(t, o.AcquireLock(100))

		err := o.ReleaseLock(200)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOperationNotAllowed)
		require.NotNil(t, o.Lock())
	})

	t.Run("should force release only expired locks", func(t *testing.T) {
		o := newDraftOrder(t)
		require.NoError(t, o.AcquireLock(100))
		lockedAt := o.Lock().LockedAt()

		released := o.ForceReleaseExpiredLock(lockedAt.Add(10*time.Minute), order.DefaultLockTimeout)
		assert.False(t, released)
		assert.NotNil(t, o.Lock())

		released = o.ForceReleaseExpiredLock(lockedAt.Add(31*time.Minute), order.DefaultLockTimeout)
		assert.True(t, released)
		assert.Nil(t, o.Lock())
	})

	t.Run("should report nothing to release on unlocked order", func(t *testing.T) {
		o := newDraftOrder(t)

		assert.False(t, o.ForceReleaseExpiredLock(time.Now(), order.DefaultLockTimeout))
	})
}

func TestOrderUpdateInfo(t *testing.T) {
	t.Run("should update client name, deadline and notes", func(t *testing.T) {
		o := newDraftOrder(t)
		deadline := futureTime(t)

		require.NoError(t, o.UpdateInfo("  New Client  ", deadline, "  urgent  "))

		assert.Equal(t, "New Client", o.ClientName())
		assert.Equal(t, deadline, o.Deadline())
		assert.Equal(t, "urgent", o.Notes())
	})

	t.Run("should allow a past deadline on update", func(t *testing.T) {
		// The deadline-in-future rule applies at creation only; a deadline
		// may legitimately slip into the past while the order is edited.
		o := newDraftOrder(t)
		past := time.Now().Add(-time.Hour)

		require.NoError(t, o.UpdateInfo("Acme", &past, ""))

		assert.Equal(t, &past, o.Deadline())
	})

	t.Run("should reject update outside draft and confirmed", func(t *testing.T) {
		o := newConfirmableOrder(t)
		require.NoError(t, o.ChangeStatus(order.Confirmed))
		require.NoError(t, o.ChangeStatus(order.InProduction))

		err := o.UpdateInfo("New Client", nil, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrOperationNotAllowed)
	})

	t.Run("should reject blank client name", func(t *testing.T) {
		o := newDraftOrder(t)

		err := o.UpdateInfo("   ", nil, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order and re-derive total from sections", func(t *testing.T) {
		id := kernel.NewUUID()
		lock, err := order.NewLockInfo(100, time.Now().Add(-10*time.Minute))
		require.NoError(t, err)

		section, err := order.NewOrderSection(1, "Kitchen", nil, nil)
		require.NoError(t, err)
		o := newDraftOrder(t)
		require.NoError(t, o.AddSection(section))
		item := newTestItem(t)
		require.NoError(t, o.AddItemToSection(1, item))

		past := time.Now().Add(-24 * time.Hour)
		restored, err := order.RestoreOrder(
			id, "ORD-2024-777", 42, "Acme Interiors",
			order.InProduction, order.PartiallyPaid,
			&past, &lock, o.Sections(), "rush job",
		)

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.Equal(t, order.InProduction, restored.Status())
		assert.Equal(t, order.PartiallyPaid, restored.PaymentStatus())
		assert.Equal(t, &past, restored.Deadline())
		require.NotNil(t, restored.Lock())
		assert.Equal(t, int64(100), restored.Lock().UserID())
		assert.True(t, restored.TotalAmount().IsEqual(item.TotalPrice()))
	})

	t.Run("should fail with duplicate section numbers", func(t *testing.T) {
		first, err := order.NewOrderSection(1, "Kitchen", nil, nil)
		require.NoError(t, err)
		second, err := order.NewOrderSection(1, "Bedroom", nil, nil)
		require.NoError(t, err)

		_, err = order.RestoreOrder(
			kernel.NewUUID(), "ORD-2024-778", 42, "Acme",
			order.Draft, order.Unpaid,
			nil, nil, []*order.OrderSection{first, second}, "",
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-2024-779", 42, "Acme",
			order.UnknownStatus, order.Unpaid,
			nil, nil, nil, "",
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
