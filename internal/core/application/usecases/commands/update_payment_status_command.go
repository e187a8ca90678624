package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/guard"
)

var ErrUpdatePaymentStatusCommandIsNotConstructed = errors.New(
	"UpdatePaymentStatusCommand must be created via NewUpdatePaymentStatusCommand constructor",
)

// UpdatePaymentStatusCommand represents a request to record a payment state
// change on an order.
type UpdatePaymentStatusCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	paymentStatus order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewUpdatePaymentStatusCommand creates a command to update an order's payment status.
func NewUpdatePaymentStatusCommand(
	orderID kernel.UUID,
	paymentStatus order.PaymentStatus,
) (UpdatePaymentStatusCommand, error) {
	cmd := UpdatePaymentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return UpdatePaymentStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.paymentStatus = paymentStatus
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being changed.
func (c UpdatePaymentStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentStatus returns the requested payment status.
func (c UpdatePaymentStatusCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}
