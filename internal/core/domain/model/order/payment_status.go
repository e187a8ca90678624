package order

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// PaymentStatus tracks how much of the order has been paid for.
// Unlike Status it carries no transition graph: payment state is reported by
// the billing system and any valid value may replace any other.
type PaymentStatus int

const (
	// UnknownPaymentStatus represents an invalid or undefined payment status.
	UnknownPaymentStatus PaymentStatus = iota

	// Unpaid is the initial payment status.
	Unpaid

	// PartiallyPaid indicates an advance or installment has been received.
	PartiallyPaid

	// Paid indicates the order has been paid in full.
	Paid

	// Refunded indicates payments were returned to the client.
	Refunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPaymentStatus: "UNKNOWN",
		Unpaid:               "UNPAID",
		PartiallyPaid:        "PARTIALLY_PAID",
		Paid:                 "PAID",
		Refunded:             "REFUNDED",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // UnknownPaymentStatus is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		Unpaid:        "UNPAID",
		PartiallyPaid: "PARTIALLY_PAID",
		Paid:          "PAID",
		Refunded:      "REFUNDED",
	}
}

// PaymentStatusFromString parses a persisted string representation back into
// a PaymentStatus.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the persisted name of the payment status.
// Returns "UNKNOWN" for invalid values.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
