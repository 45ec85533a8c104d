package payment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSplitConfig means a co-host split is misconfigured
	// (unknown type, or a percentage outside [0,1]).
	ErrInvalidSplitConfig = errors.New("invalid co-host split configuration")
	// ErrMissingPaymentMethod means no stored customer/payment-method pair
	// exists for an off-session charge.
	ErrMissingPaymentMethod = errors.New("no saved payment method on file")
	// ErrChargeInProgress means another worker holds the per-installment lock.
	ErrChargeInProgress = errors.New("installment charge already in progress")
	// ErrInstallmentNotFound means the booking has no installment with that number.
	ErrInstallmentNotFound = errors.New("installment not found")
)

// ChargeError is a gateway decline or API failure on an off-session
// charge. The installment is marked failed; retrying is a host decision.
type ChargeError struct {
	Code    string
	Message string
}

func (e *ChargeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway charge failed (%s): %s", e.Code, e.Message)
	}
	return "gateway charge failed: " + e.Message
}
