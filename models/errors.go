package models

import "fmt"

// ErrorNotFound maps to HTTP 404.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string {
	return e.Message
}

// ErrorPaymentUnconfirmed is returned when a checkout session exists but its
// payment status is not "paid". The row stays in draft.
type ErrorPaymentUnconfirmed struct {
	SessionID string
}

func (e ErrorPaymentUnconfirmed) Error() string {
	return fmt.Sprintf("payment not confirmed for session %s", e.SessionID)
}

// ErrorProvider wraps a payment-provider failure and maps to HTTP 500.
type ErrorProvider struct {
	Op  string
	Err error
}

func (e ErrorProvider) Error() string {
	return fmt.Sprintf("payment provider error during %s: %v", e.Op, e.Err)
}

func (e ErrorProvider) Unwrap() error {
	return e.Err
}
