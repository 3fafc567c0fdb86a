package billing

import "errors"

var (
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrInvoiceHasPayment = errors.New("invoice already has a payment")
	ErrInvoiceNotPaid    = errors.New("invoice is not paid")
)
