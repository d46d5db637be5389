package types

import (
	ierr "github.com/gestia/gestia/internal/errors"
)

// InvoiceStatus tracks the issuance lifecycle of an invoice.
// An issued invoice is never deleted and its number is never reused;
// voiding is the only legal transition out of issued.
type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusVoided InvoiceStatus = "voided"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	switch s {
	case InvoiceStatusIssued, InvoiceStatusVoided:
		return nil
	}
	return ierr.NewError("invalid invoice status").
		WithHintf("Invoice status '%s' is not supported", s).
		Mark(ierr.ErrValidation)
}
