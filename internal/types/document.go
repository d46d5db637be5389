package types

import (
	"fmt"
	"regexp"

	ierr "github.com/gestia/gestia/internal/errors"
)

// DocumentType is the category of business document governed by a numbering series
type DocumentType string

const (
	DocumentTypeInvoice        DocumentType = "invoice"
	DocumentTypeReceipt        DocumentType = "receipt"
	DocumentTypeCreditNote     DocumentType = "credit_note"
	DocumentTypeDebitNote      DocumentType = "debit_note"
	DocumentTypeInternalTicket DocumentType = "internal_ticket"
)

func (t DocumentType) String() string {
	return string(t)
}

func (t DocumentType) Validate() error {
	switch t {
	case DocumentTypeInvoice, DocumentTypeReceipt, DocumentTypeCreditNote,
		DocumentTypeDebitNote, DocumentTypeInternalTicket:
		return nil
	}
	return ierr.NewError("invalid document type").
		WithHintf("Document type '%s' is not supported", t).
		WithReportableDetails(map[string]any{
			"document_type": t,
			"allowed": []DocumentType{
				DocumentTypeInvoice,
				DocumentTypeReceipt,
				DocumentTypeCreditNote,
				DocumentTypeDebitNote,
				DocumentTypeInternalTicket,
			},
		}).
		Mark(ierr.ErrValidation)
}

// seriesCodeRegex matches one series-class letter followed by exactly 3 digits,
// e.g. "F001" for invoices or "B012" for receipts.
var seriesCodeRegex = regexp.MustCompile(`^[FBTEV][0-9]{3}$`)

// ValidateSeriesCode checks the short alphanumeric label of a document series
func ValidateSeriesCode(code string) error {
	if !seriesCodeRegex.MatchString(code) {
		return ierr.NewError("invalid series code").
			WithHintf("Series code '%s' must be one letter from F, B, T, E or V followed by 3 digits", code).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CorrelativeWidth is the fixed zero-padded width of the correlative
// part of a document number. Sequences that no longer fit are rejected
// by the allocator rather than widened silently.
const CorrelativeWidth = 7

// MaxCorrelative is the largest sequence representable at CorrelativeWidth
const MaxCorrelative = 9_999_999

// FormatDocumentNumber renders the full document number for a series
// code and sequence, e.g. ("F001", 42) -> "F001-0000042".
func FormatDocumentNumber(seriesCode string, sequence int64) string {
	return fmt.Sprintf("%s-%0*d", seriesCode, CorrelativeWidth, sequence)
}
