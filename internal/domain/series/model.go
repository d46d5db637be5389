package series

import (
	"github.com/gestia/gestia/internal/types"
)

// Series is a named numbering stream for one document type at one
// establishment, e.g. "invoices, branch 1, series F001".
type Series struct {
	// ID is the unique identifier of the series
	ID string `db:"id" json:"id"`

	// EstablishmentID references the issuing location
	EstablishmentID string `db:"establishment_id" json:"establishment_id"`

	// DocumentType is the category of document this series numbers
	DocumentType types.DocumentType `db:"document_type" json:"document_type"`

	// Code is the short series label, e.g. "F001". Unique within an
	// establishment and document type.
	Code string `db:"code" json:"code"`

	// CurrentCorrelative is the last sequence number issued for this
	// series. It starts at 0 and is advanced exclusively by the
	// allocator; no other code path may write it once documents have
	// been issued.
	CurrentCorrelative int64 `db:"current_correlative" json:"current_correlative"`

	// IsDefault marks the series preselected for new documents of this
	// type at this establishment. At most one per
	// (establishment, document type) pair.
	IsDefault bool `db:"is_default" json:"is_default"`

	types.BaseModel
}

// DocumentNumber is the result of a correlative allocation. It is not
// persisted on its own; callers denormalize it into the issued document.
type DocumentNumber struct {
	// FullNumber is the formatted document number, e.g. "F001-0000042"
	FullNumber string `json:"full_number"`

	// Sequence is the correlative consumed by this allocation
	Sequence int64 `json:"sequence"`

	// SeriesCodeUsed echoes the series code at allocation time so the
	// issued document stays stable even if the series is later edited
	SeriesCodeUsed string `json:"series_code_used"`
}
