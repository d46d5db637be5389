package establishment

import (
	"github.com/gestia/gestia/internal/types"
)

// Establishment is a physical or logical business location that issues
// documents under its own numbering series
type Establishment struct {
	// ID is the unique identifier of the establishment
	ID string `db:"id" json:"id"`

	// Code is the short internal code of the establishment, e.g. "0001"
	Code string `db:"code" json:"code"`

	// Name is the legal name of the establishment
	Name string `db:"name" json:"name"`

	// TradeName is the commercial name used on issued documents
	TradeName string `db:"trade_name" json:"trade_name"`

	// TaxID is the fiscal identifier of the issuing business
	TaxID string `db:"tax_id" json:"tax_id"`

	Address string `db:"address" json:"address"`
	City    string `db:"city" json:"city"`
	Phone   string `db:"phone" json:"phone"`
	Email   string `db:"email" json:"email"`

	types.BaseModel
}
