package asset

import (
	"time"

	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

// Asset is an entry in the fixed-asset register
type Asset struct {
	// ID is the unique identifier of the asset
	ID string `db:"id" json:"id"`

	// Code is the short internal tag of the asset, e.g. "AS-X1Z9"
	Code string `db:"code" json:"code"`

	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`

	// EstablishmentID is the location the asset is assigned to
	EstablishmentID string `db:"establishment_id" json:"establishment_id"`

	AcquisitionDate time.Time       `db:"acquisition_date" json:"acquisition_date"`
	AcquisitionCost decimal.Decimal `db:"acquisition_cost" json:"acquisition_cost"`
	ResidualValue   decimal.Decimal `db:"residual_value" json:"residual_value"`

	// UsefulLifeMonths drives straight-line depreciation
	UsefulLifeMonths int `db:"useful_life_months" json:"useful_life_months"`

	State types.AssetStatus `db:"state" json:"state"`

	types.BaseModel
}

// MonthlyDepreciation returns the straight-line monthly depreciation
// figure, zero when the useful life is not set
func (a *Asset) MonthlyDepreciation() decimal.Decimal {
	if a.UsefulLifeMonths <= 0 {
		return decimal.Zero
	}
	base := a.AcquisitionCost.Sub(a.ResidualValue)
	if base.IsNegative() {
		return decimal.Zero
	}
	return base.DivRound(decimal.NewFromInt(int64(a.UsefulLifeMonths)), 2)
}
