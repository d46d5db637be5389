package dto

import (
	"github.com/shopspring/decimal"
)

type DashboardSummaryResponse struct {
	Establishments int `json:"establishments"`
	Clients        int `json:"clients"`
	Assets         int `json:"assets"`
	InventoryItems int `json:"inventory_items"`
	Invoices       int `json:"invoices"`
	Users          int `json:"users"`

	// InvoiceTotals sums issued invoices per currency for the requested
	// period
	InvoiceTotals map[string]decimal.Decimal `json:"invoice_totals"`

	LowStockItems []*ItemResponse `json:"low_stock_items"`
}
