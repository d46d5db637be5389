package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/gestia/gestia/internal/domain/invoice"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/postgres"
	"github.com/gestia/gestia/internal/types"
	"github.com/shopspring/decimal"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	insertInvoice := `
		INSERT INTO invoices (
			id, establishment_id, series_id, client_id, client_name, document_type,
			full_number, sequence, series_code, issue_date, due_date,
			currency, subtotal, tax, total, invoice_status, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :establishment_id, :series_id, :client_id, :client_name, :document_type,
			:full_number, :sequence, :series_code, :issue_date, :due_date,
			:currency, :subtotal, :tax, :total, :invoice_status, :notes,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, insertInvoice, inv); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An invoice with this number already exists").
				WithReportableDetails(map[string]any{"full_number": inv.FullNumber}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}

	insertLine := `
		INSERT INTO invoice_line_items (
			id, invoice_id, item_id, description, quantity, unit_price, amount,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :invoice_id, :item_id, :description, :quantity, :unit_price, :amount,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	for _, line := range inv.LineItems {
		if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, insertLine, line); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create invoice line item").
				Mark(ierr.ErrDatabase)
		}
	}

	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `
		SELECT id, establishment_id, series_id, client_id, client_name, document_type,
			full_number, sequence, series_code, issue_date, due_date,
			currency, subtotal, tax, total, invoice_status, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM invoices
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var inv invoice.Invoice
	err := r.db.GetQuerier(ctx).GetContext(ctx, &inv, query, id, types.GetTenantID(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("invoice not found").
				WithHintf("Invoice with ID %s was not found", id).
				WithReportableDetails(map[string]any{"invoice_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}

	linesQuery := `
		SELECT id, invoice_id, item_id, description, quantity, unit_price, amount,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM invoice_line_items
		WHERE invoice_id = $1 AND tenant_id = $2
		ORDER BY created_at ASC`

	lines := make([]*invoice.LineItem, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &lines, linesQuery, id, types.GetTenantID(ctx)); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice line items").
			Mark(ierr.ErrDatabase)
	}
	inv.LineItems = lines

	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter invoice.Filter) ([]*invoice.Invoice, error) {
	orderBy := orderByClause(filter.Filter, map[string]bool{
		"issue_date": true,
		"sequence":   true,
		"created_at": true,
		"total":      true,
	}, "issue_date DESC, sequence DESC")

	query := `
		SELECT id, establishment_id, series_id, client_id, client_name, document_type,
			full_number, sequence, series_code, issue_date, due_date,
			currency, subtotal, tax, total, invoice_status, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM invoices
		WHERE tenant_id = $1 AND status != 'deleted'
			AND ($2 = '' OR establishment_id = $2)
			AND ($3 = '' OR client_id = $3)
			AND ($4 = '' OR document_type = $4)
			AND ($5 = '' OR invoice_status = $5)
			AND ($6::timestamptz IS NULL OR issue_date >= $6)
			AND ($7::timestamptz IS NULL OR issue_date <= $7)
		ORDER BY ` + orderBy + `
		LIMIT $8 OFFSET $9`

	invoices := make([]*invoice.Invoice, 0)
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &invoices, query,
		types.GetTenantID(ctx),
		filter.EstablishmentID, filter.ClientID,
		string(filter.DocumentType), string(filter.InvoiceStatus),
		filter.From, filter.To,
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM invoices WHERE tenant_id = $1 AND status != 'deleted'`

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, types.GetTenantID(ctx)); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id string, status types.InvoiceStatus) error {
	query := `
		UPDATE invoices
		SET invoice_status = $1, updated_at = CURRENT_TIMESTAMP, updated_by = $2
		WHERE id = $3 AND tenant_id = $4 AND status != 'deleted'`

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		string(status), types.GetUserID(ctx), id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice status").
			Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	r.logger.Infow("updated invoice status", "invoice_id", id, "invoice_status", status)
	return nil
}

func (r *invoiceRepository) CountBySeries(ctx context.Context, seriesID string) (int, error) {
	query := `SELECT COUNT(*) FROM invoices WHERE tenant_id = $1 AND series_id = $2`

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, types.GetTenantID(ctx), seriesID); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices for series").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *invoiceRepository) TotalsForPeriod(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT currency, COALESCE(SUM(total), 0) AS total
		FROM invoices
		WHERE tenant_id = $1 AND invoice_status = 'issued' AND status != 'deleted'
			AND issue_date >= $2 AND issue_date <= $3
		GROUP BY currency`

	rows, err := r.db.GetQuerier(ctx).QueryContext(ctx, query, types.GetTenantID(ctx), from, to)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to total invoices for period").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			currency string
			total    decimal.Decimal
		)
		if err := rows.Scan(&currency, &total); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to total invoices for period").
				Mark(ierr.ErrDatabase)
		}
		totals[currency] = total
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to total invoices for period").
			Mark(ierr.ErrDatabase)
	}

	return totals, nil
}
