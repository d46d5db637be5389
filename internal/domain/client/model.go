package client

import (
	"github.com/gestia/gestia/internal/types"
)

// Client is a customer the business issues documents to
type Client struct {
	// ID is the unique identifier of the client
	ID string `db:"id" json:"id"`

	// DocumentType is the identity-document type (RUC, DNI, other)
	DocumentType types.ClientDocumentType `db:"document_type" json:"document_type"`

	// DocumentNumber is the identity-document number, unique per tenant
	DocumentNumber string `db:"document_number" json:"document_number"`

	// Name is the legal or full name of the client
	Name string `db:"name" json:"name"`

	TradeName string `db:"trade_name" json:"trade_name"`
	Address   string `db:"address" json:"address"`
	Phone     string `db:"phone" json:"phone"`
	Email     string `db:"email" json:"email"`

	// CreditDays is the payment term granted to this client; 0 means
	// cash only
	CreditDays int `db:"credit_days" json:"credit_days"`

	types.BaseModel
}
