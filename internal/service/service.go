package service

import (
	"context"
)

// TxRunner runs a function inside a storage transaction. *postgres.DB
// implements it; tests substitute an in-memory runner.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
