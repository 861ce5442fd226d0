package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// InTx runs fn inside one transaction. fn's error rolls everything back; a nil
// return commits.
func InTx(ctx context.Context, b TxBeginner, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, b, fn)
}
