package domain

import "context"

// Transactor runs fn inside a single all-or-nothing store transaction.
// Repositories called with the ctx passed to fn join that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
