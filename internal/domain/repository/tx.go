package repository

import "context"

// Transactor is the explicit unit-of-work boundary. Every multi-entity
// operation in the services runs inside one WithinTx call: on error, no
// partial writes are observable. Implementations must support nesting by
// reusing an already-open transaction found in the context.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
