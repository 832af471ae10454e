package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per request/command so
// concurrent operations never share transaction state.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained
// from it are bound to the transaction started by Begin, so an order
// write and its stock reservations commit or roll back together.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Calling it after a
	// successful Commit is a no-op, which makes `defer Rollback` safe.
	Rollback(ctx context.Context) error

	// ZoneRepository returns a ZoneRepository bound to the transaction.
	ZoneRepository() ZoneRepository

	// StoreRepository returns a StoreRepository bound to the transaction.
	StoreRepository() StoreRepository

	// ProductRepository returns a ProductRepository bound to the transaction.
	ProductRepository() ProductRepository

	// OrderRepository returns an OrderRepository bound to the transaction.
	OrderRepository() OrderRepository

	// RiderRepository returns a RiderRepository bound to the transaction.
	RiderRepository() RiderRepository
}
