// Package commands contains the write-side use cases. Every handler
// follows the same shape: validate the command, open a unit of work,
// mutate aggregates through the domain model, commit, then emit any
// post-commit effects such as events and notifications.
package commands

import (
	"context"
	"errors"

	"hyperlocal/internal/core/ports"
)

// ErrAccessDenied is returned when the acting party is not authorized
// for the entity it targets, such as a store action by a non-owner or
// an order operation by the wrong rider.
var ErrAccessDenied = errors.New("actor is not authorized for this entity")

// Unit of Work interfaces scoped to what each handler actually touches.
// Narrow interfaces keep handler tests small and make the blast radius
// of a command visible in its signature.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ZoneRepoFactory provides the zone repository within a transaction.
	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	// StoreRepoFactory provides the store repository within a transaction.
	StoreRepoFactory interface {
		StoreRepository() ports.StoreRepository
	}

	// ProductRepoFactory provides the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RiderRepoFactory provides the rider repository within a transaction.
	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	// PlaceOrderUoW spans order placement: the store check, zone
	// resolution, stock reservation, and the order write commit or roll
	// back together.
	PlaceOrderUoW interface {
		TxManager
		ZoneRepoFactory
		StoreRepoFactory
		ProductRepoFactory
		OrderRepoFactory
	}

	// PlaceOrderUoWFactory creates placement unit of work instances.
	PlaceOrderUoWFactory interface {
		Create() PlaceOrderUoW
	}

	// OrderUoW spans order mutations that may compensate stock, such as
	// transition and cancellation.
	OrderUoW interface {
		TxManager
		StoreRepoFactory
		ProductRepoFactory
		OrderRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AssignmentUoW spans the rider assignment and completion flow.
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		RiderRepoFactory
	}

	// AssignmentUoWFactory creates assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// RiderUoW spans rider-only mutations: location pings and
	// availability toggles.
	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	// RiderUoWFactory creates rider unit of work instances.
	RiderUoWFactory interface {
		Create() RiderUoW
	}
)
