// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"warehousing/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// InventoryRepoFactory provides access to the inventory repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// StockLedgerFactory provides access to the stock ledger within a transaction.
	StockLedgerFactory interface {
		StockLedger() ports.StockLedger
	}

	// PickingTaskRepoFactory provides access to the picking task repository within a transaction.
	PickingTaskRepoFactory interface {
		PickingTaskRepository() ports.PickingTaskRepository
	}

	// ReceivingTaskRepoFactory provides access to the receiving task repository within a transaction.
	ReceivingTaskRepoFactory interface {
		ReceivingTaskRepository() ports.ReceivingTaskRepository
	}

	// InventoryUoW manages transactions for stock-level operations.
	// Every stock mutation writes the item projection and its ledger
	// movements in the same transaction.
	InventoryUoW interface {
		TxManager
		InventoryRepoFactory
		StockLedgerFactory
	}

	// InventoryUoWFactory creates new inventory unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// PickingUoW manages transactions that touch picking tasks together
	// with stock levels and the ledger.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   taskRepo := uow.PickingTaskRepository()
	//   inventoryRepo := uow.InventoryRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	PickingUoW interface {
		TxManager
		InventoryRepoFactory
		StockLedgerFactory
		PickingTaskRepoFactory
	}

	// PickingUoWFactory creates new picking unit of work instances.
	PickingUoWFactory interface {
		Create() PickingUoW
	}

	// ReceivingUoW manages transactions that touch receiving tasks together
	// with stock levels and the ledger.
	ReceivingUoW interface {
		TxManager
		InventoryRepoFactory
		StockLedgerFactory
		ReceivingTaskRepoFactory
	}

	// ReceivingUoWFactory creates new receiving unit of work instances.
	ReceivingUoWFactory interface {
		Create() ReceivingUoW
	}
)
