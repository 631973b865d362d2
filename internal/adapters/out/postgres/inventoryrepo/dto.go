// Package inventoryrepo provides persistence for per-product stock ledgers.
// Stock mutations run as single guarded UPDATE statements, so concurrent
// reservations against the same product serialize on the row and can never
// drive available stock negative.
package inventoryrepo

import (
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InventoryDTO represents the inventory table row for one product.
type InventoryDTO struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OnHand    int
	Reserved  int
}

// TableName specifies the database table name for stock ledger rows.
func (InventoryDTO) TableName() string {
	return "inventory"
}

// fromDomain converts a stock ledger to its database representation.
func fromDomain(ledger *inventory.Ledger) InventoryDTO {
	return InventoryDTO{
		ProductID: ledger.ProductID().Bytes(),
		OnHand:    ledger.OnHand(),
		Reserved:  ledger.Reserved(),
	}
}

// toDomain reconstructs a stock ledger from its database representation.
func toDomain(dto InventoryDTO) (*inventory.Ledger, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	return inventory.RestoreLedger(productID, dto.OnHand, dto.Reserved)
}
