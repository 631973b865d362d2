// Package receiptrepo provides persistence for transition receipts, the
// idempotency records that make retried transition calls safe.
package receiptrepo

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/google/uuid"
)

// ReceiptDTO represents the transition_receipts table row, keyed by the
// client-supplied idempotency token.
type ReceiptDTO struct {
	Token   string    `gorm:"primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Status  int
	Version int
}

// TableName specifies the database table name for transition receipts.
func (ReceiptDTO) TableName() string {
	return "transition_receipts"
}

// fromDomain converts a receipt to its database representation.
func fromDomain(receipt ports.Receipt) ReceiptDTO {
	return ReceiptDTO{
		Token:   receipt.Token,
		OrderID: receipt.OrderID.Bytes(),
		Status:  int(receipt.Status),
		Version: receipt.Version,
	}
}

// toDomain reconstructs a receipt from its database representation.
func toDomain(dto ReceiptDTO) (ports.Receipt, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.Receipt{}, err
	}
	return ports.Receipt{
		Token:   dto.Token,
		OrderID: orderID,
		Status:  order.Status(dto.Status),
		Version: dto.Version,
	}, nil
}
