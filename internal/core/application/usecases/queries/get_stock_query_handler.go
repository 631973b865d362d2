package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLevels is the stock projection of one product.
type StockLevels struct {
	ProductID kernel.UUID
	OnHand    int
	Reserved  int
	Available int
}

// GetStockQueryHandler reads stock levels for one product.
type GetStockQueryHandler struct {
	db *gorm.DB
}

// NewGetStockQueryHandler creates a handler for stock reads.
func NewGetStockQueryHandler(db *gorm.DB) GetStockQueryHandler {
	return GetStockQueryHandler{db: db}
}

// Handle returns the stock levels, or errs.ErrObjectNotFound for unknown products.
func (h GetStockQueryHandler) Handle(ctx context.Context, query GetStockQuery) (*StockLevels, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT product_id, on_hand, reserved
		FROM inventory
		WHERE product_id = ?
	`, query.ProductID().Bytes()).Row()

	var (
		productID uuid.UUID
		levels    StockLevels
	)
	if err := row.Scan(&productID, &levels.OnHand, &levels.Reserved); err != nil {
		return nil, errs.NewObjectNotFoundErrorWithCause("product", query.ProductID().String(), err)
	}

	var err error
	if levels.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
		return nil, err
	}
	levels.Available = levels.OnHand - levels.Reserved
	return &levels, nil
}
