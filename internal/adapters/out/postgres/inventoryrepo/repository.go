package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM stock ledger repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Add persists the ledger entry for a newly listed product.
func (r *GormInventoryRepository) Add(ctx context.Context, ledger *inventory.Ledger) error {
	if err := ledger.Validate(); err != nil {
		return err
	}

	dto := fromDomain(ledger)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves the ledger entry for a product.
func (r *GormInventoryRepository) Get(ctx context.Context, productID kernel.UUID) (*inventory.Ledger, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dto InventoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "product_id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", productID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Reserve holds quantity units with one guarded UPDATE. The guard clause
// rejects the write when available stock is short, leaving the row untouched.
func (r *GormInventoryRepository) Reserve(ctx context.Context, productID kernel.UUID, quantity int) error {
	if err := validateMutation(productID, quantity); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&InventoryDTO{}).
		Where("product_id = ? AND on_hand - reserved >= ?", productID.Bytes(), quantity).
		Update("reserved", gorm.Expr("reserved + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.mutationRejected(ctx, productID, quantity)
	}
	return nil
}

// Release returns quantity units of a reservation, flooring reserved at zero.
func (r *GormInventoryRepository) Release(ctx context.Context, productID kernel.UUID, quantity int) error {
	if err := validateMutation(productID, quantity); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&InventoryDTO{}).
		Where("product_id = ?", productID.Bytes()).
		Update("reserved", gorm.Expr("GREATEST(reserved - ?, 0)", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", productID.String())
	}
	return nil
}

// CommitStock deducts quantity units from both onHand and reserved, turning a
// reservation into a completed sale. Rejected when reserved is short.
func (r *GormInventoryRepository) CommitStock(ctx context.Context, productID kernel.UUID, quantity int) error {
	if err := validateMutation(productID, quantity); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&InventoryDTO{}).
		Where("product_id = ? AND reserved >= ?", productID.Bytes(), quantity).
		Updates(map[string]any{
			"on_hand":  gorm.Expr("on_hand - ?", quantity),
			"reserved": gorm.Expr("reserved - ?", quantity),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.mutationRejected(ctx, productID, quantity)
	}
	return nil
}

// Replenish adds received stock to onHand.
func (r *GormInventoryRepository) Replenish(ctx context.Context, productID kernel.UUID, quantity int) error {
	if err := validateMutation(productID, quantity); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&InventoryDTO{}).
		Where("product_id = ?", productID.Bytes()).
		Update("on_hand", gorm.Expr("on_hand + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", productID.String())
	}
	return nil
}

// GetAll retrieves every ledger entry.
func (r *GormInventoryRepository) GetAll(ctx context.Context) ([]*inventory.Ledger, error) {
	var dtos []InventoryDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	ledgers := make([]*inventory.Ledger, 0, len(dtos))
	for _, dto := range dtos {
		ledger, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}

	return ledgers, nil
}

func validateMutation(productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}

// mutationRejected distinguishes a missing product from a stock shortage
// after a guarded UPDATE matched no rows.
func (r *GormInventoryRepository) mutationRejected(ctx context.Context, productID kernel.UUID, quantity int) error {
	ledger, err := r.Get(ctx, productID)
	if err != nil {
		return err
	}
	return &inventory.ShortageError{
		Shortages: []inventory.Shortage{{
			ProductID: productID,
			Requested: quantity,
			Available: ledger.Available(),
		}},
	}
}
