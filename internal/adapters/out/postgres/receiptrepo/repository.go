package receiptrepo

import (
	"context"
	"errors"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReceiptRepository implements ReceiptRepository using GORM.
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GORM transition receipt repository.
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// Find retrieves the receipt stored under token.
func (r *GormReceiptRepository) Find(ctx context.Context, token string) (*ports.Receipt, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("token")
	}

	var dto ReceiptDTO
	if err := r.db.WithContext(ctx).First(&dto, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("receipt", token)
		}
		return nil, err
	}

	receipt, err := toDomain(dto)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Save persists a receipt. The token is the primary key, so saving a
// duplicate fails on the unique constraint.
func (r *GormReceiptRepository) Save(ctx context.Context, receipt ports.Receipt) error {
	if receipt.Token == "" {
		return errs.NewValueIsRequiredError("token")
	}

	dto := fromDomain(receipt)
	return r.db.WithContext(ctx).Create(&dto).Error
}
