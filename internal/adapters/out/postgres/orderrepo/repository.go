package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines and initial history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	row, items, history := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if err := db.Create(&row).Error; err != nil {
		return err
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}
	if err := db.Create(&history).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves a mutated order using optimistic concurrency. Every domain
// mutation bumps the version by exactly one, so the stored row must still
// carry aggregate.Version()-1; otherwise another writer got there first and
// ports.ErrVersionConflict is returned with nothing changed.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	row, items, history := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", row.ID, row.Version-1).
		Updates(map[string]any{
			"status":  row.Status,
			"version": row.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", row.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return fmt.Errorf("%w: order %s at version %d",
			ports.ErrVersionConflict, aggregate.ID(), row.Version-1)
	}

	// Line rows change only in their picked/packed flags; history rows are
	// append-only, so existing seqs are left untouched.
	for i := range items {
		if err := db.Model(&ItemDTO{}).
			Where("order_id = ? AND product_id = ?", items[i].OrderID, items[i].ProductID).
			Updates(map[string]any{
				"picked": items[i].Picked,
				"packed": items[i].Packed,
			}).Error; err != nil {
			return err
		}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&history).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines and full status history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var row OrderDTO
	if err := db.First(&row, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var items []ItemDTO
	if err := db.Order("pos").Find(&items, "order_id = ?", id.Bytes()).Error; err != nil {
		return nil, err
	}

	var history []HistoryDTO
	if err := db.Order("seq").Find(&history, "order_id = ?", id.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomain(row, items, history)
}
