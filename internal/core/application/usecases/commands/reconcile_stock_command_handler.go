package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReconcileStockCommandHandler heals drift between stock reservations and the
// orders that hold them. Expected reservations are recomputed from the lines
// of orders in reservation-holding statuses; ledger entries that disagree are
// set to the recomputed value with a guarded UPDATE, so an entry mutated by a
// concurrent transition between read and repair is skipped and picked up by
// the next sweep.
type ReconcileStockCommandHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewReconcileStockCommandHandler creates the reconciliation handler.
func NewReconcileStockCommandHandler(db *gorm.DB, log *logger.Logger) ReconcileStockCommandHandler {
	return ReconcileStockCommandHandler{db: db, log: log}
}

// Handle runs one reconciliation sweep.
func (h ReconcileStockCommandHandler) Handle(ctx context.Context, cmd ReconcileStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	expected, err := h.expectedReservations(ctx)
	if err != nil {
		return err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_id, reserved FROM inventory
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	type drift struct {
		productID uuid.UUID
		stored    int
		expected  int
	}
	drifted := make([]drift, 0)
	for rows.Next() {
		var (
			productID uuid.UUID
			stored    int
		)
		if err = rows.Scan(&productID, &stored); err != nil {
			return err
		}
		if want := expected[productID]; want != stored {
			drifted = append(drifted, drift{productID: productID, stored: stored, expected: want})
		}
	}
	if err = rows.Err(); err != nil {
		return err
	}

	for _, d := range drifted {
		result := h.db.WithContext(ctx).Exec(`
			UPDATE inventory SET reserved = ? WHERE product_id = ? AND reserved = ?
		`, d.expected, d.productID, d.stored)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			continue
		}
		h.log.Warn("repaired reservation drift",
			zap.String("product_id", d.productID.String()),
			zap.Int("stored", d.stored),
			zap.Int("expected", d.expected),
		)
	}

	return nil
}

// expectedReservations sums the line quantities of every order whose status
// holds a reservation, keyed by product.
func (h ReconcileStockCommandHandler) expectedReservations(ctx context.Context) (map[uuid.UUID]int, error) {
	holding := make([]int, 0)
	for status := order.Placed; status <= order.Rejected; status++ {
		if status.HoldsReservation() {
			holding = append(holding, int(status))
		}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT i.product_id, SUM(i.quantity)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.status IN ?
		GROUP BY i.product_id
	`, holding).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expected := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			productID uuid.UUID
			quantity  int
		)
		if err = rows.Scan(&productID, &quantity); err != nil {
			return nil, err
		}
		expected[productID] = quantity
	}
	return expected, rows.Err()
}
