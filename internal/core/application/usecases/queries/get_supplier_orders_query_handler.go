package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderSummary is one row of an order list projection.
type OrderSummary struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	SupplierID kernel.UUID
	Status     order.Status
	TotalCents int64
	Version    int
	CreatedAt  time.Time
}

// GetSupplierOrdersQueryHandler reads a supplier's orders from the database.
// Reads go to the same store transitions commit to, so the board reflects the
// latest committed state.
type GetSupplierOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetSupplierOrdersQueryHandler creates a handler for supplier order lists.
func NewGetSupplierOrdersQueryHandler(db *gorm.DB) GetSupplierOrdersQueryHandler {
	return GetSupplierOrdersQueryHandler{db: db}
}

// Handle returns the supplier's orders sorted by creation time descending,
// optionally filtered to one status.
func (h GetSupplierOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSupplierOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, customer_id, supplier_id, status, total, version, created_at
		FROM orders
		WHERE supplier_id = ?`
	args := []any{query.SupplierID().Bytes()}

	if filter := query.StatusFilter(); filter != nil {
		sql += ` AND status = ?`
		args = append(args, int(*filter))
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}

type summaryRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanOrderSummaries(rows summaryRows) ([]OrderSummary, error) {
	summaries := make([]OrderSummary, 0)

	for rows.Next() {
		var (
			id, customerID, supplierID uuid.UUID
			status, version            int
			total                      int64
			createdAt                  time.Time
		)
		if err := rows.Scan(&id, &customerID, &supplierID, &status, &total, &version, &createdAt); err != nil {
			return nil, err
		}

		orderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		custID, err := kernel.UUIDFromBytes(customerID[:])
		if err != nil {
			return nil, err
		}
		suppID, err := kernel.UUIDFromBytes(supplierID[:])
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, OrderSummary{
			ID:         orderID,
			CustomerID: custID,
			SupplierID: suppID,
			Status:     order.Status(status),
			TotalCents: total,
			Version:    version,
			CreatedAt:  createdAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}
