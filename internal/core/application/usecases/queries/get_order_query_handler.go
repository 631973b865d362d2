package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderLine is one line of the order detail projection.
type OrderLine struct {
	ProductID      kernel.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
	Picked         bool
	Packed         bool
}

// StatusChange is one audit-trail row of the order detail projection.
type StatusChange struct {
	Status  order.Status
	ActorID kernel.UUID
	Role    actor.Role
	Note    string
	At      time.Time
}

// OrderDetail is the full order projection with lines and history.
type OrderDetail struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	SupplierID       kernel.UUID
	Status           order.Status
	SubtotalCents    int64
	DeliveryFeeCents int64
	DiscountCents    int64
	TotalCents       int64
	Street           string
	City             string
	Phone            string
	Version          int
	CreatedAt        time.Time
	Items            []OrderLine
	History          []StatusChange
}

// GetOrderQueryHandler reads one order with lines and history.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order detail, or errs.ErrObjectNotFound for unknown ids.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderDetail, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	detail, err := h.loadOrderRow(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if detail.Items, err = h.loadLines(ctx, query.OrderID()); err != nil {
		return nil, err
	}
	if detail.History, err = h.loadHistory(ctx, query.OrderID()); err != nil {
		return nil, err
	}

	return detail, nil
}

func (h GetOrderQueryHandler) loadOrderRow(ctx context.Context, orderID kernel.UUID) (*OrderDetail, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT id, customer_id, supplier_id, status,
		       subtotal, delivery_fee, discount, total,
		       address_street, address_city, address_phone,
		       version, created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		id, customerID, supplierID uuid.UUID
		status, version            int
		detail                     OrderDetail
	)
	err := row.Scan(
		&id, &customerID, &supplierID, &status,
		&detail.SubtotalCents, &detail.DeliveryFeeCents, &detail.DiscountCents, &detail.TotalCents,
		&detail.Street, &detail.City, &detail.Phone,
		&version, &detail.CreatedAt,
	)
	if err != nil {
		return nil, errs.NewObjectNotFoundErrorWithCause("order", orderID.String(), err)
	}

	if detail.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if detail.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return nil, err
	}
	if detail.SupplierID, err = kernel.UUIDFromBytes(supplierID[:]); err != nil {
		return nil, err
	}
	detail.Status = order.Status(status)
	detail.Version = version
	return &detail, nil
}

func (h GetOrderQueryHandler) loadLines(ctx context.Context, orderID kernel.UUID) ([]OrderLine, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_id, name, unit_price, quantity, picked, packed
		FROM order_items
		WHERE order_id = ?
		ORDER BY pos
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLine, 0)
	for rows.Next() {
		var (
			productID uuid.UUID
			line      OrderLine
		)
		if err = rows.Scan(
			&productID, &line.Name, &line.UnitPriceCents, &line.Quantity, &line.Picked, &line.Packed,
		); err != nil {
			return nil, err
		}
		if line.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (h GetOrderQueryHandler) loadHistory(ctx context.Context, orderID kernel.UUID) ([]StatusChange, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, actor_id, role, note, at
		FROM order_history
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusChange, 0)
	for rows.Next() {
		var (
			status, role int
			actorID      uuid.UUID
			change       StatusChange
		)
		if err = rows.Scan(&status, &actorID, &role, &change.Note, &change.At); err != nil {
			return nil, err
		}
		if change.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		change.Status = order.Status(status)
		change.Role = actor.Role(role)
		history = append(history, change)
	}
	return history, rows.Err()
}
