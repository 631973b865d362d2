// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The aggregate spans three tables: the order row, its
// lines, and the append-only status history.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the orders table row. Money amounts are stored as
// integer cents; version backs the optimistic concurrency check on updates.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	SupplierID    uuid.UUID `gorm:"type:uuid;index"`
	Status        int       `gorm:"index"`
	Subtotal      int64
	DeliveryFee   int64
	Discount      int64
	Total         int64
	AddressStreet string
	AddressCity   string
	AddressPhone  string
	Version       int
	CreatedAt     time.Time
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Pos preserves the line order the
// customer submitted; picked and packed carry the fulfillment checklist state.
type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Pos       int
	Name      string
	UnitPrice int64
	Quantity  int
	Picked    bool
	Packed    bool
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO represents one append-only status history row, ordered by Seq.
type HistoryDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey"`
	Status  int
	ActorID uuid.UUID `gorm:"type:uuid"`
	Role    int
	Note    string
	At      time.Time
}

// TableName specifies the database table name for order history rows.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order aggregate to its three-table representation.
func fromDomain(aggregate *order.Order) (OrderDTO, []ItemDTO, []HistoryDTO) {
	row := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		SupplierID:    aggregate.SupplierID().Bytes(),
		Status:        int(aggregate.Status()),
		Subtotal:      aggregate.Subtotal().Cents(),
		DeliveryFee:   aggregate.DeliveryFee().Cents(),
		Discount:      aggregate.Discount().Cents(),
		Total:         aggregate.Total().Cents(),
		AddressStreet: aggregate.DeliveryAddress().Street(),
		AddressCity:   aggregate.DeliveryAddress().City(),
		AddressPhone:  aggregate.DeliveryAddress().Phone(),
		Version:       aggregate.Version(),
		CreatedAt:     aggregate.CreatedAt(),
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for pos, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:   row.ID,
			ProductID: item.ProductID().Bytes(),
			Pos:       pos,
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Cents(),
			Quantity:  item.Quantity(),
			Picked:    item.IsPicked(),
			Packed:    item.IsPacked(),
		})
	}

	history := make([]HistoryDTO, 0, len(aggregate.History()))
	for seq, entry := range aggregate.History() {
		history = append(history, HistoryDTO{
			OrderID: row.ID,
			Seq:     seq,
			Status:  int(entry.Status()),
			ActorID: entry.ActorID().Bytes(),
			Role:    int(entry.Role()),
			Note:    entry.Note(),
			At:      entry.At(),
		})
	}

	return row, items, history
}

// toDomain reconstructs an order aggregate from its three-table
// representation using RestoreOrder, which re-validates the invariants.
func toDomain(row OrderDTO, itemRows []ItemDTO, historyRows []HistoryDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(row.SupplierID[:])
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(row.AddressStreet, row.AddressCity, row.AddressPhone)
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoney(row.Subtotal)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoney(row.DeliveryFee)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(row.Discount)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(row.Total)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(itemRows))
	for _, itemRow := range itemRows {
		item, itemErr := itemToDomain(itemRow)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(historyRows))
	for _, historyRow := range historyRows {
		entry, historyErr := historyToDomain(historyRow)
		if historyErr != nil {
			return nil, historyErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(
		id, customerID, supplierID,
		items,
		address,
		subtotal, deliveryFee, discount, total,
		order.Status(row.Status),
		history,
		row.CreatedAt,
		row.Version,
	)
}

func itemToDomain(row ItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(row.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}
	unitPrice, err := kernel.NewMoney(row.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	return order.RestoreItem(productID, row.Name, unitPrice, row.Quantity, row.Picked, row.Packed)
}

func historyToDomain(row HistoryDTO) (order.HistoryEntry, error) {
	actorID, err := kernel.UUIDFromBytes(row.ActorID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}
	return order.NewHistoryEntry(
		order.Status(row.Status), actorID, actor.Role(row.Role), row.Note, row.At,
	)
}
