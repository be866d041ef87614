package memory

import (
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/domain/repositories"
)

// OrderRepository provides in-memory order storage
type OrderRepository struct {
	orders []entities.Order
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository(expectedOrders int) *OrderRepository {
	return &OrderRepository{
		orders: make([]entities.Order, 0, expectedOrders),
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadOrders loads orders into the repository
func (r *OrderRepository) LoadOrders(orders []*entities.Order) error {
	for _, order := range orders {
		r.orders = append(r.orders, *order)
	}
	return nil
}

// GetOrders returns all orders in load order
func (r *OrderRepository) GetOrders() ([]*entities.Order, error) {
	orders := make([]*entities.Order, 0, len(r.orders))
	for i := range r.orders {
		orders = append(orders, &r.orders[i])
	}
	return orders, nil
}
