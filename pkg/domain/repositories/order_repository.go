package repositories

import "github.com/yintu/pmc/pkg/domain/entities"

// OrderRepository provides access to loaded order rows in source order
type OrderRepository interface {
	GetOrders() ([]*entities.Order, error)
	LoadOrders(orders []*entities.Order) error
}
