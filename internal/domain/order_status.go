package domain

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderPending:    {},
	OrderProcessing: {},
	OrderShipped:    {},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// Any status may follow any other; only membership is checked.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}
