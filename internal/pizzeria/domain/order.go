package domain

import "time"

// Status describes the caller-driven order lifecycle. There is no
// background progression; transitions happen only through explicit calls.
type Status string

const (
	StatusPlaced         Status = "placed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

var validNext = map[Status]map[Status]bool{
	StatusPlaced:         {StatusPreparing: true, StatusCancelled: true},
	StatusPreparing:      {StatusOutForDelivery: true, StatusCancelled: true},
	StatusOutForDelivery: {StatusDelivered: true},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// ValidStatus reports whether s names a known order status.
func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}

// Order is a placed pizza order. All price fields are derived from
// (type, size, quantity, restaurant) once at creation and frozen.
type Order struct {
	ID                  string
	PizzaType           string
	PizzaName           string
	Size                Size
	Quantity            int
	RestaurantID        string
	RestaurantName      string
	CustomerName        string
	CustomerPhone       string
	DeliveryAddress     string
	SpecialInstructions string
	UnitPriceCents      int
	SubtotalCents       int
	DeliveryFeeCents    int
	TotalCents          int
	Status              Status
	CreatedAt           time.Time
}

// PriceOrder computes the frozen price breakdown for an order line.
func PriceOrder(entry MenuEntry, size Size, quantity int, restaurant Restaurant) (unit, subtotal, total int) {
	unit = UnitPriceCents(entry.BasePriceCents, size)
	subtotal = unit * quantity
	total = subtotal + restaurant.DeliveryFeeCents
	return unit, subtotal, total
}
