// Package service implements the in-memory order registry over the static
// catalog.
package service

import (
	"fmt"
	"sync"
	"time"

	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
	"github.com/concierge-ai/concierge/internal/platform/id"
	"github.com/concierge-ai/concierge/internal/pizzeria/catalog"
	"github.com/concierge-ai/concierge/internal/pizzeria/domain"
)

// ErrNotFound is returned when an order id is unknown.
var ErrNotFound = apperrors.New(apperrors.CodeOrderNotFound, "order not found")

// PlaceOrderRequest carries the parameters for placing an order.
type PlaceOrderRequest struct {
	PizzaType           string
	Size                domain.Size
	Quantity            int
	Restaurant          string
	CustomerName        string
	CustomerPhone       string
	DeliveryAddress     string
	SpecialInstructions string
}

// Registry owns the id-keyed order store and the immutable catalog for the
// lifetime of the process. Orders are never deleted.
type Registry struct {
	mu          sync.Mutex
	menu        []domain.MenuEntry
	menuByID    map[string]domain.MenuEntry
	restaurants []domain.Restaurant
	restByID    map[string]domain.Restaurant
	orders      map[string]*domain.Order
	order       []string // insertion order
	clock       func() time.Time
	newID       func() (string, error)
}

// NewRegistry creates an order registry over a loaded catalog.
func NewRegistry(c catalog.Catalog) *Registry {
	r := &Registry{
		menu:        c.Menu,
		menuByID:    make(map[string]domain.MenuEntry, len(c.Menu)),
		restaurants: c.Restaurants,
		restByID:    make(map[string]domain.Restaurant, len(c.Restaurants)),
		orders:      make(map[string]*domain.Order),
		clock:       time.Now,
		newID:       id.NewID,
	}
	for _, e := range c.Menu {
		r.menuByID[e.ID] = e
	}
	for _, rest := range c.Restaurants {
		r.restByID[rest.ID] = rest
	}
	return r
}

// Menu returns the catalog's menu entries in catalog order.
func (r *Registry) Menu() []domain.MenuEntry {
	out := make([]domain.MenuEntry, len(r.menu))
	copy(out, r.menu)
	return out
}

// Restaurants returns the catalog's restaurants in catalog order.
func (r *Registry) Restaurants() []domain.Restaurant {
	out := make([]domain.Restaurant, len(r.restaurants))
	copy(out, r.restaurants)
	return out
}

// PlaceOrder validates the request against the catalog, computes the frozen
// price breakdown, and stores the order with status placed.
func (r *Registry) PlaceOrder(req PlaceOrderRequest) (domain.Order, error) {
	entry, ok := r.menuByID[req.PizzaType]
	if !ok {
		return domain.Order{}, apperrors.WithMetadata(
			apperrors.CodeOrderUnknownPizza,
			fmt.Sprintf("pizza type %q is not on the menu", req.PizzaType),
			map[string]string{"pizza_type": req.PizzaType},
		)
	}
	restaurant, ok := r.restByID[req.Restaurant]
	if !ok {
		return domain.Order{}, apperrors.WithMetadata(
			apperrors.CodeOrderUnknownRestaurant,
			fmt.Sprintf("restaurant %q is not available", req.Restaurant),
			map[string]string{"restaurant": req.Restaurant},
		)
	}
	if !domain.ValidSize(req.Size) {
		return domain.Order{}, apperrors.WithMetadata(
			apperrors.CodeOrderInvalidSize,
			fmt.Sprintf("size %q is not recognized", req.Size),
			map[string]string{"size": string(req.Size)},
		)
	}
	if req.Quantity <= 0 {
		return domain.Order{}, apperrors.New(apperrors.CodeOrderInvalidQuantity, "quantity must be greater than zero")
	}

	unit, subtotal, total := domain.PriceOrder(entry, req.Size, req.Quantity, restaurant)

	r.mu.Lock()
	defer r.mu.Unlock()

	orderID, err := r.newID()
	if err != nil {
		return domain.Order{}, fmt.Errorf("generate order id: %w", err)
	}

	order := &domain.Order{
		ID:                  orderID,
		PizzaType:           entry.ID,
		PizzaName:           entry.Name,
		Size:                req.Size,
		Quantity:            req.Quantity,
		RestaurantID:        restaurant.ID,
		RestaurantName:      restaurant.Name,
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
		UnitPriceCents:      unit,
		SubtotalCents:       subtotal,
		DeliveryFeeCents:    restaurant.DeliveryFeeCents,
		TotalCents:          total,
		Status:              domain.StatusPlaced,
		CreatedAt:           r.clock().UTC(),
	}
	r.orders[orderID] = order
	r.order = append(r.order, orderID)
	return *order, nil
}

// CheckStatus returns an order by id.
func (r *Registry) CheckStatus(orderID string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return *o, nil
}

// AdvanceStatus moves an order to the given status. Transitions are
// caller-driven and checked against the lifecycle table; there is no
// background progression.
func (r *Registry) AdvanceStatus(orderID string, to domain.Status) (domain.Order, error) {
	if !domain.ValidStatus(to) {
		return domain.Order{}, apperrors.WithMetadata(
			apperrors.CodeOrderInvalidTransition,
			fmt.Sprintf("status %q is not recognized", to),
			map[string]string{"to": string(to)},
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	if !domain.CanTransition(o.Status, to) {
		return domain.Order{}, apperrors.WithMetadata(
			apperrors.CodeOrderInvalidTransition,
			fmt.Sprintf("order cannot move from %s to %s", o.Status, to),
			map[string]string{"from": string(o.Status), "to": string(to)},
		)
	}
	o.Status = to
	return *o, nil
}

// Cancel moves an order to cancelled. Orders already out for delivery or
// delivered cannot be cancelled; the transition table rejects them.
func (r *Registry) Cancel(orderID string) (domain.Order, error) {
	return r.AdvanceStatus(orderID, domain.StatusCancelled)
}

// ListOrders returns all orders in insertion order.
func (r *Registry) ListOrders() []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Order, 0, len(r.order))
	for _, orderID := range r.order {
		out = append(out, *r.orders[orderID])
	}
	return out
}
