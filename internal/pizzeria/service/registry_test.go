package service

import (
	"errors"
	"testing"

	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
	"github.com/concierge-ai/concierge/internal/pizzeria/catalog"
	"github.com/concierge-ai/concierge/internal/pizzeria/domain"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return NewRegistry(c)
}

func validOrder() PlaceOrderRequest {
	return PlaceOrderRequest{
		PizzaType:    "margherita",
		Size:         domain.SizeLarge,
		Quantity:     2,
		Restaurant:   "dominos",
		CustomerName: "Ada",
	}
}

func TestPlaceOrderComputesFrozenPrice(t *testing.T) {
	registry := newTestRegistry(t)

	order, err := registry.PlaceOrder(validOrder())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Status != domain.StatusPlaced {
		t.Fatalf("expected placed status, got %s", order.Status)
	}
	// 1299 * 1.2 = 1559 each, * 2 + 299 fee.
	if order.UnitPriceCents != 1559 {
		t.Fatalf("unit price: expected 1559, got %d", order.UnitPriceCents)
	}
	if order.SubtotalCents != 3118 {
		t.Fatalf("subtotal: expected 3118, got %d", order.SubtotalCents)
	}
	if order.TotalCents != 3417 {
		t.Fatalf("total: expected 3417, got %d", order.TotalCents)
	}
	if order.PizzaName != "Margherita Pizza" || order.RestaurantName != "Domino's" {
		t.Fatalf("unexpected names: %q / %q", order.PizzaName, order.RestaurantName)
	}
	if order.ID == "" {
		t.Fatal("expected generated id")
	}
	if order.CreatedAt.IsZero() {
		t.Fatal("expected creation timestamp")
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	registry := newTestRegistry(t)

	t.Run("unknown pizza", func(t *testing.T) {
		req := validOrder()
		req.PizzaType = "calzone"
		_, err := registry.PlaceOrder(req)
		if !errors.Is(err, apperrors.New(apperrors.CodeOrderUnknownPizza, "")) {
			t.Fatalf("expected unknown pizza error, got %v", err)
		}
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		req := validOrder()
		req.Restaurant = "lunar_pizza"
		_, err := registry.PlaceOrder(req)
		if !errors.Is(err, apperrors.New(apperrors.CodeOrderUnknownRestaurant, "")) {
			t.Fatalf("expected unknown restaurant error, got %v", err)
		}
	})

	t.Run("invalid size", func(t *testing.T) {
		req := validOrder()
		req.Size = "family"
		_, err := registry.PlaceOrder(req)
		if !errors.Is(err, apperrors.New(apperrors.CodeOrderInvalidSize, "")) {
			t.Fatalf("expected invalid size error, got %v", err)
		}
	})

	for _, quantity := range []int{0, -1} {
		req := validOrder()
		req.Quantity = quantity
		_, err := registry.PlaceOrder(req)
		if !errors.Is(err, apperrors.New(apperrors.CodeOrderInvalidQuantity, "")) {
			t.Fatalf("quantity %d: expected invalid quantity error, got %v", quantity, err)
		}
	}

	if got := len(registry.ListOrders()); got != 0 {
		t.Fatalf("expected no orders after failed placements, got %d", got)
	}
}

func TestCheckStatus(t *testing.T) {
	registry := newTestRegistry(t)

	order, err := registry.PlaceOrder(validOrder())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	got, err := registry.CheckStatus(order.ID)
	if err != nil {
		t.Fatalf("check status: %v", err)
	}
	if got.ID != order.ID || got.Status != domain.StatusPlaced {
		t.Fatalf("unexpected order: %+v", got)
	}

	if _, err := registry.CheckStatus("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdvanceStatus(t *testing.T) {
	registry := newTestRegistry(t)

	order, err := registry.PlaceOrder(validOrder())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	for _, next := range []domain.Status{domain.StatusPreparing, domain.StatusOutForDelivery, domain.StatusDelivered} {
		got, err := registry.AdvanceStatus(order.ID, next)
		if err != nil {
			t.Fatalf("advance to %s: %v", next, err)
		}
		if got.Status != next {
			t.Fatalf("expected %s, got %s", next, got.Status)
		}
	}

	// Delivered is terminal.
	_, err = registry.AdvanceStatus(order.ID, domain.StatusPreparing)
	if !errors.Is(err, apperrors.New(apperrors.CodeOrderInvalidTransition, "")) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	_, err = registry.AdvanceStatus(order.ID, "baking")
	if !errors.Is(err, apperrors.New(apperrors.CodeOrderInvalidTransition, "")) {
		t.Fatalf("expected invalid transition for unknown status, got %v", err)
	}
}

func TestListOrdersInsertionOrder(t *testing.T) {
	registry := newTestRegistry(t)

	first, err := registry.PlaceOrder(validOrder())
	if err != nil {
		t.Fatalf("place first: %v", err)
	}
	req := validOrder()
	req.PizzaType = "pepperoni"
	second, err := registry.PlaceOrder(req)
	if err != nil {
		t.Fatalf("place second: %v", err)
	}

	orders := registry.ListOrders()
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != first.ID || orders[1].ID != second.ID {
		t.Fatal("expected insertion order")
	}
}

func TestCatalogAccessors(t *testing.T) {
	registry := newTestRegistry(t)

	menu := registry.Menu()
	if len(menu) != 6 || menu[0].ID != "margherita" {
		t.Fatalf("unexpected menu: %+v", menu)
	}
	restaurants := registry.Restaurants()
	if len(restaurants) != 3 || restaurants[0].ID != "pizza_hut" {
		t.Fatalf("unexpected restaurants: %+v", restaurants)
	}

	// Mutating the returned slices must not affect the registry.
	menu[0].ID = "mutated"
	if registry.Menu()[0].ID != "margherita" {
		t.Fatal("expected catalog to be immutable")
	}
}
