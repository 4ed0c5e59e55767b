package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	pizzeriadomain "github.com/concierge-ai/concierge/internal/pizzeria/domain"
	pizzeriaservice "github.com/concierge-ai/concierge/internal/pizzeria/service"
)

// menuSizes is the display order for per-size price listings.
var menuSizes = []pizzeriadomain.Size{
	pizzeriadomain.SizeSmall,
	pizzeriadomain.SizeMedium,
	pizzeriadomain.SizeLarge,
	pizzeriadomain.SizeExtraLarge,
}

// GetPizzaMenuInput represents the MCP tool input for reading the menu.
type GetPizzaMenuInput struct{}

// MenuEntryResult represents a menu entry in MCP tool outputs.
type MenuEntryResult struct {
	ID          string            `json:"id" jsonschema:"pizza type identifier"`
	Name        string            `json:"name" jsonschema:"pizza name"`
	Description string            `json:"description" jsonschema:"pizza description"`
	BasePrice   string            `json:"base_price" jsonschema:"medium-size price in dollars"`
	SizePrices  map[string]string `json:"size_prices" jsonschema:"price per size in dollars"`
}

// GetPizzaMenuResult represents the MCP tool output for reading the menu.
type GetPizzaMenuResult struct {
	Menu  []MenuEntryResult `json:"menu" jsonschema:"menu entries in catalog order"`
	Sizes []string          `json:"sizes" jsonschema:"recognized pizza sizes"`
}

// GetRestaurantsInput represents the MCP tool input for listing restaurants.
type GetRestaurantsInput struct{}

// RestaurantResult represents a restaurant in MCP tool outputs.
type RestaurantResult struct {
	ID          string `json:"id" jsonschema:"restaurant identifier"`
	Name        string `json:"name" jsonschema:"restaurant name"`
	Phone       string `json:"phone" jsonschema:"restaurant phone number"`
	DeliveryFee string `json:"delivery_fee" jsonschema:"flat delivery fee in dollars"`
}

// GetRestaurantsResult represents the MCP tool output for listing restaurants.
type GetRestaurantsResult struct {
	Restaurants []RestaurantResult `json:"restaurants" jsonschema:"restaurants in catalog order"`
}

// OrderPizzaInput represents the MCP tool input for placing an order.
type OrderPizzaInput struct {
	PizzaType           string `json:"pizza_type" jsonschema:"pizza type identifier from the menu"`
	Size                string `json:"size" jsonschema:"pizza size (small, medium, large, extra_large)"`
	Quantity            int    `json:"quantity" jsonschema:"number of pizzas, at least 1"`
	Restaurant          string `json:"restaurant" jsonschema:"restaurant identifier"`
	CustomerName        string `json:"customer_name,omitempty" jsonschema:"optional customer name"`
	CustomerPhone       string `json:"customer_phone,omitempty" jsonschema:"optional customer phone"`
	DeliveryAddress     string `json:"delivery_address,omitempty" jsonschema:"optional delivery address"`
	SpecialInstructions string `json:"special_instructions,omitempty" jsonschema:"optional special instructions"`
}

// OrderResult represents an order record in MCP tool outputs. Price fields
// are the frozen breakdown computed when the order was placed.
type OrderResult struct {
	ID                  string `json:"id" jsonschema:"order identifier"`
	PizzaType           string `json:"pizza_type" jsonschema:"pizza type identifier"`
	PizzaName           string `json:"pizza_name" jsonschema:"pizza name"`
	Size                string `json:"size" jsonschema:"pizza size"`
	Quantity            int    `json:"quantity" jsonschema:"number of pizzas"`
	Restaurant          string `json:"restaurant" jsonschema:"restaurant identifier"`
	RestaurantName      string `json:"restaurant_name" jsonschema:"restaurant name"`
	CustomerName        string `json:"customer_name,omitempty" jsonschema:"customer name"`
	CustomerPhone       string `json:"customer_phone,omitempty" jsonschema:"customer phone"`
	DeliveryAddress     string `json:"delivery_address,omitempty" jsonschema:"delivery address"`
	SpecialInstructions string `json:"special_instructions,omitempty" jsonschema:"special instructions"`
	UnitPrice           string `json:"unit_price" jsonschema:"price per pizza in dollars"`
	Subtotal            string `json:"subtotal" jsonschema:"unit price times quantity in dollars"`
	DeliveryFee         string `json:"delivery_fee" jsonschema:"delivery fee in dollars"`
	Total               string `json:"total" jsonschema:"order total in dollars"`
	Status              string `json:"status" jsonschema:"order status"`
	CreatedAt           string `json:"created_at" jsonschema:"RFC3339 timestamp when the order was placed"`
}

// CheckOrderStatusInput represents the MCP tool input for an order lookup.
type CheckOrderStatusInput struct {
	OrderID string `json:"order_id" jsonschema:"order identifier"`
}

// UpdateOrderStatusInput represents the MCP tool input for advancing an order.
type UpdateOrderStatusInput struct {
	OrderID string `json:"order_id" jsonschema:"order identifier"`
	Status  string `json:"status" jsonschema:"target status (preparing, out_for_delivery, delivered, cancelled)"`
}

// CancelOrderInput represents the MCP tool input for cancelling an order.
type CancelOrderInput struct {
	OrderID string `json:"order_id" jsonschema:"order identifier"`
}

// ListOrdersInput represents the MCP tool input for listing orders.
type ListOrdersInput struct{}

// ListOrdersResult represents the MCP tool output for listing orders.
type ListOrdersResult struct {
	Orders []OrderResult `json:"orders" jsonschema:"orders in placement order"`
	Count  int           `json:"count" jsonschema:"number of orders returned"`
}

// GetPizzaMenuTool defines the MCP tool schema for reading the menu.
func GetPizzaMenuTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_pizza_menu",
		Description: "Returns the pizza menu with per-size prices",
	}
}

// GetRestaurantsTool defines the MCP tool schema for listing restaurants.
func GetRestaurantsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_restaurants",
		Description: "Returns the available restaurants and their delivery fees",
	}
}

// OrderPizzaTool defines the MCP tool schema for placing an order.
func OrderPizzaTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "order_pizza",
		Description: "Places a pizza order and returns the frozen price breakdown",
	}
}

// CheckOrderStatusTool defines the MCP tool schema for an order lookup.
func CheckOrderStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_order_status",
		Description: "Returns an order and its current status by id",
	}
}

// UpdateOrderStatusTool defines the MCP tool schema for advancing an order.
func UpdateOrderStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_order_status",
		Description: "Moves an order to the next lifecycle status; invalid transitions are rejected",
	}
}

// CancelOrderTool defines the MCP tool schema for cancelling an order.
func CancelOrderTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "cancel_order",
		Description: "Cancels an order that has not left the restaurant yet",
	}
}

// ListOrdersTool defines the MCP tool schema for listing orders.
func ListOrdersTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_orders",
		Description: "Lists every order placed in this session",
	}
}

// GetPizzaMenuHandler executes a menu read request.
func GetPizzaMenuHandler(registry *pizzeriaservice.Registry) mcp.ToolHandlerFor[GetPizzaMenuInput, GetPizzaMenuResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GetPizzaMenuInput) (*mcp.CallToolResult, GetPizzaMenuResult, error) {
		menu := registry.Menu()
		result := GetPizzaMenuResult{Menu: make([]MenuEntryResult, 0, len(menu))}
		for _, size := range menuSizes {
			result.Sizes = append(result.Sizes, string(size))
		}
		for _, entry := range menu {
			sizePrices := make(map[string]string, len(menuSizes))
			for _, size := range menuSizes {
				sizePrices[string(size)] = formatCents(pizzeriadomain.UnitPriceCents(entry.BasePriceCents, size))
			}
			result.Menu = append(result.Menu, MenuEntryResult{
				ID:          entry.ID,
				Name:        entry.Name,
				Description: entry.Description,
				BasePrice:   formatCents(entry.BasePriceCents),
				SizePrices:  sizePrices,
			})
		}
		return nil, result, nil
	}
}

// GetRestaurantsHandler executes a restaurant listing request.
func GetRestaurantsHandler(registry *pizzeriaservice.Registry) mcp.ToolHandlerFor[GetRestaurantsInput, GetRestaurantsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GetRestaurantsInput) (*mcp.CallToolResult, GetRestaurantsResult, error) {
		restaurants := registry.Restaurants()
		result := GetRestaurantsResult{Restaurants: make([]RestaurantResult, 0, len(restaurants))}
		for _, r := range restaurants {
			result.Restaurants = append(result.Restaurants, RestaurantResult{
				ID:          r.ID,
				Name:        r.Name,
				Phone:       r.Phone,
				DeliveryFee: formatCents(r.DeliveryFeeCents),
			})
		}
		return nil, result, nil
	}
}

// OrderPizzaHandler executes an order placement request.
func OrderPizzaHandler(registry *pizzeriaservice.Registry) mcp.ToolHandlerFor[OrderPizzaInput, OrderResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input OrderPizzaInput) (*mcp.CallToolResult, OrderResult, error) {
		order, err := registry.PlaceOrder(pizzeriaservice.PlaceOrderRequest{
			PizzaType:           input.PizzaType,
			Size:                pizzeriadomain.Size(input.Size),
			Quantity:            input.Quantity,
			Restaurant:          input.Restaurant,
			CustomerName:        input.CustomerName,
			CustomerPhone:       input.CustomerPhone,
			DeliveryAddress:     input.DeliveryAddress,
			SpecialInstructions: input.SpecialInstructions,
		})
		if err != nil {
			if domainError(err) {
				return errorResult(err), OrderResult{}, nil
			}
			return nil, OrderResult{}, err
		}
		return nil, orderResult(order), nil
	}
}

// CheckOrderStatusHandler executes an order lookup request.
func CheckOrderStatusHandler(registry *pizzeriaservice.Registry) mcp.ToolHandlerFor[CheckOrderStatusInput, OrderResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CheckOrderStatusInput) (*mcp.CallToolResult, OrderResult, error) {
		order, err := registry.CheckStatus(input.OrderID)
		if err != nil {
			if domainError(err) {
				return errorResult(err), OrderResult{}, nil
			}
			return nil, OrderResult{}, err
		}
		return nil, orderResult(order), nil
	}
}

// UpdateOrderStatusHandler executes an order status advance request.
func UpdateOrderStatusHandler(registry *pizzeriaservice.Registry) mcp.ToolHandlerFor[UpdateOrderStatusInput, OrderResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateOrderStatusInput) (*mcp.CallToolResult, OrderResult, error) {
		order, err := registry.AdvanceStatus(input.OrderID, pizzeriadomain.Status(input.Status))
		if err != nil {
			if domainError(err) {
				return errorResult(err), OrderResult{}, nil
			}
			return nil, OrderResult{}, err
		}
		return nil, orderResult(order), nil
	}
}

// CancelOrderHandler executes an order cancellation request.
func CancelOrderHandler(registry *pizzeriaservice.Registry) mcp.ToolHandlerFor[CancelOrderInput, OrderResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CancelOrderInput) (*mcp.CallToolResult, OrderResult, error) {
		order, err := registry.Cancel(input.OrderID)
		if err != nil {
			if domainError(err) {
				return errorResult(err), OrderResult{}, nil
			}
			return nil, OrderResult{}, err
		}
		return nil, orderResult(order), nil
	}
}

// ListOrdersHandler executes an order listing request.
func ListOrdersHandler(registry *pizzeriaservice.Registry) mcp.ToolHandlerFor[ListOrdersInput, ListOrdersResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListOrdersInput) (*mcp.CallToolResult, ListOrdersResult, error) {
		orders := registry.ListOrders()
		result := ListOrdersResult{Orders: make([]OrderResult, 0, len(orders)), Count: len(orders)}
		for _, o := range orders {
			result.Orders = append(result.Orders, orderResult(o))
		}
		return nil, result, nil
	}
}

func orderResult(o pizzeriadomain.Order) OrderResult {
	return OrderResult{
		ID:                  o.ID,
		PizzaType:           o.PizzaType,
		PizzaName:           o.PizzaName,
		Size:                string(o.Size),
		Quantity:            o.Quantity,
		Restaurant:          o.RestaurantID,
		RestaurantName:      o.RestaurantName,
		CustomerName:        o.CustomerName,
		CustomerPhone:       o.CustomerPhone,
		DeliveryAddress:     o.DeliveryAddress,
		SpecialInstructions: o.SpecialInstructions,
		UnitPrice:           formatCents(o.UnitPriceCents),
		Subtotal:            formatCents(o.SubtotalCents),
		DeliveryFee:         formatCents(o.DeliveryFeeCents),
		Total:               formatCents(o.TotalCents),
		Status:              string(o.Status),
		CreatedAt:           formatTime(o.CreatedAt),
	}
}
