package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	calendarservice "github.com/concierge-ai/concierge/internal/calendar/service"
	inquiryservice "github.com/concierge-ai/concierge/internal/inquiry/service"
	pizzeriaservice "github.com/concierge-ai/concierge/internal/pizzeria/service"
	"github.com/concierge-ai/concierge/internal/services/mcp/domain"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
}

func registerMeetingTools(registrar mcpRegistrationTarget, registry *calendarservice.Registry) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.ScheduleMeetingTool(), handler: domain.ScheduleMeetingHandler(registry)},
		{tool: domain.ListMeetingsTool(), handler: domain.ListMeetingsHandler(registry)},
		{tool: domain.CancelMeetingTool(), handler: domain.CancelMeetingHandler(registry)},
		{tool: domain.CheckAvailabilityTool(), handler: domain.CheckAvailabilityHandler(registry)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerOrderTools(registrar mcpRegistrationTarget, registry *pizzeriaservice.Registry) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.GetPizzaMenuTool(), handler: domain.GetPizzaMenuHandler(registry)},
		{tool: domain.GetRestaurantsTool(), handler: domain.GetRestaurantsHandler(registry)},
		{tool: domain.OrderPizzaTool(), handler: domain.OrderPizzaHandler(registry)},
		{tool: domain.CheckOrderStatusTool(), handler: domain.CheckOrderStatusHandler(registry)},
		{tool: domain.UpdateOrderStatusTool(), handler: domain.UpdateOrderStatusHandler(registry)},
		{tool: domain.CancelOrderTool(), handler: domain.CancelOrderHandler(registry)},
		{tool: domain.ListOrdersTool(), handler: domain.ListOrdersHandler(registry)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerQuestionTools(registrar mcpRegistrationTarget, registry *inquiryservice.Registry) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.AskClarifyingQuestionTool(), handler: domain.AskClarifyingQuestionHandler(registry)},
		{tool: domain.AskPersonalInformationTool(), handler: domain.AskPersonalInformationHandler(registry)},
		{tool: domain.AskPreferenceQuestionTool(), handler: domain.AskPreferenceQuestionHandler(registry)},
		{tool: domain.AskConfirmationTool(), handler: domain.AskConfirmationHandler(registry)},
		{tool: domain.GetUserResponseTool(), handler: domain.GetUserResponseHandler(registry)},
		{tool: domain.ListPendingQuestionsTool(), handler: domain.ListPendingQuestionsHandler(registry)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}
