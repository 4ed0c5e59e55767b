package service

import (
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	calendarservice "github.com/concierge-ai/concierge/internal/calendar/service"
	inquiryservice "github.com/concierge-ai/concierge/internal/inquiry/service"
	pizzeriaservice "github.com/concierge-ai/concierge/internal/pizzeria/service"
	"github.com/concierge-ai/concierge/internal/services/mcp/domain"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Concierge MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP listen address; defaults to localhost:8081 for HTTP transport
}

// Deps carries the registries and collaborator clients the tool handlers
// bind to. All fields are required.
type Deps struct {
	Meetings  *calendarservice.Registry
	Orders    *pizzeriaservice.Registry
	Questions *inquiryservice.Registry
	Email     domain.EmailSender
	Search    domain.WebSearcher
	PDF       domain.PDFExtractor
}

func (d Deps) validate() error {
	switch {
	case d.Meetings == nil:
		return fmt.Errorf("meeting registry is required")
	case d.Orders == nil:
		return fmt.Errorf("order registry is required")
	case d.Questions == nil:
		return fmt.Errorf("question registry is required")
	case d.Email == nil:
		return fmt.Errorf("email sender is required")
	case d.Search == nil:
		return fmt.Errorf("web searcher is required")
	case d.PDF == nil:
		return fmt.Errorf("pdf extractor is required")
	}
	return nil
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

type mcpRegistrationModule struct {
	name     string
	register func(mcpRegistrationTarget) error
}

const (
	mcpMeetingToolsModuleName  = "meeting-tools"
	mcpOrderToolsModuleName    = "order-tools"
	mcpQuestionToolsModuleName = "question-tools"
	mcpEmailToolsModuleName    = "email-tools"
	mcpPDFToolsModuleName      = "pdf-tools"
	mcpSearchToolsModuleName   = "search-tools"
)

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.ScheduleMeetingInput, domain.MeetingResult](),
	newMCPToolRegistrar[domain.ListMeetingsInput, domain.ListMeetingsResult](),
	newMCPToolRegistrar[domain.CancelMeetingInput, domain.MeetingResult](),
	newMCPToolRegistrar[domain.CheckAvailabilityInput, domain.CheckAvailabilityResult](),
	newMCPToolRegistrar[domain.GetPizzaMenuInput, domain.GetPizzaMenuResult](),
	newMCPToolRegistrar[domain.GetRestaurantsInput, domain.GetRestaurantsResult](),
	newMCPToolRegistrar[domain.OrderPizzaInput, domain.OrderResult](),
	newMCPToolRegistrar[domain.CheckOrderStatusInput, domain.OrderResult](),
	newMCPToolRegistrar[domain.UpdateOrderStatusInput, domain.OrderResult](),
	newMCPToolRegistrar[domain.CancelOrderInput, domain.OrderResult](),
	newMCPToolRegistrar[domain.ListOrdersInput, domain.ListOrdersResult](),
	newMCPToolRegistrar[domain.AskClarifyingQuestionInput, domain.QuestionResult](),
	newMCPToolRegistrar[domain.AskPersonalInformationInput, domain.QuestionResult](),
	newMCPToolRegistrar[domain.AskPreferenceQuestionInput, domain.QuestionResult](),
	newMCPToolRegistrar[domain.AskConfirmationInput, domain.QuestionResult](),
	newMCPToolRegistrar[domain.GetUserResponseInput, domain.QuestionResult](),
	newMCPToolRegistrar[domain.ListPendingQuestionsInput, domain.ListPendingQuestionsResult](),
	newMCPToolRegistrar[domain.SendEmailInput, domain.SendEmailResult](),
	newMCPToolRegistrar[domain.ReadPDFInput, domain.ReadPDFResult](),
	newMCPToolRegistrar[domain.SearchWebInput, domain.SearchWebResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(deps Deps) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpMeetingToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerMeetingTools(registrar, deps.Meetings)
			},
		},
		{
			name: mcpOrderToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerOrderTools(registrar, deps.Orders)
			},
		},
		{
			name: mcpQuestionToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerQuestionTools(registrar, deps.Questions)
			},
		},
		{
			name: mcpEmailToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerTool(registrar, domain.SendEmailTool(), domain.SendEmailHandler(deps.Email))
			},
		},
		{
			name: mcpPDFToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerTool(registrar, domain.ReadPDFTool(), domain.ReadPDFHandler(deps.PDF))
			},
		},
		{
			name: mcpSearchToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerTool(registrar, domain.SearchWebTool(), domain.SearchWebHandler(deps.Search))
			},
		},
	}
}

// New creates a configured MCP server with every tool module registered
// against the provided registries and collaborator clients.
func New(deps Deps) (*Server, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	for _, module := range newMCPRegistrationModules(deps) {
		if err := module.register(mcpServerRegistrationAdapter{server: mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
		log.Printf("registered MCP module %q", module.name)
	}
	return &Server{mcpServer: mcpServer}, nil
}
