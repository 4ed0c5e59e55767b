package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	inquirydomain "github.com/concierge-ai/concierge/internal/inquiry/domain"
	inquiryservice "github.com/concierge-ai/concierge/internal/inquiry/service"
)

// AskClarifyingQuestionInput represents the MCP tool input for a clarifying question.
type AskClarifyingQuestionInput struct {
	Question string `json:"question" jsonschema:"the question to ask the user"`
	Context  string `json:"context,omitempty" jsonschema:"optional context explaining why the question is needed"`
	Required bool   `json:"required,omitempty" jsonschema:"whether an answer is required to proceed"`
}

// AskPersonalInformationInput represents the MCP tool input for a personal-information request.
type AskPersonalInformationInput struct {
	InfoType string `json:"info_type" jsonschema:"kind of information (name, email, phone, address, birthday, or free-form)"`
	Purpose  string `json:"purpose,omitempty" jsonschema:"optional purpose the information is needed for"`
	Required bool   `json:"required,omitempty" jsonschema:"whether an answer is required to proceed"`
}

// AskPreferenceQuestionInput represents the MCP tool input for a preference question.
type AskPreferenceQuestionInput struct {
	PreferenceType string   `json:"preference_type" jsonschema:"what the preference is about (e.g. crust, topping)"`
	Options        []string `json:"options" jsonschema:"the choices offered to the user, in order"`
	Context        string   `json:"context,omitempty" jsonschema:"optional context for the question"`
}

// AskConfirmationInput represents the MCP tool input for a confirmation request.
type AskConfirmationInput struct {
	Action       string `json:"action" jsonschema:"the action the user is asked to confirm"`
	Details      string `json:"details,omitempty" jsonschema:"optional details about the action"`
	Consequences string `json:"consequences,omitempty" jsonschema:"optional consequences of confirming"`
}

// QuestionResult represents a question record in MCP tool outputs.
type QuestionResult struct {
	ID         string   `json:"id" jsonschema:"question identifier"`
	Kind       string   `json:"kind" jsonschema:"question kind (clarifying, personal_info, preference, confirmation)"`
	Question   string   `json:"question" jsonschema:"question text shown to the user"`
	Context    string   `json:"context,omitempty" jsonschema:"context for the question"`
	Options    []string `json:"options,omitempty" jsonschema:"choices for preference questions"`
	Required   bool     `json:"required" jsonschema:"whether an answer is required"`
	Answered   bool     `json:"answered" jsonschema:"whether the question has been answered"`
	Answer     string   `json:"answer,omitempty" jsonschema:"the recorded answer"`
	AskedAt    string   `json:"asked_at" jsonschema:"RFC3339 timestamp when the question was asked"`
	AnsweredAt string   `json:"answered_at,omitempty" jsonschema:"RFC3339 timestamp when the question was answered"`
}

// GetUserResponseInput represents the MCP tool input for answering a question.
type GetUserResponseInput struct {
	QuestionID string `json:"question_id" jsonschema:"question identifier"`
	Answer     string `json:"answer" jsonschema:"the user's answer"`
}

// ListPendingQuestionsInput represents the MCP tool input for listing pending questions.
type ListPendingQuestionsInput struct{}

// ListPendingQuestionsResult represents the MCP tool output for listing pending questions.
type ListPendingQuestionsResult struct {
	Questions []QuestionResult `json:"questions" jsonschema:"unanswered questions in the order they were asked"`
	Count     int              `json:"count" jsonschema:"number of pending questions"`
}

// AskClarifyingQuestionTool defines the MCP tool schema for a clarifying question.
func AskClarifyingQuestionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ask_clarifying_question",
		Description: "Records a clarifying question for the user and returns its id",
	}
}

// AskPersonalInformationTool defines the MCP tool schema for a personal-information request.
func AskPersonalInformationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ask_personal_information",
		Description: "Records a request for personal information (name, email, phone, address, birthday)",
	}
}

// AskPreferenceQuestionTool defines the MCP tool schema for a preference question.
func AskPreferenceQuestionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ask_preference_question",
		Description: "Records a preference question with a fixed set of options",
	}
}

// AskConfirmationTool defines the MCP tool schema for a confirmation request.
func AskConfirmationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ask_confirmation",
		Description: "Records a confirmation request for an action before it is taken",
	}
}

// GetUserResponseTool defines the MCP tool schema for answering a question.
func GetUserResponseTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_user_response",
		Description: "Records the user's answer to a pending question; each question is answerable once",
	}
}

// ListPendingQuestionsTool defines the MCP tool schema for listing pending questions.
func ListPendingQuestionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_pending_questions",
		Description: "Lists questions that have not been answered yet",
	}
}

// AskClarifyingQuestionHandler executes a clarifying question request.
func AskClarifyingQuestionHandler(registry *inquiryservice.Registry) mcp.ToolHandlerFor[AskClarifyingQuestionInput, QuestionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AskClarifyingQuestionInput) (*mcp.CallToolResult, QuestionResult, error) {
		question, err := registry.AskClarifying(input.Question, input.Context, input.Required)
		return questionOutcome(question, err)
	}
}

// AskPersonalInformationHandler executes a personal-information request.
func AskPersonalInformationHandler(registry *inquiryservice.Registry) mcp.ToolHandlerFor[AskPersonalInformationInput, QuestionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AskPersonalInformationInput) (*mcp.CallToolResult, QuestionResult, error) {
		question, err := registry.AskPersonalInfo(input.InfoType, input.Purpose, input.Required)
		return questionOutcome(question, err)
	}
}

// AskPreferenceQuestionHandler executes a preference question request.
func AskPreferenceQuestionHandler(registry *inquiryservice.Registry) mcp.ToolHandlerFor[AskPreferenceQuestionInput, QuestionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AskPreferenceQuestionInput) (*mcp.CallToolResult, QuestionResult, error) {
		question, err := registry.AskPreference(input.PreferenceType, input.Options, input.Context)
		return questionOutcome(question, err)
	}
}

// AskConfirmationHandler executes a confirmation request.
func AskConfirmationHandler(registry *inquiryservice.Registry) mcp.ToolHandlerFor[AskConfirmationInput, QuestionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AskConfirmationInput) (*mcp.CallToolResult, QuestionResult, error) {
		question, err := registry.AskConfirmation(input.Action, input.Details, input.Consequences)
		return questionOutcome(question, err)
	}
}

// GetUserResponseHandler executes an answer recording request.
func GetUserResponseHandler(registry *inquiryservice.Registry) mcp.ToolHandlerFor[GetUserResponseInput, QuestionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetUserResponseInput) (*mcp.CallToolResult, QuestionResult, error) {
		question, err := registry.Respond(input.QuestionID, input.Answer)
		return questionOutcome(question, err)
	}
}

// ListPendingQuestionsHandler executes a pending question listing request.
func ListPendingQuestionsHandler(registry *inquiryservice.Registry) mcp.ToolHandlerFor[ListPendingQuestionsInput, ListPendingQuestionsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListPendingQuestionsInput) (*mcp.CallToolResult, ListPendingQuestionsResult, error) {
		pending := registry.ListPending()
		result := ListPendingQuestionsResult{Questions: make([]QuestionResult, 0, len(pending)), Count: len(pending)}
		for _, q := range pending {
			result.Questions = append(result.Questions, questionResult(q))
		}
		return nil, result, nil
	}
}

// questionOutcome folds the shared (question, err) registry return shape into
// the tool result channels.
func questionOutcome(q inquirydomain.Question, err error) (*mcp.CallToolResult, QuestionResult, error) {
	if err != nil {
		if domainError(err) {
			return errorResult(err), QuestionResult{}, nil
		}
		return nil, QuestionResult{}, err
	}
	return nil, questionResult(q), nil
}

func questionResult(q inquirydomain.Question) QuestionResult {
	return QuestionResult{
		ID:         q.ID,
		Kind:       string(q.Kind),
		Question:   q.Text,
		Context:    q.Context,
		Options:    q.Options,
		Required:   q.Required,
		Answered:   q.Answered,
		Answer:     q.Answer,
		AskedAt:    formatTime(q.AskedAt),
		AnsweredAt: formatTime(q.AnsweredAt),
	}
}
