package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	calendardomain "github.com/concierge-ai/concierge/internal/calendar/domain"
	calendarservice "github.com/concierge-ai/concierge/internal/calendar/service"
)

// ScheduleMeetingInput represents the MCP tool input for scheduling a meeting.
type ScheduleMeetingInput struct {
	Title           string   `json:"title" jsonschema:"meeting title"`
	Date            string   `json:"date" jsonschema:"meeting date (YYYY-MM-DD)"`
	Time            string   `json:"time" jsonschema:"start time (HH:MM, 24-hour)"`
	DurationMinutes int      `json:"duration_minutes" jsonschema:"duration in minutes"`
	Attendees       []string `json:"attendees,omitempty" jsonschema:"optional attendee names or emails"`
	Location        string   `json:"location,omitempty" jsonschema:"optional location"`
	Description     string   `json:"description,omitempty" jsonschema:"optional description"`
}

// MeetingResult represents a meeting record in MCP tool outputs.
type MeetingResult struct {
	ID              string   `json:"id" jsonschema:"meeting identifier"`
	Title           string   `json:"title" jsonschema:"meeting title"`
	Date            string   `json:"date" jsonschema:"meeting date (YYYY-MM-DD)"`
	StartTime       string   `json:"start_time" jsonschema:"start time (HH:MM)"`
	EndTime         string   `json:"end_time" jsonschema:"end time (HH:MM)"`
	DurationMinutes int      `json:"duration_minutes" jsonschema:"duration in minutes"`
	Attendees       []string `json:"attendees,omitempty" jsonschema:"attendees"`
	Location        string   `json:"location,omitempty" jsonschema:"location"`
	Description     string   `json:"description,omitempty" jsonschema:"description"`
	Status          string   `json:"status" jsonschema:"meeting status (scheduled, cancelled)"`
	CreatedAt       string   `json:"created_at" jsonschema:"RFC3339 timestamp when the meeting was recorded"`
}

// ListMeetingsInput represents the MCP tool input for listing meetings.
type ListMeetingsInput struct {
	Date string `json:"date,omitempty" jsonschema:"optional date filter (YYYY-MM-DD); empty lists every meeting"`
}

// ListMeetingsResult represents the MCP tool output for listing meetings.
type ListMeetingsResult struct {
	Meetings []MeetingResult `json:"meetings" jsonschema:"meetings sorted by date and start time"`
	Count    int             `json:"count" jsonschema:"number of meetings returned"`
}

// CancelMeetingInput represents the MCP tool input for cancelling a meeting.
type CancelMeetingInput struct {
	MeetingID string `json:"meeting_id" jsonschema:"meeting identifier"`
}

// CheckAvailabilityInput represents the MCP tool input for a slot check.
type CheckAvailabilityInput struct {
	Date            string `json:"date" jsonschema:"date to check (YYYY-MM-DD)"`
	Time            string `json:"time" jsonschema:"start time to check (HH:MM, 24-hour)"`
	DurationMinutes int    `json:"duration_minutes" jsonschema:"duration in minutes"`
}

// CheckAvailabilityResult represents the MCP tool output for a slot check.
type CheckAvailabilityResult struct {
	Available            bool   `json:"available" jsonschema:"whether the slot is free"`
	ConflictingMeetingID string `json:"conflicting_meeting_id,omitempty" jsonschema:"meeting occupying the slot when unavailable"`
}

// ScheduleMeetingTool defines the MCP tool schema for scheduling a meeting.
func ScheduleMeetingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "schedule_meeting",
		Description: "Schedules a meeting if the requested slot does not overlap an existing one",
	}
}

// ListMeetingsTool defines the MCP tool schema for listing meetings.
func ListMeetingsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_meetings",
		Description: "Lists meetings, optionally filtered by date, sorted by date and start time",
	}
}

// CancelMeetingTool defines the MCP tool schema for cancelling a meeting.
func CancelMeetingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "cancel_meeting",
		Description: "Cancels a meeting by id, freeing its slot for new bookings",
	}
}

// CheckAvailabilityTool defines the MCP tool schema for a non-mutating slot check.
func CheckAvailabilityTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_availability",
		Description: "Checks whether a time slot is free without booking it",
	}
}

// ScheduleMeetingHandler executes a meeting scheduling request.
func ScheduleMeetingHandler(registry *calendarservice.Registry) mcp.ToolHandlerFor[ScheduleMeetingInput, MeetingResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ScheduleMeetingInput) (*mcp.CallToolResult, MeetingResult, error) {
		meeting, err := registry.Schedule(calendarservice.ScheduleRequest{
			Title:           input.Title,
			Date:            input.Date,
			Time:            input.Time,
			DurationMinutes: input.DurationMinutes,
			Attendees:       input.Attendees,
			Location:        input.Location,
			Description:     input.Description,
		})
		if err != nil {
			if domainError(err) {
				return errorResult(err), MeetingResult{}, nil
			}
			return nil, MeetingResult{}, err
		}
		return nil, meetingResult(meeting), nil
	}
}

// ListMeetingsHandler executes a meeting listing request.
func ListMeetingsHandler(registry *calendarservice.Registry) mcp.ToolHandlerFor[ListMeetingsInput, ListMeetingsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListMeetingsInput) (*mcp.CallToolResult, ListMeetingsResult, error) {
		meetings, err := registry.List(input.Date)
		if err != nil {
			if domainError(err) {
				return errorResult(err), ListMeetingsResult{}, nil
			}
			return nil, ListMeetingsResult{}, err
		}
		result := ListMeetingsResult{Meetings: make([]MeetingResult, 0, len(meetings)), Count: len(meetings)}
		for _, m := range meetings {
			result.Meetings = append(result.Meetings, meetingResult(m))
		}
		return nil, result, nil
	}
}

// CancelMeetingHandler executes a meeting cancellation request.
func CancelMeetingHandler(registry *calendarservice.Registry) mcp.ToolHandlerFor[CancelMeetingInput, MeetingResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CancelMeetingInput) (*mcp.CallToolResult, MeetingResult, error) {
		meeting, err := registry.Cancel(input.MeetingID)
		if err != nil {
			if domainError(err) {
				return errorResult(err), MeetingResult{}, nil
			}
			return nil, MeetingResult{}, err
		}
		return nil, meetingResult(meeting), nil
	}
}

// CheckAvailabilityHandler executes a non-mutating slot check.
func CheckAvailabilityHandler(registry *calendarservice.Registry) mcp.ToolHandlerFor[CheckAvailabilityInput, CheckAvailabilityResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CheckAvailabilityInput) (*mcp.CallToolResult, CheckAvailabilityResult, error) {
		availability, err := registry.CheckAvailability(input.Date, input.Time, input.DurationMinutes)
		if err != nil {
			if domainError(err) {
				return errorResult(err), CheckAvailabilityResult{}, nil
			}
			return nil, CheckAvailabilityResult{}, err
		}
		return nil, CheckAvailabilityResult{
			Available:            availability.Available,
			ConflictingMeetingID: availability.ConflictingMeetingID,
		}, nil
	}
}

func meetingResult(m calendardomain.Meeting) MeetingResult {
	endTime := ""
	if _, end, err := m.Interval(); err == nil {
		endTime = end.Format(calendardomain.TimeLayout)
	}
	return MeetingResult{
		ID:              m.ID,
		Title:           m.Title,
		Date:            m.Date,
		StartTime:       m.Start,
		EndTime:         endTime,
		DurationMinutes: m.DurationMinutes,
		Attendees:       m.Attendees,
		Location:        m.Location,
		Description:     m.Description,
		Status:          string(m.Status),
		CreatedAt:       formatTime(m.CreatedAt),
	}
}
