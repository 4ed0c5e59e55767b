// Package chat implements the terminal assistant: an explicit command
// grammar routed to the in-process registries and collaborator clients.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	calendardomain "github.com/concierge-ai/concierge/internal/calendar/domain"
	calendarservice "github.com/concierge-ai/concierge/internal/calendar/service"
	inquirydomain "github.com/concierge-ai/concierge/internal/inquiry/domain"
	inquiryservice "github.com/concierge-ai/concierge/internal/inquiry/service"
	"github.com/concierge-ai/concierge/internal/mail"
	"github.com/concierge-ai/concierge/internal/pdftext"
	pizzeriadomain "github.com/concierge-ai/concierge/internal/pizzeria/domain"
	pizzeriaservice "github.com/concierge-ai/concierge/internal/pizzeria/service"
	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
	"github.com/concierge-ai/concierge/internal/websearch"
)

// EmailSender delivers an email and returns the provider's message id.
type EmailSender interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

// WebSearcher runs a web search and returns ordered hits.
type WebSearcher interface {
	Search(ctx context.Context, query string, numResults int) ([]websearch.Result, error)
}

// PDFExtractor pulls plain text out of a local PDF file.
type PDFExtractor func(path string, pages pdftext.PageRange) (pdftext.Extraction, error)

// Router dispatches parsed commands to the registries and collaborators.
type Router struct {
	Meetings  *calendarservice.Registry
	Orders    *pizzeriaservice.Registry
	Questions *inquiryservice.Registry
	Email     EmailSender
	Search    WebSearcher
	PDF       PDFExtractor
}

const helpText = `Commands (arguments are key=value, quote values with spaces):
  /schedule title= date= time= duration= [attendees=a,b] [location=] [desc=]
  /meetings [date=]           list meetings
  /cancel id=                 cancel a meeting
  /free date= time= duration= check slot availability
  /menu                       show the pizza menu
  /restaurants                show restaurants
  /order pizza= size= qty= restaurant= [name=] [phone=] [address=] [notes=]
  /order-status id=           check an order
  /order-advance id= status=  move an order through its lifecycle
  /order-cancel id=           cancel an order
  /orders                     list orders
  /ask kind=clarifying|personal|preference|confirm ...fields
  /respond id= answer=        answer a pending question
  /pending                    list pending questions
  /email to=a,b subject= body=
  /search q= [n=]
  /pdf path= [first=] [last=]
  /help                       show this help
  /quit                       exit`

// Dispatch parses one input line and executes it. The second return value
// is true when the session should end.
func (r *Router) Dispatch(ctx context.Context, line string) (string, bool) {
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return "", false
	}
	command := tokens[0]
	args := parseArgs(tokens[1:])

	switch command {
	case "/quit", "/exit":
		return "Goodbye!", true
	case "/help":
		return helpText, false
	case "/schedule":
		return r.schedule(args), false
	case "/meetings":
		return r.meetings(args), false
	case "/cancel":
		return r.cancelMeeting(args), false
	case "/free":
		return r.free(args), false
	case "/menu":
		return r.menu(), false
	case "/restaurants":
		return r.restaurants(), false
	case "/order":
		return r.order(args), false
	case "/order-status":
		return r.orderStatus(args), false
	case "/order-advance":
		return r.orderAdvance(args), false
	case "/order-cancel":
		return r.orderCancel(args), false
	case "/orders":
		return r.orders(), false
	case "/ask":
		return r.ask(args), false
	case "/respond":
		return r.respond(args), false
	case "/pending":
		return r.pending(), false
	case "/email":
		return r.email(ctx, args), false
	case "/search":
		return r.search(ctx, args), false
	case "/pdf":
		return r.pdf(args), false
	default:
		return fmt.Sprintf("Unknown command %s. Try /help.", command), false
	}
}

func (r *Router) schedule(args map[string]string) string {
	duration, err := intArg(args, "duration")
	if err != nil {
		return renderErr(err)
	}
	meeting, err := r.Meetings.Schedule(calendarservice.ScheduleRequest{
		Title:           args["title"],
		Date:            args["date"],
		Time:            args["time"],
		DurationMinutes: duration,
		Attendees:       splitList(args["attendees"]),
		Location:        args["location"],
		Description:     args["desc"],
	})
	if err != nil {
		return renderErr(err)
	}
	return "Scheduled:\n" + renderMeeting(meeting)
}

func (r *Router) meetings(args map[string]string) string {
	meetings, err := r.Meetings.List(args["date"])
	if err != nil {
		return renderErr(err)
	}
	if len(meetings) == 0 {
		return "No meetings."
	}
	lines := make([]string, 0, len(meetings))
	for _, m := range meetings {
		lines = append(lines, renderMeeting(m))
	}
	return strings.Join(lines, "\n")
}

func (r *Router) cancelMeeting(args map[string]string) string {
	meeting, err := r.Meetings.Cancel(args["id"])
	if err != nil {
		return renderErr(err)
	}
	return "Cancelled:\n" + renderMeeting(meeting)
}

func (r *Router) free(args map[string]string) string {
	duration, err := intArg(args, "duration")
	if err != nil {
		return renderErr(err)
	}
	availability, err := r.Meetings.CheckAvailability(args["date"], args["time"], duration)
	if err != nil {
		return renderErr(err)
	}
	if availability.Available {
		return "The slot is free."
	}
	return fmt.Sprintf("The slot is taken by meeting %s.", availability.ConflictingMeetingID)
}

func (r *Router) menu() string {
	var sb strings.Builder
	sb.WriteString("Menu (small/medium/large/extra_large):\n")
	for _, entry := range r.Orders.Menu() {
		prices := make([]string, 0, 4)
		for _, size := range []pizzeriadomain.Size{
			pizzeriadomain.SizeSmall,
			pizzeriadomain.SizeMedium,
			pizzeriadomain.SizeLarge,
			pizzeriadomain.SizeExtraLarge,
		} {
			prices = append(prices, formatCents(pizzeriadomain.UnitPriceCents(entry.BasePriceCents, size)))
		}
		fmt.Fprintf(&sb, "  %-12s %s  %s\n", entry.ID, strings.Join(prices, "/"), entry.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *Router) restaurants() string {
	var sb strings.Builder
	sb.WriteString("Restaurants:\n")
	for _, rest := range r.Orders.Restaurants() {
		fmt.Fprintf(&sb, "  %-12s %s, delivery %s, %s\n", rest.ID, rest.Name, formatCents(rest.DeliveryFeeCents), rest.Phone)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *Router) order(args map[string]string) string {
	quantity, err := intArg(args, "qty")
	if err != nil {
		return renderErr(err)
	}
	order, err := r.Orders.PlaceOrder(pizzeriaservice.PlaceOrderRequest{
		PizzaType:           args["pizza"],
		Size:                pizzeriadomain.Size(args["size"]),
		Quantity:            quantity,
		Restaurant:          args["restaurant"],
		CustomerName:        args["name"],
		CustomerPhone:       args["phone"],
		DeliveryAddress:     args["address"],
		SpecialInstructions: args["notes"],
	})
	if err != nil {
		return renderErr(err)
	}
	return "Order placed:\n" + renderOrder(order)
}

func (r *Router) orderStatus(args map[string]string) string {
	order, err := r.Orders.CheckStatus(args["id"])
	if err != nil {
		return renderErr(err)
	}
	return renderOrder(order)
}

func (r *Router) orderAdvance(args map[string]string) string {
	order, err := r.Orders.AdvanceStatus(args["id"], pizzeriadomain.Status(args["status"]))
	if err != nil {
		return renderErr(err)
	}
	return "Updated:\n" + renderOrder(order)
}

func (r *Router) orderCancel(args map[string]string) string {
	order, err := r.Orders.Cancel(args["id"])
	if err != nil {
		return renderErr(err)
	}
	return "Cancelled:\n" + renderOrder(order)
}

func (r *Router) orders() string {
	orders := r.Orders.ListOrders()
	if len(orders) == 0 {
		return "No orders."
	}
	lines := make([]string, 0, len(orders))
	for _, o := range orders {
		lines = append(lines, renderOrder(o))
	}
	return strings.Join(lines, "\n")
}

func (r *Router) ask(args map[string]string) string {
	var (
		question inquirydomain.Question
		err      error
	)
	switch args["kind"] {
	case "clarifying", "":
		question, err = r.Questions.AskClarifying(args["q"], args["context"], args["required"] == "true")
	case "personal":
		question, err = r.Questions.AskPersonalInfo(args["info"], args["purpose"], args["required"] == "true")
	case "preference":
		question, err = r.Questions.AskPreference(args["pref"], splitList(args["options"]), args["context"])
	case "confirm":
		question, err = r.Questions.AskConfirmation(args["action"], args["details"], args["consequences"])
	default:
		return fmt.Sprintf("Unknown question kind %q. Use clarifying, personal, preference, or confirm.", args["kind"])
	}
	if err != nil {
		return renderErr(err)
	}
	return "Asked:\n" + renderQuestion(question)
}

func (r *Router) respond(args map[string]string) string {
	question, err := r.Questions.Respond(args["id"], args["answer"])
	if err != nil {
		return renderErr(err)
	}
	return "Recorded:\n" + renderQuestion(question)
}

func (r *Router) pending() string {
	pending := r.Questions.ListPending()
	if len(pending) == 0 {
		return "No pending questions."
	}
	lines := make([]string, 0, len(pending))
	for _, q := range pending {
		lines = append(lines, renderQuestion(q))
	}
	return strings.Join(lines, "\n")
}

func (r *Router) email(ctx context.Context, args map[string]string) string {
	id, err := r.Email.Send(ctx, mail.Message{
		To:       splitList(args["to"]),
		Subject:  args["subject"],
		HTMLBody: args["body"],
	})
	if err != nil {
		return renderErr(err)
	}
	return fmt.Sprintf("Email sent (message id %s).", id)
}

func (r *Router) search(ctx context.Context, args map[string]string) string {
	numResults := 0
	if args["n"] != "" {
		n, err := intArg(args, "n")
		if err != nil {
			return renderErr(err)
		}
		numResults = n
	}
	hits, err := r.Search.Search(ctx, args["q"], numResults)
	if err != nil {
		return renderErr(err)
	}
	if len(hits) == 0 {
		return "No results."
	}
	var sb strings.Builder
	for i, hit := range hits {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n", i+1, hit.Title, hit.URL)
		if hit.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", hit.Snippet)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *Router) pdf(args map[string]string) string {
	var pages pdftext.PageRange
	if args["first"] != "" {
		first, err := intArg(args, "first")
		if err != nil {
			return renderErr(err)
		}
		pages.First = first
	}
	if args["last"] != "" {
		last, err := intArg(args, "last")
		if err != nil {
			return renderErr(err)
		}
		pages.Last = last
	}
	extraction, err := r.PDF(args["path"], pages)
	if err != nil {
		return renderErr(err)
	}
	return fmt.Sprintf("Extracted %d page(s) from %s:%s", extraction.Pages, extraction.Path, extraction.Text)
}

// tokenize splits a line on whitespace while keeping double-quoted spans
// together. Quotes are stripped from the output tokens.
func tokenize(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case !inQuotes && (r == ' ' || r == '\t'):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// parseArgs splits key=value tokens into a map. Tokens without '=' are
// ignored; repeated keys keep the last value.
func parseArgs(tokens []string) map[string]string {
	args := make(map[string]string, len(tokens))
	for _, token := range tokens {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key == "" {
			continue
		}
		args[key] = value
	}
	return args
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func intArg(args map[string]string, key string) (int, error) {
	raw, ok := args[key]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%s= is required", key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s= must be a number", key)
	}
	return n, nil
}

// renderErr formats domain errors as "KIND: message" with sorted metadata;
// plain errors pass through as their message.
func renderErr(err error) string {
	var derr *apperrors.Error
	if !errors.As(err, &derr) {
		return errorStyle.Render(err.Error())
	}
	text := fmt.Sprintf("%s: %s", derr.Code.Kind(), derr.Message)
	if len(derr.Metadata) > 0 {
		keys := make([]string, 0, len(derr.Metadata))
		for k := range derr.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%s", k, derr.Metadata[k]))
		}
		text = fmt.Sprintf("%s (%s)", text, strings.Join(pairs, ", "))
	}
	return errorStyle.Render(text)
}

func renderMeeting(m calendardomain.Meeting) string {
	end := ""
	if _, e, err := m.Interval(); err == nil {
		end = e.Format(calendardomain.TimeLayout)
	}
	line := fmt.Sprintf("  %s  %s %s-%s  %s [%s]", m.ID, m.Date, m.Start, end, m.Title, m.Status)
	if len(m.Attendees) > 0 {
		line += "  with " + strings.Join(m.Attendees, ", ")
	}
	return line
}

func renderOrder(o pizzeriadomain.Order) string {
	return fmt.Sprintf("  %s  %dx %s (%s) from %s, %s [%s]",
		o.ID, o.Quantity, o.PizzaName, o.Size, o.RestaurantName, formatCents(o.TotalCents), o.Status)
}

func renderQuestion(q inquirydomain.Question) string {
	line := fmt.Sprintf("  %s  [%s] %s", q.ID, q.Kind, q.Text)
	if len(q.Options) > 0 {
		line += fmt.Sprintf(" (options: %s)", strings.Join(q.Options, ", "))
	}
	if q.Answered {
		line += fmt.Sprintf(" (answered: %s)", q.Answer)
	}
	return line
}

func formatCents(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
