package chat

import (
	"context"
	"reflect"
	"strings"
	"testing"

	calendarservice "github.com/concierge-ai/concierge/internal/calendar/service"
	inquiryservice "github.com/concierge-ai/concierge/internal/inquiry/service"
	"github.com/concierge-ai/concierge/internal/mail"
	"github.com/concierge-ai/concierge/internal/pdftext"
	"github.com/concierge-ai/concierge/internal/pizzeria/catalog"
	pizzeriaservice "github.com/concierge-ai/concierge/internal/pizzeria/service"
	"github.com/concierge-ai/concierge/internal/websearch"
)

type fakeSender struct {
	lastMsg mail.Message
	id      string
	err     error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) (string, error) {
	f.lastMsg = msg
	return f.id, f.err
}

type fakeSearcher struct {
	hits []websearch.Result
	err  error
}

func (f *fakeSearcher) Search(context.Context, string, int) ([]websearch.Result, error) {
	return f.hits, f.err
}

func testRouter(t *testing.T) *Router {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return &Router{
		Meetings:  calendarservice.NewRegistry(),
		Orders:    pizzeriaservice.NewRegistry(c),
		Questions: inquiryservice.NewRegistry(),
		Email:     &fakeSender{id: "msg-1"},
		Search:    &fakeSearcher{},
		PDF: func(path string, _ pdftext.PageRange) (pdftext.Extraction, error) {
			return pdftext.Extraction{Path: path, Pages: 1, Text: "\n--- Page 1 ---\nhello"}, nil
		},
	}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"/menu", []string{"/menu"}},
		{`/schedule title="Team sync" date=2026-09-01`, []string{"/schedule", "title=Team sync", "date=2026-09-01"}},
		{`  spaced   out  `, []string{"spaced", "out"}},
	}
	for _, tc := range cases {
		if got := tokenize(tc.line); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestDispatchScheduleAndConflict(t *testing.T) {
	router := testRouter(t)
	ctx := context.Background()

	out, quit := router.Dispatch(ctx, `/schedule title="Team sync" date=2026-09-01 time=14:00 duration=60`)
	if quit {
		t.Fatal("schedule must not end the session")
	}
	if !strings.Contains(out, "Scheduled:") || !strings.Contains(out, "Team sync") {
		t.Fatalf("unexpected schedule output: %q", out)
	}

	out, _ = router.Dispatch(ctx, `/schedule title=Overlap date=2026-09-01 time=14:30 duration=30`)
	if !strings.Contains(out, "CONFLICT:") {
		t.Fatalf("expected conflict rendering, got %q", out)
	}

	out, _ = router.Dispatch(ctx, "/meetings date=2026-09-01")
	if !strings.Contains(out, "Team sync") {
		t.Fatalf("expected listing to include the meeting, got %q", out)
	}
}

func TestDispatchOrderFlow(t *testing.T) {
	router := testRouter(t)
	ctx := context.Background()

	out, _ := router.Dispatch(ctx, "/menu")
	if !strings.Contains(out, "margherita") {
		t.Fatalf("expected menu to list margherita, got %q", out)
	}

	out, _ = router.Dispatch(ctx, "/order pizza=margherita size=large qty=2 restaurant=dominos")
	if !strings.Contains(out, "Order placed:") || !strings.Contains(out, "$34.17") {
		t.Fatalf("unexpected order output: %q", out)
	}

	orders := router.Orders.ListOrders()
	if len(orders) != 1 {
		t.Fatalf("expected one stored order, got %d", len(orders))
	}
	id := orders[0].ID

	out, _ = router.Dispatch(ctx, "/order-advance id="+id+" status=preparing")
	if !strings.Contains(out, "[preparing]") {
		t.Fatalf("expected status advance, got %q", out)
	}

	out, _ = router.Dispatch(ctx, "/order-advance id="+id+" status=delivered")
	if !strings.Contains(out, "VALIDATION:") {
		t.Fatalf("expected invalid transition rendering, got %q", out)
	}
}

func TestDispatchQuestionFlow(t *testing.T) {
	router := testRouter(t)
	ctx := context.Background()

	out, _ := router.Dispatch(ctx, `/ask kind=preference pref=crust options=thin,thick`)
	if !strings.Contains(out, "Asked:") || !strings.Contains(out, "thin, thick") {
		t.Fatalf("unexpected ask output: %q", out)
	}
	pending := router.Questions.ListPending()
	if len(pending) != 1 {
		t.Fatalf("expected one pending question, got %d", len(pending))
	}
	id := pending[0].ID

	out, _ = router.Dispatch(ctx, "/respond id="+id+" answer=stuffed")
	if !strings.Contains(out, "VALIDATION:") {
		t.Fatalf("expected option rejection, got %q", out)
	}

	out, _ = router.Dispatch(ctx, "/respond id="+id+" answer=thin")
	if !strings.Contains(out, "answered: thin") {
		t.Fatalf("expected recorded answer, got %q", out)
	}

	out, _ = router.Dispatch(ctx, "/pending")
	if out != "No pending questions." {
		t.Fatalf("expected empty pending list, got %q", out)
	}
}

func TestDispatchEmail(t *testing.T) {
	router := testRouter(t)
	sender := router.Email.(*fakeSender)

	out, _ := router.Dispatch(context.Background(), `/email to=a@b.c,d@e.f subject=Hi body="<p>hello</p>"`)
	if !strings.Contains(out, "msg-1") {
		t.Fatalf("expected message id in output, got %q", out)
	}
	if len(sender.lastMsg.To) != 2 || sender.lastMsg.Subject != "Hi" {
		t.Fatalf("unexpected message: %+v", sender.lastMsg)
	}
}

func TestDispatchSearch(t *testing.T) {
	router := testRouter(t)
	router.Search.(*fakeSearcher).hits = []websearch.Result{
		{Title: "First", URL: "https://example.com", Snippet: "snippet"},
	}

	out, _ := router.Dispatch(context.Background(), `/search q="go testing"`)
	if !strings.Contains(out, "1. First") || !strings.Contains(out, "https://example.com") {
		t.Fatalf("unexpected search output: %q", out)
	}
}

func TestDispatchPDF(t *testing.T) {
	router := testRouter(t)
	out, _ := router.Dispatch(context.Background(), "/pdf path=doc.pdf first=1 last=1")
	if !strings.Contains(out, "--- Page 1 ---") {
		t.Fatalf("unexpected pdf output: %q", out)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	router := testRouter(t)
	out, quit := router.Dispatch(context.Background(), "/teleport")
	if quit {
		t.Fatal("unknown commands must not end the session")
	}
	if !strings.Contains(out, "/help") {
		t.Fatalf("expected help hint, got %q", out)
	}
}

func TestDispatchQuit(t *testing.T) {
	router := testRouter(t)
	if _, quit := router.Dispatch(context.Background(), "/quit"); !quit {
		t.Fatal("expected /quit to end the session")
	}
}
