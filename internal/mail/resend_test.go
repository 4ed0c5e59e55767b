package mail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
)

func TestSendValidation(t *testing.T) {
	client := NewClient("key")

	cases := []struct {
		name string
		msg  Message
	}{
		{"no recipients", Message{Subject: "s", HTMLBody: "b"}},
		{"no subject", Message{To: []string{"a@b.c"}, HTMLBody: "b"}},
		{"no body", Message{To: []string{"a@b.c"}, Subject: "s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Send(context.Background(), tc.msg)
			if !errors.Is(err, apperrors.New(apperrors.CodeMailMissingField, "")) {
				t.Fatalf("expected missing field error, got %v", err)
			}
		})
	}
}

func TestSendWithoutAPIKey(t *testing.T) {
	client := NewClient("")
	_, err := client.Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "s", HTMLBody: "b"})
	if !errors.Is(err, apperrors.New(apperrors.CodeMailMissingAPIKey, "")) {
		t.Fatalf("expected missing api key error, got %v", err)
	}
}

func TestSendSingleRecipientCollapsesToString(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "msg-1"})
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	id, err := client.Send(context.Background(), Message{
		To:       []string{"a@b.c"},
		Subject:  "hello",
		HTMLBody: "hi<br>there",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "msg-1" {
		t.Fatalf("expected id msg-1, got %q", id)
	}

	if _, ok := got["to"].(string); !ok {
		t.Fatalf("expected single recipient as string, got %T", got["to"])
	}
	if got["from"] != DefaultFrom {
		t.Fatalf("expected default from, got %v", got["from"])
	}
	if got["text"] != "hi\nthere" {
		t.Fatalf("expected derived text fallback, got %q", got["text"])
	}
}

func TestSendMultipleRecipientsStayArray(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{"id": "msg-2"})
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	if _, err := client.Send(context.Background(), Message{
		To:       []string{"a@b.c", "d@e.f"},
		Subject:  "hello",
		HTMLBody: "body",
	}); err != nil {
		t.Fatalf("send: %v", err)
	}

	if _, ok := got["to"].([]any); !ok {
		t.Fatalf("expected recipient array, got %T", got["to"])
	}
}

func TestSendUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	_, err := client.Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "s", HTMLBody: "b"})
	if !errors.Is(err, apperrors.New(apperrors.CodeMailUpstream, "")) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	var derr *apperrors.Error
	if !errors.As(err, &derr) || derr.Metadata["body"] == "" {
		t.Fatalf("expected body excerpt in metadata, got %+v", derr)
	}
}
