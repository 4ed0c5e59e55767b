package chat

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	t.Setenv("CONCIERGE_RESEND_API_KEY", "key")

	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ResendAPIKey != "key" {
		t.Fatalf("expected env api key, got %q", cfg.ResendAPIKey)
	}
}

func TestBuildRouter(t *testing.T) {
	router, err := buildRouter(Config{})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	if router.Meetings == nil || router.Orders == nil || router.Questions == nil {
		t.Fatal("expected all registries to be wired")
	}
}

func TestRunSession(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), Config{}, strings.NewReader("/menu\n/quit\n"), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "margherita") {
		t.Fatalf("expected menu output, got %q", out.String())
	}
}
