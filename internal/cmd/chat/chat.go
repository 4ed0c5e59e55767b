// Package chat parses chat command flags and runs the interactive terminal
// assistant.
package chat

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/concierge-ai/concierge/internal/mail"
	"github.com/concierge-ai/concierge/internal/pdftext"
	"github.com/concierge-ai/concierge/internal/websearch"

	calendarservice "github.com/concierge-ai/concierge/internal/calendar/service"
	inquiryservice "github.com/concierge-ai/concierge/internal/inquiry/service"
	"github.com/concierge-ai/concierge/internal/pizzeria/catalog"
	pizzeriaservice "github.com/concierge-ai/concierge/internal/pizzeria/service"
	"github.com/concierge-ai/concierge/internal/platform/config"
	"github.com/concierge-ai/concierge/internal/platform/otel"
	chatservice "github.com/concierge-ai/concierge/internal/services/chat"
)

// Config holds chat command configuration.
type Config struct {
	ResendAPIKey string `env:"CONCIERGE_RESEND_API_KEY"`
	SearchURL    string `env:"CONCIERGE_SEARCH_URL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the interactive session on stdin/stdout and blocks until it
// ends.
func Run(ctx context.Context, cfg Config) error {
	return run(ctx, cfg, os.Stdin, os.Stdout)
}

func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	shutdown, err := otel.Setup(ctx, "chat")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	router, err := buildRouter(cfg)
	if err != nil {
		return err
	}

	session := &chatservice.Session{Router: router, In: in, Out: out}
	return session.Run(ctx)
}

// buildRouter wires the in-process registries and collaborator clients the
// command grammar dispatches to.
func buildRouter(cfg Config) (*chatservice.Router, error) {
	c, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var searchOpts []websearch.Option
	if cfg.SearchURL != "" {
		searchOpts = append(searchOpts, websearch.WithBaseURL(cfg.SearchURL))
	}

	return &chatservice.Router{
		Meetings:  calendarservice.NewRegistry(),
		Orders:    pizzeriaservice.NewRegistry(c),
		Questions: inquiryservice.NewRegistry(),
		Email:     mail.NewClient(cfg.ResendAPIKey),
		Search:    websearch.NewClient(searchOpts...),
		PDF:       pdftext.Extract,
	}, nil
}
