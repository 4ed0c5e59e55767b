// Package mcp parses MCP command flags and runs the assistant's tool server
// on stdio or HTTP.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
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
	mcpservice "github.com/concierge-ai/concierge/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Transport    string `env:"CONCIERGE_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr     string `env:"CONCIERGE_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	ResendAPIKey string `env:"CONCIERGE_RESEND_API_KEY"`
	SearchURL    string `env:"CONCIERGE_SEARCH_URL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP tool server and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
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

	deps, err := buildDeps(cfg)
	if err != nil {
		return err
	}

	return mcpservice.Run(ctx, mcpservice.Config{
		Transport: mcpservice.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	}, deps)
}

// buildDeps wires the in-process registries and collaborator clients the
// tool handlers bind to.
func buildDeps(cfg Config) (mcpservice.Deps, error) {
	c, err := catalog.Load()
	if err != nil {
		return mcpservice.Deps{}, fmt.Errorf("load catalog: %w", err)
	}

	var searchOpts []websearch.Option
	if cfg.SearchURL != "" {
		searchOpts = append(searchOpts, websearch.WithBaseURL(cfg.SearchURL))
	}

	return mcpservice.Deps{
		Meetings:  calendarservice.NewRegistry(),
		Orders:    pizzeriaservice.NewRegistry(c),
		Questions: inquiryservice.NewRegistry(),
		Email:     mail.NewClient(cfg.ResendAPIKey),
		Search:    websearch.NewClient(searchOpts...),
		PDF:       pdftext.Extract,
	}, nil
}
