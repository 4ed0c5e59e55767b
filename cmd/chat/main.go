package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	chatcmd "github.com/concierge-ai/concierge/internal/cmd/chat"
)

// main starts the interactive terminal assistant.
func main() {
	// Missing .env files are fine; the environment still applies.
	_ = godotenv.Load()

	cfg, err := chatcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CHAT] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := chatcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("chat session failed: %v", err)
	}
}
