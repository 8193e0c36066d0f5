// Package main implements the entry point for the drill API server, which
// tracks spaced repetition review schedules for elementary-math practice
// problems and serves the derived analytics.
package main

import (
	"context"
	"log"
)

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
