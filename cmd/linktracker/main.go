package main

import (
	"log"

	"github.com/linktracker/linktracker/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ linktracker failed to start: %v", err)
	}
}
