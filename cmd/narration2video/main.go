package main

import (
	"log"

	"github.com/ivlev/narration2video/internal/cli"
	"github.com/ivlev/narration2video/internal/director"
	"github.com/ivlev/narration2video/internal/system"
)

func main() {
	// Working directories for timeline input and cue sheet output
	if err := system.EnsureDirs("input/timeline", director.DefaultScenarioDir); err != nil {
		log.Printf("[!] Failed to create working directories: %v", err)
	}

	cli.Execute()
}
