package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	trialkit "github.com/goliatone/go-trialkit"
	pkgdescriptor "github.com/goliatone/go-trialkit/pkg/descriptor"
)

// Snapshots the parsed form of a descriptor file so fixture changes can be
// reviewed as the trial the parser actually produces.
func main() {
	var (
		descriptorPath = flag.String("descriptor", "examples/fixtures/allocation.yaml", "descriptor file to parse")
		outputPath     = flag.String("output", "-", "output path for the parsed trial ('-' for stdout)")
	)
	flag.Parse()

	ctx := context.Background()

	loader := trialkit.NewLoader()
	parser := trialkit.NewParser()

	doc, err := loader.Load(ctx, pkgdescriptor.SourceFromFile(*descriptorPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load descriptor: %v\n", err)
		os.Exit(1)
	}

	descriptor, err := parser.Parse(ctx, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse descriptor: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(descriptor, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to serialize trial: %v\n", err)
		os.Exit(1)
	}

	if *outputPath == "-" {
		fmt.Println(string(payload))
		return
	}

	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote trial snapshot to %s\n", *outputPath)
}
