package main

import (
	"context"
	"fmt"
	"log"
	"os"

	ner "github.com/ntthuylinh144/NER"
	"github.com/ntthuylinh144/NER/helper"
)

const sampleText = `Angela Merkel met Emmanuel Macron in Berlin on Tuesday.
Macron later travelled to Paris, where the European Commission was holding
a summit. Merkel's office confirmed the meeting with the Commission.`

// Demonstrates the full collaboration: a NER model extracts mentions from
// raw text, the resolver deduplicates them into canonical entities, and
// the resulting store is archived in Postgres.
func main() {
	// Start a test PostgreSQL container for the snapshot archive
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	resolver, err := ner.NewResolver(nil)
	if err != nil {
		log.Fatalf("Failed to create resolver: %v", err)
	}
	if err := resolver.WithSnapshotArchive(dbConfig); err != nil {
		log.Fatalf("Failed to attach snapshot archive: %v", err)
	}
	defer resolver.Close()

	// distilbert-NER via hugot; downloads the model on first run
	if err := resolver.UseDefaultExtractor(); err != nil {
		log.Fatalf("Failed to set up extractor: %v", err)
	}

	result, err := resolver.ProcessText(sampleText, "doc_001")
	if err != nil {
		log.Fatalf("Failed to process text: %v", err)
	}

	for _, outcome := range result.Processed {
		verb := "linked to"
		if outcome.IsNew {
			verb = "created"
		}
		fmt.Printf("%q [%s] %s entity %d (%q)\n",
			outcome.Mention.Text, outcome.Mention.Label, verb,
			outcome.EntityID, outcome.CanonicalName)
	}

	fmt.Println()
	if err := resolver.Reporter.WriteSummary(os.Stdout); err != nil {
		log.Fatalf("Failed to write summary: %v", err)
	}

	record, err := resolver.ArchiveSnapshot("pipeline_example")
	if err != nil {
		log.Fatalf("Failed to archive snapshot: %v", err)
	}
	fmt.Printf("\nArchived snapshot %s with %d entities\n", record.RID, record.EntityCount)
}
