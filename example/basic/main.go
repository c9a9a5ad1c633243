package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	ner "github.com/ntthuylinh144/NER"
	"github.com/ntthuylinh144/NER/model"
)

// Demonstrates the link-or-create decision on a small stream of mention
// events, then snapshots the store and restores it into a fresh resolver.
func main() {
	resolver, err := ner.NewResolver(nil)
	if err != nil {
		log.Fatalf("Failed to create resolver: %v", err)
	}

	events := []model.Mention{
		{Text: "control box", Label: "COMPONENT", SourceID: "s1"},
		{Text: "Control Box", Label: "COMPONENT", SourceID: "s2"},
		{Text: "controller box", Label: "COMPONENT", SourceID: "s3"},
		{Text: "teach pendant", Label: "COMPONENT", SourceID: "s4"},
		{Text: "control box", Label: "TOOL", SourceID: "s5"},
	}

	for _, event := range events {
		entity, isNew, err := resolver.Resolve(event)
		if err != nil {
			log.Fatalf("Failed to resolve %q: %v", event.Text, err)
		}
		if isNew {
			fmt.Printf("NEW:    %q [%s] -> entity %d\n", event.Text, event.Label, entity.ID)
		} else {
			fmt.Printf("LINKED: %q [%s] -> entity %d (%q, seen %dx)\n",
				event.Text, event.Label, entity.ID, entity.CanonicalName, entity.OccurrenceCount())
		}
	}

	fmt.Println()
	if err := resolver.Reporter.WriteSummary(os.Stdout); err != nil {
		log.Fatalf("Failed to write summary: %v", err)
	}

	fmt.Println()
	fmt.Println("Vocabulary for the next extraction round:")
	for _, name := range resolver.Context() {
		fmt.Printf("  %s\n", name)
	}

	// Snapshot round trip: the restored resolver behaves identically.
	path := filepath.Join(os.TempDir(), "entity_store.json")
	if err := resolver.SaveSnapshot(path); err != nil {
		log.Fatalf("Failed to save snapshot: %v", err)
	}

	restored, err := ner.NewResolver(nil)
	if err != nil {
		log.Fatalf("Failed to create resolver: %v", err)
	}
	if err := restored.LoadSnapshot(path); err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	entity, isNew, err := restored.Resolve(model.Mention{Text: "CONTROL-BOX", Label: "COMPONENT", SourceID: "s6"})
	if err != nil {
		log.Fatalf("Failed to resolve: %v", err)
	}
	fmt.Printf("\nAfter restore: %q links to entity %d (new=%v)\n", "CONTROL-BOX", entity.ID, isNew)
}
