// nerstore is a small CLI around the entity resolver: it feeds mention
// events from JSONL files into a snapshot-backed store and prints the
// derived reports.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	ner "github.com/ntthuylinh144/NER"
	"github.com/ntthuylinh144/NER/model"
)

var (
	snapshotPath string
	threshold    float64
	maxContext   int
)

func main() {
	root := &cobra.Command{
		Use:   "nerstore",
		Short: "Online entity resolution over mention events",
		Long: `nerstore maintains a growing, deduplicated registry of entities.
Each mention event either links to a known entity of the same type label
or creates a new one, decided by fuzzy similarity against a threshold.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&snapshotPath, "snapshot", "results/entity_store.json", "snapshot file backing the store")
	root.PersistentFlags().Float64Var(&threshold, "threshold", 0.85, "similarity threshold for linking")

	contextCmd := &cobra.Command{
		Use:   "context",
		Short: "Print the known vocabulary, most frequent first",
		RunE:  runContext,
	}
	contextCmd.Flags().IntVar(&maxContext, "max", 50, "maximum number of entities")

	root.AddCommand(
		&cobra.Command{
			Use:   "process [events.jsonl]",
			Short: "Resolve mention events from a JSONL file",
			Args:  cobra.ExactArgs(1),
			RunE:  runProcess,
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Print store statistics",
			RunE:  runStats,
		},
		contextCmd,
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// openResolver creates a resolver and loads the snapshot file if present.
func openResolver() (*ner.Resolver, error) {
	resolver, err := ner.NewResolver(&model.ResolverConfig{
		SimilarityThreshold: threshold,
		MaxContextEntities:  maxContext,
	})
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(snapshotPath); err == nil {
		if err := resolver.LoadSnapshot(snapshotPath); err != nil {
			return nil, err
		}
	}
	return resolver, nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	resolver, err := openResolver()
	if err != nil {
		return err
	}

	events, err := readEvents(args[0])
	if err != nil {
		return err
	}

	outcomes, err := resolver.Ingestor.ProcessEvents(events)
	if err != nil {
		return err
	}

	for _, outcome := range outcomes {
		verb := "linked to"
		if outcome.IsNew {
			verb = "created"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %q [%s] -> %s entity %d (%q)\n",
			outcome.Mention.SourceID, outcome.Mention.Text, outcome.Mention.Label,
			verb, outcome.EntityID, outcome.CanonicalName)
	}

	if err := resolver.SaveSnapshot(snapshotPath); err != nil {
		return err
	}

	stats := resolver.Statistics()
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d events: %d new, %d linked, %d entities total\n",
		len(outcomes), countNew(outcomes), len(outcomes)-countNew(outcomes), stats.TotalEntities)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	resolver, err := openResolver()
	if err != nil {
		return err
	}
	return resolver.Reporter.WriteSummary(cmd.OutOrStdout())
}

func runContext(cmd *cobra.Command, args []string) error {
	resolver, err := openResolver()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resolver.Reporter.ContextBlock(maxContext))
	return nil
}

// eventRecord tolerates integer source ids in event files; the resolver
// treats source ids as opaque strings.
type eventRecord struct {
	Text     string     `json:"mention_text"`
	Label    string     `json:"type_label"`
	SourceID flexibleID `json:"source_id"`
}

// flexibleID accepts a JSON string or number.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = flexibleID(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return fmt.Errorf("source_id must be a string or number")
	}
	*f = flexibleID(asNumber.String())
	return nil
}

// readEvents parses one JSON mention event per line, skipping blanks.
func readEvents(path string) ([]model.Mention, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer file.Close()

	var events []model.Mention
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var record eventRecord
		if err := json.Unmarshal([]byte(text), &record); err != nil {
			return nil, fmt.Errorf("parse event on line %d: %w", line, err)
		}

		events = append(events, model.Mention{
			Text:     record.Text,
			Label:    record.Label,
			SourceID: string(record.SourceID),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}
	return events, nil
}

func countNew(outcomes []model.Resolution) int {
	count := 0
	for _, outcome := range outcomes {
		if outcome.IsNew {
			count++
		}
	}
	return count
}
