// Package report derives human-readable views from an entity store's read
// surface: frequency rankings, per-label distributions and a compact
// vocabulary block for priming external extraction.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/ntthuylinh144/NER/core/resolution"
)

// EntitySummary is one row of a frequency ranking.
type EntitySummary struct {
	ID            int64    `json:"id"`
	CanonicalName string   `json:"canonical_name"`
	TypeLabel     string   `json:"type_label"`
	Occurrences   int      `json:"occurrences"`
	Variations    []string `json:"variations"`
}

// LabelStats aggregates the entities of one type label.
type LabelStats struct {
	Entities         int `json:"entities"`
	TotalOccurrences int `json:"total_occurrences"`
}

// Reporter derives reports from a store. It only uses the store's
// read operations and never mutates state.
type Reporter struct {
	store *resolution.Store
}

// NewReporter creates a reporter over the given store.
func NewReporter(store *resolution.Store) *Reporter {
	return &Reporter{store: store}
}

// TopEntities returns the n most frequently seen entities, ties broken by
// ascending id. n <= 0 returns all entities.
func (r *Reporter) TopEntities(n int) []EntitySummary {
	entities, _ := r.store.Export()
	sort.SliceStable(entities, func(i, j int) bool {
		if entities[i].OccurrenceCount() != entities[j].OccurrenceCount() {
			return entities[i].OccurrenceCount() > entities[j].OccurrenceCount()
		}
		return entities[i].ID < entities[j].ID
	})
	if n > 0 && len(entities) > n {
		entities = entities[:n]
	}

	summaries := make([]EntitySummary, 0, len(entities))
	for _, entity := range entities {
		summaries = append(summaries, EntitySummary{
			ID:            entity.ID,
			CanonicalName: entity.CanonicalName,
			TypeLabel:     entity.TypeLabel,
			Occurrences:   entity.OccurrenceCount(),
			Variations:    entity.Variations,
		})
	}
	return summaries
}

// LabelDistribution returns entity and occurrence totals per type label.
func (r *Reporter) LabelDistribution() map[string]LabelStats {
	entities, _ := r.store.Export()
	distribution := make(map[string]LabelStats)
	for _, entity := range entities {
		stats := distribution[entity.TypeLabel]
		stats.Entities++
		stats.TotalOccurrences += entity.OccurrenceCount()
		distribution[entity.TypeLabel] = stats
	}
	return distribution
}

// ContextBlock formats up to max entities as a compact vocabulary block
// for an extraction prompt, most frequent first. At most three variations
// are shown per entity.
func (r *Reporter) ContextBlock(max int) string {
	var lines []string
	for _, entity := range r.TopEntities(max) {
		variations := entity.Variations
		if len(variations) > 3 {
			variations = variations[:3]
		}
		lines = append(lines, fmt.Sprintf(
			"%s (%s) [seen %dx] {%s}",
			entity.CanonicalName,
			entity.TypeLabel,
			entity.Occurrences,
			strings.Join(variations, ", "),
		))
	}
	return strings.Join(lines, "\n")
}

// WriteSummary writes a colored, human-readable summary of the store.
func (r *Reporter) WriteSummary(w io.Writer) error {
	stats := r.store.Statistics()

	title := color.New(color.Bold, color.FgCyan)
	label := color.New(color.FgBlue)

	if _, err := title.Fprintln(w, "ENTITY STORE SUMMARY"); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %d\n", label.Sprint("Total unique entities:"), stats.TotalEntities)
	fmt.Fprintf(w, "%s %d\n", label.Sprint("Total mentions:"), stats.TotalMentions)
	fmt.Fprintf(w, "%s %d new, %d linked\n", label.Sprint("Resolutions:"), stats.NewCount, stats.LinkedCount)

	fmt.Fprintln(w)
	fmt.Fprintln(w, label.Sprint("Entities by label:"))
	distribution := r.LabelDistribution()
	labels := make([]string, 0, len(distribution))
	for typeLabel := range distribution {
		labels = append(labels, typeLabel)
	}
	sort.Strings(labels)
	for _, typeLabel := range labels {
		stats := distribution[typeLabel]
		fmt.Fprintf(w, "  %s: %d unique (%d total occurrences)\n", typeLabel, stats.Entities, stats.TotalOccurrences)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, label.Sprint("Top 10 most frequent entities:"))
	for i, entity := range r.TopEntities(10) {
		fmt.Fprintf(w, "  %d. [%s] %s (%d times)\n", i+1, entity.TypeLabel, entity.CanonicalName, entity.Occurrences)
	}

	return nil
}
