package pipeline

import (
	"fmt"

	"github.com/ntthuylinh144/NER/core/resolution"
	"github.com/ntthuylinh144/NER/helper"
	"github.com/ntthuylinh144/NER/model"
)

// ExtractedMention is a mention found in a source text before a source id
// is attached: the surface form and its category label.
type ExtractedMention struct {
	Text  string
	Label string
}

// MentionExtractFunc extracts entity mentions from text. Extraction is a
// collaborator concern; implementations only ever hand the resolver the
// mention triple and never touch store state themselves.
type MentionExtractFunc func(text string) ([]ExtractedMention, error)

// Ingestor feeds extracted mentions into a resolution store in arrival
// order, collecting the per-mention outcomes.
type Ingestor struct {
	Extractor MentionExtractFunc // Optional, required only for ProcessText
	store     *resolution.Store
}

// NewIngestor creates an ingestor writing into the given store.
func NewIngestor(store *resolution.Store) *Ingestor {
	return &Ingestor{store: store}
}

// SetExtractor sets the mention extraction function used by ProcessText.
func (in *Ingestor) SetExtractor(extractor MentionExtractFunc) {
	in.Extractor = extractor
}

// ProcessText extracts mentions from one source text and resolves them.
func (in *Ingestor) ProcessText(text string, sourceID string) (*model.BatchResult, error) {
	if in.Extractor == nil {
		return nil, helper.NewError("process text", fmt.Errorf("extractor not set, use SetExtractor() first"))
	}

	extracted, err := in.Extractor(text)
	if err != nil {
		return nil, err
	}
	return in.ProcessMentions(extracted, sourceID)
}

// ProcessMentions resolves pre-extracted mentions from one source text.
// The first invalid mention aborts the batch; outcomes up to that point
// are already applied, matching the one-mention-per-call contract of the
// store.
func (in *Ingestor) ProcessMentions(mentions []ExtractedMention, sourceID string) (*model.BatchResult, error) {
	result := &model.BatchResult{SourceID: sourceID}

	for _, extracted := range mentions {
		mention := model.Mention{
			Text:     extracted.Text,
			Label:    extracted.Label,
			SourceID: sourceID,
		}
		entity, isNew, err := in.store.Add(mention)
		if err != nil {
			return result, err
		}

		result.Processed = append(result.Processed, model.Resolution{
			Mention:       mention,
			EntityID:      entity.ID,
			CanonicalName: entity.CanonicalName,
			IsNew:         isNew,
			Occurrences:   entity.OccurrenceCount(),
		})
		if isNew {
			result.NewCount++
		} else {
			result.LinkedCount++
		}
	}

	return result, nil
}

// ProcessEvents resolves mention events that already carry their source
// ids, e.g. read from an event file. The first invalid event aborts the
// run.
func (in *Ingestor) ProcessEvents(events []model.Mention) ([]model.Resolution, error) {
	var outcomes []model.Resolution
	for _, event := range events {
		entity, isNew, err := in.store.Add(event)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, model.Resolution{
			Mention:       event,
			EntityID:      entity.ID,
			CanonicalName: entity.CanonicalName,
			IsNew:         isNew,
			Occurrences:   entity.OccurrenceCount(),
		})
	}
	return outcomes, nil
}
