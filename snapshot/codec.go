// Package snapshot encodes and decodes full entity-store snapshots and
// moves them to and from storage. A snapshot round-trips every entity with
// its id, canonical name, type label, variations and occurrence trail, so
// a restored store resolves future mentions exactly like the original.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ntthuylinh144/NER/model"
)

type document struct {
	Entities []entityRecord `json:"entities"`
}

type entityRecord struct {
	ID            *int64             `json:"id"`
	CanonicalName *string            `json:"canonical_name"`
	TypeLabel     *string            `json:"type_label"`
	Variations    []string           `json:"variations"`
	Occurrences   []occurrenceRecord `json:"occurrences"`
}

type occurrenceRecord struct {
	SourceID    *sourceID `json:"source_id"`
	SurfaceForm *string   `json:"surface_form"`
}

// sourceID accepts both JSON strings and JSON numbers, since archives
// written by older tooling carry integer source ids.
type sourceID string

func (s *sourceID) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*s = sourceID(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return fmt.Errorf("source_id must be a string or number")
	}
	*s = sourceID(asNumber.String())
	return nil
}

// Encode serializes entities into the snapshot document format.
func Encode(entities []*model.Entity) ([]byte, error) {
	doc := struct {
		Entities []*model.Entity `json:"entities"`
	}{Entities: entities}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses and validates a snapshot document. Any missing or
// malformed required field fails the whole decode with
// model.ErrCorruptedSnapshot; no partial result is returned.
func Decode(data []byte) ([]*model.Entity, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCorruptedSnapshot, err)
	}
	if doc.Entities == nil {
		return nil, fmt.Errorf("%w: missing entities field", model.ErrCorruptedSnapshot)
	}

	entities := make([]*model.Entity, 0, len(doc.Entities))
	for i, record := range doc.Entities {
		entity, err := record.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: entity %d: %v", model.ErrCorruptedSnapshot, i, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (r entityRecord) toEntity() (*model.Entity, error) {
	if r.ID == nil {
		return nil, fmt.Errorf("missing id")
	}
	if *r.ID <= 0 {
		return nil, fmt.Errorf("id %d must be positive", *r.ID)
	}
	if r.CanonicalName == nil || strings.TrimSpace(*r.CanonicalName) == "" {
		return nil, fmt.Errorf("missing canonical_name")
	}
	if r.TypeLabel == nil || strings.TrimSpace(*r.TypeLabel) == "" {
		return nil, fmt.Errorf("missing type_label")
	}
	if len(r.Variations) == 0 {
		return nil, fmt.Errorf("missing variations")
	}
	if len(r.Occurrences) == 0 {
		return nil, fmt.Errorf("missing occurrences")
	}

	entity := &model.Entity{
		ID:            *r.ID,
		CanonicalName: *r.CanonicalName,
		TypeLabel:     *r.TypeLabel,
		Variations:    append([]string(nil), r.Variations...),
	}
	for j, occ := range r.Occurrences {
		if occ.SourceID == nil {
			return nil, fmt.Errorf("occurrence %d: missing source_id", j)
		}
		if occ.SurfaceForm == nil || *occ.SurfaceForm == "" {
			return nil, fmt.Errorf("occurrence %d: missing surface_form", j)
		}
		entity.Occurrences = append(entity.Occurrences, model.Occurrence{
			SourceID:    string(*occ.SourceID),
			SurfaceForm: *occ.SurfaceForm,
		})
	}
	return entity, nil
}
