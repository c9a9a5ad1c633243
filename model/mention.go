package model

import (
	"fmt"
	"strings"
)

// Mention is one extracted occurrence of an entity's text in a source
// document. It is the only data exchanged between extraction collaborators
// and the resolver core; SourceID is opaque and never interpreted.
type Mention struct {
	Text     string `json:"mention_text"`
	Label    string `json:"type_label"`
	SourceID string `json:"source_id"`
}

// Validate checks the mention shape at the ingestion boundary. Text and
// Label must be non-blank after trimming.
func (m Mention) Validate() error {
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("%w: mention text is blank", ErrInvalidInput)
	}
	if strings.TrimSpace(m.Label) == "" {
		return fmt.Errorf("%w: type label is blank", ErrInvalidInput)
	}
	return nil
}
