package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMentionValidate(t *testing.T) {
	t.Run("Valid call Validate", func(t *testing.T) {
		m := Mention{Text: "control box", Label: "COMPONENT", SourceID: "s1"}
		assert.NoError(t, m.Validate())
	})

	t.Run("Empty source id is allowed", func(t *testing.T) {
		m := Mention{Text: "control box", Label: "COMPONENT"}
		assert.NoError(t, m.Validate(), "Expected the source id to be opaque and optional")
	})

	t.Run("Blank text is rejected", func(t *testing.T) {
		m := Mention{Text: "   ", Label: "COMPONENT", SourceID: "s1"}
		err := m.Validate()
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "mention text is blank")
	})

	t.Run("Blank label is rejected", func(t *testing.T) {
		m := Mention{Text: "control box", Label: "\t\n", SourceID: "s1"}
		err := m.Validate()
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "type label is blank")
	})
}
