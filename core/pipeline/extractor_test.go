package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMentionLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"B-PER", "PER"},
		{"I-PER", "PER"},
		{"B-ORG", "ORG"},
		{"LOC", "LOC"},
		{"MISC", "MISC"},
		{"", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, normalizeMentionLabel(test.in))
	}
}
