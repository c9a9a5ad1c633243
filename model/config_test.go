package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResolverConfig(t *testing.T) {
	config := DefaultResolverConfig()
	require.NotNil(t, config)
	assert.Equal(t, 0.85, config.SimilarityThreshold)
	assert.Equal(t, 50, config.MaxContextEntities)
	assert.NoError(t, config.Validate())
}

func TestResolverConfigValidate(t *testing.T) {
	t.Run("Threshold bounds are inclusive", func(t *testing.T) {
		assert.NoError(t, (&ResolverConfig{SimilarityThreshold: 0}).Validate())
		assert.NoError(t, (&ResolverConfig{SimilarityThreshold: 1}).Validate())
	})

	t.Run("Threshold out of range is rejected", func(t *testing.T) {
		err := (&ResolverConfig{SimilarityThreshold: 1.2}).Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")

		assert.Error(t, (&ResolverConfig{SimilarityThreshold: -0.1}).Validate())
	})

	t.Run("Negative context cap is rejected", func(t *testing.T) {
		err := (&ResolverConfig{SimilarityThreshold: 0.85, MaxContextEntities: -1}).Validate()
		assert.Error(t, err)
	})
}
