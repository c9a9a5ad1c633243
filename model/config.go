package model

import "fmt"

// ResolverConfig configures an entity resolver.
type ResolverConfig struct {
	// SimilarityThreshold is the minimum score at which a mention links to
	// an existing entity instead of creating a new one.
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// MaxContextEntities caps the vocabulary returned for priming external
	// extraction. Zero means no cap.
	MaxContextEntities int `json:"max_context_entities,omitempty"`
}

// DefaultResolverConfig returns a sensible default configuration
func DefaultResolverConfig() *ResolverConfig {
	return &ResolverConfig{
		SimilarityThreshold: 0.85,
		MaxContextEntities:  50,
	}
}

// Validate checks that the configuration is usable.
func (c *ResolverConfig) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold %v out of range [0,1]", c.SimilarityThreshold)
	}
	if c.MaxContextEntities < 0 {
		return fmt.Errorf("max context entities must not be negative")
	}
	return nil
}
