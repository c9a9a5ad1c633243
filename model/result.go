package model

// Resolution is the outcome of resolving a single mention.
type Resolution struct {
	Mention       Mention `json:"mention"`
	EntityID      int64   `json:"entity_id"`
	CanonicalName string  `json:"canonical_name"`
	IsNew         bool    `json:"is_new"`
	Occurrences   int     `json:"occurrences"`
}

// Statistics describes the state of the entity collection. All values are
// derived from live store state when requested, never cached.
type Statistics struct {
	TotalEntities  int            `json:"total_entities"`
	TotalMentions  int            `json:"total_mentions"`
	NewCount       int            `json:"new_count"`
	LinkedCount    int            `json:"linked_count"`
	PerLabelCounts map[string]int `json:"per_label_counts"`
}

// BatchResult summarizes resolving all mentions extracted from one source
// text, in arrival order.
type BatchResult struct {
	SourceID    string       `json:"source_id"`
	Processed   []Resolution `json:"processed"`
	NewCount    int          `json:"new_count"`
	LinkedCount int          `json:"linked_count"`
}
