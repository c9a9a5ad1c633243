package model

// Occurrence is a single sighting of an entity in a source text.
// The order of occurrences on an entity is arrival order and is never
// changed after the fact.
type Occurrence struct {
	SourceID    string `json:"source_id"`
	SurfaceForm string `json:"surface_form"`
}

// Entity is a canonical entity together with all surface forms seen for it.
// ID, CanonicalName and TypeLabel are fixed at creation; Variations and
// Occurrences only ever grow.
type Entity struct {
	ID            int64        `json:"id"`
	CanonicalName string       `json:"canonical_name"`
	TypeLabel     string       `json:"type_label"`
	Variations    []string     `json:"variations"`
	Occurrences   []Occurrence `json:"occurrences"`

	// normalized holds the comparison form of every variation so that
	// membership checks ignore casing and whitespace differences.
	normalized map[string]struct{}
}

// NewEntity creates an entity from its first mention. The canonical name is
// the surface form verbatim; norm is its comparison form.
func NewEntity(id int64, surface string, typeLabel string, norm string) *Entity {
	return &Entity{
		ID:            id,
		CanonicalName: surface,
		TypeLabel:     typeLabel,
		Variations:    []string{surface},
		normalized:    map[string]struct{}{norm: {}},
	}
}

// AddOccurrence appends a sighting of this entity.
func (e *Entity) AddOccurrence(sourceID string, surface string) {
	e.Occurrences = append(e.Occurrences, Occurrence{
		SourceID:    sourceID,
		SurfaceForm: surface,
	})
}

// AddVariation records a surface form if its comparison form is not already
// known. Returns true if the variation was new.
func (e *Entity) AddVariation(surface string, norm string) bool {
	if e.normalized == nil {
		e.normalized = make(map[string]struct{})
	}
	if _, ok := e.normalized[norm]; ok {
		return false
	}
	e.normalized[norm] = struct{}{}
	e.Variations = append(e.Variations, surface)
	return true
}

// NormalizedForms returns the comparison forms of all known variations.
// Order is unspecified.
func (e *Entity) NormalizedForms() []string {
	forms := make([]string, 0, len(e.normalized))
	for norm := range e.normalized {
		forms = append(forms, norm)
	}
	return forms
}

// ReindexVariations rebuilds the comparison-form set from the stored
// variations, e.g. after the entity was decoded from a snapshot.
func (e *Entity) ReindexVariations(normalize func(string) string) {
	e.normalized = make(map[string]struct{}, len(e.Variations))
	for _, v := range e.Variations {
		e.normalized[normalize(v)] = struct{}{}
	}
}

// OccurrenceCount returns how often this entity has been seen.
func (e *Entity) OccurrenceCount() int {
	return len(e.Occurrences)
}

// FirstSeen returns the source id of the first occurrence, or "" if the
// entity has no occurrences yet.
func (e *Entity) FirstSeen() string {
	if len(e.Occurrences) == 0 {
		return ""
	}
	return e.Occurrences[0].SourceID
}

// Clone returns a deep copy so callers can hold entities outside the
// store's lock.
func (e *Entity) Clone() *Entity {
	clone := &Entity{
		ID:            e.ID,
		CanonicalName: e.CanonicalName,
		TypeLabel:     e.TypeLabel,
		Variations:    append([]string(nil), e.Variations...),
		Occurrences:   append([]Occurrence(nil), e.Occurrences...),
	}
	if e.normalized != nil {
		clone.normalized = make(map[string]struct{}, len(e.normalized))
		for norm := range e.normalized {
			clone.normalized[norm] = struct{}{}
		}
	}
	return clone
}
