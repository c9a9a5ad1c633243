package resolution

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ntthuylinh144/NER/model"
)

// Store owns the canonical entity collection and runs the link-or-create
// decision for every incoming mention.
//
// The store follows a single-writer discipline: Add takes the write lock
// for the full decision, read operations share the read lock. Labels never
// interact, so callers needing parallelism can shard mentions by label
// into independent stores.
type Store struct {
	mu        sync.RWMutex
	threshold float64
	entities  map[int64]*model.Entity
	order     []int64
	index     *labelIndex
	nextID    int64
}

// NewStore creates an empty store with the given similarity threshold.
func NewStore(threshold float64) (*Store, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("similarity threshold %v out of range [0,1]", threshold)
	}
	return &Store{
		threshold: threshold,
		entities:  make(map[int64]*model.Entity),
		index:     newLabelIndex(),
		nextID:    1,
	}, nil
}

// Threshold returns the similarity threshold the store was built with.
func (s *Store) Threshold() float64 {
	return s.threshold
}

// Add resolves one mention against the known entities of its label:
// the mention either links to the best-scoring candidate at or above the
// threshold, or becomes a new entity. Candidates are scored against their
// canonical name and every variation; equal scores resolve to the earliest
// created entity. Returns a copy of the affected entity and whether it was
// newly created.
func (s *Store) Add(mention model.Mention) (*model.Entity, bool, error) {
	if err := mention.Validate(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	norm := Normalize(mention.Text)

	var best *model.Entity
	bestScore := 0.0
	for _, id := range s.index.IDs(mention.Label) {
		candidate := s.entities[id]
		score := 0.0
		for _, form := range candidate.NormalizedForms() {
			if sim := Similarity(norm, form); sim > score {
				score = sim
			}
		}
		// Strictly greater keeps the earliest created entity on ties.
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if best != nil && bestScore >= s.threshold {
		best.AddOccurrence(mention.SourceID, mention.Text)
		best.AddVariation(mention.Text, norm)
		return best.Clone(), false, nil
	}

	entity := model.NewEntity(s.nextID, mention.Text, mention.Label, norm)
	entity.AddOccurrence(mention.SourceID, mention.Text)
	s.entities[entity.ID] = entity
	s.order = append(s.order, entity.ID)
	s.index.Register(mention.Label, entity.ID)
	s.nextID++

	return entity.Clone(), true, nil
}

// EntitiesByLabel returns copies of all entities created under a label, in
// creation order.
func (s *Store) EntitiesByLabel(label string) []*model.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.index.IDs(label)
	entities := make([]*model.Entity, 0, len(ids))
	for _, id := range ids {
		entities = append(entities, s.entities[id].Clone())
	}
	return entities
}

// Entity returns a copy of the entity with the given id, or nil if no such
// entity exists.
func (s *Store) Entity(id int64) *model.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[id]
	if !ok {
		return nil
	}
	return entity.Clone()
}

// Context returns up to max canonical names sorted by descending
// occurrence count, ties broken by ascending id. It is intended to prime
// external extraction with the known vocabulary. max <= 0 returns all
// names.
func (s *Store) Context(max int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*model.Entity, 0, len(s.order))
	for _, id := range s.order {
		sorted = append(sorted, s.entities[id])
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].OccurrenceCount() != sorted[j].OccurrenceCount() {
			return sorted[i].OccurrenceCount() > sorted[j].OccurrenceCount()
		}
		return sorted[i].ID < sorted[j].ID
	})

	if max > 0 && len(sorted) > max {
		sorted = sorted[:max]
	}

	names := make([]string, 0, len(sorted))
	for _, entity := range sorted {
		names = append(names, entity.CanonicalName)
	}
	return names
}

// Statistics recomputes collection statistics from live state. Every
// entity was created by exactly one mention, so the linked count is the
// mention total minus the entity total.
func (s *Store) Statistics() model.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.Statistics{
		PerLabelCounts: make(map[string]int),
	}
	for _, entity := range s.entities {
		stats.TotalEntities++
		stats.TotalMentions += entity.OccurrenceCount()
		stats.PerLabelCounts[entity.TypeLabel]++
	}
	stats.NewCount = stats.TotalEntities
	stats.LinkedCount = stats.TotalMentions - stats.TotalEntities
	return stats
}

// Export returns copies of all entities in creation order together with
// the next id the store would assign.
func (s *Store) Export() ([]*model.Entity, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entities := make([]*model.Entity, 0, len(s.order))
	for _, id := range s.order {
		entities = append(entities, s.entities[id].Clone())
	}
	return entities, s.nextID
}

// Import replaces the full store contents with the given entities and
// resets the id counter past the highest restored id, so future
// resolutions behave exactly as they would have on the original store.
// The replacement is all-or-nothing: on error the prior contents remain.
func (s *Store) Import(restored []*model.Entity) error {
	entities := make(map[int64]*model.Entity, len(restored))
	order := make([]int64, 0, len(restored))
	index := newLabelIndex()
	var maxID int64

	for _, entity := range restored {
		if _, ok := entities[entity.ID]; ok {
			return fmt.Errorf("%w: duplicate entity id %d", model.ErrCorruptedSnapshot, entity.ID)
		}
		clone := entity.Clone()
		clone.ReindexVariations(Normalize)
		entities[clone.ID] = clone
		order = append(order, clone.ID)
		index.Register(clone.TypeLabel, clone.ID)
		if clone.ID > maxID {
			maxID = clone.ID
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities = entities
	s.order = order
	s.index = index
	s.nextID = maxID + 1
	return nil
}
