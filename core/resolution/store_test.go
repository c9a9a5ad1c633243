package resolution

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntthuylinh144/NER/model"
)

func mention(text string, label string, sourceID string) model.Mention {
	return model.Mention{Text: text, Label: label, SourceID: sourceID}
}

func TestNewStore(t *testing.T) {
	t.Run("Valid call NewStore", func(t *testing.T) {
		store, err := NewStore(0.85)
		require.NoError(t, err, "Expected NewStore to not return an error")
		require.NotNil(t, store, "Expected NewStore to return a non-nil store")
		assert.Equal(t, 0.85, store.Threshold())
	})

	t.Run("Invalid threshold below zero", func(t *testing.T) {
		_, err := NewStore(-0.1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "out of range", "Expected specific error message for invalid threshold")
	})

	t.Run("Invalid threshold above one", func(t *testing.T) {
		_, err := NewStore(1.5)
		assert.Error(t, err)
	})
}

func TestStoreAdd(t *testing.T) {
	t.Run("Scenario at default threshold", func(t *testing.T) {
		store, err := NewStore(0.85)
		require.NoError(t, err)

		e1, isNew, err := store.Add(mention("control box", "COMPONENT", "s1"))
		require.NoError(t, err)
		assert.True(t, isNew, "Expected first mention to create an entity")
		assert.Equal(t, int64(1), e1.ID)
		assert.Equal(t, "control box", e1.CanonicalName)

		linked, isNew, err := store.Add(mention("Control Box", "COMPONENT", "s2"))
		require.NoError(t, err)
		assert.False(t, isNew, "Expected case variant to link")
		assert.Equal(t, e1.ID, linked.ID)
		assert.Equal(t, []string{"control box"}, linked.Variations,
			"Expected no new variation for an already known comparison form")
		assert.Equal(t, 2, linked.OccurrenceCount())

		linked, isNew, err = store.Add(mention("controller box", "COMPONENT", "s3"))
		require.NoError(t, err)
		assert.False(t, isNew, "Expected near duplicate above threshold to link")
		assert.Equal(t, e1.ID, linked.ID)
		assert.Equal(t, []string{"control box", "controller box"}, linked.Variations)
		assert.Equal(t, 3, linked.OccurrenceCount())

		e2, isNew, err := store.Add(mention("teach pendant", "COMPONENT", "s4"))
		require.NoError(t, err)
		assert.True(t, isNew, "Expected dissimilar mention to create an entity")
		assert.Equal(t, int64(2), e2.ID)

		e3, isNew, err := store.Add(mention("control box", "TOOL", "s5"))
		require.NoError(t, err)
		assert.True(t, isNew, "Expected identical text under a different label to create an entity")
		assert.Equal(t, int64(3), e3.ID)

		stats := store.Statistics()
		assert.Equal(t, 3, stats.TotalEntities)
		assert.Equal(t, 5, stats.TotalMentions)
		assert.Equal(t, 3, stats.NewCount)
		assert.Equal(t, 2, stats.LinkedCount)
		assert.Equal(t, map[string]int{"COMPONENT": 2, "TOOL": 1}, stats.PerLabelCounts)
	})

	t.Run("Invalid input leaves store unchanged", func(t *testing.T) {
		store, err := NewStore(0.85)
		require.NoError(t, err)

		_, _, err = store.Add(mention("  ", "COMPONENT", "s1"))
		assert.ErrorIs(t, err, model.ErrInvalidInput, "Expected blank mention text to be rejected")

		_, _, err = store.Add(mention("control box", "\t", "s1"))
		assert.ErrorIs(t, err, model.ErrInvalidInput, "Expected blank label to be rejected")

		assert.Equal(t, 0, store.Statistics().TotalEntities, "Expected no entity to be created")
	})

	t.Run("Links against variations, not only the canonical name", func(t *testing.T) {
		store, err := NewStore(0.9)
		require.NoError(t, err)

		_, _, err = store.Add(mention("robot arm", "COMPONENT", "s1"))
		require.NoError(t, err)
		_, isNew, err := store.Add(mention("robotic arm", "COMPONENT", "s2"))
		require.NoError(t, err)
		require.False(t, isNew)

		// "robotic arms" scores 0.857 against the canonical "robot arm",
		// below threshold; only the variation "robotic arm" clears it.
		entity, isNew, err := store.Add(mention("robotic arms", "COMPONENT", "s3"))
		require.NoError(t, err)
		assert.False(t, isNew, "Expected link via the recorded variation")
		assert.Equal(t, int64(1), entity.ID)
	})

	t.Run("Equal scores resolve to the earliest created entity", func(t *testing.T) {
		// Two candidates with identical comparison forms can only exist
		// after a restore, so seed them through Import.
		store, err := NewStore(0.85)
		require.NoError(t, err)

		first := model.NewEntity(1, "alpha", "X", "alpha")
		first.AddOccurrence("s1", "alpha")
		second := model.NewEntity(2, "alpha", "X", "alpha")
		second.AddOccurrence("s2", "alpha")
		require.NoError(t, store.Import([]*model.Entity{first, second}))

		winner, isNew, err := store.Add(mention("Alpha", "X", "s3"))
		require.NoError(t, err)
		assert.False(t, isNew)
		assert.Equal(t, int64(1), winner.ID, "Expected tie to resolve to the earliest entity")
	})

	t.Run("Idempotent re-linking", func(t *testing.T) {
		store, err := NewStore(0.85)
		require.NoError(t, err)

		_, _, err = store.Add(mention("control box", "COMPONENT", "s1"))
		require.NoError(t, err)

		first, isNew, err := store.Add(mention("control box", "COMPONENT", "s2"))
		require.NoError(t, err)
		require.False(t, isNew)
		second, isNew, err := store.Add(mention("control box", "COMPONENT", "s2"))
		require.NoError(t, err)
		require.False(t, isNew)
		assert.Equal(t, first.ID, second.ID, "Expected repeated mention to link to the same entity")
	})

	t.Run("Returned entity is a copy", func(t *testing.T) {
		store, err := NewStore(0.85)
		require.NoError(t, err)

		entity, _, err := store.Add(mention("control box", "COMPONENT", "s1"))
		require.NoError(t, err)
		entity.CanonicalName = "mutated"
		entity.Variations[0] = "mutated"

		stored := store.Entity(entity.ID)
		require.NotNil(t, stored)
		assert.Equal(t, "control box", stored.CanonicalName, "Expected store state to be unaffected by caller mutation")
		assert.Equal(t, "control box", stored.Variations[0])
	})
}

func TestStoreDeterminism(t *testing.T) {
	events := []model.Mention{
		mention("control box", "COMPONENT", "s1"),
		mention("Control Box", "COMPONENT", "s2"),
		mention("controller box", "COMPONENT", "s3"),
		mention("teach pendant", "COMPONENT", "s4"),
		mention("robot arm", "COMPONENT", "s5"),
		mention("robotic arm", "COMPONENT", "s6"),
		mention("control box", "TOOL", "s7"),
	}

	run := func(t *testing.T) string {
		store, err := NewStore(0.85)
		require.NoError(t, err)
		for _, event := range events {
			_, _, err := store.Add(event)
			require.NoError(t, err)
		}
		entities, nextID := store.Export()
		state, err := json.Marshal(struct {
			Entities []*model.Entity
			NextID   int64
		}{entities, nextID})
		require.NoError(t, err)
		return string(state)
	}

	first := run(t)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run(t), "Expected identical store state across repeated runs")
	}
}

func TestStoreThresholdMonotonicity(t *testing.T) {
	events := []model.Mention{
		mention("control box", "COMPONENT", "s1"),
		mention("Control Box", "COMPONENT", "s2"),
		mention("controller box", "COMPONENT", "s3"),
		mention("control boxes", "COMPONENT", "s4"),
		mention("teach pendant", "COMPONENT", "s5"),
		mention("teach-pendant", "COMPONENT", "s6"),
		mention("pendant", "COMPONENT", "s7"),
	}

	linksAt := func(threshold float64) int {
		store, err := NewStore(threshold)
		require.NoError(t, err)
		for _, event := range events {
			_, _, err := store.Add(event)
			require.NoError(t, err)
		}
		return store.Statistics().LinkedCount
	}

	previous := linksAt(0.0)
	for _, threshold := range []float64{0.25, 0.5, 0.75, 0.85, 0.95, 1.0} {
		links := linksAt(threshold)
		assert.LessOrEqual(t, links, previous,
			"Expected raising the threshold to %v to never increase links", threshold)
		previous = links
	}
}

func TestStoreLabelIsolation(t *testing.T) {
	store, err := NewStore(0.0)
	require.NoError(t, err)

	first, isNew, err := store.Add(mention("control box", "COMPONENT", "s1"))
	require.NoError(t, err)
	require.True(t, isNew)

	second, isNew, err := store.Add(mention("control box", "TOOL", "s2"))
	require.NoError(t, err)
	assert.True(t, isNew, "Expected identical text under another label to create a new entity even at threshold 0")
	assert.NotEqual(t, first.ID, second.ID)
}

func TestStoreEntitiesByLabel(t *testing.T) {
	store, err := NewStore(0.85)
	require.NoError(t, err)

	_, _, err = store.Add(mention("control box", "COMPONENT", "s1"))
	require.NoError(t, err)
	_, _, err = store.Add(mention("teach pendant", "COMPONENT", "s2"))
	require.NoError(t, err)
	_, _, err = store.Add(mention("wrench", "TOOL", "s3"))
	require.NoError(t, err)

	t.Run("Creation order within label", func(t *testing.T) {
		components := store.EntitiesByLabel("COMPONENT")
		require.Len(t, components, 2)
		assert.Equal(t, "control box", components[0].CanonicalName)
		assert.Equal(t, "teach pendant", components[1].CanonicalName)
	})

	t.Run("Unknown label yields empty result", func(t *testing.T) {
		assert.Empty(t, store.EntitiesByLabel("ACTION"))
	})
}

func TestStoreContext(t *testing.T) {
	store, err := NewStore(0.85)
	require.NoError(t, err)

	// "control box" seen three times, "robot arm" twice, "wrench" once.
	for _, event := range []model.Mention{
		mention("control box", "COMPONENT", "s1"),
		mention("robot arm", "COMPONENT", "s1"),
		mention("wrench", "TOOL", "s2"),
		mention("Control Box", "COMPONENT", "s2"),
		mention("robot arm", "COMPONENT", "s3"),
		mention("control box", "COMPONENT", "s3"),
	} {
		_, _, err := store.Add(event)
		require.NoError(t, err)
	}

	t.Run("Sorted by occurrence count then id", func(t *testing.T) {
		assert.Equal(t, []string{"control box", "robot arm", "wrench"}, store.Context(0))
	})

	t.Run("Truncated to max", func(t *testing.T) {
		assert.Equal(t, []string{"control box", "robot arm"}, store.Context(2))
	})

	t.Run("Ties broken by ascending id", func(t *testing.T) {
		tied, err := NewStore(0.99)
		require.NoError(t, err)
		_, _, err = tied.Add(mention("beta", "X", "s1"))
		require.NoError(t, err)
		_, _, err = tied.Add(mention("alpha", "X", "s2"))
		require.NoError(t, err)
		assert.Equal(t, []string{"beta", "alpha"}, tied.Context(0),
			"Expected equal counts to order by creation")
	})
}

func TestStoreExportImport(t *testing.T) {
	t.Run("Round trip preserves entities and id counter", func(t *testing.T) {
		store, err := NewStore(0.85)
		require.NoError(t, err)
		for _, event := range []model.Mention{
			mention("control box", "COMPONENT", "s1"),
			mention("controller box", "COMPONENT", "s2"),
			mention("teach pendant", "COMPONENT", "s3"),
		} {
			_, _, err := store.Add(event)
			require.NoError(t, err)
		}

		entities, nextID := store.Export()
		require.Len(t, entities, 2)
		assert.Equal(t, int64(3), nextID)

		restored, err := NewStore(0.85)
		require.NoError(t, err)
		require.NoError(t, restored.Import(entities))

		restoredEntities, restoredNextID := restored.Export()
		assert.Equal(t, entities, restoredEntities)
		assert.Equal(t, nextID, restoredNextID)

		// Future resolution decisions are identical.
		original, _, err := store.Add(mention("Control-Box", "COMPONENT", "s4"))
		require.NoError(t, err)
		copied, _, err := restored.Add(mention("Control-Box", "COMPONENT", "s4"))
		require.NoError(t, err)
		assert.Equal(t, original.ID, copied.ID)
		assert.Equal(t, original.Variations, copied.Variations)
	})

	t.Run("Import with duplicate ids fails and keeps prior contents", func(t *testing.T) {
		store, err := NewStore(0.85)
		require.NoError(t, err)
		_, _, err = store.Add(mention("control box", "COMPONENT", "s1"))
		require.NoError(t, err)

		duplicate := model.NewEntity(7, "a", "X", "a")
		duplicate.AddOccurrence("s1", "a")
		other := model.NewEntity(7, "b", "X", "b")
		other.AddOccurrence("s2", "b")

		err = store.Import([]*model.Entity{duplicate, other})
		assert.ErrorIs(t, err, model.ErrCorruptedSnapshot)
		assert.Equal(t, 1, store.Statistics().TotalEntities, "Expected prior contents to remain after failed import")
	})

	t.Run("Import of empty snapshot resets the id counter", func(t *testing.T) {
		store, err := NewStore(0.85)
		require.NoError(t, err)
		_, _, err = store.Add(mention("control box", "COMPONENT", "s1"))
		require.NoError(t, err)

		require.NoError(t, store.Import(nil))
		entity, isNew, err := store.Add(mention("wrench", "TOOL", "s2"))
		require.NoError(t, err)
		assert.True(t, isNew)
		assert.Equal(t, int64(1), entity.ID)
	})
}
