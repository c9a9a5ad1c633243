// Package ner implements an online entity-resolution engine: every
// incoming mention either links to an already-known canonical entity of
// the same type label or creates a new one, decided by fuzzy string
// similarity against a configurable threshold. The growing registry keeps
// full provenance and can be snapshotted and restored without changing
// future resolution behavior.
package ner

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/ntthuylinh144/NER/core/pipeline"
	"github.com/ntthuylinh144/NER/core/report"
	"github.com/ntthuylinh144/NER/core/resolution"
	"github.com/ntthuylinh144/NER/database"
	"github.com/ntthuylinh144/NER/helper"
	"github.com/ntthuylinh144/NER/model"
	"github.com/ntthuylinh144/NER/snapshot"
	loadSql "github.com/ntthuylinh144/NER/sql"
)

// Resolver provides a unified interface to the entity store, ingestion,
// reporting and snapshot persistence.
type Resolver struct {
	Store     *resolution.Store
	Ingestor  *pipeline.Ingestor
	Reporter  *report.Reporter
	Snapshots *database.SnapshotsDBHandler // Optional snapshot archive
	DB        *helper.Database             // Set when a snapshot archive is attached

	config *model.ResolverConfig
	log    *slog.Logger
}

// NewResolver creates a resolver with an empty in-memory store.
// A nil config uses DefaultResolverConfig.
func NewResolver(config *model.ResolverConfig) (*Resolver, error) {
	if config == nil {
		config = model.DefaultResolverConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, helper.NewError("validate configuration", err)
	}

	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	store, err := resolution.NewStore(config.SimilarityThreshold)
	if err != nil {
		return nil, helper.NewError("create store", err)
	}

	return &Resolver{
		Store:    store,
		Ingestor: pipeline.NewIngestor(store),
		Reporter: report.NewReporter(store),
		config:   config,
		log:      logger,
	}, nil
}

// Close closes the database connection of the snapshot archive, if any.
func (r *Resolver) Close() error {
	if r.DB != nil && r.DB.Instance != nil {
		return r.DB.Instance.Close()
	}
	return nil
}

// WithSnapshotArchive attaches a Postgres snapshot archive.
func (r *Resolver) WithSnapshotArchive(config *helper.DatabaseConfiguration) error {
	db := helper.NewDatabase("ner", config, r.log)
	if err := loadSql.Init(db.Instance); err != nil {
		return helper.NewError("initialize database extensions", err)
	}

	snapshots, err := database.NewSnapshotsDBHandler(db, false)
	if err != nil {
		return helper.NewError("create snapshots handler", err)
	}

	r.DB = db
	r.Snapshots = snapshots
	return nil
}

// UseDefaultExtractor sets up the default NER mention extractor
// (distilbert-NER via hugot) for ProcessText.
func (r *Resolver) UseDefaultExtractor() error {
	extractor, err := pipeline.DefaultMentionExtractor()
	if err != nil {
		return helper.NewError("create default extractor", err)
	}
	r.Ingestor.SetExtractor(extractor)
	return nil
}

// Resolve links one mention to an existing entity or creates a new one.
// Returns a copy of the affected entity and whether it was newly created.
func (r *Resolver) Resolve(mention model.Mention) (*model.Entity, bool, error) {
	entity, isNew, err := r.Store.Add(mention)
	if err != nil {
		return nil, false, err
	}

	if isNew {
		r.log.Info("Created entity",
			slog.Int64("entity_id", entity.ID),
			slog.String("canonical_name", entity.CanonicalName),
			slog.String("type_label", entity.TypeLabel))
	} else {
		r.log.Info("Linked mention",
			slog.Int64("entity_id", entity.ID),
			slog.String("mention", mention.Text),
			slog.Int("occurrences", entity.OccurrenceCount()))
	}

	return entity, isNew, nil
}

// ResolveBatch resolves mention events in order, one outcome per event.
// The first invalid event aborts the batch; outcomes up to that point are
// already applied.
func (r *Resolver) ResolveBatch(events []model.Mention) ([]model.Resolution, error) {
	outcomes, err := r.Ingestor.ProcessEvents(events)
	if err != nil {
		return outcomes, err
	}

	r.log.Info("Resolved batch", slog.Int("events", len(outcomes)))
	return outcomes, nil
}

// ProcessText extracts mentions from one source text and resolves them.
// Requires an extractor, see UseDefaultExtractor.
func (r *Resolver) ProcessText(text string, sourceID string) (*model.BatchResult, error) {
	result, err := r.Ingestor.ProcessText(text, sourceID)
	if err != nil {
		return result, err
	}

	r.log.Info("Processed source text",
		slog.String("source_id", sourceID),
		slog.Int("new", result.NewCount),
		slog.Int("linked", result.LinkedCount))

	return result, nil
}

// Context returns the known vocabulary for priming external extraction:
// canonical names by descending occurrence count, capped by the
// configured maximum.
func (r *Resolver) Context() []string {
	return r.Store.Context(r.config.MaxContextEntities)
}

// Statistics recomputes collection statistics from live store state.
func (r *Resolver) Statistics() model.Statistics {
	return r.Store.Statistics()
}

// SaveSnapshot writes the full store state to a snapshot file.
func (r *Resolver) SaveSnapshot(path string) error {
	entities, _ := r.Store.Export()
	data, err := snapshot.Encode(entities)
	if err != nil {
		return helper.NewError("encode snapshot", err)
	}

	if err := snapshot.NewFileStore(path).Save(data); err != nil {
		return err
	}

	r.log.Info("Saved snapshot", slog.String("path", path), slog.Int("entities", len(entities)))
	return nil
}

// LoadSnapshot replaces the store contents with a snapshot file. The load
// is all-or-nothing: on any error the prior store contents remain.
func (r *Resolver) LoadSnapshot(path string) error {
	data, err := snapshot.NewFileStore(path).Load()
	if err != nil {
		return err
	}

	entities, err := snapshot.Decode(data)
	if err != nil {
		return err
	}

	if err := r.Store.Import(entities); err != nil {
		return err
	}

	r.log.Info("Loaded snapshot", slog.String("path", path), slog.Int("entities", len(entities)))
	return nil
}

// ArchiveSnapshot writes the full store state to the snapshot archive
// under the given name. Requires WithSnapshotArchive.
func (r *Resolver) ArchiveSnapshot(name string) (*model.SnapshotRecord, error) {
	if r.Snapshots == nil {
		return nil, helper.NewError("archive snapshot", fmt.Errorf("snapshot archive not attached, use WithSnapshotArchive() first"))
	}

	entities, _ := r.Store.Export()
	data, err := snapshot.Encode(entities)
	if err != nil {
		return nil, helper.NewError("encode snapshot", err)
	}

	record := &model.SnapshotRecord{
		Name:        name,
		EntityCount: len(entities),
		Payload:     data,
	}
	if err := r.Snapshots.InsertSnapshot(record); err != nil {
		return nil, err
	}

	r.log.Info("Archived snapshot",
		slog.String("rid", record.RID.String()),
		slog.String("name", name),
		slog.Int("entities", len(entities)))

	return record, nil
}

// RestoreArchived replaces the store contents with an archived snapshot.
func (r *Resolver) RestoreArchived(rid uuid.UUID) error {
	if r.Snapshots == nil {
		return helper.NewError("restore snapshot", fmt.Errorf("snapshot archive not attached, use WithSnapshotArchive() first"))
	}

	record, err := r.Snapshots.SelectSnapshot(rid)
	if err != nil {
		return err
	}
	return r.restoreRecord(record)
}

// RestoreLatest replaces the store contents with the most recently
// archived snapshot.
func (r *Resolver) RestoreLatest() error {
	if r.Snapshots == nil {
		return helper.NewError("restore snapshot", fmt.Errorf("snapshot archive not attached, use WithSnapshotArchive() first"))
	}

	record, err := r.Snapshots.SelectLatestSnapshot()
	if err != nil {
		return err
	}
	return r.restoreRecord(record)
}

func (r *Resolver) restoreRecord(record *model.SnapshotRecord) error {
	entities, err := snapshot.Decode(record.Payload)
	if err != nil {
		return err
	}
	if err := r.Store.Import(entities); err != nil {
		return err
	}

	r.log.Info("Restored snapshot",
		slog.String("rid", record.RID.String()),
		slog.Int("entities", len(entities)))
	return nil
}
