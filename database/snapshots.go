package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ntthuylinh144/NER/helper"
	"github.com/ntthuylinh144/NER/model"
	"github.com/ntthuylinh144/NER/sql"
)

// SnapshotsDBHandlerFunctions defines the interface for snapshot archive
// database operations.
type SnapshotsDBHandlerFunctions interface {
	InsertSnapshot(record *model.SnapshotRecord) error
	SelectSnapshot(rid uuid.UUID) (*model.SnapshotRecord, error)
	SelectLatestSnapshot() (*model.SnapshotRecord, error)
	SelectAllSnapshots(limit int) ([]*model.SnapshotRecord, error)
	DeleteSnapshot(rid uuid.UUID) error
}

// SnapshotsDBHandler handles snapshot archive database operations
type SnapshotsDBHandler struct {
	db *helper.Database
}

// NewSnapshotsDBHandler creates a new snapshots database handler.
// It initializes the database connection and loads snapshot-related SQL
// functions. If force is true, it will reload the SQL functions even if
// they already exist.
func NewSnapshotsDBHandler(db *helper.Database, force bool) (*SnapshotsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	snapshotsDbHandler := &SnapshotsDBHandler{
		db: db,
	}

	err := sql.LoadSnapshotsSql(snapshotsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load snapshots sql", err)
	}

	err = snapshotsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized SnapshotsDBHandler")

	return snapshotsDbHandler, nil
}

// CreateTable creates the 'snapshots' table in the database.
// If the table already exists, it does not create it again.
func (h *SnapshotsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_snapshots();`)
	if err != nil {
		log.Panicf("error initializing snapshots table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table snapshots")

	return nil
}

// InsertSnapshot archives a snapshot document
func (h *SnapshotsDBHandler) InsertSnapshot(record *model.SnapshotRecord) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_snapshot($1, $2, $3)`,
		record.Name,
		record.EntityCount,
		record.Payload,
	)

	err := row.Scan(
		&record.RID,
		&record.Name,
		&record.EntityCount,
		&record.Payload,
		&record.CreatedAt,
	)
	if err != nil {
		return persistenceError("scan", err)
	}

	return nil
}

// SelectSnapshot retrieves an archived snapshot by record id
func (h *SnapshotsDBHandler) SelectSnapshot(rid uuid.UUID) (*model.SnapshotRecord, error) {
	record := &model.SnapshotRecord{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_snapshot($1)`,
		rid,
	)

	err := row.Scan(
		&record.RID,
		&record.Name,
		&record.EntityCount,
		&record.Payload,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, persistenceError("scan", err)
	}

	return record, nil
}

// SelectLatestSnapshot retrieves the most recently archived snapshot
func (h *SnapshotsDBHandler) SelectLatestSnapshot() (*model.SnapshotRecord, error) {
	record := &model.SnapshotRecord{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_latest_snapshot()`,
	)

	err := row.Scan(
		&record.RID,
		&record.Name,
		&record.EntityCount,
		&record.Payload,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, persistenceError("scan", err)
	}

	return record, nil
}

// SelectAllSnapshots lists archived snapshots without their payloads,
// newest first
func (h *SnapshotsDBHandler) SelectAllSnapshots(limit int) ([]*model.SnapshotRecord, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_snapshots($1)`,
		limit,
	)
	if err != nil {
		return nil, persistenceError("query", err)
	}
	defer rows.Close()

	var records []*model.SnapshotRecord
	for rows.Next() {
		record := &model.SnapshotRecord{}
		err := rows.Scan(
			&record.RID,
			&record.Name,
			&record.EntityCount,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, persistenceError("scan", err)
		}

		records = append(records, record)
	}

	err = rows.Err()
	if err != nil {
		return nil, persistenceError("rows error", err)
	}

	return records, nil
}

// DeleteSnapshot deletes an archived snapshot by record id
func (h *SnapshotsDBHandler) DeleteSnapshot(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_snapshot($1)`,
		rid,
	)
	if err != nil {
		return persistenceError("exec", err)
	}
	return nil
}

// persistenceError tags a database error as a persistence failure so
// callers can match it with errors.Is alongside the operation context.
func persistenceError(operation string, err error) error {
	return helper.NewError(operation, fmt.Errorf("%w: %v", model.ErrPersistenceFailure, err))
}
