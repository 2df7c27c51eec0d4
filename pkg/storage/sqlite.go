package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/livp123/suriwatch/internal/eve"
	xerrors "github.com/livp123/suriwatch/pkg/errors"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshot_meta (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	built_at TEXT NOT NULL,
	source   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS alerts (
	seq            INTEGER PRIMARY KEY,
	signature      TEXT NOT NULL,
	src_ip         TEXT NOT NULL,
	dest_ip        TEXT NOT NULL,
	timestamp      TEXT NOT NULL,
	formatted_time TEXT NOT NULL,
	date_only      TEXT NOT NULL,
	signature_id   INTEGER NOT NULL DEFAULT 0,
	severity       INTEGER NOT NULL DEFAULT 0,
	category       TEXT NOT NULL DEFAULT '',
	proto          TEXT NOT NULL DEFAULT '',
	src_port       INTEGER NOT NULL DEFAULT 0,
	dest_port      INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_alerts_date ON alerts(date_only);`

// SQLiteStore implements SnapshotStore on a SQLite database (pure Go driver).
// Each Save replaces both tables inside one transaction.
// SQLiteStore 基于 SQLite 数据库（纯 Go 驱动）实现 SnapshotStore。
// 每次 Save 在一个事务内替换两张表。
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
// NewSQLiteStore 打开（或创建）path 处的数据库并应用表结构。
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, xerrors.NewPersistenceError("mkdir", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, xerrors.NewPersistenceError("open", path, err)
	}
	// One writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, xerrors.NewPersistenceError("pragma", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, xerrors.NewPersistenceError("schema", path, err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Save replaces the stored snapshot.
// Save 替换已存储的快照。
func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) (err error) {
	if snap == nil {
		snap = &Snapshot{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return xerrors.NewPersistenceError("begin", s.path, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM alerts`); err != nil {
		return xerrors.NewPersistenceError("clear", s.path, err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshot_meta(id, built_at, source) VALUES(1, ?, ?)`,
		snap.BuiltAt.UTC().Format(time.RFC3339Nano), snap.Source); err != nil {
		return xerrors.NewPersistenceError("meta", s.path, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO alerts(
		seq, signature, src_ip, dest_ip, timestamp, formatted_time, date_only,
		signature_id, severity, category, proto, src_port, dest_port
	) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return xerrors.NewPersistenceError("prepare", s.path, err)
	}
	defer stmt.Close()

	for i, a := range snap.Alerts {
		if _, err = stmt.ExecContext(ctx, i,
			a.Signature, a.SourceAddress, a.DestinationAddress,
			a.RawTimestamp, a.FormattedTimestamp, a.DateOnly,
			a.SignatureID, a.Severity, a.Category, a.Proto, a.SourcePort, a.DestPort,
		); err != nil {
			return xerrors.NewPersistenceError("insert", s.path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return xerrors.NewPersistenceError("commit", s.path, err)
	}
	return nil
}

// Load returns the stored snapshot in insertion order.
// Load 按插入顺序返回已存储的快照。
func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Alerts: []eve.Alert{}}

	var builtAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT built_at, source FROM snapshot_meta WHERE id = 1`).Scan(&builtAt, &snap.Source)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return snap, nil
	case err != nil:
		return nil, xerrors.NewPersistenceError("read", s.path, err)
	}
	if t, perr := time.Parse(time.RFC3339Nano, builtAt); perr == nil {
		snap.BuiltAt = t
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
		signature, src_ip, dest_ip, timestamp, formatted_time, date_only,
		signature_id, severity, category, proto, src_port, dest_port
		FROM alerts ORDER BY seq`)
	if err != nil {
		return nil, xerrors.NewPersistenceError("read", s.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var a eve.Alert
		if err := rows.Scan(
			&a.Signature, &a.SourceAddress, &a.DestinationAddress,
			&a.RawTimestamp, &a.FormattedTimestamp, &a.DateOnly,
			&a.SignatureID, &a.Severity, &a.Category, &a.Proto, &a.SourcePort, &a.DestPort,
		); err != nil {
			return nil, xerrors.NewPersistenceError("decode", s.path, err)
		}
		snap.Alerts = append(snap.Alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.NewPersistenceError("read", s.path, err)
	}
	return snap, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
