package storage

import (
	"context"
	"time"

	"github.com/livp123/suriwatch/internal/eve"
	xerrors "github.com/livp123/suriwatch/pkg/errors"
)

// Snapshot is the persisted result of one index build.
// It is immutable once produced.
// Snapshot 是一次索引构建的持久化结果，生成后不可变。
type Snapshot struct {
	BuiltAt time.Time   `json:"built_at"`
	Source  string      `json:"source,omitempty"`
	Alerts  []eve.Alert `json:"alerts"`
}

// Dates returns the distinct known calendar dates of the snapshot, ascending.
// Dates 返回快照中不同的已知日期（升序）。
func (s *Snapshot) Dates() []string {
	if s == nil {
		return []string{}
	}
	return eve.DistinctDates(s.Alerts)
}

// SnapshotStore is the interface for persisting index snapshots.
// Save must replace the previous snapshot as a whole.
// SnapshotStore 是持久化索引快照的接口。Save 必须整体替换之前的快照。
type SnapshotStore interface {
	// Save replaces the stored snapshot.
	// Save 替换已存储的快照。
	Save(ctx context.Context, snap *Snapshot) error
	// Load returns the stored snapshot; an absent snapshot is empty, not an error.
	// Load 返回已存储的快照；不存在的快照视为空，不是错误。
	Load(ctx context.Context) (*Snapshot, error)
}

const (
	// BackendFile persists the snapshot as one JSON document.
	// BackendFile 将快照持久化为一个 JSON 文档。
	BackendFile = "file"
	// BackendSQLite persists the snapshot in a SQLite database.
	// BackendSQLite 将快照持久化到 SQLite 数据库。
	BackendSQLite = "sqlite"
)

// Open returns the snapshot store for backend, plus the function releasing it.
// An empty backend means BackendFile.
// Open 返回指定后端的快照存储及其释放函数。空后端表示 BackendFile。
func Open(backend, path string) (SnapshotStore, func() error, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(path), func() error { return nil }, nil
	case BackendSQLite:
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, xerrors.NewConfigError("index.backend", backend)
	}
}
