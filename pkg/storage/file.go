package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/livp123/suriwatch/internal/eve"
	"github.com/livp123/suriwatch/internal/utils/fileutil"
	xerrors "github.com/livp123/suriwatch/pkg/errors"
)

// FileStore implements SnapshotStore using a local JSON file.
// FileStore 使用本地 JSON 文件实现 SnapshotStore 接口。
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a new JSON file snapshot store.
// NewFileStore 创建新的基于 JSON 文件的快照存储。
func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the snapshot through an atomic rename.
// Save 通过原子重命名写入快照。
func (s *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap == nil {
		snap = &Snapshot{}
	}
	out := *snap
	if out.Alerts == nil {
		out.Alerts = []eve.Alert{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return xerrors.NewPersistenceError("marshal", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fileutil.AtomicWriteFile(s.path, data, 0644); err != nil {
		return xerrors.NewPersistenceError("write", s.path, err)
	}
	return nil
}

// Load reads the snapshot. Both the object form and a bare JSON array of
// alerts are accepted.
// Load 读取快照。同时接受对象格式和告警的纯 JSON 数组格式。
func (s *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path) // #nosec G304 // path is sanitized with filepath.Clean
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Snapshot{Alerts: []eve.Alert{}}, nil
		}
		return nil, xerrors.NewPersistenceError("read", s.path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &Snapshot{Alerts: []eve.Alert{}}, nil
	}

	snap := &Snapshot{}
	if trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &snap.Alerts)
	} else {
		err = json.Unmarshal(trimmed, snap)
	}
	if err != nil {
		return nil, xerrors.NewPersistenceError("decode", s.path, err)
	}
	if snap.Alerts == nil {
		snap.Alerts = []eve.Alert{}
	}
	return snap, nil
}
