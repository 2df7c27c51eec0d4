package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/livp123/suriwatch/internal/utils/fileutil"
)

const (
	// NoUserRules is shown when nothing has been added through the interface.
	// NoUserRules 在尚未通过界面添加规则时显示。
	NoUserRules = "No rules added through the interface."
	// NoLocalRules is shown when the sensor's local rules file is absent.
	NoLocalRules = "The local.rules file does not exist."
)

// RuleFile stores user-authored rules as an append-only text file and
// merges them into the sensor's local rules file.
// RuleFile 以仅追加的文本文件存储用户编写的规则，并将其合并到传感器的本地规则文件中。
type RuleFile struct {
	mu        sync.Mutex
	userPath  string
	localPath string
}

// NewRuleFile creates a rule store for the user and local rule paths.
// NewRuleFile 为用户规则和本地规则路径创建规则存储。
func NewRuleFile(userPath, localPath string) *RuleFile {
	return &RuleFile{
		userPath:  filepath.Clean(userPath),
		localPath: filepath.Clean(localPath),
	}
}

// UserPath returns the user rules location.
func (r *RuleFile) UserPath() string { return r.userPath }

// LocalPath returns the local rules location.
func (r *RuleFile) LocalPath() string { return r.localPath }

// BackupPath is where MergeIntoLocal keeps the previous local rules.
func (r *RuleFile) BackupPath() string { return r.localPath + ".bak" }

// Append adds one rule block to the user rules file, creating it if needed.
// Append 向用户规则文件追加一条规则，必要时创建文件。
func (r *RuleFile) Append(rule string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := fileutil.EnsureFile(r.userPath); err != nil {
		return err
	}
	return fileutil.AppendString(r.userPath, "\n"+strings.TrimSpace(rule))
}

// ReadUser returns the user rules verbatim, or NoUserRules when the file is absent.
// ReadUser 原样返回用户规则；文件不存在时返回 NoUserRules。
func (r *RuleFile) ReadUser() (string, error) {
	return readOr(r.userPath, NoUserRules)
}

// ReadLocal returns the local rules verbatim, or NoLocalRules when the file is absent.
func (r *RuleFile) ReadLocal() (string, error) {
	return readOr(r.localPath, NoLocalRules)
}

// MergeIntoLocal backs up the local rules and replaces them with the user rules.
// MergeIntoLocal 备份本地规则并用用户规则替换。
func (r *RuleFile) MergeIntoLocal() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.localPath); err == nil {
		if err := fileutil.CopyFile(r.localPath, r.BackupPath()); err != nil {
			return err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	content := ""
	data, err := os.ReadFile(r.userPath) // #nosec G304 // path is sanitized with filepath.Clean
	if err == nil {
		content = strings.TrimSpace(string(data))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return fileutil.AtomicWriteFile(r.localPath, []byte(content+"\n"), 0644)
}

func readOr(path, placeholder string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 // path is sanitized with filepath.Clean
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return placeholder, nil
		}
		return "", err
	}
	return string(data), nil
}
