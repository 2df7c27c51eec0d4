package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data to a temporary file and then renames it to the target file.
// Readers see either the old content or the new content, never a partial write.
// AtomicWriteFile 将数据写入临时文件，然后将其重命名为目标文件。
// 读取方只会看到旧内容或新内容，不会看到部分写入。
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename) // #nosec G703 // Safe: filepath.Dir cleans the path preventing traversal
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(dir, "atomic-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name()) // Clean up if something fails

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Chmod(perm); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpFile.Name(), filename) // #nosec G703 // filename is validated by caller
}

// EnsureFile creates an empty file (and its directory) if it does not exist.
// EnsureFile 如果文件不存在则创建空文件（及其目录）。
func EnsureFile(filePath string) error {
	safePath := filepath.Clean(filePath)
	if _, err := os.Stat(safePath); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(safePath), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(safePath, os.O_CREATE|os.O_WRONLY, 0644) // #nosec G304 // filePath is sanitized with filepath.Clean
	if err != nil {
		return err
	}
	return f.Close()
}

// AppendString appends s to a file, creating it if needed.
// AppendString 将 s 追加到文件，必要时创建文件。
func AppendString(filePath, s string) error {
	safePath := filepath.Clean(filePath)                                       // Sanitize path to prevent directory traversal
	f, err := os.OpenFile(safePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // #nosec G304 // filePath is sanitized with filepath.Clean
	if err != nil {
		return err
	}
	if _, err := f.WriteString(s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CopyFile copies src to dst atomically, keeping src's permissions.
// CopyFile 以原子方式将 src 复制到 dst，保留 src 的权限。
func CopyFile(src, dst string) error {
	safeSrc := filepath.Clean(src)
	info, err := os.Stat(safeSrc)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(safeSrc) // #nosec G304 // src is sanitized with filepath.Clean
	if err != nil {
		return err
	}
	return AtomicWriteFile(filepath.Clean(dst), data, info.Mode().Perm())
}
