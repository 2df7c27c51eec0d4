package tailfile

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBlockSize is the size of each backward read.
// DefaultBlockSize 是每次反向读取的块大小。
const DefaultBlockSize = 1024

// Tail returns the last n lines of the file at path, in file order,
// without scanning the file from the start.
// A missing file yields no lines and no error.
// Tail 返回 path 文件的最后 n 行（按文件顺序），无需从头扫描文件。
// 文件不存在时返回空结果且不报错。
func Tail(path string, n int) ([]string, error) {
	return TailBlocks(path, n, DefaultBlockSize)
}

// TailBlocks is Tail with an explicit block size.
func TailBlocks(path string, n, blockSize int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	f, err := os.Open(filepath.Clean(path)) // #nosec G304 // path comes from trusted configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	data, err := readTail(f, n, blockSize)
	if err != nil {
		return nil, err
	}
	return splitLast(data, n), nil
}

// readTail reads blocks backward from the end until more than n newlines
// are buffered or the start of the file is reached. One newline beyond n
// guarantees the first returned line is complete.
func readTail(f *os.File, n, blockSize int) ([]byte, error) {
	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	var data []byte
	block := make([]byte, blockSize)
	for offset > 0 && bytes.Count(data, []byte{'\n'}) <= n {
		size := int64(blockSize)
		if offset < size {
			size = offset
		}
		offset -= size
		if _, err := f.ReadAt(block[:size], offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		chunk := make([]byte, 0, int(size)+len(data))
		chunk = append(chunk, block[:size]...)
		data = append(chunk, data...)
	}
	return data, nil
}

// splitLast splits on line endings and keeps the last n lines.
// Invalid UTF-8 is replaced rather than rejected.
func splitLast(data []byte, n int) []string {
	if len(data) == 0 {
		return nil
	}
	data = bytes.TrimSuffix(data, []byte{'\n'})
	lines := bytes.Split(data, []byte{'\n'})
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		line = bytes.TrimSuffix(line, []byte{'\r'})
		out[i] = strings.ToValidUTF8(string(line), "�")
	}
	return out
}
