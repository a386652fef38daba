package csvexport

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileSink writes flattened rows to timestamped CSV files in a directory.
// Existing files are never overwritten; name collisions get a numeric suffix.
type FileSink struct {
	dir string
	now func() time.Time
}

// NewFileSink creates a FileSink rooted at dir, creating it if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	return &FileSink{dir: dir, now: time.Now}, nil
}

// WriteCSV writes one row to a new timestamped CSV file and returns its path.
func (s *FileSink) WriteCSV(row TabularRow) (string, error) {
	path := s.uniquePath(BuildFilename(s.now()))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(BOM); err != nil {
		return "", fmt.Errorf("writing BOM: %w", err)
	}

	w := NewWriter(f)
	if err := w.WriteRow(row); err != nil {
		return "", fmt.Errorf("writing row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	return path, nil
}

// uniquePath resolves name within the sink dir, appending _1, _2, ... before
// the extension until the path does not exist.
func (s *FileSink) uniquePath(name string) string {
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]

	path := filepath.Join(s.dir, name)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}
}
