package export

import (
	"os"
	"path/filepath"
)

// Sink receives export bytes for a user-visible file save. The CLI uses
// FileSink; tests capture arguments with a fake.
type Sink interface {
	Download(content []byte, filename, mimeType string) error
}

// FileSink writes downloads into Dir (default: current directory).
type FileSink struct {
	Dir string
}

func (s FileSink) Download(content []byte, filename, _ string) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filename), content, 0o644)
}
