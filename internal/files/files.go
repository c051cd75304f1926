// Package files stores downloaded attachments on local disk.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Store struct {
	dir    string
	logger *zap.Logger
}

func New(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &Store{
		dir:    dir,
		logger: logger,
	}, nil
}

// Write persists the stream under a collision-safe name derived from the
// suggested one and returns the stored path.
func (s *Store) Write(name string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, uniqueName(name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}

	s.logger.Debug("file stored",
		zap.String("path", path),
		zap.Int64("bytes", written),
	)

	return path, nil
}

func uniqueName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "file"
	}
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), base)
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// IsImage reports whether the path looks like a photo by extension.
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}
