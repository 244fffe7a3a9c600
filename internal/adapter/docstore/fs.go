// Package docstore stores uploaded documents such as supplier invoices.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// DefaultMaxSize is the largest document accepted when no limit is configured.
const DefaultMaxSize = 10 << 20

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FS keeps documents as files under a root directory. References are
// paths relative to the root and never escape it.
type FS struct {
	root    string
	maxSize int64
}

// NewFS creates the root directory if needed.
func NewFS(root string, maxSize int64) (*FS, error) {
	if root == "" {
		return nil, fmt.Errorf("docstore: root directory is required")
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("docstore: create root: %w", err)
	}
	return &FS{root: root, maxSize: maxSize}, nil
}

// Put writes r under a new reference derived from folder and name. A
// document larger than the configured limit is rejected and nothing is
// kept.
func (s *FS) Put(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := path.Join(cleanFolder(folder), uuid.NewString()+"-"+sanitize(name))
	full := filepath.Join(s.root, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", fmt.Errorf("docstore: create folder: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return "", fmt.Errorf("docstore: create %s: %w", ref, err)
	}

	n, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > s.maxSize {
		err = domain.NewValidationError("file", fmt.Sprintf("larger than %d bytes", s.maxSize))
	}
	if err == nil && n == 0 {
		err = domain.NewValidationError("file", "empty")
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return ref, nil
}

// Open returns the document stored under ref.
func (s *FS) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := filepath.Clean(filepath.FromSlash(ref))
	if filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return nil, domain.NewValidationError("ref", "invalid document reference")
	}

	f, err := os.Open(filepath.Join(s.root, clean))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("document %s: %w", ref, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("docstore: open %s: %w", ref, err)
	}
	return f, nil
}

// cleanFolder keeps the folder structure but drops empty and dot segments.
func cleanFolder(folder string) string {
	var parts []string
	for _, seg := range strings.Split(filepath.ToSlash(folder), "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		parts = append(parts, sanitize(seg))
	}
	return path.Join(parts...)
}

func sanitize(s string) string {
	s = filepath.Base(strings.TrimSpace(s))
	s = strings.Trim(unsafeChars.ReplaceAllString(s, "_"), "._")
	if s == "" {
		return "document"
	}
	return s
}
