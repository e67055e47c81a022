// Package storage persists the document to disk as JSON. Saves are atomic
// (write to a temp file, then rename) so a crash mid-write never corrupts
// the document on disk.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sld/diagram"
)

// ErrLoadFailed wraps load errors for callers that want to warn the user
// that a fresh document was substituted for an unreadable one.
var ErrLoadFailed = errors.New("storage: could not load document")

// Store reads and writes the document at a fixed path.
type Store struct {
	path string
	log  *slog.Logger
}

// NewStore builds a store for path. A nil logger defaults to slog's.
func NewStore(path string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{path: path, log: log}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document from disk. A missing file yields a fresh default
// document with no error. An unreadable or corrupt file also yields a fresh
// document, but with an ErrLoadFailed-wrapped error so the caller can avoid
// silently overwriting the original on the next save.
func (s *Store) Load() (*diagram.Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Info("no document on disk, starting fresh", "path", s.path)
		return diagram.NewDocument(), nil
	}
	if err != nil {
		return diagram.NewDocument(), fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	var doc diagram.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return diagram.NewDocument(), fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	if len(doc.Projects) == 0 {
		return diagram.NewDocument(), fmt.Errorf("%w: document has no projects", ErrLoadFailed)
	}
	for _, p := range doc.Projects {
		if len(p.Pages) == 0 {
			return diagram.NewDocument(), fmt.Errorf("%w: project %s has no pages", ErrLoadFailed, p.ID)
		}
		for _, page := range p.Pages {
			if page == nil {
				return diagram.NewDocument(), fmt.Errorf("%w: project %s has a null page", ErrLoadFailed, p.ID)
			}
		}
	}
	doc.RepairActive()

	for _, p := range doc.Projects {
		for _, page := range p.Pages {
			if errs := diagram.Validate(page.Items); len(errs) > 0 {
				s.log.Warn("loaded page has problems",
					"page", page.ID, "count", len(errs), "first", errs[0].Error())
			}
		}
	}
	return &doc, nil
}

// Save writes the document atomically.
func (s *Store) Save(doc *diagram.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".sld-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	s.log.Debug("document saved", "path", s.path, "bytes", len(data))
	return nil
}
