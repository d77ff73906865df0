package models

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrLoad wraps every failure to read or accept an image from disk.
	ErrLoad = errors.New("image load failed")
	// ErrSave wraps every failure to write image bytes to disk.
	ErrSave = errors.New("image save failed")
)

// ImageDocument is the in-memory representation of one opened image.
type ImageDocument struct {
	OriginalBytes []byte
	Extension     string
	Path          string
}

// ImageStore is the single authoritative holder of the loaded document.
// OriginalBytes is never replaced by a filtered result; accessors return
// copies so callers cannot mutate it.
type ImageStore struct {
	mu       sync.RWMutex
	document *ImageDocument
}

// NewImageStore creates an empty store.
func NewImageStore() *ImageStore {
	return &ImageStore{}
}

// LoadBytes replaces the current document with data read from path. On
// failure the existing document is left untouched.
func (s *ImageStore) LoadBytes(data []byte, extension, path string) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrLoad, path)
	}

	doc := &ImageDocument{
		OriginalBytes: cloneBytes(data),
		Extension:     strings.ToLower(strings.TrimPrefix(extension, ".")),
		Path:          path,
	}

	s.mu.Lock()
	s.document = doc
	s.mu.Unlock()

	return nil
}

// Save writes exactly data to path. The document is never modified.
func (s *ImageStore) Save(data []byte, path string) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrSave, path, err)
	}
	return nil
}

// Clear discards the document.
func (s *ImageStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = nil
}

// HasDocument reports whether an image is currently loaded.
func (s *ImageStore) HasDocument() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.document != nil
}

// CurrentBytes returns a copy of the original bytes of the loaded document.
func (s *ImageStore) CurrentBytes() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.document == nil {
		return nil, false
	}
	return cloneBytes(s.document.OriginalBytes), true
}

// Extension returns the lower-case extension (without dot) of the loaded document.
func (s *ImageStore) Extension() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.document == nil {
		return "", false
	}
	return s.document.Extension, true
}

// Document returns a snapshot of the loaded document.
func (s *ImageStore) Document() (ImageDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.document == nil {
		return ImageDocument{}, false
	}
	doc := *s.document
	doc.OriginalBytes = cloneBytes(doc.OriginalBytes)
	return doc, true
}

// Size decodes the dimensions of the current bytes. It reports false when no
// document is loaded or the header cannot be decoded.
func (s *ImageStore) Size() (image.Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.document == nil {
		return image.Point{}, false
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(s.document.OriginalBytes))
	if err != nil {
		return image.Point{}, false
	}
	return image.Pt(cfg.Width, cfg.Height), true
}

// ExtensionOf returns the lower-case extension of path without the leading dot.
func ExtensionOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func cloneBytes(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
