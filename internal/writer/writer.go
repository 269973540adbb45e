package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/schemabook/pkg/schemabook"
)

// Writer serializes object definitions to canonical on-disk documents and
// manages the output directory.
type Writer struct {
	Log schemabook.Logger
}

// New creates a Writer.
func New(log schemabook.Logger) *Writer {
	return &Writer{Log: log}
}

// EnsureDir creates the output directory if absent. Idempotent.
func (w *Writer) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}

// Write serializes obj to its document in dir and returns the written path.
// A pre-existing document for the same object name is overwritten; each run
// fully regenerates its output set.
//
// The document is canonical: fixed key order (name, label, description,
// fields, relationships), two-space indent, trailing newline, no timestamps.
// Loading the same workbook twice produces byte-identical documents.
func (w *Writer) Write(dir string, obj *schemabook.ObjectDefinition) (string, error) {
	data, err := Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("serializing object %s: %w", obj.Name, err)
	}

	path := filepath.Join(dir, DocumentFilename(obj))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing document for object %s: %w", obj.Name, err)
	}
	w.Log.Verbose("wrote %s", path)
	return path, nil
}

// Prune removes documents in dir that the current run did not produce.
// keep maps document base filenames to true. Only files with the document
// extension are considered; anything else in the directory is left alone.
// Returns the removed paths.
func (w *Writer) Prune(dir string, keep map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory %s: %w", dir, err)
	}

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), schemabook.DocumentExtension) {
			continue
		}
		if keep[entry.Name()] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("pruning %s: %w", path, err)
		}
		w.Log.Verbose("pruned stale document %s", path)
		removed = append(removed, path)
	}
	return removed, nil
}

// Marshal produces the canonical document bytes for an object.
func Marshal(obj *schemabook.ObjectDefinition) ([]byte, error) {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DocumentFilename derives the document filename for an object.
//
// The common case is the exact object name plus the document extension.
// Names containing filesystem-hostile characters are sanitized, and because
// sanitization is lossy, the object's deterministic ID is appended so two
// distinct names can never collide on the same document.
func DocumentFilename(obj *schemabook.ObjectDefinition) string {
	sanitized := sanitizeName(obj.Name)
	if sanitized == obj.Name {
		return obj.Name + schemabook.DocumentExtension
	}
	return sanitized + "-" + shortID(obj) + schemabook.DocumentExtension
}

// sanitizeName replaces characters that are invalid or troublesome in
// filenames on common filesystems. The result may collide across names,
// which is why DocumentFilename appends the object ID after sanitizing.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20, strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	sanitized := strings.TrimSpace(b.String())
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		return "object"
	}
	return sanitized
}

func shortID(obj *schemabook.ObjectDefinition) string {
	return strings.ReplaceAll(obj.ID.String(), "-", "")[:8]
}
