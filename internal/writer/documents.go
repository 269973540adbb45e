package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/schemabook/internal/schema"
	"github.com/vvka-141/schemabook/pkg/schemabook"
)

// ReadDocument parses a previously written object document.
// The object's deterministic ID is recomputed from its name; it is not
// stored in the document itself.
func ReadDocument(path string) (*schemabook.ObjectDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}

	var obj schemabook.ObjectDefinition
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	if obj.Name == "" {
		return nil, fmt.Errorf("document %s has no object name", path)
	}

	if obj.Fields == nil {
		obj.Fields = []schemabook.FieldDefinition{}
	}
	if obj.Relationships == nil {
		obj.Relationships = []schemabook.RelationshipDefinition{}
	}
	obj.ID = schema.ObjectID(obj.Name)
	return &obj, nil
}

// ListDocuments returns the paths of all object documents in dir, sorted by
// filename for deterministic iteration.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), schemabook.DocumentExtension) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
