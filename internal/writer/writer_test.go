package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/schemabook/internal/logging"
	"github.com/vvka-141/schemabook/internal/schema"
	"github.com/vvka-141/schemabook/pkg/schemabook"
)

func sampleObject() *schemabook.ObjectDefinition {
	return &schemabook.ObjectDefinition{
		ID:          schema.ObjectID("Account"),
		Name:        "Account",
		Label:       "Account",
		Description: "Customer accounts",
		Fields: []schemabook.FieldDefinition{
			{Name: "Id", Type: schemabook.FieldTypeID, Label: "ID", Required: true},
			{Name: "Industry", Type: schemabook.FieldTypePicklist, Label: "Industry",
				PicklistValues: []string{"Technology", "Finance"}},
		},
		Relationships: []schemabook.RelationshipDefinition{
			{Name: "PrimaryContact", Type: schemabook.RelationshipLookup, Target: "Contact",
				Cardinality: "many-to-one"},
		},
	}
}

func TestWrite_CanonicalDocument(t *testing.T) {
	dir := t.TempDir()
	w := New(logging.NewNullLogger())

	path, err := w.Write(dir, sampleObject())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Account.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `{
  "name": "Account",
  "label": "Account",
  "description": "Customer accounts",
  "fields": [
    {
      "name": "Id",
      "type": "id",
      "label": "ID",
      "required": true
    },
    {
      "name": "Industry",
      "type": "picklist",
      "label": "Industry",
      "required": false,
      "picklistValues": [
        "Technology",
        "Finance"
      ]
    }
  ],
  "relationships": [
    {
      "name": "PrimaryContact",
      "type": "lookup",
      "target": "Contact",
      "cardinality": "many-to-one"
    }
  ]
}
`
	assert.Equal(t, want, string(data))
}

func TestWrite_Idempotent(t *testing.T) {
	dir := t.TempDir()
	w := New(logging.NewNullLogger())

	path, err := w.Write(dir, sampleObject())
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = w.Write(dir, sampleObject())
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeat writes must be byte-identical")
}

func TestWrite_EmptyCollectionsAsArrays(t *testing.T) {
	dir := t.TempDir()
	w := New(logging.NewNullLogger())
	obj := &schemabook.ObjectDefinition{
		ID:            schema.ObjectID("Bare"),
		Name:          "Bare",
		Label:         "Bare",
		Fields:        []schemabook.FieldDefinition{},
		Relationships: []schemabook.RelationshipDefinition{},
	}

	path, err := w.Write(dir, obj)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"fields": []`)
	assert.Contains(t, string(data), `"relationships": []`)
	assert.NotContains(t, string(data), "null")
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := New(logging.NewNullLogger())

	require.NoError(t, w.EnsureDir(dir))
	require.NoError(t, w.EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDocumentFilename_PlainName(t *testing.T) {
	obj := sampleObject()
	assert.Equal(t, "Account.json", DocumentFilename(obj))
}

func TestDocumentFilename_SanitizedNamesCannotCollide(t *testing.T) {
	a := &schemabook.ObjectDefinition{ID: schema.ObjectID("Sales/Orders"), Name: "Sales/Orders"}
	b := &schemabook.ObjectDefinition{ID: schema.ObjectID("Sales:Orders"), Name: "Sales:Orders"}

	fa := DocumentFilename(a)
	fb := DocumentFilename(b)

	assert.NotContains(t, fa, "/")
	assert.NotContains(t, fb, ":")
	assert.NotEqual(t, fa, fb, "distinct names must map to distinct documents")
}

func TestDocumentFilename_Deterministic(t *testing.T) {
	obj := &schemabook.ObjectDefinition{ID: schema.ObjectID("Sales/Orders"), Name: "Sales/Orders"}
	assert.Equal(t, DocumentFilename(obj), DocumentFilename(obj))
}

func TestReadDocument_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := New(logging.NewNullLogger())
	original := sampleObject()

	path, err := w.Write(dir, original)
	require.NoError(t, err)

	restored, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestReadDocument_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := ReadDocument(path)
	assert.Error(t, err)
}

func TestReadDocument_MissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"label":"x"}`), 0644))

	_, err := ReadDocument(path)
	assert.Error(t, err)
}

func TestListDocuments_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	w := New(logging.NewNullLogger())

	for _, name := range []string{"Zebra", "Alpha"} {
		obj := &schemabook.ObjectDefinition{ID: schema.ObjectID(name), Name: name, Label: name,
			Fields: []schemabook.FieldDefinition{}, Relationships: []schemabook.RelationshipDefinition{}}
		_, err := w.Write(dir, obj)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a document"), 0644))

	paths, err := ListDocuments(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "Alpha.json"), paths[0])
	assert.Equal(t, filepath.Join(dir, "Zebra.json"), paths[1])
}

func TestPrune_RemovesOnlyStaleDocuments(t *testing.T) {
	dir := t.TempDir()
	w := New(logging.NewNullLogger())

	keepObj := sampleObject()
	_, err := w.Write(dir, keepObj)
	require.NoError(t, err)

	stale := &schemabook.ObjectDefinition{ID: schema.ObjectID("Old"), Name: "Old", Label: "Old",
		Fields: []schemabook.FieldDefinition{}, Relationships: []schemabook.RelationshipDefinition{}}
	stalePath, err := w.Write(dir, stale)
	require.NoError(t, err)

	other := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(other, []byte("keep me"), 0644))

	removed, err := w.Prune(dir, map[string]bool{DocumentFilename(keepObj): true})
	require.NoError(t, err)
	assert.Equal(t, []string{stalePath}, removed)

	assert.NoFileExists(t, stalePath)
	assert.FileExists(t, filepath.Join(dir, "Account.json"))
	assert.FileExists(t, other)
}
