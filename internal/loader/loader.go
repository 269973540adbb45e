package loader

import (
	"fmt"

	"github.com/vvka-141/schemabook/internal/schema"
	"github.com/vvka-141/schemabook/internal/workbook"
	"github.com/vvka-141/schemabook/internal/writer"
	"github.com/vvka-141/schemabook/pkg/schemabook"
)

// Options configures a MetadataLoader.
type Options struct {
	// OutputDir is where object documents are written.
	OutputDir string

	// TypeFallback is substituted for unrecognized field type values.
	TypeFallback schemabook.FieldType

	// SheetOverrides maps exact normalized sheet names to a row kind,
	// bypassing the built-in sheet-name heuristic.
	SheetOverrides map[string]schema.RowKind

	// InjectStandardFields appends Id/Name fields to objects lacking them.
	InjectStandardFields bool

	// Prune removes stale documents from OutputDir after a successful load.
	Prune bool

	Log schemabook.Logger
}

// MetadataLoader implements schemabook.Loader. It orchestrates the
// read -> classify -> assemble -> validate -> write pipeline and owns the
// resulting catalog for the process lifetime.
//
// The pipeline is single-threaded and synchronous; one Load call runs to
// completion with no suspension points. Concurrent Load calls on the same
// instance are not supported.
type MetadataLoader struct {
	opts Options

	// catalog is nil until the first successful load (Empty state).
	// It is only ever replaced wholesale, never mutated in place.
	catalog *schemabook.Catalog
	issues  []schemabook.Issue
	summary schemabook.LoadSummary
}

var _ schemabook.Loader = (*MetadataLoader)(nil)

// New creates a MetadataLoader. Unset options get defaults: the standard
// output directory, the text type fallback, standard-field injection on,
// and a no-op logger.
func New(opts Options) *MetadataLoader {
	if opts.OutputDir == "" {
		opts.OutputDir = schemabook.DefaultOutputDir
	}
	if opts.TypeFallback == "" {
		opts.TypeFallback = schemabook.DefaultTypeFallback
	}
	if opts.Log == nil {
		opts.Log = nullLogger{}
	}
	return &MetadataLoader{opts: opts}
}

// Load runs the full pipeline against the workbook at path.
//
// Only an unavailable source is fatal: the method returns the wrapped error
// and leaves the prior catalog untouched. Every other anomaly is recorded
// as an issue while the load proceeds. On completion the new catalog
// replaces the old one atomically; it contains exactly the objects whose
// documents were written. Returns true iff at least one object was written.
func (l *MetadataLoader) Load(path string) (bool, error) {
	sheets, err := workbook.Read(path)
	if err != nil {
		l.opts.Log.Error("cannot open workbook: %v", err)
		return false, err
	}

	var issues []schemabook.Issue

	// Classify every row in workbook order.
	classifier := &schema.Classifier{
		TypeFallback:   l.opts.TypeFallback,
		SheetOverrides: l.opts.SheetOverrides,
		Log:            l.opts.Log,
	}
	var rows []schema.Classified
	for _, sheet := range sheets {
		kind := classifier.SheetKind(sheet.Name)
		if kind == schema.KindSkip {
			l.opts.Log.Verbose("ignoring sheet %q: not an objects/fields/relationships sheet", sheet.Name)
			continue
		}
		for _, row := range sheet.Rows {
			classified, rowIssues := classifier.Classify(sheet.Name, row)
			issues = append(issues, rowIssues...)
			if classified.Kind != schema.KindSkip {
				rows = append(rows, classified)
			}
		}
	}

	// Assemble and validate.
	assembler := &schema.Assembler{
		Options: schema.AssembleOptions{InjectStandardFields: l.opts.InjectStandardFields},
		Log:     l.opts.Log,
	}
	catalog, assembleIssues := assembler.Assemble(rows)
	issues = append(issues, assembleIssues...)

	validationIssues := schema.Validate(catalog)
	issues = append(issues, validationIssues...)
	excluded := schema.ExcludedObjects(validationIssues)

	// Write surviving objects. A failed write excludes that object and is
	// recorded, but never aborts the remaining writes.
	w := writer.New(l.opts.Log)
	validationExcluded := excluded
	if err := w.EnsureDir(l.opts.OutputDir); err != nil {
		// Without an output directory nothing can be written; treat every
		// object as a write failure and finish the load empty-handed.
		issues = append(issues, schemabook.Issue{
			Severity: schemabook.SeverityError,
			Message:  err.Error(),
		})
		excluded = allObjects(catalog)
	}

	written := make(map[string]bool)
	final := schemabook.NewCatalog()
	var summary schemabook.LoadSummary
	for _, name := range catalog.Names() {
		if excluded[name] {
			l.opts.Log.Verbose("excluding object %s from output", name)
			summary.Excluded++
			if !validationExcluded[name] {
				summary.WriteFailures++
			}
			continue
		}
		obj, _ := catalog.Get(name)
		if _, err := w.Write(l.opts.OutputDir, obj); err != nil {
			issues = append(issues, schemabook.Issue{
				Severity: schemabook.SeverityError,
				Object:   name,
				Message:  fmt.Sprintf("write failed: %v", err),
			})
			summary.Excluded++
			summary.WriteFailures++
			continue
		}
		written[writer.DocumentFilename(obj)] = true
		final.Add(obj)
		summary.Objects++
		summary.Fields += len(obj.Fields)
		summary.Relationships += len(obj.Relationships)
	}

	if l.opts.Prune && summary.Objects > 0 {
		if _, err := w.Prune(l.opts.OutputDir, written); err != nil {
			issues = append(issues, schemabook.Issue{
				Severity: schemabook.SeverityWarning,
				Message:  err.Error(),
			})
		}
	}

	summary.Issues = len(issues)

	// Atomic replacement: the new catalog becomes visible only now, fully
	// built. A caller querying between loads never sees a partial state.
	l.catalog = final
	l.issues = issues
	l.summary = summary

	l.opts.Log.Info("loaded %s", summary)
	return summary.Objects > 0, nil
}

// LoadDocuments repopulates the catalog from documents previously written
// to dir. Unparseable documents are recorded as issues and skipped.
func (l *MetadataLoader) LoadDocuments(dir string) error {
	paths, err := writer.ListDocuments(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", schemabook.ErrSourceUnavailable, err)
	}

	var issues []schemabook.Issue
	catalog := schemabook.NewCatalog()
	var summary schemabook.LoadSummary
	for _, path := range paths {
		obj, err := writer.ReadDocument(path)
		if err != nil {
			issues = append(issues, schemabook.Issue{
				Severity: schemabook.SeverityWarning,
				Message:  err.Error(),
			})
			continue
		}
		if !catalog.Add(obj) {
			issues = append(issues, schemabook.Issue{
				Severity: schemabook.SeverityWarning,
				Object:   obj.Name,
				Message:  "duplicate object document ignored: " + path,
			})
			continue
		}
		summary.Objects++
		summary.Fields += len(obj.Fields)
		summary.Relationships += len(obj.Relationships)
	}
	summary.Issues = len(issues)

	l.catalog = catalog
	l.issues = issues
	l.summary = summary
	return nil
}

// ObjectNames returns cataloged object names in first-assembled order.
func (l *MetadataLoader) ObjectNames() []string {
	if l.catalog == nil {
		return []string{}
	}
	return l.catalog.Names()
}

// ObjectFields returns the named object's fields. Absent names yield an
// empty slice, not an error.
func (l *MetadataLoader) ObjectFields(name string) []schemabook.FieldDefinition {
	obj, ok := l.get(name)
	if !ok {
		return []schemabook.FieldDefinition{}
	}
	fields := make([]schemabook.FieldDefinition, len(obj.Fields))
	copy(fields, obj.Fields)
	return fields
}

// ObjectRelationships returns the named object's relationships.
// Same absent-name policy as ObjectFields.
func (l *MetadataLoader) ObjectRelationships(name string) []schemabook.RelationshipDefinition {
	obj, ok := l.get(name)
	if !ok {
		return []schemabook.RelationshipDefinition{}
	}
	rels := make([]schemabook.RelationshipDefinition, len(obj.Relationships))
	copy(rels, obj.Relationships)
	return rels
}

// FieldNames returns just the API names of the object's fields.
func (l *MetadataLoader) FieldNames(object string) []string {
	fields := l.ObjectFields(object)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// FieldMetadata returns the definition of one field of one object.
func (l *MetadataLoader) FieldMetadata(object, field string) (*schemabook.FieldDefinition, bool) {
	obj, ok := l.get(object)
	if !ok {
		return nil, false
	}
	f, ok := obj.Field(field)
	if !ok {
		return nil, false
	}
	clone := *f
	return &clone, true
}

// Issues returns the issues recorded by the most recent load.
func (l *MetadataLoader) Issues() []schemabook.Issue {
	issues := make([]schemabook.Issue, len(l.issues))
	copy(issues, l.issues)
	return issues
}

// Summary reports counts from the most recent load.
func (l *MetadataLoader) Summary() schemabook.LoadSummary {
	return l.summary
}

func (l *MetadataLoader) get(name string) (*schemabook.ObjectDefinition, bool) {
	if l.catalog == nil {
		return nil, false
	}
	return l.catalog.Get(name)
}

func allObjects(c *schemabook.Catalog) map[string]bool {
	all := make(map[string]bool, c.Len())
	for _, name := range c.Names() {
		all[name] = true
	}
	return all
}

// nullLogger avoids a dependency on internal/logging for the default case.
type nullLogger struct{}

func (nullLogger) Verbose(string, ...interface{}) {}
func (nullLogger) Info(string, ...interface{})    {}
func (nullLogger) Error(string, ...interface{})   {}
