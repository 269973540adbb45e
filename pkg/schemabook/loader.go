package schemabook

// Loader is the main interface for converting a schema workbook into
// per-object metadata documents and querying the result.
//
// A Loader starts Empty: query operations return empty sequences until the
// first successful Load. Each Load builds a fresh catalog and replaces the
// previous one atomically; a failed Load leaves the prior catalog untouched.
//
// Implementations are not safe for concurrent Load calls on the same
// instance. Callers needing concurrent loads must use separate Loader
// instances or serialize externally.
type Loader interface {
	// Load runs the full read/classify/assemble/validate/write pipeline
	// against the workbook at path. It returns true iff at least one object
	// was successfully written. The error is non-nil only when the source
	// itself is unavailable (wraps ErrSourceUnavailable); all other
	// anomalies are accumulated as Issues.
	Load(path string) (bool, error)

	// LoadDocuments repopulates the catalog from previously written object
	// documents in dir, without touching any workbook. Documents that fail
	// to parse are recorded as Issues and skipped.
	LoadDocuments(dir string) error

	// ObjectNames returns the names of cataloged objects in the order they
	// were first assembled.
	ObjectNames() []string

	// ObjectFields returns the fields of the named object in sheet order.
	// Returns an empty slice, not an error, when the name is absent.
	ObjectFields(name string) []FieldDefinition

	// ObjectRelationships returns the relationships of the named object.
	// Same absent-name policy as ObjectFields.
	ObjectRelationships(name string) []RelationshipDefinition

	// FieldNames returns just the API names of the named object's fields.
	FieldNames(object string) []string

	// FieldMetadata returns the definition of one field of one object.
	FieldMetadata(object, field string) (*FieldDefinition, bool)

	// Issues returns every issue recorded by the most recent Load or
	// LoadDocuments call, in the order encountered.
	Issues() []Issue

	// Summary reports counts from the most recent completed load.
	Summary() LoadSummary
}
