package schemabook

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FieldType enumerates the recognized data types for object fields.
// Parsing is case-insensitive; unrecognized values are coerced to the
// configured fallback during classification and reported as a warning.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeNumber    FieldType = "number"
	FieldTypeBoolean   FieldType = "boolean"
	FieldTypeDate      FieldType = "date"
	FieldTypeDatetime  FieldType = "datetime"
	FieldTypePicklist  FieldType = "picklist"
	FieldTypeReference FieldType = "reference"
	FieldTypeID        FieldType = "id"
	FieldTypeCurrency  FieldType = "currency"
	FieldTypeEmail     FieldType = "email"
	FieldTypePhone     FieldType = "phone"
	FieldTypeURL       FieldType = "url"
)

// fieldTypeAliases maps legacy spellings seen in source workbooks to the
// canonical enum. "string" is what older exports call a plain text field.
var fieldTypeAliases = map[string]FieldType{
	"string":    FieldTypeText,
	"textarea":  FieldTypeText,
	"int":       FieldTypeNumber,
	"integer":   FieldTypeNumber,
	"decimal":   FieldTypeNumber,
	"double":    FieldTypeNumber,
	"bool":      FieldTypeBoolean,
	"checkbox":  FieldTypeBoolean,
	"date/time": FieldTypeDatetime,
	"lookup":    FieldTypeReference,
}

var fieldTypes = map[string]FieldType{
	string(FieldTypeText):      FieldTypeText,
	string(FieldTypeNumber):    FieldTypeNumber,
	string(FieldTypeBoolean):   FieldTypeBoolean,
	string(FieldTypeDate):      FieldTypeDate,
	string(FieldTypeDatetime):  FieldTypeDatetime,
	string(FieldTypePicklist):  FieldTypePicklist,
	string(FieldTypeReference): FieldTypeReference,
	string(FieldTypeID):        FieldTypeID,
	string(FieldTypeCurrency):  FieldTypeCurrency,
	string(FieldTypeEmail):     FieldTypeEmail,
	string(FieldTypePhone):     FieldTypePhone,
	string(FieldTypeURL):       FieldTypeURL,
}

// ParseFieldType resolves a raw cell value to a FieldType.
// Matching is case-insensitive and tolerates known legacy aliases.
// Returns false when the value is not a recognized type.
func ParseFieldType(raw string) (FieldType, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if t, ok := fieldTypes[key]; ok {
		return t, true
	}
	if t, ok := fieldTypeAliases[key]; ok {
		return t, true
	}
	return "", false
}

// IsValid reports whether t is one of the canonical enumerated types.
func (t FieldType) IsValid() bool {
	_, ok := fieldTypes[string(t)]
	return ok
}

// RelationshipType enumerates the recognized relationship kinds.
type RelationshipType string

const (
	RelationshipLookup       RelationshipType = "lookup"
	RelationshipMasterDetail RelationshipType = "master-detail"
	RelationshipManyToMany   RelationshipType = "many-to-many"
)

var relationshipTypeAliases = map[string]RelationshipType{
	"lookup":        RelationshipLookup,
	"parent":        RelationshipLookup,
	"master-detail": RelationshipMasterDetail,
	"masterdetail":  RelationshipMasterDetail,
	"master_detail": RelationshipMasterDetail,
	"many-to-many":  RelationshipManyToMany,
	"manytomany":    RelationshipManyToMany,
	"many_to_many":  RelationshipManyToMany,
	"m2m":           RelationshipManyToMany,
}

// ParseRelationshipType resolves a raw cell value to a RelationshipType.
// Matching is case-insensitive and tolerates common alternate spellings.
func ParseRelationshipType(raw string) (RelationshipType, bool) {
	t, ok := relationshipTypeAliases[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}

// IsValid reports whether t is one of the canonical relationship kinds.
func (t RelationshipType) IsValid() bool {
	switch t {
	case RelationshipLookup, RelationshipMasterDetail, RelationshipManyToMany:
		return true
	}
	return false
}

// FieldDefinition describes one typed attribute of an object.
// The JSON tags define the canonical document key order.
type FieldDefinition struct {
	Name           string    `json:"name"`
	Type           FieldType `json:"type"`
	Label          string    `json:"label,omitempty"`
	Required       bool      `json:"required"`
	Default        string    `json:"default,omitempty"`
	PicklistValues []string  `json:"picklistValues,omitempty"`
	ReferenceTo    string    `json:"referenceTo,omitempty"`
}

// RelationshipDefinition describes a typed, directed reference from the
// owning object to a target object.
type RelationshipDefinition struct {
	Name        string           `json:"name"`
	Type        RelationshipType `json:"type"`
	Target      string           `json:"target"`
	Cardinality string           `json:"cardinality,omitempty"`
}

// ObjectDefinition is the fully assembled metadata for one object.
// ID is a deterministic UUID v5 derived from the object name; it is internal
// identity (filename collision handling) and is not serialized into documents.
type ObjectDefinition struct {
	ID            uuid.UUID                `json:"-"`
	Name          string                   `json:"name"`
	Label         string                   `json:"label"`
	Description   string                   `json:"description,omitempty"`
	Fields        []FieldDefinition        `json:"fields"`
	Relationships []RelationshipDefinition `json:"relationships"`
}

// Field returns the field with the given API name, if present.
func (o *ObjectDefinition) Field(name string) (*FieldDefinition, bool) {
	for i := range o.Fields {
		if o.Fields[i].Name == name {
			return &o.Fields[i], true
		}
	}
	return nil, false
}

// Severity classifies a validation issue.
type Severity string

const (
	// SeverityWarning marks a recoverable anomaly; the object is still written.
	SeverityWarning Severity = "warning"

	// SeverityError marks an anomaly that excludes the owning object from the
	// written output. The load as a whole still proceeds.
	SeverityError Severity = "error"
)

// Issue is one recorded anomaly from classification, assembly, validation,
// or writing. Issues are accumulated per load and never silently dropped.
type Issue struct {
	Severity Severity
	Object   string // owning object name, empty for row-level issues
	Field    string // field or relationship name, if applicable
	Message  string
}

func (i Issue) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", i.Severity)
	if i.Object != "" {
		fmt.Fprintf(&b, " %s", i.Object)
		if i.Field != "" {
			fmt.Fprintf(&b, ".%s", i.Field)
		}
		b.WriteString(":")
	}
	b.WriteString(" ")
	b.WriteString(i.Message)
	return b.String()
}

// HasErrors reports whether any issue in the slice has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Catalog maps object names to their definitions while preserving the order
// in which objects were first assembled. A Catalog is built once per load
// pass and never mutated after validation.
type Catalog struct {
	order   []string
	objects map[string]*ObjectDefinition
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{objects: make(map[string]*ObjectDefinition)}
}

// Add inserts a new object definition. It returns false if an object with
// the same name is already present (names are case-sensitive identity).
func (c *Catalog) Add(obj *ObjectDefinition) bool {
	if _, exists := c.objects[obj.Name]; exists {
		return false
	}
	c.objects[obj.Name] = obj
	c.order = append(c.order, obj.Name)
	return true
}

// Get returns the object definition for name, if present.
func (c *Catalog) Get(name string) (*ObjectDefinition, bool) {
	obj, ok := c.objects[name]
	return obj, ok
}

// Has reports whether an object with the given name exists.
func (c *Catalog) Has(name string) bool {
	_, ok := c.objects[name]
	return ok
}

// Remove deletes the object with the given name, preserving the relative
// order of the remaining objects.
func (c *Catalog) Remove(name string) {
	if _, ok := c.objects[name]; !ok {
		return
	}
	delete(c.objects, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Names returns object names in first-assembled order.
// The returned slice is a copy.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Len returns the number of objects in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// LoadSummary reports what one load pass produced.
type LoadSummary struct {
	Objects       int // objects written
	Fields        int // fields across written objects
	Relationships int // relationships across written objects
	Excluded      int // objects excluded by validation errors or failed writes
	WriteFailures int // objects that survived validation but failed to write
	Issues        int // total recorded issues
}

func (s LoadSummary) String() string {
	return fmt.Sprintf("%d objects, %d fields, %d relationships (%d excluded, %d issues)",
		s.Objects, s.Fields, s.Relationships, s.Excluded, s.Issues)
}
