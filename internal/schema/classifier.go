package schema

import (
	"strings"

	"github.com/vvka-141/schemabook/internal/workbook"
	"github.com/vvka-141/schemabook/pkg/schemabook"
)

// RowKind tags the outcome of classifying one workbook row.
type RowKind int

const (
	// KindSkip marks a row that carries no usable schema information.
	KindSkip RowKind = iota
	KindObject
	KindField
	KindRelationship
)

// ObjectRow is a classified row from the objects sheet.
type ObjectRow struct {
	Name        string
	Label       string
	Description string
}

// FieldRow is a classified row from the fields sheet. LookupTarget is set
// when the row carries a lookup-target column; the assembler derives an
// implicit lookup relationship from it.
type FieldRow struct {
	Object       string
	Field        schemabook.FieldDefinition
	LookupTarget string
}

// RelationshipRow is a classified row from the relationships sheet.
type RelationshipRow struct {
	Object       string
	Relationship schemabook.RelationshipDefinition
}

// Classified is the tagged result of classifying one row. Exactly one of
// the payload fields is meaningful, selected by Kind.
type Classified struct {
	Kind         RowKind
	Object       ObjectRow
	Field        FieldRow
	Relationship RelationshipRow
}

// Column vocabulary. Headers are matched after workbook normalization
// (trimmed, lower-cased, whitespace collapsed), first match wins.
var (
	objectNameColumns  = []string{"object", "object name", "custom object", "name"}
	labelColumns       = []string{"label", "display label"}
	descriptionColumns = []string{"description"}

	owningObjectColumns = []string{"object", "custom object", "object name", "owning object"}
	fieldNameColumns    = []string{"field", "field name", "custom field", "api name", "name"}
	fieldTypeColumns    = []string{"type", "field type", "data type"}
	requiredColumns     = []string{"required", "is required"}
	defaultColumns      = []string{"default", "default value"}
	picklistColumns     = []string{"picklist values", "values"}
	lookupColumns       = []string{"lookup object", "reference to", "references"}

	relationshipNameColumns = []string{"relationship", "relationship name", "name"}
	relationshipTypeColumns = []string{"type", "relationship type"}
	targetColumns           = []string{"target", "target object", "related object", "parent object"}
	cardinalityColumns      = []string{"cardinality", "cardinality hint"}
)

// Classifier turns raw rows into tagged schema rows. Classification is
// lenient: anomalies are coerced or skipped with a recorded warning, never
// a hard failure. Strictness lives in the validator.
type Classifier struct {
	// TypeFallback is substituted for unrecognized field type values.
	TypeFallback schemabook.FieldType

	// SheetOverrides maps exact sheet names (normalized) to a RowKind,
	// taking precedence over the built-in name heuristic.
	SheetOverrides map[string]RowKind

	Log schemabook.Logger
}

// NewClassifier creates a Classifier with the default type fallback.
func NewClassifier(log schemabook.Logger) *Classifier {
	return &Classifier{
		TypeFallback: schemabook.DefaultTypeFallback,
		Log:          log,
	}
}

// SheetKind decides what kind of rows a sheet contains, from explicit
// overrides first, then by substring match on the normalized sheet name.
// Unrecognized sheets yield KindSkip and are ignored wholesale.
func (c *Classifier) SheetKind(sheetName string) RowKind {
	name := workbook.NormalizeHeader(sheetName)
	if kind, ok := c.SheetOverrides[name]; ok {
		return kind
	}
	switch {
	case strings.Contains(name, "relationship"):
		return KindRelationship
	case strings.Contains(name, "field"):
		return KindField
	case strings.Contains(name, "object"):
		return KindObject
	}
	return KindSkip
}

// Classify inspects one row in the context of its sheet and returns the
// tagged result plus any issues recorded along the way.
func (c *Classifier) Classify(sheetName string, row workbook.Row) (Classified, []schemabook.Issue) {
	switch c.SheetKind(sheetName) {
	case KindObject:
		return c.classifyObject(sheetName, row)
	case KindField:
		return c.classifyField(sheetName, row)
	case KindRelationship:
		return c.classifyRelationship(sheetName, row)
	}
	return Classified{Kind: KindSkip}, nil
}

func (c *Classifier) classifyObject(sheetName string, row workbook.Row) (Classified, []schemabook.Issue) {
	name := cellValue(row, objectNameColumns)
	if name == "" {
		return skip(sheetName, "object row has no name column value")
	}

	label := cellValue(row, labelColumns)
	if label == "" {
		label = name
	}

	return Classified{
		Kind: KindObject,
		Object: ObjectRow{
			Name:        name,
			Label:       label,
			Description: cellValue(row, descriptionColumns),
		},
	}, nil
}

func (c *Classifier) classifyField(sheetName string, row workbook.Row) (Classified, []schemabook.Issue) {
	owner := cellValue(row, owningObjectColumns)
	if owner == "" {
		return skip(sheetName, "field row has no owning-object column value")
	}
	name := fieldIdentity(row)
	if name == "" {
		return skip(sheetName, "field row has no field-name column value")
	}

	var issues []schemabook.Issue

	rawType := cellValue(row, fieldTypeColumns)
	fieldType, ok := schemabook.ParseFieldType(rawType)
	if !ok {
		fieldType = c.TypeFallback
		issues = append(issues, schemabook.Issue{
			Severity: schemabook.SeverityWarning,
			Object:   owner,
			Field:    name,
			Message:  coercionMessage(rawType, string(fieldType)),
		})
		c.Log.Verbose("coerced field type %q to %q for %s.%s", rawType, fieldType, owner, name)
	}

	label := cellValue(row, labelColumns)
	if label == "" {
		label = name
	}

	field := schemabook.FieldDefinition{
		Name:     name,
		Type:     fieldType,
		Label:    label,
		Required: parseBool(cellValue(row, requiredColumns)),
		Default:  cellValue(row, defaultColumns),
	}

	if field.Type == schemabook.FieldTypePicklist {
		field.PicklistValues = splitPicklist(cellValue(row, picklistColumns))
	}

	lookupTarget := cellValue(row, lookupColumns)
	if lookupTarget != "" {
		field.ReferenceTo = lookupTarget
		if field.Type != schemabook.FieldTypeReference && field.Type != schemabook.FieldTypeID {
			c.Log.Verbose("field %s.%s has lookup target %q, treating as reference", owner, name, lookupTarget)
			field.Type = schemabook.FieldTypeReference
		}
	}

	return Classified{
		Kind: KindField,
		Field: FieldRow{
			Object:       owner,
			Field:        field,
			LookupTarget: lookupTarget,
		},
	}, issues
}

func (c *Classifier) classifyRelationship(sheetName string, row workbook.Row) (Classified, []schemabook.Issue) {
	owner := cellValue(row, owningObjectColumns)
	if owner == "" {
		return skip(sheetName, "relationship row has no owning-object column value")
	}
	name := cellValue(row, relationshipNameColumns)
	if name == "" {
		return skip(sheetName, "relationship row has no name column value")
	}

	var issues []schemabook.Issue

	rawType := cellValue(row, relationshipTypeColumns)
	relType, ok := schemabook.ParseRelationshipType(rawType)
	if !ok {
		relType = schemabook.RelationshipLookup
		issues = append(issues, schemabook.Issue{
			Severity: schemabook.SeverityWarning,
			Object:   owner,
			Field:    name,
			Message:  coercionMessage(rawType, string(relType)),
		})
		c.Log.Verbose("coerced relationship type %q to %q for %s.%s", rawType, relType, owner, name)
	}

	return Classified{
		Kind: KindRelationship,
		Relationship: RelationshipRow{
			Object: owner,
			Relationship: schemabook.RelationshipDefinition{
				Name:        name,
				Type:        relType,
				Target:      cellValue(row, targetColumns),
				Cardinality: cellValue(row, cardinalityColumns),
			},
		},
	}, issues
}

// fieldIdentity resolves the field name with one subtlety: on a fields sheet
// both "object" and "name" columns may exist, so a bare "name" header must
// not shadow the owning object column.
func fieldIdentity(row workbook.Row) string {
	for _, col := range fieldNameColumns {
		if col == "name" {
			// Only fall back to "name" when no dedicated field column exists.
			if _, hasField := row["field"]; hasField {
				continue
			}
			if _, hasFieldName := row["field name"]; hasFieldName {
				continue
			}
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			return v
		}
	}
	return ""
}

func skip(sheetName, reason string) (Classified, []schemabook.Issue) {
	return Classified{Kind: KindSkip}, []schemabook.Issue{{
		Severity: schemabook.SeverityWarning,
		Message:  "skipped row in sheet " + sheetName + ": " + reason,
	}}
}

func coercionMessage(raw, fallback string) string {
	if strings.TrimSpace(raw) == "" {
		return "missing type, coerced to " + fallback
	}
	return "unknown type " + raw + ", coerced to " + fallback
}

// cellValue returns the first non-empty cell among the candidate columns.
func cellValue(row workbook.Row, columns []string) string {
	for _, col := range columns {
		if v := strings.TrimSpace(row[col]); v != "" {
			return v
		}
	}
	return ""
}

// parseBool interprets spreadsheet-style truthy values.
func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "yes", "y", "1", "required", "x":
		return true
	}
	return false
}

// splitPicklist splits a delimited picklist cell into ordered values.
// Semicolons take precedence over commas so values may contain commas when
// semicolon-delimited.
func splitPicklist(raw string) []string {
	if raw == "" {
		return nil
	}
	sep := ","
	if strings.Contains(raw, ";") {
		sep = ";"
	}
	var values []string
	for _, v := range strings.Split(raw, sep) {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
