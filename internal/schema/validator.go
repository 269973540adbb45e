package schema

import (
	"fmt"

	"github.com/vvka-141/schemabook/pkg/schemabook"
)

// Validate checks structural invariants across an assembled catalog and
// returns the issues found. It never mutates the catalog.
//
// Severity policy:
//   - error: the owning object must be excluded from written output
//     (empty names, invalid types, duplicate names, dangling relationship
//     targets)
//   - warning: the object is still written (picklist without values,
//     reference field without a target hint)
//
// The assembler already guarantees several of these by construction; the
// validator re-asserts them so catalogs from other sources (for example
// documents read back from disk) get the same treatment.
func Validate(catalog *schemabook.Catalog) []schemabook.Issue {
	var issues []schemabook.Issue

	report := func(severity schemabook.Severity, object, field, format string, args ...interface{}) {
		issues = append(issues, schemabook.Issue{
			Severity: severity,
			Object:   object,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	for _, name := range catalog.Names() {
		obj, _ := catalog.Get(name)

		if obj.Name == "" {
			report(schemabook.SeverityError, name, "", "object name is empty")
		}

		seenFields := make(map[string]bool, len(obj.Fields))
		for _, field := range obj.Fields {
			switch {
			case field.Name == "":
				report(schemabook.SeverityError, name, "", "field with empty name")
			case seenFields[field.Name]:
				report(schemabook.SeverityError, name, field.Name, "duplicate field name")
			default:
				seenFields[field.Name] = true
			}

			if !field.Type.IsValid() {
				report(schemabook.SeverityError, name, field.Name, "unrecognized field type %q", field.Type)
			}

			if field.Type == schemabook.FieldTypePicklist && len(field.PicklistValues) == 0 {
				report(schemabook.SeverityWarning, name, field.Name, "picklist field has no values")
			}
			if field.Type == schemabook.FieldTypeReference && field.ReferenceTo == "" {
				report(schemabook.SeverityWarning, name, field.Name, "reference field has no target hint")
			}
		}

		seenRels := make(map[string]bool, len(obj.Relationships))
		for _, rel := range obj.Relationships {
			switch {
			case rel.Name == "":
				report(schemabook.SeverityError, name, "", "relationship with empty name")
			case seenRels[rel.Name]:
				report(schemabook.SeverityError, name, rel.Name, "duplicate relationship name")
			default:
				seenRels[rel.Name] = true
			}

			if !rel.Type.IsValid() {
				report(schemabook.SeverityError, name, rel.Name, "unrecognized relationship type %q", rel.Type)
			}

			if rel.Target == "" {
				report(schemabook.SeverityError, name, rel.Name, "relationship has no target object")
			} else if !catalog.Has(rel.Target) {
				report(schemabook.SeverityError, name, rel.Name,
					"relationship target %q is not a known object", rel.Target)
			}
		}
	}

	return issues
}

// ExcludedObjects returns the set of object names that carry at least one
// error-severity issue and must be dropped from the written output.
func ExcludedObjects(issues []schemabook.Issue) map[string]bool {
	excluded := make(map[string]bool)
	for _, issue := range issues {
		if issue.Severity == schemabook.SeverityError && issue.Object != "" {
			excluded[issue.Object] = true
		}
	}
	return excluded
}
