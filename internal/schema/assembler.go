package schema

import (
	"fmt"

	"github.com/vvka-141/schemabook/pkg/schemabook"
)

// AssembleOptions tunes assembly behavior.
type AssembleOptions struct {
	// InjectStandardFields appends Id and Name fields to objects that do
	// not declare them, matching the conventions of exported schemas.
	InjectStandardFields bool
}

// Assembler groups classified rows into an unvalidated catalog.
type Assembler struct {
	Options AssembleOptions
	Log     schemabook.Logger
}

// NewAssembler creates an Assembler with standard-field injection enabled.
func NewAssembler(log schemabook.Logger) *Assembler {
	return &Assembler{
		Options: AssembleOptions{InjectStandardFields: true},
		Log:     log,
	}
}

// Assemble builds one ObjectDefinition per owning object from classified
// rows, in two passes:
//
//  1. ObjectRows become catalog shells, in row order.
//  2. FieldRows and RelationshipRows attach to their owner by name match.
//     An owner never declared on the objects sheet is created implicitly
//     with a warning, so sheet ordering does not matter.
//
// Within an object, fields and relationships keep the row order of first
// appearance. A duplicate field or relationship name replaces the earlier
// definition in place (last row wins) with a recorded warning.
//
// The returned catalog is unvalidated; strict checks happen in Validate.
func (a *Assembler) Assemble(rows []Classified) (*schemabook.Catalog, []schemabook.Issue) {
	catalog := schemabook.NewCatalog()
	var issues []schemabook.Issue

	warn := func(object, field, format string, args ...interface{}) {
		issue := schemabook.Issue{
			Severity: schemabook.SeverityWarning,
			Object:   object,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
		}
		issues = append(issues, issue)
		a.Log.Verbose("%s", issue)
	}

	// Pass 1: object shells.
	for _, row := range rows {
		if row.Kind != KindObject {
			continue
		}
		obj := row.Object
		if existing, ok := catalog.Get(obj.Name); ok {
			warn(obj.Name, "", "duplicate object row, keeping latest label and description")
			if obj.Label != "" {
				existing.Label = obj.Label
			}
			if obj.Description != "" {
				existing.Description = obj.Description
			}
			continue
		}
		catalog.Add(newShell(obj.Name, obj.Label, obj.Description))
	}

	// Pass 2: attach fields and relationships.
	ensure := func(name string) *schemabook.ObjectDefinition {
		if obj, ok := catalog.Get(name); ok {
			return obj
		}
		warn(name, "", "object not declared on objects sheet, created implicitly")
		obj := newShell(name, name, "")
		catalog.Add(obj)
		return obj
	}

	for _, row := range rows {
		switch row.Kind {
		case KindField:
			owner := ensure(row.Field.Object)
			attachField(owner, row.Field.Field, warn)
			if row.Field.LookupTarget != "" {
				derived := schemabook.RelationshipDefinition{
					Name:        row.Field.LookupTarget,
					Type:        schemabook.RelationshipLookup,
					Target:      row.Field.LookupTarget,
					Cardinality: "many-to-one",
				}
				if !hasRelationship(owner, derived.Name) {
					a.Log.Verbose("derived lookup relationship %s -> %s from field %s",
						owner.Name, derived.Target, row.Field.Field.Name)
					owner.Relationships = append(owner.Relationships, derived)
				}
			}
		case KindRelationship:
			owner := ensure(row.Relationship.Object)
			attachRelationship(owner, row.Relationship.Relationship, warn)
		}
	}

	// Finalize: standard fields and deterministic identity.
	for _, name := range catalog.Names() {
		obj, _ := catalog.Get(name)
		if a.Options.InjectStandardFields {
			injectStandardFields(obj)
		}
		obj.ID = ObjectID(obj.Name)
	}

	return catalog, issues
}

func newShell(name, label, description string) *schemabook.ObjectDefinition {
	if label == "" {
		label = name
	}
	return &schemabook.ObjectDefinition{
		Name:          name,
		Label:         label,
		Description:   description,
		Fields:        []schemabook.FieldDefinition{},
		Relationships: []schemabook.RelationshipDefinition{},
	}
}

func attachField(obj *schemabook.ObjectDefinition, field schemabook.FieldDefinition,
	warn func(object, field, format string, args ...interface{})) {
	for i := range obj.Fields {
		if obj.Fields[i].Name == field.Name {
			warn(obj.Name, field.Name, "duplicate field name, last row wins")
			obj.Fields[i] = field
			return
		}
	}
	obj.Fields = append(obj.Fields, field)
}

func attachRelationship(obj *schemabook.ObjectDefinition, rel schemabook.RelationshipDefinition,
	warn func(object, field, format string, args ...interface{})) {
	for i := range obj.Relationships {
		if obj.Relationships[i].Name == rel.Name {
			warn(obj.Name, rel.Name, "duplicate relationship name, last row wins")
			obj.Relationships[i] = rel
			return
		}
	}
	obj.Relationships = append(obj.Relationships, rel)
}

func hasRelationship(obj *schemabook.ObjectDefinition, name string) bool {
	for _, r := range obj.Relationships {
		if r.Name == name {
			return true
		}
	}
	return false
}

// standardFields are appended to objects that do not declare them.
// Every exported schema carries these two implicit columns.
var standardFields = []schemabook.FieldDefinition{
	{Name: "Id", Type: schemabook.FieldTypeID, Label: "ID", Required: true},
	{Name: "Name", Type: schemabook.FieldTypeText, Label: "Name"},
}

func injectStandardFields(obj *schemabook.ObjectDefinition) {
	for _, std := range standardFields {
		if _, ok := obj.Field(std.Name); !ok {
			obj.Fields = append(obj.Fields, std)
		}
	}
}
