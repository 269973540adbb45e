package schema

import (
	"testing"

	"github.com/vvka-141/schemabook/internal/logging"
	"github.com/vvka-141/schemabook/pkg/schemabook"
)

func objectRow(name, label, description string) Classified {
	return Classified{Kind: KindObject, Object: ObjectRow{Name: name, Label: label, Description: description}}
}

func fieldRow(object string, field schemabook.FieldDefinition) Classified {
	return Classified{Kind: KindField, Field: FieldRow{Object: object, Field: field}}
}

func relationshipRow(object string, rel schemabook.RelationshipDefinition) Classified {
	return Classified{Kind: KindRelationship, Relationship: RelationshipRow{Object: object, Relationship: rel}}
}

func newTestAssembler(inject bool) *Assembler {
	return &Assembler{
		Options: AssembleOptions{InjectStandardFields: inject},
		Log:     logging.NewNullLogger(),
	}
}

func TestAssemble_GroupsRowsByObject(t *testing.T) {
	rows := []Classified{
		objectRow("Account", "Account", ""),
		objectRow("Contact", "Contact", ""),
		fieldRow("Account", schemabook.FieldDefinition{Name: "Industry", Type: schemabook.FieldTypePicklist}),
		fieldRow("Contact", schemabook.FieldDefinition{Name: "Email", Type: schemabook.FieldTypeEmail}),
		fieldRow("Account", schemabook.FieldDefinition{Name: "Revenue", Type: schemabook.FieldTypeCurrency}),
		relationshipRow("Contact", schemabook.RelationshipDefinition{Name: "Employer", Type: schemabook.RelationshipLookup, Target: "Account"}),
	}

	catalog, issues := newTestAssembler(false).Assemble(rows)
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
	if catalog.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", catalog.Len())
	}

	account, _ := catalog.Get("Account")
	if len(account.Fields) != 2 || account.Fields[0].Name != "Industry" || account.Fields[1].Name != "Revenue" {
		t.Errorf("account fields wrong or out of order: %+v", account.Fields)
	}
	contact, _ := catalog.Get("Contact")
	if len(contact.Relationships) != 1 || contact.Relationships[0].Target != "Account" {
		t.Errorf("contact relationships wrong: %+v", contact.Relationships)
	}
}

func TestAssemble_FirstSeenOrderPreserved(t *testing.T) {
	rows := []Classified{
		objectRow("Zebra", "", ""),
		objectRow("Alpha", "", ""),
		objectRow("Mango", "", ""),
	}
	catalog, _ := newTestAssembler(false).Assemble(rows)

	want := []string{"Zebra", "Alpha", "Mango"}
	got := catalog.Names()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestAssemble_ImplicitObjectCreation(t *testing.T) {
	rows := []Classified{
		fieldRow("Orphan", schemabook.FieldDefinition{Name: "Color", Type: schemabook.FieldTypeText}),
	}
	catalog, issues := newTestAssembler(false).Assemble(rows)

	obj, ok := catalog.Get("Orphan")
	if !ok {
		t.Fatal("expected implicit object Orphan")
	}
	if obj.Label != "Orphan" {
		t.Errorf("implicit object label should default to name, got %q", obj.Label)
	}
	if len(issues) != 1 || issues[0].Severity != schemabook.SeverityWarning {
		t.Fatalf("expected one warning for implicit creation, got %v", issues)
	}
}

func TestAssemble_SheetOrderIndependence(t *testing.T) {
	// Fields arrive before their object row; the shell from pass 1 still
	// owns them because objects are collected first.
	rows := []Classified{
		fieldRow("Account", schemabook.FieldDefinition{Name: "Industry", Type: schemabook.FieldTypePicklist}),
		objectRow("Account", "Account", "declared later"),
	}
	catalog, issues := newTestAssembler(false).Assemble(rows)

	if len(issues) != 0 {
		t.Errorf("object row in same pass must prevent implicit creation, got %v", issues)
	}
	obj, _ := catalog.Get("Account")
	if obj.Description != "declared later" {
		t.Errorf("expected declared object to win, got %+v", obj)
	}
	if len(obj.Fields) != 1 {
		t.Errorf("expected attached field, got %+v", obj.Fields)
	}
}

func TestAssemble_DuplicateFieldLastWinsInPlace(t *testing.T) {
	rows := []Classified{
		objectRow("Account", "", ""),
		fieldRow("Account", schemabook.FieldDefinition{Name: "First", Type: schemabook.FieldTypeText}),
		fieldRow("Account", schemabook.FieldDefinition{Name: "Industry", Type: schemabook.FieldTypeText}),
		fieldRow("Account", schemabook.FieldDefinition{Name: "Industry", Type: schemabook.FieldTypePicklist, PicklistValues: []string{"Tech"}}),
	}
	catalog, issues := newTestAssembler(false).Assemble(rows)

	obj, _ := catalog.Get("Account")
	if len(obj.Fields) != 2 {
		t.Fatalf("expected 2 fields after dedupe, got %d", len(obj.Fields))
	}
	// Position of first appearance, attributes of the last row.
	if obj.Fields[1].Name != "Industry" || obj.Fields[1].Type != schemabook.FieldTypePicklist {
		t.Errorf("last row must win: %+v", obj.Fields[1])
	}
	if len(issues) != 1 || issues[0].Field != "Industry" {
		t.Fatalf("expected duplicate warning for Industry, got %v", issues)
	}
}

func TestAssemble_DuplicateRelationshipLastWins(t *testing.T) {
	rows := []Classified{
		objectRow("Account", "", ""),
		relationshipRow("Account", schemabook.RelationshipDefinition{Name: "R", Type: schemabook.RelationshipLookup, Target: "Contact"}),
		relationshipRow("Account", schemabook.RelationshipDefinition{Name: "R", Type: schemabook.RelationshipMasterDetail, Target: "Order"}),
	}
	catalog, issues := newTestAssembler(false).Assemble(rows)

	obj, _ := catalog.Get("Account")
	if len(obj.Relationships) != 1 || obj.Relationships[0].Target != "Order" {
		t.Errorf("last relationship row must win: %+v", obj.Relationships)
	}
	if len(issues) != 1 {
		t.Fatalf("expected one duplicate warning, got %v", issues)
	}
}

func TestAssemble_DuplicateObjectRow(t *testing.T) {
	rows := []Classified{
		objectRow("Account", "Account", "first"),
		objectRow("Account", "Customer Account", ""),
	}
	catalog, issues := newTestAssembler(false).Assemble(rows)

	if catalog.Len() != 1 {
		t.Fatalf("expected 1 object, got %d", catalog.Len())
	}
	obj, _ := catalog.Get("Account")
	if obj.Label != "Customer Account" {
		t.Errorf("later label should win, got %q", obj.Label)
	}
	if obj.Description != "first" {
		t.Errorf("empty later description must not clobber, got %q", obj.Description)
	}
	if len(issues) != 1 {
		t.Fatalf("expected duplicate object warning, got %v", issues)
	}
}

func TestAssemble_DerivedLookupRelationship(t *testing.T) {
	rows := []Classified{
		objectRow("Contact", "", ""),
		objectRow("Account", "", ""),
		{Kind: KindField, Field: FieldRow{
			Object: "Contact",
			Field: schemabook.FieldDefinition{
				Name: "AccountId", Type: schemabook.FieldTypeReference, ReferenceTo: "Account",
			},
			LookupTarget: "Account",
		}},
	}
	catalog, _ := newTestAssembler(false).Assemble(rows)

	contact, _ := catalog.Get("Contact")
	if len(contact.Relationships) != 1 {
		t.Fatalf("expected derived relationship, got %+v", contact.Relationships)
	}
	rel := contact.Relationships[0]
	if rel.Type != schemabook.RelationshipLookup || rel.Target != "Account" {
		t.Errorf("unexpected derived relationship: %+v", rel)
	}
}

func TestAssemble_StandardFieldInjection(t *testing.T) {
	rows := []Classified{
		objectRow("Account", "", ""),
		fieldRow("Account", schemabook.FieldDefinition{Name: "Industry", Type: schemabook.FieldTypePicklist}),
	}
	catalog, _ := newTestAssembler(true).Assemble(rows)

	obj, _ := catalog.Get("Account")
	if len(obj.Fields) != 3 {
		t.Fatalf("expected Industry + Id + Name, got %+v", obj.Fields)
	}
	if _, ok := obj.Field("Id"); !ok {
		t.Error("expected injected Id field")
	}
	if _, ok := obj.Field("Name"); !ok {
		t.Error("expected injected Name field")
	}
}

func TestAssemble_StandardFieldsNotDuplicated(t *testing.T) {
	rows := []Classified{
		objectRow("Account", "", ""),
		fieldRow("Account", schemabook.FieldDefinition{Name: "Id", Type: schemabook.FieldTypeID, Label: "Account ID"}),
	}
	catalog, _ := newTestAssembler(true).Assemble(rows)

	obj, _ := catalog.Get("Account")
	id, _ := obj.Field("Id")
	if id.Label != "Account ID" {
		t.Errorf("declared Id must not be replaced by the standard one: %+v", id)
	}
	count := 0
	for _, f := range obj.Fields {
		if f.Name == "Id" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one Id field, got %d", count)
	}
}

func TestAssemble_AssignsDeterministicIDs(t *testing.T) {
	rows := []Classified{objectRow("Account", "", "")}

	first, _ := newTestAssembler(false).Assemble(rows)
	second, _ := newTestAssembler(false).Assemble(rows)

	a, _ := first.Get("Account")
	b, _ := second.Get("Account")
	if a.ID != b.ID {
		t.Errorf("object IDs must be deterministic: %s vs %s", a.ID, b.ID)
	}
	if a.ID != ObjectID("Account") || a.ID != ObjectID("account") {
		t.Error("object ID must be the case-insensitive name identity")
	}
}

func TestNewAssembler_InjectsStandardFieldsByDefault(t *testing.T) {
	catalog, _ := NewAssembler(logging.NewNullLogger()).Assemble([]Classified{objectRow("Bare", "", "")})
	obj, _ := catalog.Get("Bare")
	if _, ok := obj.Field("Id"); !ok {
		t.Error("default assembler must inject standard fields")
	}
	if _, ok := obj.Field("Name"); !ok {
		t.Error("default assembler must inject standard fields")
	}
}

func TestAssemble_EmptySlicesNotNil(t *testing.T) {
	catalog, _ := newTestAssembler(false).Assemble([]Classified{objectRow("Bare", "", "")})
	obj, _ := catalog.Get("Bare")
	if obj.Fields == nil || obj.Relationships == nil {
		t.Error("fields and relationships must serialize as empty arrays, not null")
	}
}
