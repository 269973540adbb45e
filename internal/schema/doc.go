// Package schema turns raw workbook rows into validated object definitions.
//
// # Pipeline position
//
// The package implements the middle of the load pipeline:
//
//	workbook.Read -> Classifier.Classify -> Assembler.Assemble -> Validate
//
// # Lenient classification, strict validation
//
// Classification never fails a load: rows missing identity are skipped with
// a warning, unknown enumerated values are coerced to a configured fallback
// with a warning. Validation is the strict pass: it produces typed issues
// whose error severity excludes the owning object from written output while
// the rest of the batch proceeds. Keeping the two passes separate keeps the
// failure policy centralized and testable independently of parsing.
//
// # Identity
//
// Every assembled object receives a deterministic UUID v5 derived from its
// lower-cased name (see ObjectID). The writer relies on this to keep
// sanitized document filenames collision-free.
package schema
