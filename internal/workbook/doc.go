// Package workbook reads xlsx workbooks into ordered, header-keyed row
// records.
//
// The package has no schema knowledge: it only normalizes headers and skips
// empty rows. Interpreting rows as objects, fields, or relationships is the
// job of internal/schema.
//
// A missing or unopenable file surfaces as schemabook.ErrSourceUnavailable,
// the only fatal error in the load pipeline.
package workbook
