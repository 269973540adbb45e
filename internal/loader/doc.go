// Package loader implements the schemabook.Loader facade.
//
// A MetadataLoader runs the synchronous read -> classify -> assemble ->
// validate -> write pipeline and owns the resulting in-memory catalog,
// answering query operations until the next load replaces it wholesale.
// There is no merge: each load fully regenerates the output set from the
// input workbook.
package loader
