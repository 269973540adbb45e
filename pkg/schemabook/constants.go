package schemabook

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess       = 0  // Load completed and at least one object was written
	ExitGeneralError  = 1  // Unknown or unclassified error
	ExitUsageError    = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic         = 3  // Internal panic (unexpected crash)
	ExitConfigError   = 10 // Invalid configuration
	ExitSourceMissing = 11 // Input workbook missing or unreadable
	ExitNoObjects     = 12 // Zero objects survived validation
	ExitWriteFailed   = 13 // Every surviving object failed to write
)

const (
	// DefaultWorkbookName is the workbook filename assumed when no explicit
	// path is given on the command line or in configuration.
	DefaultWorkbookName = "schema_metadata.xlsx"

	// DefaultOutputDir is where object documents are written unless
	// overridden by configuration or flags.
	DefaultOutputDir = "data/metadata"

	// DocumentExtension is the extension of serialized object documents.
	DocumentExtension = ".json"

	// DefaultTypeFallback is the field type substituted for unrecognized
	// type values when no fallback is configured.
	DefaultTypeFallback = FieldTypeText
)
