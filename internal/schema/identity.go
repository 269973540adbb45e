package schema

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceObjectIdentity is the fixed UUID namespace for generating
// deterministic object identities from object names. It is derived from the
// canonical string "schemabook/object-identity/v1" using UUID v5 with the
// standard URL namespace, computed once at package load.
//
// This ensures that:
//   - Object names always generate the same UUID across runs
//   - The namespace is unique to schemabook (no collisions with other systems)
//   - Users can independently verify deterministic ID generation
var NamespaceObjectIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("schemabook/object-identity/v1"))

// ObjectID creates a deterministic UUID v5 from a normalized object name.
// The writer uses it to keep sanitized document filenames collision-free:
// two distinct object names can never map to the same document.
//
// Normalization lower-cases the name so identity is stable across
// case-insensitive filesystems; catalog identity itself stays case-sensitive.
func ObjectID(name string) uuid.UUID {
	return uuid.NewSHA1(NamespaceObjectIdentity, []byte(strings.ToLower(strings.TrimSpace(name))))
}
