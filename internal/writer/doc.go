// Package writer persists object definitions as canonical JSON documents,
// one file per object, and reads them back.
//
// Documents are deterministic: fixed key order from the struct tags,
// two-space indent, trailing newline, no timestamps. Filenames derive from
// the object name; names needing sanitization get the object's deterministic
// ID appended so distinct names never collide on disk.
package writer
