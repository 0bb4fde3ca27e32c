// Package filesystem provides the file-backed implementation of driven.DocumentStore.
//
// Documents live at <root>/<group>/<file>, one pretty-printed JSON value
// per file. Group and file names are validated as single path tokens by
// the Resolver before any path is built, so no request can address a
// location outside the storage root.
//
// # Writes
//
// Documents are replaced in full: content is written to a uniquely named
// temporary file in the group directory and renamed over the target.
// Concurrent writers to the same document race; the last rename wins.
package filesystem
