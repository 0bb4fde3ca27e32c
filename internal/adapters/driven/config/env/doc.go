// Package env overlays TREESTORE_* environment variables on top of stored
// server settings. Unset variables leave the stored value in place.
package env
