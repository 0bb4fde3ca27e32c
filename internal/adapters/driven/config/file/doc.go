// Package file persists server settings to a TOML file, by default
// ~/.treestore/config.toml.
package file
