// Package domain defines the core business entities for treestore.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Group: A named collection of documents (a directory under the storage root)
//   - Document: An opaque tree-shaped JSON payload identified by group and file
//   - TreeNode: The conventional name/children/size node used for seed and fallback trees
//   - ServerSettings: Runtime configuration for the storage backend
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
