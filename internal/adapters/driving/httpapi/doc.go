// Package httpapi serves the tree service over HTTP.
//
// Routes:
//   - GET /api/available-groups: every group as {name, files: []}
//   - GET /api/load?group=&file=: a document, or an error-shaped tree
//   - PUT /api/save: body {group, file, treeData}
//   - GET /api/files?group=: document names in a group
//   - GET /healthz: liveness
//
// When a static directory is configured it is served at "/".
package httpapi
