package domain

// Group is a named collection of documents.
// On disk a group is a directory directly under the storage root.
type Group struct {
	// Name is the directory name; always a valid token.
	Name string
}

// GroupSummary is the listing form of a group.
// Files is deliberately empty: file enumeration is deferred to load time.
type GroupSummary struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

// NewGroupSummary returns a summary with an empty, non-nil file list
// so it serialises as "files": [].
func NewGroupSummary(name string) GroupSummary {
	return GroupSummary{Name: name, Files: []string{}}
}
