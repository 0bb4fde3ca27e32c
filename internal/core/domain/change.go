package domain

import "time"

// ChangeOp is the kind of change observed under the storage root.
type ChangeOp string

// Observed change operations.
const (
	ChangeCreated  ChangeOp = "created"
	ChangeModified ChangeOp = "modified"
	ChangeRemoved  ChangeOp = "removed"
)

// Change describes a document or group changing on disk.
// File is empty when the change concerns the group directory itself.
// Group is empty too when the storage root itself went away or came back.
type Change struct {
	Op    ChangeOp
	Group string
	File  string
	At    time.Time
}

// IsGroup returns true if the change concerns a group directory.
func (c Change) IsGroup() bool {
	return c.File == ""
}

// IsRoot returns true if the change concerns the whole storage root.
func (c Change) IsRoot() bool {
	return c.Group == "" && c.File == ""
}
