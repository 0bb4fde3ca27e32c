package domain

import (
	"fmt"
	"strings"
)

// parentDirMarker is the literal parent-directory token.
const parentDirMarker = ".."

// ValidateName checks a group or file token.
// A token is valid iff it is non-empty, is not "..", and contains
// neither a forward nor a backward slash.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case name == parentDirMarker:
		return fmt.Errorf("%w: %q refers to a parent directory", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}
