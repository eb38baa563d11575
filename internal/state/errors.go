package state

import "fmt"

// FetchError reports a failed read from the backend. State is left as it was.
type FetchError struct {
	Op   string // "tags", "directory", "volumes", "search"
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("fetch %s %s failed: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("fetch %s failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MutationError reports a rejected tag change. Local tags were not touched.
type MutationError struct {
	Op    string // "create", "update", "delete", "assign"
	TagID int64
	Path  string
	Err   error
}

func (e *MutationError) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("%s tags on %s failed: %v", e.Op, e.Path, e.Err)
	case e.TagID != 0:
		return fmt.Sprintf("%s tag %d failed: %v", e.Op, e.TagID, e.Err)
	default:
		return fmt.Sprintf("%s tag failed: %v", e.Op, e.Err)
	}
}

func (e *MutationError) Unwrap() error {
	return e.Err
}
