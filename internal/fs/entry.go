package fs

import (
	"os"
	"time"
)

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
	// Tags holds the names of tags assigned to FullPath, filled by the backend.
	Tags []string
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// HasTag reports whether name is among the entry's tags.
func (e Entry) HasTag(name string) bool {
	for _, tag := range e.Tags {
		if tag == name {
			return true
		}
	}
	return false
}
