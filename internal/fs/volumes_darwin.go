//go:build darwin

package fs

import (
	"os"
	"path/filepath"
	"sort"
)

// Volumes lists "/" plus the mounted volumes under /Volumes.
func Volumes() ([]string, error) {
	volumes := []string{"/"}
	entries, err := os.ReadDir("/Volumes")
	if err != nil {
		return volumes, nil
	}
	for _, e := range entries {
		path := filepath.Join("/Volumes", e.Name())
		// The boot volume shows up as a symlink to "/".
		if target, err := filepath.EvalSymlinks(path); err == nil && target == "/" {
			continue
		}
		volumes = append(volumes, path)
	}
	sort.Strings(volumes)
	return volumes, nil
}
