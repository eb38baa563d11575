//go:build !linux && !darwin && !windows

package fs

// Volumes reports the filesystem root only.
func Volumes() ([]string, error) {
	return []string{"/"}, nil
}
