//go:build windows

package fs

import "os"

// Volumes lists drive roots that respond to stat.
func Volumes() ([]string, error) {
	var volumes []string
	for letter := 'A'; letter <= 'Z'; letter++ {
		root := string(letter) + `:\`
		if _, err := os.Stat(root); err == nil {
			volumes = append(volumes, root)
		}
	}
	return volumes, nil
}
