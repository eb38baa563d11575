//go:build linux

package fs

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

var pseudoFilesystems = map[string]bool{
	"autofs": true, "binfmt_misc": true, "bpf": true, "cgroup": true, "cgroup2": true,
	"configfs": true, "debugfs": true, "devpts": true, "devtmpfs": true, "fusectl": true,
	"hugetlbfs": true, "mqueue": true, "nsfs": true, "proc": true, "pstore": true,
	"securityfs": true, "sysfs": true, "tracefs": true, "rpc_pipefs": true, "squashfs": true,
}

var mountsFile = "/proc/self/mounts"

// Volumes lists mount points of real filesystems.
func Volumes() ([]string, error) {
	f, err := os.Open(mountsFile)
	if err != nil {
		return []string{"/"}, nil
	}
	defer f.Close()
	return parseMounts(f)
}

func parseMounts(r io.Reader) ([]string, error) {
	seen := map[string]bool{"/": true}
	volumes := []string{"/"}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mountpoint := unescapeMountField(fields[1])
		fsType := fields[2]
		if pseudoFilesystems[fsType] || seen[mountpoint] {
			continue
		}
		if strings.HasPrefix(mountpoint, "/proc") || strings.HasPrefix(mountpoint, "/sys") ||
			strings.HasPrefix(mountpoint, "/dev") || strings.HasPrefix(mountpoint, "/run") {
			continue
		}
		seen[mountpoint] = true
		volumes = append(volumes, mountpoint)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(volumes)
	return volumes, nil
}

// unescapeMountField decodes the octal escapes (\040 for space) used in mounts.
func unescapeMountField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
