//go:build linux

package fs

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseMounts(t *testing.T) {
	input := strings.Join([]string{
		"sysfs /sys sysfs rw,nosuid 0 0",
		"proc /proc proc rw 0 0",
		"/dev/sda1 / ext4 rw 0 0",
		"/dev/sdb1 /mnt/backup ext4 rw 0 0",
		"/dev/sdc1 /media/usb\\040stick vfat rw 0 0",
		"tmpfs /run/user/1000 tmpfs rw 0 0",
		"/dev/sdb1 /mnt/backup ext4 rw 0 0",
		"garbage",
	}, "\n")

	got, err := parseMounts(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseMounts failed: %v", err)
	}
	want := []string{"/", "/media/usb stick", "/mnt/backup"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseMounts() = %v, want %v", got, want)
	}
}
