package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// ReadDir lists dirPath sorted directories first, then by name. Names are NFC
// normalized so decomposed names from some filesystems compare equal to typed
// text. Symlinks report the kind of their target.
func ReadDir(dirPath string, showHidden bool) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dirPath, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		entry, ok := entryFromDirEntry(dirPath, e)
		if !ok {
			continue
		}
		if !showHidden && entry.IsHidden() {
			continue
		}
		entries = append(entries, entry)
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries orders directories before files, each group by name.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
}

func entryFromDirEntry(dirPath string, e iofs.DirEntry) (Entry, bool) {
	info, err := e.Info()
	if err != nil {
		return Entry{}, false
	}

	rawName := e.Name()
	fullPath := filepath.Join(dirPath, rawName)
	if ShouldHideFromListing(fullPath, rawName) {
		return Entry{}, false
	}

	isDir := e.IsDir()
	isSymlink := (info.Mode() & os.ModeSymlink) != 0
	if isSymlink {
		if targetInfo, err := os.Stat(fullPath); err == nil {
			isDir = targetInfo.IsDir()
		}
	}

	return Entry{
		Name:      norm.NFC.String(rawName),
		FullPath:  fullPath,
		IsDir:     isDir,
		IsSymlink: isSymlink,
		Size:      info.Size(),
		Modified:  info.ModTime(),
		Mode:      info.Mode(),
	}, true
}
