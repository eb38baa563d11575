package fs

import (
	"context"
	iofs "io/fs"
	"os"
)

// VisitEntries calls visit for every entry below root, breadth-first. Visit
// returns io/fs.SkipAll to end the walk early; any other error aborts it and is
// returned. Unreadable directories are skipped. The walk checks ctx between
// directories.
func VisitEntries(ctx context.Context, root string, showHidden bool, visit func(Entry) error) error {
	queue := []string{root}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := queue[0]
		queue = queue[1:]

		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range dirEntries {
			entry, ok := entryFromDirEntry(dir, e)
			if !ok {
				continue
			}
			if !showHidden && entry.IsHidden() {
				continue
			}
			// Symlinked directories are reported but not followed.
			if e.IsDir() {
				queue = append(queue, entry.FullPath)
			}
			if err := visit(entry); err != nil {
				if err == iofs.SkipAll {
					return nil
				}
				return err
			}
		}
	}
	return nil
}
