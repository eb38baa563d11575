package search

import (
	"path/filepath"
	"sort"
	"strings"

	fsutil "github.com/kk-code-lab/tagdir/internal/fs"
)

// FileEntry mirrors fs.Entry for callers that only import search.
type FileEntry = fsutil.Entry

// Result is a matched entry with its score.
type Result struct {
	Entry FileEntry
	Match Match
}

// MatchName scores entry. Files are matched on their stem so a query never
// has to spell out the extension; directories use the whole name.
func (m *Matcher) MatchName(query string, entry FileEntry) (Match, bool) {
	name := entry.Name
	if !entry.IsDir {
		name = Stem(name)
	}
	return m.Match(query, name)
}

// Stem strips the last extension. Dotfiles keep their name.
func Stem(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// Rank orders results best first: score, then shorter names, then path.
func Rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Match.Score != b.Match.Score {
			return a.Match.Score > b.Match.Score
		}
		if len(a.Entry.Name) != len(b.Entry.Name) {
			return len(a.Entry.Name) < len(b.Entry.Name)
		}
		return a.Entry.FullPath < b.Entry.FullPath
	})
}

// Entries strips scores from ranked results.
func Entries(results []Result) []FileEntry {
	out := make([]FileEntry, len(results))
	for i, r := range results {
		out[i] = r.Entry
	}
	return out
}
