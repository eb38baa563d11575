package state

import (
	"strings"

	"github.com/kk-code-lab/tagdir/internal/tags"
	"golang.org/x/text/cases"
)

// Criteria combines everything that decides whether an entry is listed.
//
// AcceptFiles and AcceptDirectories are never both false when changed through
// SetAcceptFiles and SetAcceptDirectories.
type Criteria struct {
	SelectedTags      tags.Selection
	Extension         string
	AcceptFiles       bool
	AcceptDirectories bool
}

// DefaultCriteria lists everything.
func DefaultCriteria() Criteria {
	return Criteria{
		SelectedTags:      tags.Selection{},
		AcceptFiles:       true,
		AcceptDirectories: true,
	}
}

// SetAcceptFiles turning files off while directories are already off turns
// directories back on.
func (c Criteria) SetAcceptFiles(accept bool) Criteria {
	c.AcceptFiles = accept
	if !accept && !c.AcceptDirectories {
		c.AcceptDirectories = true
	}
	return c
}

// SetAcceptDirectories mirrors SetAcceptFiles.
func (c Criteria) SetAcceptDirectories(accept bool) Criteria {
	c.AcceptDirectories = accept
	if !accept && !c.AcceptFiles {
		c.AcceptFiles = true
	}
	return c
}

func (c Criteria) WithExtension(ext string) Criteria {
	c.Extension = strings.TrimSpace(ext)
	return c
}

func (c Criteria) WithTags(sel tags.Selection) Criteria {
	c.SelectedTags = sel
	return c
}

// IsDefault reports whether c lets every entry through.
func (c Criteria) IsDefault() bool {
	return c.AcceptFiles && c.AcceptDirectories && c.Extension == "" && c.SelectedTags.Len() == 0
}

// Matches applies, in order and short-circuiting: type acceptance, the
// extension suffix (files only, case-insensitive) and tag intersection (any
// selected tag is enough).
func Matches(entry FileEntry, c Criteria) bool {
	if entry.IsDir {
		if !c.AcceptDirectories {
			return false
		}
	} else if !c.AcceptFiles {
		return false
	}

	if c.Extension != "" && !entry.IsDir && !hasSuffixFold(entry.Name, c.Extension) {
		return false
	}

	if c.SelectedTags.Len() > 0 {
		for _, tag := range entry.Tags {
			if c.SelectedTags.Has(tag) {
				return true
			}
		}
		return false
	}
	return true
}

// FilterEntries keeps the entries that match c, preserving order.
func FilterEntries(entries []FileEntry, c Criteria) []FileEntry {
	out := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		if Matches(entry, c) {
			out = append(out, entry)
		}
	}
	return out
}

func hasSuffixFold(name, suffix string) bool {
	fold := cases.Fold()
	return strings.HasSuffix(fold.String(name), fold.String(suffix))
}
