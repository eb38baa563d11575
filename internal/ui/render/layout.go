package render

// Region identifies the screen area under a point.
type Region int

const (
	RegionNone Region = iota
	RegionHeader
	RegionBack
	RegionForward
	RegionTags
	RegionFiles
)

// Layout describes where the panels were drawn. Rows 1..ListRows hold the
// tag panel on the left and the file list on the right; the bottom three rows
// are the filter bar, the prompt/status line and the footer.
type Layout struct {
	Width  int
	Height int

	TagPanelWidth  int
	SeparatorWidth int
	ListStart      int
	ListWidth      int
	ListTop        int
	ListRows       int
}

const (
	headerTitle    = "tagdir "
	backButtonX    = len(headerTitle)
	forwardButtonX = backButtonX + 2

	minListWidth = 24
	listTop      = 1
	bottomRows   = 3
)

func computeLayout(w, h int) Layout {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	l := Layout{Width: w, Height: h, ListTop: listTop}
	l.TagPanelWidth = tagPanelWidthForWidth(w)
	if l.TagPanelWidth > 0 && l.TagPanelWidth < w {
		l.SeparatorWidth = 1
	}
	l.ListStart = l.TagPanelWidth + l.SeparatorWidth
	l.ListWidth = w - l.ListStart
	if l.ListWidth < 0 {
		l.ListWidth = 0
	}
	l.ListRows = h - listTop - bottomRows
	if l.ListRows < 0 {
		l.ListRows = 0
	}
	return l
}

// tagPanelWidthForWidth shrinks the tag panel on narrow terminals and hides it
// when the file list would fall under minListWidth.
func tagPanelWidthForWidth(w int) int {
	var width int
	switch {
	case w >= 150:
		width = 36
	case w >= 120:
		width = 30
	case w >= 100:
		width = 26
	case w >= 80:
		width = 22
	case w >= 60:
		width = 18
	case w >= 44:
		width = 14
	default:
		return 0
	}
	if w-width-1 < minListWidth {
		return 0
	}
	return width
}

// Hit maps a screen cell to a region and, for the scrolling panels, the row
// offset inside the visible window.
func (l Layout) Hit(x, y int) (Region, int) {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return RegionNone, -1
	}
	if y == 0 {
		switch x {
		case backButtonX:
			return RegionBack, -1
		case forwardButtonX:
			return RegionForward, -1
		}
		return RegionHeader, -1
	}
	row := y - l.ListTop
	if row < 0 || row >= l.ListRows {
		return RegionNone, -1
	}
	switch {
	case x < l.TagPanelWidth:
		return RegionTags, row
	case x >= l.ListStart:
		return RegionFiles, row
	default:
		return RegionNone, -1
	}
}
