package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/tagdir/internal/state"
	"github.com/kk-code-lab/tagdir/internal/tags"
)

func TestTruncateTextToWidth(t *testing.T) {
	r := NewRenderer(nil)

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{
			name:   "fits without truncation",
			text:   "file.txt",
			width:  20,
			expect: "file.txt",
		},
		{
			name:   "adds ellipsis when needed",
			text:   "verylongname",
			width:  6,
			expect: "veryl…",
		},
		{
			name:   "only ellipsis when width too small",
			text:   "example",
			width:  1,
			expect: "…",
		},
		{
			name:   "multi-byte characters respected",
			text:   "你好世界",
			width:  5,
			expect: "你好…",
		},
		{
			name:   "returns empty when width is zero",
			text:   "anything",
			width:  0,
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := r.truncateTextToWidth(tt.text, tt.width)
			if actual != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, actual, tt.width)
			}
		})
	}
}

func TestTruncateLeftKeepsPathEnd(t *testing.T) {
	r := NewRenderer(nil)

	if got := r.truncateLeftToWidth("/home/user/projects", 9); got != "…projects" {
		t.Fatalf("truncateLeftToWidth = %q", got)
	}
	if got := r.truncateLeftToWidth("/tmp", 9); got != "/tmp" {
		t.Fatalf("short text should be unchanged, got %q", got)
	}
}

func TestMeasureTextWidth(t *testing.T) {
	r := NewRenderer(nil)

	if got := r.measureTextWidth("abc"); got != 3 {
		t.Fatalf("expected ASCII width 3, got %d", got)
	}

	if got := r.measureTextWidth("你好"); got != 4 {
		t.Fatalf("expected wide rune width 4, got %d", got)
	}
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		tagWidth  int
		listStart int
		listRows  int
	}{
		{name: "wide", width: 160, height: 40, tagWidth: 36, listStart: 37, listRows: 36},
		{name: "standard", width: 80, height: 24, tagWidth: 22, listStart: 23, listRows: 20},
		{name: "narrow hides tags", width: 40, height: 10, tagWidth: 0, listStart: 0, listRows: 6},
		{name: "tiny", width: 10, height: 2, tagWidth: 0, listStart: 0, listRows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := computeLayout(tt.width, tt.height)
			if l.TagPanelWidth != tt.tagWidth || l.ListStart != tt.listStart || l.ListRows != tt.listRows {
				t.Fatalf("layout = %+v", l)
			}
			if l.ListStart+l.ListWidth != tt.width {
				t.Fatalf("list does not reach the right edge: %+v", l)
			}
		})
	}
}

func TestLayoutHit(t *testing.T) {
	l := computeLayout(80, 24)

	tests := []struct {
		x, y   int
		region Region
		row    int
	}{
		{x: 5, y: 0, region: RegionHeader, row: -1},
		{x: 7, y: 0, region: RegionBack, row: -1},
		{x: 9, y: 0, region: RegionForward, row: -1},
		{x: 3, y: 1, region: RegionTags, row: 0},
		{x: 22, y: 4, region: RegionNone, row: -1}, // separator
		{x: 30, y: 4, region: RegionFiles, row: 3},
		{x: 30, y: 21, region: RegionNone, row: -1}, // filter bar
		{x: 90, y: 4, region: RegionNone, row: -1},
	}
	for _, tt := range tests {
		region, row := l.Hit(tt.x, tt.y)
		if region != tt.region || row != tt.row {
			t.Errorf("Hit(%d,%d) = %v,%d want %v,%d", tt.x, tt.y, region, row, tt.region, tt.row)
		}
	}
}

func TestConvertMatchSpans(t *testing.T) {
	r := NewRenderer(nil)
	match, ok := r.matcher.MatchName("rep", statepkg.FileEntry{Name: "report.pdf"})
	if !ok {
		t.Fatalf("expected a match")
	}
	spans := convertMatchSpans(match.Spans)
	if len(spans) != 1 || spans[0] != (highlightSpan{start: 0, end: 3}) {
		t.Fatalf("spans = %+v", spans)
	}
}

func TestRelativeDir(t *testing.T) {
	if got := relativeDir("/home", "/home/a.txt"); got != "" {
		t.Fatalf("direct child: %q", got)
	}
	if got := relativeDir("/home", "/home/projects/docs/a.txt"); got != "projects/docs/" {
		t.Fatalf("nested: %q", got)
	}
}

func TestFormatFilterSegments(t *testing.T) {
	c := statepkg.DefaultCriteria()
	if got := formatFilterSegments(c); len(got) != 1 || got[0] != "files+dirs" {
		t.Fatalf("default = %v", got)
	}

	c = c.SetAcceptDirectories(false).WithExtension("pdf").WithTags(tags.NewSelection("work", "client"))
	got := strings.Join(formatFilterSegments(c), " | ")
	if got != "files only | ext: .pdf | tags: client, work" {
		t.Fatalf("segments = %q", got)
	}
}

func TestStatusTextPriority(t *testing.T) {
	state := statepkg.NewAppState(nil, nil)
	state.StatusMessage = "tag created"
	if text, isErr := statusText(state); text != "tag created" || isErr {
		t.Fatalf("status = %q, %v", text, isErr)
	}
	state.LastError = errors.New("boom")
	if text, isErr := statusText(state); text != "boom" || !isErr {
		t.Fatalf("error should win, got %q, %v", text, isErr)
	}
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(scr.Fini)
	scr.SetSize(w, h)
	return scr
}

func screenRow(scr tcell.SimulationScreen, y int) string {
	cells, w, _ := scr.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		cell := cells[y*w+x]
		if len(cell.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(cell.Runes[0])
	}
	return b.String()
}

func sampleState() *statepkg.AppState {
	state := statepkg.NewAppState(nil, nil)
	state.Forest = tags.BuildForest([]tags.TagRecord{
		{ID: 1, Name: "work"},
		{ID: 2, Name: "client", ParentID: tags.ID(1)},
	})
	state.Criteria = state.Criteria.WithTags(tags.NewSelection("work", "client"))
	state.History.NavigateTo("/home")
	state.Files = []statepkg.FileEntry{
		{Name: "projects", FullPath: "/home/projects", IsDir: true, Tags: []string{"client"}},
		{Name: "report.pdf", FullPath: "/home/report.pdf", Tags: []string{"work"}},
		{Name: "notes.txt", FullPath: "/home/notes.txt"},
	}
	state.ScreenWidth, state.ScreenHeight = 80, 12
	return state
}

func TestRenderDrawsPanels(t *testing.T) {
	scr := newScreen(t, 80, 12)
	r := NewRenderer(scr)
	state := sampleState()

	r.Render(state)

	header := screenRow(scr, 0)
	if !strings.HasPrefix(header, "tagdir ◀ ▶ /home") {
		t.Fatalf("header = %q", header)
	}

	layout, ok := r.LastLayout()
	if !ok || layout.TagPanelWidth != 22 {
		t.Fatalf("LastLayout = %+v, %v", layout, ok)
	}

	first := screenRow(scr, 1)
	if !strings.HasPrefix(first, " [x] work") {
		t.Fatalf("tag row = %q", first)
	}
	if !strings.Contains(first[len(" [x] work"):], "projects") || !strings.Contains(first, "#client") {
		t.Fatalf("first file row = %q", first)
	}
	second := screenRow(scr, 2)
	if !strings.HasPrefix(second, "   [x] client") || !strings.Contains(second, "report.pdf") {
		t.Fatalf("second row = %q", second)
	}
	if strings.Contains(screenRow(scr, 3), "notes.txt") {
		t.Fatalf("untagged entry should be filtered out")
	}

	filterBar := screenRow(scr, 9)
	if !strings.Contains(filterBar, "tags: client, work") || !strings.Contains(filterBar, "2 of 3 entries") {
		t.Fatalf("filter bar = %q", filterBar)
	}
}

func TestRenderVolumesAndPrompt(t *testing.T) {
	scr := newScreen(t, 80, 12)
	r := NewRenderer(scr)
	state := statepkg.NewAppState(nil, nil)
	state.Volumes = []string{"/", "/mnt/usb"}
	state.Prompt = statepkg.Prompt{Kind: statepkg.PromptNewTag, Input: "urgent"}

	r.Render(state)

	if header := screenRow(scr, 0); !strings.Contains(header, "Volumes") {
		t.Fatalf("header = %q", header)
	}
	if row := screenRow(scr, 2); !strings.Contains(row, "# /mnt/usb") {
		t.Fatalf("volume row = %q", row)
	}
	if row := screenRow(scr, 1); !strings.HasPrefix(row, " No tags") {
		t.Fatalf("empty tag panel = %q", row)
	}
	if status := screenRow(scr, 10); !strings.HasPrefix(status, "new tag: urgent") {
		t.Fatalf("prompt line = %q", status)
	}
	if footer := screenRow(scr, 11); !strings.Contains(footer, "Esc: cancel") {
		t.Fatalf("footer = %q", footer)
	}
}

func TestRenderSearchResults(t *testing.T) {
	scr := newScreen(t, 100, 10)
	r := NewRenderer(scr)
	state := statepkg.NewAppState(nil, nil)
	state.History.NavigateTo("/home")
	state.SearchActive = true
	state.SearchQuery = "plan"
	state.SearchRoot = "/home"
	state.SearchResults = []statepkg.FileEntry{
		{Name: "plan.md", FullPath: "/home/projects/plan.md"},
	}

	r.Render(state)

	if header := screenRow(scr, 0); !strings.Contains(header, "search in /home") {
		t.Fatalf("header = %q", header)
	}
	if row := screenRow(scr, 1); !strings.Contains(row, "plan.md  projects/") {
		t.Fatalf("result row = %q", row)
	}
	if bar := screenRow(scr, 7); !strings.Contains(bar, `"plan": 1 results`) {
		t.Fatalf("filter bar = %q", bar)
	}
}

func TestRenderHelpOverlay(t *testing.T) {
	scr := newScreen(t, 80, 30)
	r := NewRenderer(scr)
	state := statepkg.NewAppState(nil, nil)
	state.HelpVisible = true

	r.Render(state)

	if header := screenRow(scr, 0); !strings.Contains(header, "Help") {
		t.Fatalf("help header = %q", header)
	}
}
