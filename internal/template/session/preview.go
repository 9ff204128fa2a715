package session

import "sort"

// previewManager owns the set of open previews for one session. It maps
// region-relative lines to document lines, suppresses redundant
// notifications, and guarantees every preview it opened is closed when
// the session ends, whichever way it ends.
type previewManager struct {
	preview Preview
	base    int // document line number of working line 1

	// open maps document line numbers to the last text sent for them.
	open map[int]string
}

func newPreviewManager(preview Preview, baseLine int) *previewManager {
	return &previewManager{
		preview: preview,
		base:    baseLine,
		open:    make(map[int]string),
	}
}

// Sync reconciles the open previews with one rendered snapshot of the
// working lines. changed lists the 1-based working lines this pass
// touched; previews already open are refreshed if their text moved under
// them, and previews past the end of the snapshot are closed.
func (p *previewManager) Sync(working []string, changed []int) {
	if p.preview == nil {
		return
	}

	for _, ln := range changed {
		if ln < 1 || ln > len(working) {
			continue
		}
		p.update(p.base+ln-1, working[ln-1])
	}

	for docLine := range p.open {
		idx := docLine - p.base
		if idx >= len(working) {
			p.close(docLine)
			continue
		}
		if p.open[docLine] != working[idx] {
			p.update(docLine, working[idx])
		}
	}
}

// CloseAll closes every open preview. Safe to call repeatedly.
func (p *previewManager) CloseAll() {
	if p.preview == nil {
		return
	}
	lines := make([]int, 0, len(p.open))
	for docLine := range p.open {
		lines = append(lines, docLine)
	}
	sort.Ints(lines)
	for _, docLine := range lines {
		p.close(docLine)
	}
}

func (p *previewManager) update(docLine int, text string) {
	if last, ok := p.open[docLine]; ok && last == text {
		return
	}
	p.open[docLine] = text
	p.preview.Changed(docLine, text)
}

func (p *previewManager) close(docLine int) {
	delete(p.open, docLine)
	p.preview.Closed(docLine)
}
