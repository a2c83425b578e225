package notation

import (
	"regexp"
	"sort"
	"strings"
)

type blockKind int

const (
	blockFence blockKind = iota + 1
	blockCode
)

// block is a multi-line structure the line matchers treat as opaque.
type block struct {
	kind  blockKind
	first int
	last  int

	fence  fenceMarker
	closed bool

	// tagged is set when a <code> element carries a path attribute.
	tagged  bool
	rawPath string
	body    string
}

type document struct {
	text    string
	lines   []string
	offsets []int
	blocks  map[int]*block
}

var (
	codeOpenRe  = regexp.MustCompile(`(?i)^<code(?:\s+path\s*=\s*(?:"([^"\r\n]*)"|'([^'\r\n]*)'))?\s*>`)
	codeCloseRe = regexp.MustCompile(`(?i)</code\s*>`)
)

func scan(text string) *document {
	d := &document{text: text, blocks: make(map[int]*block)}
	for start := 0; start < len(text); {
		d.offsets = append(d.offsets, start)
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			d.lines = append(d.lines, text[start:])
			break
		}
		d.lines = append(d.lines, text[start:start+end])
		start += end + 1
	}
	for i := 0; i < len(d.lines); {
		if b, ok := d.openFence(i); ok {
			d.blocks[i] = b
			i = b.last + 1
			continue
		}
		if b, ok := d.openCode(i); ok {
			d.blocks[i] = b
			i = b.last + 1
			continue
		}
		i++
	}
	return d
}

func (d *document) openFence(i int) (*block, bool) {
	m, ok := parseFenceOpen(d.lines[i])
	if !ok {
		return nil, false
	}
	b := &block{kind: blockFence, first: i, fence: m}
	for j := i + 1; j < len(d.lines); j++ {
		if m.closes(d.lines[j]) {
			b.last = j
			b.closed = true
			return b, true
		}
	}
	b.last = len(d.lines) - 1
	return b, true
}

func (d *document) openCode(i int) (*block, bool) {
	line := d.lines[i]
	trimmed := strings.TrimLeft(line, " \t")
	loc := codeOpenRe.FindStringSubmatchIndex(trimmed)
	if loc == nil {
		return nil, false
	}
	b := &block{kind: blockCode, first: i}
	switch {
	case loc[2] >= 0:
		b.tagged, b.rawPath = true, trimmed[loc[2]:loc[3]]
	case loc[4] >= 0:
		b.tagged, b.rawPath = true, trimmed[loc[4]:loc[5]]
	}
	bodyStart := d.offsets[i] + len(line) - len(trimmed) + loc[1]
	rest := d.text[bodyStart:]

	// A fenced body may legitimately contain "</code>"; look past its closer.
	searchFrom := fencedBodyEnd(rest)
	closeLoc := codeCloseRe.FindStringIndex(rest[searchFrom:])
	if closeLoc == nil {
		return nil, false
	}
	closeStart := bodyStart + searchFrom + closeLoc[0]
	b.body = d.text[bodyStart:closeStart]
	b.last = d.lineAt(closeStart)
	return b, true
}

// fencedBodyEnd returns the offset just past the closing fence when rest
// starts (after one optional newline) with a fence, and 0 otherwise.
func fencedBodyEnd(rest string) int {
	skip := 0
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		skip = 2
	case strings.HasPrefix(rest, "\n"):
		skip = 1
	}
	lineEnd := strings.IndexByte(rest[skip:], '\n')
	if lineEnd < 0 {
		return 0
	}
	m, ok := parseFenceOpen(rest[skip : skip+lineEnd])
	if !ok {
		return 0
	}
	pos := skip + lineEnd + 1
	for pos < len(rest) {
		end := strings.IndexByte(rest[pos:], '\n')
		next := len(rest)
		line := rest[pos:]
		if end >= 0 {
			line = rest[pos : pos+end]
			next = pos + end + 1
		}
		if m.closes(line) {
			return next
		}
		pos = next
	}
	return 0
}

func (d *document) lineAt(offset int) int {
	return sort.SearchInts(d.offsets, offset+1) - 1
}

func (d *document) skipBlank(i int) int {
	for i < len(d.lines) && isBlank(d.lines[i]) {
		i++
	}
	return i
}

func (d *document) fenceContent(b *block) string {
	end := b.last + 1
	if b.closed {
		end = b.last
	}
	return b.fence.body(d.lines[b.first+1:end])
}

// codeContent normalizes the raw text between <code> tags: one newline after
// the opening tag and trailing indentation before the closing tag are markup,
// and a body that is a single fenced block is unwrapped.
func codeContent(body string) (content, lang string) {
	switch {
	case strings.HasPrefix(body, "\r\n"):
		body = body[2:]
	case strings.HasPrefix(body, "\n"):
		body = body[1:]
	}
	if k := strings.LastIndexByte(body, '\n'); k >= 0 && isBlank(body[k+1:]) {
		body = body[:k+1]
	}
	if isBlank(body) {
		return "", ""
	}
	inner := scan(body)
	if b, ok := inner.blocks[0]; ok && b.kind == blockFence && b.closed && b.last == len(inner.lines)-1 {
		return inner.fenceContent(b), b.fence.language()
	}
	return body, ""
}

// markerFunc recognizes an annotation at line i and returns the path plus
// the index of the first line after the annotation.
type markerFunc func(d *document, i int) (path string, next int, ok bool)

// walk runs a line marker over the document. A recognized marker takes the
// next fenced block (or, with allowCode, a bare <code> block) after any blank
// lines. A marker followed by prose, another marker or the end of the
// document takes nothing and fn receives a nil block. A marker directly above
// a block it cannot take is skipped, since that block belongs to another
// notation.
func (d *document) walk(marker markerFunc, allowCode bool, fn func(path string, b *block)) {
	for i := 0; i < len(d.lines); {
		if b, ok := d.blocks[i]; ok {
			i = b.last + 1
			continue
		}
		path, next, ok := marker(d, i)
		if !ok {
			i++
			continue
		}
		b, ok := d.blocks[d.skipBlank(next)]
		switch {
		case !ok:
			fn(path, nil)
			i = next
		case b.kind == blockFence || (allowCode && b.kind == blockCode && !b.tagged):
			fn(path, b)
			i = b.last + 1
		default:
			i = next
		}
	}
}

// collect turns every marker walk reports into a fragment; a marker with
// nothing to take yields empty content.
func (d *document) collect(p Pattern, marker markerFunc, allowCode bool) []Fragment {
	var out []Fragment
	d.walk(marker, allowCode, func(path string, b *block) {
		f := Fragment{Path: path, Source: p}
		switch {
		case b == nil:
		case b.kind == blockFence:
			f.Language, f.Content = b.fence.language(), d.fenceContent(b)
		default:
			f.Content, f.Language = codeContent(b.body)
		}
		out = append(out, f)
	})
	return out
}

// claimedFences returns the first lines of the fences a wrapped, heading or
// banner marker takes as its content.
func (d *document) claimedFences() map[int]bool {
	claimed := make(map[int]bool)
	take := func(_ string, b *block) {
		if b != nil && b.kind == blockFence {
			claimed[b.first] = true
		}
	}
	d.walk(wrappedMarker, true, take)
	d.walk(headingMarker, false, take)
	d.walk(bannerMarker, false, take)
	return claimed
}
