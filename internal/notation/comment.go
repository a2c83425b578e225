package notation

// detectLeadingComment accepts the marker as the first line inside a fence
// (excluded from content) or on its own line directly above a fence. Fences
// in claimed already belong to another marker and are not read.
func detectLeadingComment(d *document, claimed map[int]bool) []Fragment {
	var out []Fragment
	for i := 0; i < len(d.lines); {
		if b, ok := d.blocks[i]; ok {
			if f, ok := d.commentInside(b); ok && !claimed[b.first] {
				out = append(out, f)
			}
			i = b.last + 1
			continue
		}
		p, ok := commentPath(d.lines[i])
		if !ok {
			i++
			continue
		}
		b, ok := d.blocks[d.skipBlank(i+1)]
		switch {
		case !ok:
			out = append(out, Fragment{Path: p, Source: LeadingComment})
			i++
		case b.kind == blockFence && !claimed[b.first]:
			out = append(out, Fragment{Path: p, Language: b.fence.language(), Content: d.fenceContent(b), Source: LeadingComment})
			i = b.last + 1
		default:
			i++
		}
	}
	return out
}

func (d *document) commentInside(b *block) (Fragment, bool) {
	if b.kind != blockFence || b.first+1 > b.last || (b.closed && b.first+1 == b.last) {
		return Fragment{}, false
	}
	p, ok := commentPath(d.lines[b.first+1])
	if !ok {
		return Fragment{}, false
	}
	end := b.last + 1
	if b.closed {
		end = b.last
	}
	return Fragment{
		Path:     p,
		Language: b.fence.language(),
		Content:  b.fence.body(d.lines[b.first+2:end]),
		Source:   LeadingComment,
	}, true
}
