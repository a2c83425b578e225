package notation

import "strings"

func detectTagged(d *document) []Fragment {
	var out []Fragment
	for i := 0; i < len(d.lines); {
		b, ok := d.blocks[i]
		if !ok {
			i++
			continue
		}
		i = b.last + 1
		if b.kind != blockCode || !b.tagged {
			continue
		}
		p, ok := normalized(b.rawPath)
		if !ok {
			continue
		}
		content, lang := codeContent(b.body)
		out = append(out, Fragment{Path: p, Language: lang, Content: content, Source: TaggedBlock})
	}
	return out
}

// writeTagged emits the bare form when it reads back exactly and falls back to
// a fenced body otherwise, as for content that starts with a fence, contains
// a closing tag, ends in trailing indentation or is whitespace only.
func writeTagged(sb *strings.Builder, p, lang, content string) {
	open := `<code path="` + p + `">` + "\n"
	bare := open + content + "</code>\n"
	if got := detectTagged(scan(bare)); len(got) == 1 && got[0].Path == p && got[0].Content == content {
		sb.WriteString(bare)
		return
	}
	sb.WriteString(open)
	writeFence(sb, lang, "", content)
	sb.WriteString("</code>\n")
}
