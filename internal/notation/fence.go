package notation

import "strings"

// Words in a fence info string written by Serialize. noEOLWord marks content
// without a final newline; verbatimWord marks whitespace-only content that
// must not collapse to empty.
const (
	noEOLWord    = "noeol"
	verbatimWord = "verbatim"
)

type fenceMarker struct {
	char byte
	size int
	info string
}

func parseFenceOpen(line string) (fenceMarker, bool) {
	s := strings.TrimRight(line, " \t\r")
	s, ok := trimIndent(s)
	if !ok || len(s) < 3 || (s[0] != '`' && s[0] != '~') {
		return fenceMarker{}, false
	}
	n := runLength(s, s[0])
	if n < 3 {
		return fenceMarker{}, false
	}
	info := strings.TrimSpace(s[n:])
	if s[0] == '`' && strings.Contains(info, "`") {
		return fenceMarker{}, false
	}
	return fenceMarker{char: s[0], size: n, info: info}, true
}

func (m fenceMarker) closes(line string) bool {
	s := strings.TrimRight(line, " \t\r")
	s, ok := trimIndent(s)
	if !ok || s == "" {
		return false
	}
	n := runLength(s, m.char)
	return n >= m.size && n == len(s)
}

func (m fenceMarker) language() string {
	fields := strings.Fields(m.info)
	if len(fields) == 0 || fields[0] == noEOLWord || fields[0] == verbatimWord {
		return ""
	}
	return fields[0]
}

func (m fenceMarker) has(word string) bool {
	for _, f := range strings.Fields(m.info) {
		if f == word {
			return true
		}
	}
	return false
}

// body rebuilds file content from the fence's body lines.
func (m fenceMarker) body(lines []string) string {
	return joinBody(lines, m.has(noEOLWord), m.has(verbatimWord))
}

// trimIndent strips up to three leading spaces; more means indented code.
func trimIndent(s string) (string, bool) {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i > 3 {
		return s, false
	}
	return s[i:], true
}

func runLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// joinBody rebuilds file content from fence body lines. Whitespace-only
// content collapses to empty unless verbatim is set.
func joinBody(lines []string, noEOL, verbatim bool) string {
	if len(lines) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	content := sb.String()
	if noEOL {
		content = content[:len(content)-1]
	}
	if !verbatim && isBlank(content) {
		return ""
	}
	return content
}

// writeFence emits a backtick fence long enough that no content line can
// close it early. header, when set, becomes the first body line.
func writeFence(sb *strings.Builder, lang, header, content string) {
	size := longestRun(header+"\n"+content, '`') + 1
	if size < 3 {
		size = 3
	}
	fence := strings.Repeat("`", size)
	noEOL := content != "" && !strings.HasSuffix(content, "\n")
	info := lang
	if noEOL {
		info = strings.TrimSpace(info + " " + noEOLWord)
	}
	if content != "" && isBlank(content) {
		info = strings.TrimSpace(info + " " + verbatimWord)
	}
	sb.WriteString(fence)
	sb.WriteString(info)
	sb.WriteByte('\n')
	if header != "" {
		sb.WriteString(header)
		sb.WriteByte('\n')
	}
	sb.WriteString(content)
	if noEOL {
		sb.WriteByte('\n')
	}
	sb.WriteString(fence)
	sb.WriteByte('\n')
}

func longestRun(s string, c byte) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			if cur > best {
				best = cur
			}
			continue
		}
		cur = 0
	}
	return best
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
