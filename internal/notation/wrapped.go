package notation

import (
	"regexp"
	"strings"
)

var wrappedRe = regexp.MustCompile(`(?i)^ {0,3}(?:#{1,6}[ \t]*)?<(file|path)>(.*?)</(file|path)>[ \t]*:?[ \t]*$`)

func wrappedMarker(d *document, i int) (string, int, bool) {
	m := wrappedRe.FindStringSubmatch(strings.TrimRight(d.lines[i], " \t\r"))
	if m == nil || !strings.EqualFold(m[1], m[3]) {
		return "", 0, false
	}
	p, ok := normalized(strings.TrimSpace(m[2]))
	if !ok {
		return "", 0, false
	}
	return p, i + 1, true
}
