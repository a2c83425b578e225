package notation

import (
	"regexp"
	"strings"
)

var headingRe = regexp.MustCompile(`^ {0,3}#{1,6}[ \t]+(.*?)(?:[ \t]+#+)?$`)

func headingMarker(d *document, i int) (string, int, bool) {
	m := headingRe.FindStringSubmatch(strings.TrimRight(d.lines[i], " \t\r"))
	if m == nil {
		return "", 0, false
	}
	p, ok := pathToken(m[1], true)
	if !ok {
		return "", 0, false
	}
	return p, i + 1, true
}
