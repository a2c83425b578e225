package notation

import "strings"

const bannerChars = "=-~*"

// bannerMarker accepts "==== P ====" on one line or a P line framed by two
// delimiter lines of the same character.
func bannerMarker(d *document, i int) (string, int, bool) {
	line := strings.TrimSpace(d.lines[i])
	if len(line) < 3 || !strings.ContainsRune(bannerChars, rune(line[0])) {
		return "", 0, false
	}
	c := line[0]
	lead := runLength(line, c)
	if lead < 3 {
		return "", 0, false
	}
	if lead == len(line) {
		if i+2 >= len(d.lines) || !isDelimiterLine(strings.TrimSpace(d.lines[i+2]), c) {
			return "", 0, false
		}
		p, ok := pathToken(d.lines[i+1], true)
		if !ok {
			return "", 0, false
		}
		return p, i + 3, true
	}
	trail := 0
	for trail < len(line)-lead && line[len(line)-1-trail] == c {
		trail++
	}
	if trail < 3 {
		return "", 0, false
	}
	p, ok := pathToken(line[lead:len(line)-trail], true)
	if !ok {
		return "", 0, false
	}
	return p, i + 1, true
}

func isDelimiterLine(s string, c byte) bool {
	return len(s) >= 3 && runLength(s, c) == len(s)
}
