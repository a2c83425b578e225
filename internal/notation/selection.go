package notation

import "strings"

// AutoName is the selection identifier for automatic detection.
const AutoName = "auto"

// Selection is the explicit choice between one forced pattern and the
// automatic union of all patterns. The zero value selects automatic mode.
type Selection struct {
	forced Pattern
}

// Auto returns the automatic selection.
func Auto() Selection { return Selection{} }

// Force returns a selection that runs only p.
func Force(p Pattern) Selection { return Selection{forced: p} }

// ParseSelection accepts "auto" (or an empty string) or a pattern identifier.
func ParseSelection(name string) (Selection, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == AutoName {
		return Auto(), nil
	}
	p, err := ParsePattern(key)
	if err != nil {
		return Selection{}, err
	}
	return Force(p), nil
}

// Forced returns the forced pattern, if any.
func (s Selection) Forced() (Pattern, bool) {
	return s.forced, s.forced.Valid()
}

// Patterns returns the matchers to run, in priority order.
func (s Selection) Patterns() []Pattern {
	if p, ok := s.Forced(); ok {
		return []Pattern{p}
	}
	return All()
}

// Detect runs the selected matchers over text and returns their fragments,
// grouped by matcher in priority order. In automatic mode a fence taken by a
// wrapped, heading or banner marker is not read again for a leading comment.
func (s Selection) Detect(text string) []Fragment {
	d := scan(text)
	var claimed map[int]bool
	if _, forced := s.Forced(); !forced {
		claimed = d.claimedFences()
	}
	var out []Fragment
	for _, p := range s.Patterns() {
		out = append(out, p.detect(d, claimed)...)
	}
	return out
}

func (s Selection) String() string {
	if p, ok := s.Forced(); ok {
		return p.String()
	}
	return AutoName
}
