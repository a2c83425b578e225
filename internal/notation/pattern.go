package notation

import (
	"fmt"
	"sort"
	"strings"
)

// Pattern identifies one of the five annotation conventions. Declaration
// order is priority order: earlier patterns win duplicate-path conflicts.
type Pattern int

const (
	// TaggedBlock is <code path="P"> ... </code>.
	TaggedBlock Pattern = iota + 1
	// WrappedHeadingFence is a heading holding <file> P </file> followed by a fence.
	WrappedHeadingFence
	// HeadingFence is a heading naming P followed by a fence.
	HeadingFence
	// Banner is a delimiter line framing P followed by a fence.
	Banner
	// LeadingComment is a fence whose first line is a "file: P" comment.
	LeadingComment
)

var allPatterns = []Pattern{TaggedBlock, WrappedHeadingFence, HeadingFence, Banner, LeadingComment}

var patternNames = map[Pattern]string{
	TaggedBlock:         "tagged-block",
	WrappedHeadingFence: "wrapped-heading-fence",
	HeadingFence:        "heading-fence",
	Banner:              "banner",
	LeadingComment:      "leading-comment",
}

var patternAliases = map[string]Pattern{
	"code-tag":    TaggedBlock,
	"tagged":      TaggedBlock,
	"file-fence":  WrappedHeadingFence,
	"file-code":   WrappedHeadingFence,
	"wrapped":     WrappedHeadingFence,
	"hash-marker": HeadingFence,
	"heading":     HeadingFence,
	"delimiter":   Banner,
	"raw":         LeadingComment,
	"comment":     LeadingComment,
}

var patternDescriptions = map[Pattern]string{
	TaggedBlock:         `<code path="P"> element wrapping the file content`,
	WrappedHeadingFence: "heading holding <file> P </file>, then a fenced block",
	HeadingFence:        "heading naming P, then a fenced block",
	Banner:              "delimiter banner framing P, then a fenced block",
	LeadingComment:      `fenced block whose first line is a "file: P" comment`,
}

// All returns every pattern in priority order.
func All() []Pattern {
	out := make([]Pattern, len(allPatterns))
	copy(out, allPatterns)
	return out
}

// String returns the canonical identifier used in flags and configuration.
func (p Pattern) String() string {
	if name, ok := patternNames[p]; ok {
		return name
	}
	return fmt.Sprintf("pattern(%d)", int(p))
}

// Valid reports whether p is one of the five known patterns.
func (p Pattern) Valid() bool {
	_, ok := patternNames[p]
	return ok
}

// Description is a one-line summary of the notation.
func (p Pattern) Description() string {
	return patternDescriptions[p]
}

// Aliases lists the alternative names ParsePattern accepts for p, sorted.
func (p Pattern) Aliases() []string {
	var out []string
	for name, target := range patternAliases {
		if target == p {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Example renders a small sample document in this notation.
func (p Pattern) Example() string {
	return p.Serialize(Fragment{Path: "src/main.rs", Content: "fn main() {}\n"})
}

// ParsePattern resolves a canonical identifier or a legacy alias.
func ParsePattern(name string) (Pattern, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for p, n := range patternNames {
		if n == key {
			return p, nil
		}
	}
	if p, ok := patternAliases[key]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown pattern %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Names lists the canonical identifiers in priority order.
func Names() []string {
	names := make([]string, 0, len(allPatterns))
	for _, p := range allPatterns {
		names = append(names, p.String())
	}
	return names
}

// Detect extracts every fragment annotated with this pattern, in document
// order. It never fails; unrecognized text is ignored.
func (p Pattern) Detect(text string) []Fragment {
	return p.detect(scan(text), nil)
}

func (p Pattern) detect(d *document, claimed map[int]bool) []Fragment {
	switch p {
	case TaggedBlock:
		return detectTagged(d)
	case WrappedHeadingFence:
		return d.collect(WrappedHeadingFence, wrappedMarker, true)
	case HeadingFence:
		return d.collect(HeadingFence, headingMarker, false)
	case Banner:
		return d.collect(Banner, bannerMarker, false)
	case LeadingComment:
		return detectLeadingComment(d, claimed)
	default:
		return nil
	}
}

// Serialize renders f in this notation. The output ends with a newline and
// reads back through Detect as exactly one fragment with f's path and content.
func (p Pattern) Serialize(f Fragment) string {
	var sb strings.Builder
	lang := languageFor(f.Path)
	switch p {
	case TaggedBlock:
		writeTagged(&sb, f.Path, lang, f.Content)
	case WrappedHeadingFence:
		sb.WriteString("### <file> ")
		sb.WriteString(f.Path)
		sb.WriteString(" </file>\n")
		writeFence(&sb, lang, "", f.Content)
	case HeadingFence:
		sb.WriteString("### ")
		sb.WriteString(quotePath(f.Path))
		sb.WriteByte('\n')
		writeFence(&sb, lang, "", f.Content)
	case Banner:
		sb.WriteString("==== ")
		sb.WriteString(quotePath(f.Path))
		sb.WriteString(" ====\n")
		writeFence(&sb, lang, "", f.Content)
	case LeadingComment:
		writeFence(&sb, lang, commentLine(f.Path), f.Content)
	}
	return sb.String()
}
