package notation

import (
	"path"
	"regexp"
	"strings"
)

// pathToken extracts a path from annotation text. Back-quoted text is always
// taken literally. Bare text must be a single token; with requireHint it must
// also look like a path (contain a dot or a slash) so prose headings and
// banners are not mistaken for files.
func pathToken(text string, requireHint bool) (string, bool) {
	s := strings.TrimSpace(text)
	s = strings.TrimSuffix(s, ":")
	s = strings.TrimSpace(s)
	s = trimPair(s, "**")
	s = trimPair(s, "__")
	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		return normalized(inner)
	}
	s = trimPair(s, "'")
	if s == "" || strings.ContainsAny(s, " \t") {
		return "", false
	}
	if requireHint && !strings.ContainsAny(s, "./") {
		return "", false
	}
	return normalized(s)
}

func normalized(raw string) (string, bool) {
	p, err := NormalizePath(raw)
	if err != nil {
		return "", false
	}
	return p, true
}

func trimPair(s, marker string) string {
	if len(s) > 2*len(marker) && strings.HasPrefix(s, marker) && strings.HasSuffix(s, marker) {
		return strings.TrimSpace(s[len(marker) : len(s)-len(marker)])
	}
	return s
}

// quotePath renders p so pathToken(_, true) reads it back unchanged.
func quotePath(p string) string {
	if strings.ContainsAny(p, " \t") || !strings.ContainsAny(p, "./") || strings.HasPrefix(p, "**") || strings.HasPrefix(p, "__") || strings.HasPrefix(p, "'") || strings.HasSuffix(p, ":") {
		return "`" + p + "`"
	}
	return p
}

var languages = map[string]string{
	".rs":    "rust",
	".toml":  "toml",
	".json":  "json",
	".js":    "javascript",
	".mjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "tsx",
	".jsx":   "jsx",
	".dart":  "dart",
	".go":    "go",
	".py":    "python",
	".rb":    "ruby",
	".java":  "java",
	".kt":    "kotlin",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".swift": "swift",
	".sh":    "bash",
	".yaml":  "yaml",
	".yml":   "yaml",
	".md":    "markdown",
	".html":  "html",
	".css":   "css",
	".xml":   "xml",
	".sql":   "sql",
	".lua":   "lua",
}

func languageFor(p string) string {
	return languages[strings.ToLower(path.Ext(p))]
}

var commentStyles = map[string][2]string{
	".toml": {"#", ""}, ".yaml": {"#", ""}, ".yml": {"#", ""}, ".py": {"#", ""},
	".sh": {"#", ""}, ".rb": {"#", ""}, ".r": {"#", ""}, ".pl": {"#", ""},
	".conf": {"#", ""}, ".cfg": {"#", ""}, ".txt": {"#", ""}, ".gitignore": {"#", ""},
	".sql": {"--", ""}, ".lua": {"--", ""}, ".hs": {"--", ""},
	".html": {"<!--", " -->"}, ".htm": {"<!--", " -->"}, ".xml": {"<!--", " -->"},
	".md": {"<!--", " -->"}, ".svg": {"<!--", " -->"}, ".vue": {"<!--", " -->"},
	".css": {"/*", " */"},
	".ini": {";", ""}, ".clj": {";", ""}, ".lisp": {";", ""},
}

var hashCommentNames = map[string]bool{"Makefile": true, "Dockerfile": true, "Justfile": true}

// commentLine renders the "file:" marker in the comment syntax of p's language.
func commentLine(p string) string {
	style, ok := commentStyles[strings.ToLower(path.Ext(p))]
	if !ok {
		style = [2]string{"//", ""}
		if hashCommentNames[path.Base(p)] {
			style = [2]string{"#", ""}
		}
	}
	token := p
	if strings.ContainsAny(p, " \t") {
		token = "`" + p + "`"
	}
	return style[0] + " file: " + token + style[1]
}

var commentRe = regexp.MustCompile(`(?i)^\s*(?://+|#+|--|;+|/\*+|<!--)\s*file\s*:\s*(.+?)\s*(?:\*+/|-->)?\s*$`)

// commentPath recognizes a "file:" marker comment line.
func commentPath(line string) (string, bool) {
	m := commentRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return "", false
	}
	return pathToken(m[1], false)
}
