package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mdtree/internal/execution"
	"mdtree/internal/fileutil"
	"mdtree/internal/notation"
)

// File names written by the scaffold commands.
const (
	SampleFileName = "sample.md"
	PromptFileName = "prompt.md"
)

// ErrExists reports a scaffold target that is already present.
var ErrExists = errors.New("file already exists")

var sampleFiles = []struct {
	pattern notation.Pattern
	file    notation.Fragment
}{
	{notation.TaggedBlock, notation.Fragment{Path: "Cargo.toml", Content: "[package]\nname = \"sample_project\"\nversion = \"0.1.0\"\nedition = \"2021\"\n"}},
	{notation.HeadingFence, notation.Fragment{Path: "src/main.rs", Content: "use sample_project::greeting;\n\nfn main() {\n    println!(\"{}\", greeting(\"sample project\"));\n}\n"}},
	{notation.Banner, notation.Fragment{Path: "src/lib.rs", Content: "pub mod util;\n\npub fn greeting(name: &str) -> String {\n    format!(\"Hello, {}!\", util::title(name))\n}\n\n#[cfg(test)]\nmod tests {\n    use super::*;\n\n    #[test]\n    fn greets() {\n        assert_eq!(greeting(\"x\"), \"Hello, X!\");\n    }\n}\n"}},
	{notation.LeadingComment, notation.Fragment{Path: "src/util.rs", Content: "pub fn title(s: &str) -> String {\n    let mut chars = s.chars();\n    match chars.next() {\n        Some(c) => c.to_uppercase().collect::<String>() + chars.as_str(),\n        None => String::new(),\n    }\n}\n"}},
	{notation.WrappedHeadingFence, notation.Fragment{Path: "README.md", Content: "# sample_project\n\nGenerated by mdtree.\n"}},
}

// Sample renders the sample document.
func Sample() string {
	var sb strings.Builder
	sb.WriteString("# Sample project\n\n")
	sb.WriteString("Each file below uses a different annotation style. Run `mdtree generate` in this directory to build it.\n\n")
	for _, s := range sampleFiles {
		sb.WriteString(s.pattern.Serialize(s.file))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Prompt renders the authoring guide.
func Prompt() string {
	var sb strings.Builder
	sb.WriteString("# Writing documents for mdtree\n\n")
	sb.WriteString("Describe a complete project in one markdown document. Every file must be annotated with its relative path using one of the styles below; prose between files is ignored.\n\n")
	for _, p := range notation.All() {
		fmt.Fprintf(&sb, "## %s\n\n%s.\n\n", p, capitalize(p.Description()))
		example := p.Example()
		fence := "````"
		for strings.Contains(example, fence) {
			fence += "`"
		}
		sb.WriteString(fence)
		sb.WriteString("markdown\n")
		sb.WriteString(example)
		sb.WriteString(fence)
		sb.WriteString("\n\n")
	}
	sb.WriteString("## Rules\n\n")
	sb.WriteString("- Paths are relative to the project root and may not contain `..` segments.\n")
	sb.WriteString("- When a path appears more than once, the last occurrence in the highest priority style wins; styles are listed above in priority order.\n")
	sb.WriteString("- Include a manifest (`Cargo.toml`, `package.json`, or `pubspec.yaml`) or one is generated for you.\n")
	fmt.Fprintf(&sb, "- Executable projects (`src/main.rs`, `index.js`, `bin/main.dart`) are run and their output saved to `%s`.\n", execution.OutputFileName(execution.PhaseRun))
	fmt.Fprintf(&sb, "- Libraries (`src/lib.rs`, `lib/index.js`, `lib/lib.dart`) are tested and their output saved to `%s`.\n", execution.OutputFileName(execution.PhaseTest))
	return sb.String()
}

// Write stores content as dir/name. Existing files are kept unless force is
// set.
func Write(dir, name, content string, force bool) (string, error) {
	dest := filepath.Join(dir, name)
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return dest, fmt.Errorf("%w: %s", ErrExists, dest)
		}
	}
	if err := fileutil.WriteAtomic(dest, []byte(content), fileutil.FileMode); err != nil {
		return dest, fmt.Errorf("write %s: %w", name, err)
	}
	return dest, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
