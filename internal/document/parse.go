package document

import (
	"fmt"

	"mdtree/internal/notation"
	"mdtree/internal/project"
	"mdtree/internal/services"
)

// Options controls how a document is interpreted.
type Options struct {
	Selection notation.Selection
	// ProjectType is an ecosystem hint; empty means detect.
	ProjectType string
}

// Overwrite records a fragment that lost to another fragment with the same
// path.
type Overwrite struct {
	Path    string
	Kept    notation.Pattern
	Dropped notation.Pattern
}

func (o Overwrite) String() string {
	return fmt.Sprintf("%s: %s fragment replaced by %s", o.Path, o.Dropped, o.Kept)
}

// Result is the outcome of parsing a document.
type Result struct {
	Project    *project.Project
	Overwrites []Overwrite
}

// Parse interprets text, the content of the document called name.
func Parse(name, text string, opts Options) (*Result, error) {
	files, overwrites := Merge(text, opts.Selection)
	if len(files) == 0 {
		return nil, services.Wrap(
			services.ErrNoFragmentsFound,
			name,
			"parse",
			fmt.Sprintf("no %s annotations", opts.Selection),
			nil,
		)
	}
	proj, err := project.New(project.NameFromDocument(name), files, opts.ProjectType)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, name, "model project", "", err)
	}
	return &Result{Project: proj, Overwrites: overwrites}, nil
}

// Merge runs the selected matchers and resolves duplicate paths. Order is the
// first appearance of each path across matchers in priority order. Content
// comes from the highest priority matcher that produced the path and, within
// that matcher, its last occurrence.
func Merge(text string, sel notation.Selection) ([]notation.Fragment, []Overwrite) {
	var (
		order      []string
		chosen     = make(map[string]notation.Fragment)
		overwrites []Overwrite
	)
	for _, f := range sel.Detect(text) {
		prev, seen := chosen[f.Path]
		if !seen {
			order = append(order, f.Path)
			chosen[f.Path] = f
			continue
		}
		if prev.Source == f.Source {
			chosen[f.Path] = f
			overwrites = append(overwrites, Overwrite{Path: f.Path, Kept: f.Source, Dropped: prev.Source})
			continue
		}
		overwrites = append(overwrites, Overwrite{Path: f.Path, Kept: prev.Source, Dropped: f.Source})
	}
	files := make([]notation.Fragment, 0, len(order))
	for _, path := range order {
		files = append(files, chosen[path])
	}
	return files, overwrites
}
