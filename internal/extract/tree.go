package extract

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
)

// StructureHeading introduces the optional directory tree. It is not a path,
// so no notation claims the tree block.
const StructureHeading = "# Project structure"

// renderTree draws sorted slash paths as a nested list.
func renderTree(rootName string, paths []string) string {
	w := list.NewWriter()
	w.SetStyle(list.StyleConnectedLight)
	w.AppendItem(rootName + "/")
	w.Indent()

	var stack []string
	for _, p := range paths {
		parts := strings.Split(p, "/")
		dirs, file := parts[:len(parts)-1], parts[len(parts)-1]

		common := 0
		for common < len(stack) && common < len(dirs) && stack[common] == dirs[common] {
			common++
		}
		for len(stack) > common {
			w.UnIndent()
			stack = stack[:len(stack)-1]
		}
		for _, d := range dirs[common:] {
			w.AppendItem(d + "/")
			w.Indent()
			stack = append(stack, d)
		}
		w.AppendItem(file)
	}
	return w.Render()
}

func writeStructure(sb *strings.Builder, rootName string, paths []string) {
	tree := renderTree(rootName, paths)
	fence := "```"
	for strings.Contains(tree, fence) {
		fence += "`"
	}
	sb.WriteString(StructureHeading)
	sb.WriteString("\n\n")
	sb.WriteString(fence)
	sb.WriteString("text\n")
	sb.WriteString(tree)
	if !strings.HasSuffix(tree, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(fence)
	sb.WriteString("\n\n")
}
