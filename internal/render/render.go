// Package render turns diff.Diff and schema.Package values into
// terminal output — the "terminal rendering of info/diff results"
// spec.md §1 names as an external collaborator, kept outside the core
// entirely. Grounded on invowk-invowk's cmd/invowk/tui_style.go, which
// builds a small set of reusable lipgloss.Style values rather than
// constructing styles inline at each call site.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gregorybchris/myxa/diff"
	"github.com/gregorybchris/myxa/schema"
)

var (
	breakingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	nonBreakingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle         = lipgloss.NewStyle().Faint(true)
	headerStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Diff renders a diff.Diff as a list of styled change lines, breaking
// changes in red and non-breaking changes in green.
func Diff(d diff.Diff) string {
	if len(d.Changes) == 0 {
		return dimStyle.Render("no changes")
	}

	var b strings.Builder
	for _, c := range d.Changes {
		line := c.Description()
		if c.Category == diff.Breaking {
			b.WriteString(breakingStyle.Render(line))
		} else {
			b.WriteString(nonBreakingStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Tree renders a package's interface tree, nesting modules and listing
// members under a header naming the package and its version.
func Tree(pkg *schema.Package) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %s", pkg.Info.Name, pkg.Info.Version)))
	b.WriteString("\n")
	if pkg.Info.Description != "" {
		b.WriteString(dimStyle.Render(pkg.Info.Description))
		b.WriteString("\n")
	}
	renderModule(&b, &pkg.Root, 0)
	return b.String()
}

func renderModule(b *strings.Builder, mod *schema.Module, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, name := range mod.SortedMemberNames() {
		b.WriteString(indent)
		b.WriteString(describeMember(name, mod.Members[name]))
		b.WriteString("\n")
	}
	for _, name := range mod.SortedModuleNames() {
		b.WriteString(indent)
		b.WriteString(dimStyle.Render(name + "/"))
		b.WriteString("\n")
		renderModule(b, mod.Modules[name], depth+1)
	}
}

func describeMember(name string, member schema.Member) string {
	switch member.Kind {
	case schema.KindFunc:
		params := make([]string, len(member.Func.Params))
		for i, p := range member.Func.Params {
			params[i] = fmt.Sprintf("%s %s", p.Name, p.Type)
		}
		return fmt.Sprintf("func %s(%s) %s", name, strings.Join(params, ", "), member.Func.Return)
	case schema.KindStruct:
		return fmt.Sprintf("struct %s (%d fields)", name, len(member.Struct.Fields))
	case schema.KindEnum:
		return fmt.Sprintf("enum %s (%d variants)", name, len(member.Enum.Variants))
	default:
		return name
	}
}
