// Package report renders the classified outcome of a recipe run for humans.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xlab/treeprint"

	"refit/internal/recipe"
	"refit/internal/results"
)

// Styles for the report
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // Cyan
	pathStyle   = lipgloss.NewStyle().Bold(true)
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	delStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	moveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // Gray
)

// Printer writes the categorized report.
type Printer struct {
	w io.Writer

	// Lookup resolves a recipe name to its descriptor for the per-result
	// recipe tree. Nil lookups render names flat.
	Lookup func(name string) (recipe.Descriptor, bool)
}

// NewPrinter creates a Printer writing to stdout.
func NewPrinter() *Printer {
	return &Printer{w: os.Stdout}
}

// NewPrinterWithWriter creates a Printer writing to a custom writer.
func NewPrinterWithWriter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes one section per non-empty category, each result with its
// root-relative path and the tree of recipes that produced it, then a
// summary line. An all-empty container prints a no-op notice.
func (p *Printer) Print(c *results.Container) {
	if !c.IsNotEmpty() {
		fmt.Fprintln(p.w, detailStyle.Render("No changes were made."))
		return
	}

	p.section("Generated", c.Generated, func(r *results.Result) string {
		return addStyle.Render("+ ") + pathStyle.Render(r.After.Path)
	})
	p.section("Deleted", c.Deleted, func(r *results.Result) string {
		return delStyle.Render("- ") + pathStyle.Render(r.Before.Path)
	})
	p.section("Moved", c.Moved, func(r *results.Result) string {
		return moveStyle.Render("> ") + pathStyle.Render(r.Before.Path+" -> "+r.After.Path)
	})
	p.section("Refactored in place", c.RefactoredInPlace, func(r *results.Result) string {
		return moveStyle.Render("~ ") + pathStyle.Render(r.After.Path)
	})

	fmt.Fprintf(p.w, "\n%s\n", detailStyle.Render(fmt.Sprintf(
		"%d generated, %d deleted, %d moved, %d refactored in place (root: %s)",
		len(c.Generated), len(c.Deleted), len(c.Moved), len(c.RefactoredInPlace), c.ProjectRoot)))
}

func (p *Printer) section(title string, rs []*results.Result, line func(*results.Result) string) {
	if len(rs) == 0 {
		return
	}
	fmt.Fprintf(p.w, "\n%s\n", headerStyle.Render("━━━ "+title+" ━━━"))
	for _, r := range rs {
		fmt.Fprintf(p.w, "%s\n", line(r))
		if tree := p.recipeTree(r); tree != "" {
			fmt.Fprint(p.w, detailStyle.Render(tree))
		}
	}
}

// PrintDescriptors writes each available recipe as a tree: the recipe's
// name and configured options at the root, its delegate recipes beneath.
func (p *Printer) PrintDescriptors(ds []recipe.Descriptor) {
	if len(ds) == 0 {
		fmt.Fprintln(p.w, detailStyle.Render("No recipes are available."))
		return
	}
	fmt.Fprintf(p.w, "%s\n\n", headerStyle.Render(fmt.Sprintf("Available recipes (%d):", len(ds))))
	for _, d := range ds {
		label := pathStyle.Render(d.Name)
		if opts := formatOptions(d.Options); opts != "" {
			label += detailStyle.Render(": {" + opts + "}")
		}
		tree := treeprint.NewWithRoot(label)
		for _, child := range d.Recipes {
			addDescriptor(tree, child)
		}
		fmt.Fprint(p.w, tree.String())
		if d.DisplayName != "" {
			fmt.Fprintf(p.w, "%s\n", detailStyle.Render("    "+d.DisplayName))
		}
	}
}

// recipeTree renders the recipes that contributed to a result, expanding
// each into its descriptor tree when the lookup knows it.
func (p *Printer) recipeTree(r *results.Result) string {
	if len(r.Recipes) == 0 {
		return ""
	}
	tree := treeprint.NewWithRoot("made by")
	for _, name := range r.Recipes {
		if p.Lookup != nil {
			if d, ok := p.Lookup(name); ok {
				addDescriptor(tree, d)
				continue
			}
		}
		tree.AddNode(name)
	}
	return indent(tree.String())
}

func addDescriptor(branch treeprint.Tree, d recipe.Descriptor) {
	label := d.Name
	if opts := formatOptions(d.Options); opts != "" {
		label += ": {" + opts + "}"
	}
	node := branch.AddBranch(label)
	for _, child := range d.Recipes {
		addDescriptor(node, child)
	}
}

func formatOptions(opts []recipe.Option) string {
	var parts []string
	for _, o := range opts {
		if o.Value != "" {
			parts = append(parts, o.Name+"="+o.Value)
		}
	}
	return strings.Join(parts, ", ")
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
