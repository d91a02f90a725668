package results

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sergi/go-diff/diffmatchpatch"

	"refit/internal/snapshot"
)

const diffContextLines = 3

// Diff renders a git-applyable diff between the before and after snapshots.
// Markers are rendered selectively: search results and errors appear as
// {{id}} fences, everything else is suppressed, so the diff shows recipe
// signal without engine bookkeeping. The empty string means "no visible
// change" and is what keeps an unchanged pair out of RefactoredInPlace;
// results with one absent side get new/deleted file mode headers, and a
// moved result always renders a rename stanza even when content is equal.
func (r *Result) Diff() string {
	before := r.Before.Print(snapshot.FencedPrinter{})
	after := r.After.Print(snapshot.FencedPrinter{})
	renamed := r.Before != nil && r.After != nil && r.Before.Path != r.After.Path
	if before == after && !renamed {
		return ""
	}

	oldPath, newPath := r.paths()
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", pathOr(r.Before, newPath), pathOr(r.After, oldPath))
	switch {
	case r.Before == nil:
		b.WriteString("new file mode 100644\n")
	case r.After == nil:
		b.WriteString("deleted file mode 100644\n")
	case renamed:
		if before == after {
			b.WriteString("similarity index 100%\n")
		}
		fmt.Fprintf(&b, "rename from %s\nrename to %s\n", r.Before.Path, r.After.Path)
		if before == after {
			return b.String()
		}
	}

	if isBinary(before) || isBinary(after) {
		fmt.Fprintf(&b, "Binary files %s and %s differ\n", oldPath, newPath)
		return b.String()
	}

	fmt.Fprintf(&b, "--- %s\n+++ %s\n", oldPath, newPath)
	for _, h := range hunks(before, after, diffContextLines) {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.oldStart, h.oldCount, h.newStart, h.newCount)
		for _, l := range h.lines {
			b.WriteByte(byte(l.op))
			b.WriteString(l.text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (r *Result) paths() (oldPath, newPath string) {
	oldPath, newPath = "/dev/null", "/dev/null"
	if r.Before != nil {
		oldPath = "a/" + r.Before.Path
	}
	if r.After != nil {
		newPath = "b/" + r.After.Path
	}
	return oldPath, newPath
}

func pathOr(s *snapshot.Snapshot, fallback string) string {
	if s != nil {
		return s.Path
	}
	return strings.TrimPrefix(strings.TrimPrefix(fallback, "a/"), "b/")
}

// isBinary reports whether content does not look like text. Detection uses
// the same library the source loader uses to skip binaries on the way in;
// rendering hunks for such content would be noise.
func isBinary(content string) bool {
	if content == "" {
		return false
	}
	for m := mimetype.Detect([]byte(content)); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false
		}
	}
	return true
}

type lineOp byte

const (
	opContext lineOp = ' '
	opDelete  lineOp = '-'
	opInsert  lineOp = '+'
)

type diffLine struct {
	op   lineOp
	text string
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []diffLine
}

// hunks computes a line-level diff and groups the changed lines into hunks
// with the given amount of surrounding context.
func hunks(before, after string, context int) []hunk {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	lines := toLines(diffs)
	return group(lines, context)
}

// toLines flattens diffmatchpatch output into per-line operations.
func toLines(diffs []diffmatchpatch.Diff) []diffLine {
	var out []diffLine
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		text := strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n")
		var op lineOp
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = opContext
		case diffmatchpatch.DiffDelete:
			op = opDelete
		case diffmatchpatch.DiffInsert:
			op = opInsert
		}
		for _, l := range text {
			out = append(out, diffLine{op: op, text: l})
		}
	}
	return out
}

// group splits the flat line list into hunks, merging changes whose context
// overlaps.
func group(lines []diffLine, context int) []hunk {
	var out []hunk
	oldLine, newLine := 1, 1
	i := 0
	for i < len(lines) {
		if lines[i].op == opContext {
			oldLine++
			newLine++
			i++
			continue
		}

		// Found a change: open a hunk including leading context.
		start := i
		leading := 0
		for start > 0 && leading < context && lines[start-1].op == opContext {
			start--
			leading++
		}
		h := hunk{oldStart: oldLine - leading, newStart: newLine - leading}

		// Extend through subsequent changes separated by at most 2*context
		// context lines, then include trailing context.
		end := i
		j := i
		for j < len(lines) {
			if lines[j].op != opContext {
				end = j
				j++
				continue
			}
			run := 0
			for j+run < len(lines) && lines[j+run].op == opContext {
				run++
			}
			if j+run < len(lines) && run <= 2*context {
				j += run
				continue
			}
			break
		}
		stop := end + context + 1
		if stop > len(lines) {
			stop = len(lines)
		}

		for _, l := range lines[start:stop] {
			h.lines = append(h.lines, l)
			switch l.op {
			case opContext:
				h.oldCount++
				h.newCount++
			case opDelete:
				h.oldCount++
			case opInsert:
				h.newCount++
			}
		}
		// A side with no lines hunks from the line before the change,
		// which is 0 for a file that does not exist on that side. git
		// apply rejects -1,0 and +1,0 forms.
		if h.oldCount == 0 {
			h.oldStart--
		}
		if h.newCount == 0 {
			h.newStart--
		}
		out = append(out, h)

		for _, l := range lines[i:stop] {
			if l.op != opInsert {
				oldLine++
			}
			if l.op != opDelete {
				newLine++
			}
		}
		i = stop
	}
	return out
}
