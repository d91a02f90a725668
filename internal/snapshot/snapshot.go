// Package snapshot holds the immutable, path-addressed representation of one
// source file at one point in time, plus the printers that turn its tree back
// into text.
package snapshot

import (
	"strings"

	"refit/internal/marker"
)

// Snapshot is one file's tree at one point in time. It is produced by the
// transformation engine and read-only afterwards. Path is relative to the
// project root and always uses forward slashes.
type Snapshot struct {
	Path string
	Root *marker.Node
}

// New builds a single-node snapshot from raw file content. This is the
// handoff format for plain-text sources that were never parsed into a
// deeper tree.
func New(path, content string) *Snapshot {
	return &Snapshot{Path: path, Root: &marker.Node{Text: content}}
}

// MarkerPrinter decides what text a marker contributes around the syntax of
// the node it is attached to.
type MarkerPrinter interface {
	Before(m marker.Marker) string
	After(m marker.Marker) string
}

// Print renders the snapshot's tree with the given printer. Marker output
// wraps the node's own text; children render after it.
func (s *Snapshot) Print(p MarkerPrinter) string {
	if s == nil || s.Root == nil {
		return ""
	}
	var b strings.Builder
	printNode(&b, s.Root, p)
	return b.String()
}

func printNode(b *strings.Builder, n *marker.Node, p MarkerPrinter) {
	for _, m := range n.Markers {
		b.WriteString(p.Before(m))
	}
	b.WriteString(n.Text)
	for _, m := range n.Markers {
		b.WriteString(p.After(m))
	}
	for _, child := range n.Children {
		printNode(b, child, p)
	}
}

// FencedPrinter renders search-result and error markers as a {{id}} fence
// and suppresses every other marker kind, keeping engine bookkeeping out of
// diffs while preserving the visible signal.
type FencedPrinter struct{}

func (FencedPrinter) Before(m marker.Marker) string { return fence(m) }
func (FencedPrinter) After(m marker.Marker) string  { return fence(m) }

func fence(m marker.Marker) string {
	if m.Kind == marker.KindSearchResult || m.Kind == marker.KindError {
		return "{{" + m.ID + "}}"
	}
	return ""
}

// PlainPrinter suppresses all markers. Used when writing file content to
// disk.
type PlainPrinter struct{}

func (PlainPrinter) Before(marker.Marker) string { return "" }
func (PlainPrinter) After(marker.Marker) string  { return "" }
