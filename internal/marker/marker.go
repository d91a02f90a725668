// Package marker models the annotations a transformation engine attaches to
// nodes of a source tree, and provides a generic pre-order walk over those
// trees.
package marker

// Kind identifies the variant of a marker. The set is closed: classification
// and rendering logic switches exhaustively over these values.
type Kind int

const (
	// KindSearchResult highlights a location matched by a search recipe.
	KindSearchResult Kind = iota
	// KindError carries the detail of a failure that occurred while
	// transforming the node it is attached to.
	KindError
	// KindGenerated marks a snapshot as machine-generated. Generated
	// sources are filtered out before classification; the classifier never
	// re-checks this kind.
	KindGenerated
	// KindOther is engine-internal bookkeeping. It must never appear in
	// rendered output.
	KindOther
)

// String returns the marker kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindSearchResult:
		return "search-result"
	case KindError:
		return "error"
	case KindGenerated:
		return "generated"
	default:
		return "other"
	}
}

// Marker is one annotation attached to a tree node.
type Marker struct {
	ID     string
	Kind   Kind
	Detail string // only meaningful for KindError
}

// Node is one node of a snapshot's source tree. Text holds the fragment of
// source this node prints; children print after it.
type Node struct {
	Text     string
	Markers  []Marker
	Children []*Node
}

// Append returns a copy of the node with an extra marker attached.
func (n *Node) Append(m Marker) *Node {
	out := *n
	out.Markers = append(append([]Marker(nil), n.Markers...), m)
	return &out
}

// Find returns the first marker of the given kind on this node.
func (n *Node) Find(kind Kind) (Marker, bool) {
	for _, m := range n.Markers {
		if m.Kind == kind {
			return m, true
		}
	}
	return Marker{}, false
}
