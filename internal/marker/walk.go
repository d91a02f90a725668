package marker

// Walk visits every node of the tree in pre-order (node before children),
// invoking fn on each. If fn returns false the walk stops immediately.
// Walk returns false if the traversal was stopped early.
//
// All marker queries go through this single traversal; do not duplicate the
// recursion per marker kind.
func Walk(root *Node, fn func(*Node) bool) bool {
	if root == nil {
		return true
	}
	if !fn(root) {
		return false
	}
	for _, child := range root.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// FirstError returns the first KindError marker found in a pre-order walk of
// the tree.
func FirstError(root *Node) (Marker, bool) {
	var found Marker
	var ok bool
	Walk(root, func(n *Node) bool {
		if m, has := n.Find(KindError); has {
			found = m
			ok = true
			return false
		}
		return true
	})
	return found, ok
}
