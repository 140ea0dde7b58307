package zone

import (
	"strings"

	"github.com/twotwotwo/sorts"
)

// labelList adapts a []string of child labels to sort.Interface so it
// can be sorted with the same sorts.Quicksort the rest of the package
// uses for owner-name ordering.
type labelList []string

func (l labelList) Len() int           { return len(l) }
func (l labelList) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }
func (l labelList) Less(i, j int) bool { return l[i] < l[j] }

// ZoneNode is one node of the labelled zone tree: it may be a
// terminal (has rdata), an empty non-terminal (has children but no
// rdata of its own), or both.
type ZoneNode struct {
	label    string // this node's own label, relative to its parent
	name     string // fully qualified owner name
	parent   *ZoneNode
	children map[string]*ZoneNode
	order    []string // sorted child labels, canonical order

	rdata rdataStore
	flags nodeFlags
}

func newZoneNode(name, label string, parent *ZoneNode) *ZoneNode {
	return &ZoneNode{
		label:    label,
		name:     name,
		parent:   parent,
		children: make(map[string]*ZoneNode),
	}
}

// Name returns the node's fully qualified owner name.
func (n *ZoneNode) Name() string {
	return n.name
}

// child returns the direct child with the given relative label, if any.
func (n *ZoneNode) child(label string) (*ZoneNode, bool) {
	c, ok := n.children[strings.ToLower(label)]
	return c, ok
}

// ensureChild returns the child with the given label, creating it
// (and inserting it into sorted order) if it does not yet exist.
func (n *ZoneNode) ensureChild(label, fqdn string) *ZoneNode {
	key := strings.ToLower(label)
	if c, ok := n.children[key]; ok {
		return c
	}
	c := newZoneNode(fqdn, label, n)
	n.children[key] = c
	n.order = append(n.order, key)
	sorts.Quicksort(labelList(n.order))
	return c
}

// isEmptyNonTerminal reports whether this node carries no rdata of its
// own but exists only to provide structure for descendant names.
func (n *ZoneNode) isEmptyNonTerminal() bool {
	return n.rdata.len() == 0 && len(n.children) > 0
}
