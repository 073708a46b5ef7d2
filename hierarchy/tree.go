package hierarchy

import (
	"fmt"
	"slices"
	"strings"
)

// DataIntegrityError reports a superclass map in which a class is its own
// ancestor.
type DataIntegrityError struct {
	Class string
	Chain []string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("hierarchy: cyclic inheritance for %s: %s", e.Class, strings.Join(e.Chain, " -> "))
}

const root = 0

type node struct {
	name     string
	parent   int
	children []int
}

// Tree is an inheritance forest stored as an arena. Node 0 is a synthetic
// root whose children are the topmost known classes.
type Tree struct {
	nodes []node
	index map[string]int
}

func newTree() *Tree {
	return &Tree{
		nodes: []node{{parent: -1}},
		index: map[string]int{},
	}
}

func (t *Tree) add(name string, parent int) int {
	i := len(t.nodes)
	t.nodes = append(t.nodes, node{name: name, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, i)
	t.index[name] = i
	return i
}

// Build places every class of m, and every ancestor reachable through m,
// in a tree. The first placement of a class wins. Classes are attached in
// map order, so siblings keep the order in which they were discovered.
func Build(m *Map) (*Tree, error) {
	t := newTree()
	for child, parent := range m.All() {
		if err := t.place(m, child, parent); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree) place(m *Map, child, parent string) error {
	if _, ok := t.index[child]; ok {
		return nil
	}

	// chain holds unplaced ancestors, nearest first.
	var chain []string
	seen := map[string]bool{child: true}
	attach := root
	for name := parent; ; {
		if seen[name] {
			return &DataIntegrityError{Class: child, Chain: append(append([]string{child}, chain...), name)}
		}
		if i, ok := t.index[name]; ok {
			attach = i
			break
		}
		seen[name] = true
		chain = append(chain, name)

		next, ok := m.Parent(name)
		if !ok {
			break
		}
		name = next
	}

	for i := len(chain) - 1; i >= 0; i-- {
		attach = t.add(chain[i], attach)
	}
	t.add(child, attach)
	return nil
}

// Walk calls fn for every class breadth first, parents before children.
// The synthetic root is not visited.
func (t *Tree) Walk(fn func(name string) error) error {
	queue := slices.Clone(t.nodes[root].children)
	for len(queue) > 0 {
		n := &t.nodes[queue[0]]
		queue = queue[1:]
		if err := fn(n.name); err != nil {
			return err
		}
		queue = append(queue, n.children...)
	}
	return nil
}

// Lookup reports whether name was placed in the tree.
func (t *Tree) Lookup(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Parent returns the direct superclass of name. Top-level classes and
// unknown names have none.
func (t *Tree) Parent(name string) (string, bool) {
	i, ok := t.index[name]
	if !ok || t.nodes[i].parent == root {
		return "", false
	}
	return t.nodes[t.nodes[i].parent].name, true
}

// Children returns the direct subclasses of name in placement order.
func (t *Tree) Children(name string) []string {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.names(t.nodes[i].children)
}

// Roots returns the topmost classes of the forest.
func (t *Tree) Roots() []string {
	return t.names(t.nodes[root].children)
}

// Ancestors returns the superclasses of name, nearest first.
func (t *Tree) Ancestors(name string) []string {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	var result []string
	for p := t.nodes[i].parent; p != root; p = t.nodes[p].parent {
		result = append(result, t.nodes[p].name)
	}
	return result
}

// Len returns the number of classes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

func (t *Tree) names(indices []int) []string {
	if len(indices) == 0 {
		return nil
	}
	result := make([]string, len(indices))
	for i, n := range indices {
		result[i] = t.nodes[n].name
	}
	return result
}
