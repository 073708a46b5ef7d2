// Package hierarchy turns a partial child to superclass map into an
// inheritance forest.
package hierarchy

import (
	"iter"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Map records the direct superclass of each class in insertion order.
type Map struct {
	parents *sequencedmap.Map[string, string]
}

func NewMap() *Map {
	return &Map{parents: sequencedmap.New[string, string]()}
}

// Set records parent as the superclass of child. A later Set for the same
// child replaces the parent but keeps the original position.
func (m *Map) Set(child, parent string) {
	m.parents.Set(child, parent)
}

// Delete forgets the superclass of child.
func (m *Map) Delete(child string) {
	m.parents.Delete(child)
}

func (m *Map) Parent(child string) (string, bool) {
	return m.parents.Get(child)
}

func (m *Map) Len() int {
	return m.parents.Len()
}

// All yields child, parent pairs in insertion order.
func (m *Map) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for child, parent := range m.parents.All() {
			if !yield(child, parent) {
				return
			}
		}
	}
}
