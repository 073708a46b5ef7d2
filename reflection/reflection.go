package reflection

import (
	"fmt"

	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/dhamidi/abcmeta/as3"
	"github.com/dhamidi/abcmeta/hierarchy"
	"github.com/dhamidi/abcmeta/intern"
)

// Compute reflects the classes of m chosen by sel together with all of
// their known ancestors, copies inherited members down the hierarchy and
// interns the members into shared tables.
func Compute(m *as3.Module, sel *Selector) (*Data, error) {
	tree, err := hierarchy.Build(m.Superclasses)
	if err != nil {
		return nil, fmt.Errorf("failed to build inheritance tree: %w", err)
	}

	types := sequencedmap.New[string, *Type]()
	for _, c := range m.Classes {
		if !sel.Match(c.Name) {
			continue
		}
		log.Infof("reflecting %s", c.Name)
		t, err := Reflect(c)
		if err != nil {
			return nil, err
		}
		types.Set(c.Name, t)
	}
	for _, name := range sel.Names() {
		if _, ok := types.Get(name); !ok {
			log.Warningf("class %s not found", name)
		}
	}

	if err := reflectAncestors(m, tree, types); err != nil {
		return nil, err
	}

	err = tree.Walk(func(name string) error {
		parent, ok := types.Get(name)
		if !ok {
			return nil
		}
		for _, childName := range tree.Children(name) {
			if child, ok := types.Get(childName); ok {
				inherit(child, parent)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return build(types)
}

// reflectAncestors adds every known ancestor of the selected types that was
// not selected itself.
func reflectAncestors(m *as3.Module, tree *hierarchy.Tree, types *sequencedmap.Map[string, *Type]) error {
	var selected []string
	for name := range types.All() {
		selected = append(selected, name)
	}

	for _, name := range selected {
		for _, ancestor := range tree.Ancestors(name) {
			if _, ok := types.Get(ancestor); ok {
				continue
			}
			c, ok := m.Lookup(ancestor)
			if !ok {
				continue
			}
			log.Debugf("reflecting %s as an ancestor of %s", ancestor, name)
			t, err := Reflect(c)
			if err != nil {
				return err
			}
			types.Set(ancestor, t)
		}
	}
	return nil
}

// inherit copies the members of parent that child does not declare under
// the same name.
func inherit(child, parent *Type) {
	for _, f := range parent.fields {
		if !child.hasField(f.Name) {
			child.fields = append(child.fields, f)
		}
	}
	for _, a := range parent.accessors {
		if !child.hasAccessor(a.Name) {
			child.accessors = append(child.accessors, a)
		}
	}
}

func build(types *sequencedmap.Map[string, *Type]) (*Data, error) {
	fields := intern.New[string, Field](intern.CBORKey[Field])
	accessors := intern.New[string, Accessor](intern.CBORKey[Accessor])
	data := &Data{Types: make(map[string]*Type, types.Len())}

	for name, t := range types.All() {
		t.FieldIndices = nil
		for _, f := range t.fields {
			i, err := fields.Add(f)
			if err != nil {
				return nil, fmt.Errorf("failed to intern field %s.%s: %w", name, f.Name, err)
			}
			t.FieldIndices = append(t.FieldIndices, i)
		}
		t.AccessorIndices = nil
		for _, a := range t.accessors {
			i, err := accessors.Add(a)
			if err != nil {
				return nil, fmt.Errorf("failed to intern accessor %s.%s: %w", name, a.Name, err)
			}
			t.AccessorIndices = append(t.AccessorIndices, i)
		}
		data.Types[name] = t
	}

	data.Fields = fields.Values()
	data.Accessors = accessors.Values()
	log.Noticef("reflected %d types with %d unique fields and %d unique accessors", len(data.Types), len(data.Fields), len(data.Accessors))
	return data, nil
}
