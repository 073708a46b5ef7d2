package as3

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/abcmeta/abc"
	"github.com/dhamidi/abcmeta/hierarchy"
)

var log = commonlog.GetLogger("abcmeta.as3")

// rootClass is the implicit superclass of every class.
const rootClass = "Object"

// Module is the set of classes declared by a movie.
type Module struct {
	// Classes in declaration order across all ABC blocks.
	Classes []*Class
	// Superclasses maps every class with a superclass other than Object to
	// that superclass.
	Superclasses *hierarchy.Map

	byName map[string]int
}

// Load indexes the classes of files. A class declared again in a later
// block replaces the earlier declaration in place.
func Load(files []*abc.File) (*Module, error) {
	m := &Module{
		Superclasses: hierarchy.NewMap(),
		byName:       map[string]int{},
	}

	for _, f := range files {
		r := abc.NewResolver(f)
		for i := range f.Instances {
			c, err := newClass(f, r, i)
			if err != nil {
				return nil, err
			}
			m.add(c)
		}
	}

	log.Debugf("loaded %d classes from %d abc blocks", len(m.Classes), len(files))
	return m, nil
}

func newClass(f *abc.File, r *abc.Resolver, index int) (*Class, error) {
	inst := &f.Instances[index]
	name, err := r.Name(inst.Name, true)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve name of class %d: %w", index, err)
	}

	c := &Class{Name: name, File: f, Resolver: r, Index: index}
	if inst.SuperName != 0 {
		super, err := r.Name(inst.SuperName, true)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve superclass of %s: %w", name, err)
		}
		if super != rootClass {
			c.SuperName = super
		}
	}
	return c, nil
}

func (m *Module) add(c *Class) {
	if i, ok := m.byName[c.Name]; ok {
		log.Warningf("class %s declared more than once, using the last declaration", c.Name)
		m.Classes[i] = c
	} else {
		m.byName[c.Name] = len(m.Classes)
		m.Classes = append(m.Classes, c)
	}
	if c.SuperName != "" {
		m.Superclasses.Set(c.Name, c.SuperName)
	} else {
		m.Superclasses.Delete(c.Name)
	}
}

func (m *Module) Lookup(name string) (*Class, bool) {
	i, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return m.Classes[i], true
}
