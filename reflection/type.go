// Package reflection builds runtime type descriptions of selected classes,
// complete with the members they inherit.
package reflection

import "github.com/dhamidi/abcmeta/as3"

type Access int

const (
	ReadOnly Access = iota
	WriteOnly
	ReadWrite
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "readonly"
	case WriteOnly:
		return "writeonly"
	case ReadWrite:
		return "readwrite"
	}
	return "unknown"
}

// Field is a public slot or constant.
type Field struct {
	Name     string
	Type     string
	Metadata []as3.Annotation
}

// Accessor is a public getter, setter, or getter/setter pair.
type Accessor struct {
	Name     string
	Type     string
	Access   Access
	Metadata []as3.Annotation
}

type Type struct {
	FullName    string
	Name        string
	IsDynamic   bool
	IsInterface bool
	Interfaces  []string
	Metadata    []as3.Annotation

	// Indices into Data.Fields and Data.Accessors. Nil when the type has
	// no such members.
	FieldIndices    []int
	AccessorIndices []int

	fields    []Field
	accessors []Accessor
}

// Fields returns the members collected so far, before interning.
func (t *Type) Fields() []Field { return t.fields }

func (t *Type) Accessors() []Accessor { return t.accessors }

func (t *Type) hasField(name string) bool {
	for _, f := range t.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (t *Type) hasAccessor(name string) bool {
	for _, a := range t.accessors {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Data is the reflection output. Types refer to the shared Fields and
// Accessors tables by index.
type Data struct {
	Types     map[string]*Type
	Fields    []Field
	Accessors []Accessor
}
