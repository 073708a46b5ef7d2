// Package as3 indexes the classes declared across the ABC blocks of one
// movie.
package as3

import (
	"strings"

	"github.com/dhamidi/abcmeta/abc"
)

// Class is one instance_info of an ABC block with its resolved names.
type Class struct {
	Name string
	// SuperName is empty when the class has no superclass or extends Object.
	SuperName string

	File     *abc.File
	Resolver *abc.Resolver
	Index    int
}

func (c *Class) Instance() *abc.InstanceInfo {
	return &c.File.Instances[c.Index]
}

// ShortName returns the local part of Name.
func (c *Class) ShortName() string {
	return c.Name[strings.LastIndex(c.Name, ":")+1:]
}

func (c *Class) IsSealed() bool    { return c.Instance().Flags.IsSealed() }
func (c *Class) IsInterface() bool { return c.Instance().Flags.IsInterface() }

// Interfaces resolves the fully qualified names of the declared interfaces.
func (c *Class) Interfaces() ([]string, error) {
	inst := c.Instance()
	if len(inst.Interfaces) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(inst.Interfaces))
	for _, index := range inst.Interfaces {
		name, err := c.Resolver.Name(index, true)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// ClassTrait returns the Class trait carrying class-level metadata: a Class
// trait among the instance traits, else the script trait that declares
// this class.
func (c *Class) ClassTrait() *abc.Trait {
	traits := c.Instance().Traits
	for i := range traits {
		if traits[i].Kind == abc.TraitClass {
			return &traits[i]
		}
	}
	return c.File.ClassTrait(c.Index)
}

// LocalName resolves a trait name without its namespace.
func (c *Class) LocalName(t *abc.Trait) (string, error) {
	return c.Resolver.Name(t.Name, false)
}

// MethodName returns the name recorded in the method_info of a method-like
// trait, falling back to the trait's own name when the method is anonymous.
func (c *Class) MethodName(t *abc.Trait) (string, error) {
	m, err := c.File.MethodAt(t.Method)
	if err != nil {
		return "", err
	}
	if m.Name != 0 {
		return c.Resolver.String(m.Name)
	}
	return c.LocalName(t)
}
