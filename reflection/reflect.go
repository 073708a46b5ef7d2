package reflection

import (
	"fmt"

	"github.com/speakeasy-api/openapi/sequencedmap"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/abcmeta/abc"
	"github.com/dhamidi/abcmeta/as3"
)

var log = commonlog.GetLogger("abcmeta.reflection")

// goToDefinitionHelp is emitted by the compiler for IDE navigation.
const goToDefinitionHelp = "__go_to_definition_help"

type accessorPair struct {
	getter *abc.Trait
	setter *abc.Trait
}

// Reflect describes the public members c declares itself.
func Reflect(c *as3.Class) (*Type, error) {
	t := &Type{
		FullName:    c.Name,
		Name:        c.ShortName(),
		IsDynamic:   !c.IsSealed(),
		IsInterface: c.IsInterface(),
	}

	pairs := sequencedmap.New[string, *accessorPair]()
	traits := c.Instance().Traits
	for i := range traits {
		trait := &traits[i]
		public, err := c.Resolver.IsPublic(trait.Name)
		if err != nil {
			return nil, err
		}
		if !public {
			continue
		}

		switch trait.Kind {
		case abc.TraitSlot, abc.TraitConst:
			f, err := field(c, trait)
			if err != nil {
				return nil, err
			}
			t.fields = append(t.fields, f)

		case abc.TraitGetter, abc.TraitSetter:
			name, err := c.LocalName(trait)
			if err != nil {
				return nil, err
			}
			pair, ok := pairs.Get(name)
			if !ok {
				pair = &accessorPair{}
				pairs.Set(name, pair)
			}
			if trait.Kind == abc.TraitGetter {
				pair.getter = trait
			} else {
				pair.setter = trait
			}
		}
	}

	if ct := c.ClassTrait(); ct != nil {
		public, err := c.Resolver.IsPublic(ct.Name)
		if err != nil {
			return nil, err
		}
		if public {
			if t.Metadata, err = metadata(c, ct); err != nil {
				return nil, err
			}
		}
	}

	acc, err := reconcile(c, pairs)
	if err != nil {
		return nil, err
	}
	t.accessors = acc

	if t.Interfaces, err = c.Interfaces(); err != nil {
		return nil, err
	}
	return t, nil
}

func field(c *as3.Class, trait *abc.Trait) (Field, error) {
	name, err := c.LocalName(trait)
	if err != nil {
		return Field{}, err
	}
	typ, err := c.Resolver.Name(trait.TypeName, true)
	if err != nil {
		return Field{}, err
	}
	md, err := metadata(c, trait)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: name, Type: typ, Metadata: md}, nil
}

// reconcile pairs up getters and setters: read-only members first, then
// write-only, then read-write, each in declaration order.
func reconcile(c *as3.Class, pairs *sequencedmap.Map[string, *accessorPair]) ([]Accessor, error) {
	var groups [3][]Accessor
	for name, pair := range pairs.All() {
		a := Accessor{Name: name}
		var err error
		switch {
		case pair.setter == nil:
			a.Access = ReadOnly
			if a.Type, err = returnType(c, pair.getter); err != nil {
				return nil, err
			}
			a.Metadata, err = metadata(c, pair.getter)

		case pair.getter == nil:
			a.Access = WriteOnly
			if a.Type, err = paramType(c, pair.setter); err != nil {
				return nil, err
			}
			a.Metadata, err = metadata(c, pair.setter)

		default:
			a.Access = ReadWrite
			if a.Type, err = paramType(c, pair.setter); err != nil {
				return nil, err
			}
			if a.Metadata, err = metadata(c, pair.setter); err == nil && a.Metadata == nil {
				a.Metadata, err = metadata(c, pair.getter)
			}
		}
		if err != nil {
			return nil, err
		}
		groups[a.Access] = append(groups[a.Access], a)
	}

	var result []Accessor
	for _, g := range groups {
		result = append(result, g...)
	}
	return result, nil
}

func returnType(c *as3.Class, getter *abc.Trait) (string, error) {
	m, err := c.File.MethodAt(getter.Method)
	if err != nil {
		return "", err
	}
	return c.Resolver.Name(m.ReturnType, true)
}

// paramType resolves the type of a setter's value parameter. A setter
// without parameters accepts any type.
func paramType(c *as3.Class, setter *abc.Trait) (string, error) {
	m, err := c.File.MethodAt(setter.Method)
	if err != nil {
		return "", err
	}
	if len(m.ParamTypes) == 0 {
		return "*", nil
	}
	return c.Resolver.Name(m.ParamTypes[0], true)
}

// metadata resolves the annotations of a trait, leaving out compiler
// bookkeeping entries. It returns nil rather than an empty list.
func metadata(c *as3.Class, trait *abc.Trait) ([]as3.Annotation, error) {
	annotations, err := c.Annotations(trait)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve metadata of %s: %w", c.Name, err)
	}
	var result []as3.Annotation
	for _, a := range annotations {
		if a.Name != goToDefinitionHelp {
			result = append(result, a)
		}
	}
	return result, nil
}
