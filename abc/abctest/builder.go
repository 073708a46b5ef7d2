// Package abctest builds small ABC files in memory for tests.
package abctest

import (
	"strings"

	"github.com/dhamidi/abcmeta/abc"
)

type nsKey struct {
	kind abc.NamespaceKind
	name string
}

type qnameKey struct {
	ns   uint32
	name string
}

// Builder assembles an abc.File. Pool entries are deduplicated, so asking
// for the same string or name twice returns the same index.
type Builder struct {
	file       abc.File
	strings    map[string]uint32
	namespaces map[nsKey]uint32
	qnames     map[qnameKey]uint32
	vectors    map[uint32]uint32
}

func New() *Builder {
	return &Builder{
		file:       abc.File{MinorVersion: 16, MajorVersion: 46},
		strings:    map[string]uint32{},
		namespaces: map[nsKey]uint32{},
		qnames:     map[qnameKey]uint32{},
		vectors:    map[uint32]uint32{},
	}
}

func (b *Builder) String(s string) uint32 {
	if i, ok := b.strings[s]; ok {
		return i
	}
	cp := &b.file.ConstantPool
	cp.Strings = append(cp.Strings, s)
	i := uint32(len(cp.Strings))
	b.strings[s] = i
	return i
}

func (b *Builder) Namespace(kind abc.NamespaceKind, name string) uint32 {
	key := nsKey{kind, name}
	if i, ok := b.namespaces[key]; ok {
		return i
	}
	cp := &b.file.ConstantPool
	cp.Namespaces = append(cp.Namespaces, abc.NamespaceInfo{Kind: kind, Name: b.String(name)})
	i := uint32(len(cp.Namespaces))
	b.namespaces[key] = i
	return i
}

func (b *Builder) QName(ns uint32, name string) uint32 {
	key := qnameKey{ns, name}
	if i, ok := b.qnames[key]; ok {
		return i
	}
	i := b.Multiname(abc.MultinameInfo{Kind: abc.MultinameKindQName, Namespace: ns, Name: b.String(name)})
	b.qnames[key] = i
	return i
}

// Multiname appends a raw multiname entry and returns its index.
func (b *Builder) Multiname(mn abc.MultinameInfo) uint32 {
	cp := &b.file.ConstantPool
	cp.Multinames = append(cp.Multinames, mn)
	return uint32(len(cp.Multinames))
}

// Type returns a public QName for "pkg::Name" or a top-level "Name".
func (b *Builder) Type(qualified string) uint32 {
	pkg, name := "", qualified
	if i := strings.LastIndex(qualified, "::"); i >= 0 {
		pkg, name = qualified[:i], qualified[i+2:]
	}
	return b.QName(b.Namespace(abc.NamespaceKindPackage, pkg), name)
}

// Vector returns the TypeName __AS3__.vec::Vector.<elem>.
func (b *Builder) Vector(elem uint32) uint32 {
	if i, ok := b.vectors[elem]; ok {
		return i
	}
	vector := b.QName(b.Namespace(abc.NamespaceKindPackage, abc.VectorNamespace), "Vector")
	i := b.Multiname(abc.MultinameInfo{
		Kind:           abc.MultinameKindTypeName,
		TypeDefinition: vector,
		Params:         []uint32{elem},
	})
	b.vectors[elem] = i
	return i
}

// Method appends a method_info and returns its 0-based index.
func (b *Builder) Method(name string, params ...uint32) uint32 {
	m := abc.MethodInfo{ParamTypes: params}
	if name != "" {
		m.Name = b.String(name)
	}
	b.file.Methods = append(b.file.Methods, m)
	return uint32(len(b.file.Methods) - 1)
}

// Metadata appends a metadata entry built from key/value pairs and returns
// its 0-based index. An empty key produces a keyless argument.
func (b *Builder) Metadata(name string, kv ...string) uint32 {
	md := abc.MetadataInfo{Name: b.String(name)}
	for i := 0; i+1 < len(kv); i += 2 {
		item := abc.ItemInfo{Value: b.String(kv[i+1])}
		if kv[i] != "" {
			item.Key = b.String(kv[i])
		}
		md.Items = append(md.Items, item)
	}
	b.file.Metadata = append(b.file.Metadata, md)
	return uint32(len(b.file.Metadata) - 1)
}

// Class declares a sealed class. An empty super defaults to Object.
func (b *Builder) Class(name, super string) *ClassBuilder {
	if super == "" {
		super = "Object"
	}
	index := len(b.file.Instances)
	b.file.Instances = append(b.file.Instances, abc.InstanceInfo{
		Name:      b.Type(name),
		SuperName: b.Type(super),
		Flags:     abc.ClassSealed,
		Init:      b.Method(""),
	})
	b.file.Classes = append(b.file.Classes, abc.ClassInfo{Init: b.Method("")})
	b.file.Scripts = append(b.file.Scripts, abc.ScriptInfo{
		Init: b.Method(""),
		Traits: []abc.Trait{{
			Name:       b.Type(name),
			Kind:       abc.TraitClass,
			SlotID:     1,
			ClassIndex: uint32(index),
		}},
	})
	return &ClassBuilder{b: b, index: index, script: len(b.file.Scripts) - 1}
}

func (b *Builder) File() *abc.File {
	return &b.file
}

func (b *Builder) Bytes() []byte {
	return Encode(&b.file)
}

type ClassBuilder struct {
	b      *Builder
	index  int
	script int
}

func (c *ClassBuilder) instance() *abc.InstanceInfo {
	return &c.b.file.Instances[c.index]
}

func (c *ClassBuilder) Index() int { return c.index }

func (c *ClassBuilder) publicName(name string) uint32 {
	return c.b.QName(c.b.Namespace(abc.NamespaceKindPackage, ""), name)
}

func (c *ClassBuilder) privateName(name string) uint32 {
	return c.b.QName(c.b.Namespace(abc.NamespaceKindPrivate, ""), name)
}

func (c *ClassBuilder) add(t abc.Trait) *ClassBuilder {
	inst := c.instance()
	inst.Traits = append(inst.Traits, t)
	return c
}

func (c *ClassBuilder) Slot(name string, typ uint32, metadata ...uint32) *ClassBuilder {
	return c.add(abc.Trait{Name: c.publicName(name), Kind: abc.TraitSlot, TypeName: typ, Metadata: metadata})
}

func (c *ClassBuilder) Const(name string, typ uint32, metadata ...uint32) *ClassBuilder {
	return c.add(abc.Trait{Name: c.publicName(name), Kind: abc.TraitConst, TypeName: typ, Metadata: metadata})
}

func (c *ClassBuilder) PrivateSlot(name string, typ uint32, metadata ...uint32) *ClassBuilder {
	return c.add(abc.Trait{Name: c.privateName(name), Kind: abc.TraitSlot, TypeName: typ, Metadata: metadata})
}

// Getter declares a getter returning typ.
func (c *ClassBuilder) Getter(name string, typ uint32, metadata ...uint32) *ClassBuilder {
	m := c.b.Method(name)
	c.b.file.Methods[m].ReturnType = typ
	return c.add(abc.Trait{Name: c.publicName(name), Kind: abc.TraitGetter, Method: m, Metadata: metadata})
}

// Setter declares a setter taking one typ parameter.
func (c *ClassBuilder) Setter(name string, typ uint32, metadata ...uint32) *ClassBuilder {
	m := c.b.Method(name, typ)
	return c.add(abc.Trait{Name: c.publicName(name), Kind: abc.TraitSetter, Method: m, Metadata: metadata})
}

func (c *ClassBuilder) Method(name string, params []uint32, metadata ...uint32) *ClassBuilder {
	m := c.b.Method(name, params...)
	return c.add(abc.Trait{Name: c.publicName(name), Kind: abc.TraitMethod, Method: m, Metadata: metadata})
}

// Trait appends a raw instance trait.
func (c *ClassBuilder) Trait(t abc.Trait) *ClassBuilder {
	return c.add(t)
}

func (c *ClassBuilder) Dynamic() *ClassBuilder {
	c.instance().Flags &^= abc.ClassSealed
	return c
}

func (c *ClassBuilder) Interface() *ClassBuilder {
	c.instance().Flags |= abc.ClassInterface
	return c
}

func (c *ClassBuilder) Implements(names ...string) *ClassBuilder {
	inst := c.instance()
	for _, name := range names {
		inst.Interfaces = append(inst.Interfaces, c.b.Type(name))
	}
	return c
}

// Annotate attaches class-level metadata through the script's Class trait.
func (c *ClassBuilder) Annotate(metadata ...uint32) *ClassBuilder {
	t := &c.b.file.Scripts[c.script].Traits[0]
	t.Metadata = append(t.Metadata, metadata...)
	return c
}
