package abc

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	resolverCacheSize = 4096

	// maxTypeNameDepth bounds Vector.<Vector.<...>> nesting so a
	// self-referencing TypeName fails instead of recursing forever.
	maxTypeNameDepth = 64
)

type nameKey struct {
	index uint32
	full  bool
}

// Resolver turns multiname indices of one ABC file into type and member
// names. Results are memoised; resolving an index twice yields the same
// string.
type Resolver struct {
	file  *File
	cache *lru.Cache[nameKey, string]
}

func NewResolver(f *File) *Resolver {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[nameKey, string](resolverCacheSize)
	return &Resolver{file: f, cache: cache}
}

// Name resolves a 1-based multiname index. Index 0 is the any type "*".
// With full set, qualified names read "pkg::Type" and generic containers
// read "Outer.<Inner>"; otherwise only the innermost local name is returned.
func (r *Resolver) Name(index uint32, full bool) (string, error) {
	if index == 0 {
		return "*", nil
	}

	key := nameKey{index: index, full: full}
	if name, ok := r.cache.Get(key); ok {
		return name, nil
	}

	parts, err := r.parts(index, 0)
	if err != nil {
		return "", err
	}

	var name string
	if n := len(parts); n > 0 {
		if full {
			name = qualify(parts[n-2], parts[n-1])
			for n -= 2; n > 0; n -= 2 {
				name = qualify(parts[n-2], parts[n-1]) + ".<" + name + ">"
			}
		} else {
			name = parts[n-1]
		}
	}
	name = strings.ReplaceAll(name, VectorNamespace+"::", "")

	r.cache.Add(key, name)
	return name, nil
}

// String resolves a 1-based string index.
func (r *Resolver) String(index uint32) (string, error) {
	return r.file.ConstantPool.String(index)
}

// IsPublic reports whether a member name lives in the packaged public
// namespace. Names that are not QNames carry no single namespace and are
// treated as public.
func (r *Resolver) IsPublic(index uint32) (bool, error) {
	mn, err := r.file.ConstantPool.Multiname(index)
	if err != nil || mn == nil {
		return true, err
	}
	if !mn.Kind.IsQName() {
		return true, nil
	}
	ns, err := r.file.ConstantPool.Namespace(mn.Namespace)
	if err != nil {
		return false, err
	}
	return ns != nil && ns.Kind.IsPublic(), nil
}

// parts flattens a multiname into (namespace, name) pairs, outermost
// container first.
func (r *Resolver) parts(index uint32, depth int) ([]string, error) {
	if index == 0 {
		return []string{"", "*"}, nil
	}
	if depth > maxTypeNameDepth {
		return nil, &ResolveError{Pool: "multiname", Index: index, Cyclic: true}
	}

	cp := &r.file.ConstantPool
	mn, err := cp.Multiname(index)
	if err != nil {
		return nil, err
	}

	switch {
	case mn.Kind.IsQName():
		ns, err := cp.Namespace(mn.Namespace)
		if err != nil {
			return nil, err
		}
		if ns == nil {
			return nil, nil
		}
		nsName, err := cp.String(ns.Name)
		if err != nil {
			return nil, err
		}
		name := "*"
		if mn.Name != 0 {
			if name, err = cp.String(mn.Name); err != nil {
				return nil, err
			}
		}
		return []string{nsName, name}, nil

	case mn.Kind == MultinameKindTypeName:
		outer, err := r.parts(mn.TypeDefinition, depth+1)
		if err != nil {
			return nil, err
		}
		if len(mn.Params) == 0 {
			return outer, nil
		}
		inner, err := r.parts(mn.Params[0], depth+1)
		if err != nil {
			return nil, err
		}
		return append(outer, inner...), nil
	}
	return nil, nil
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "::" + name
}
