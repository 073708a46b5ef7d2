package abc

import "fmt"

// ConstantPool holds the ABC constant tables. Index 0 of every table is
// implicit in the file format, so entry i of a slice is pool index i+1.
type ConstantPool struct {
	Ints          []int32
	Uints         []uint32
	Doubles       []float64
	Strings       []string
	Namespaces    []NamespaceInfo
	NamespaceSets [][]uint32
	Multinames    []MultinameInfo
}

type NamespaceInfo struct {
	Kind NamespaceKind
	Name uint32
}

type MultinameInfo struct {
	Kind MultinameKind

	// QName, RTQName and Multiname variants
	Namespace    uint32
	Name         uint32
	NamespaceSet uint32

	// TypeName
	TypeDefinition uint32
	Params         []uint32
}

// ResolveError reports a constant pool reference that does not exist in the
// module. It indicates a corrupt or unsupported ABC block.
type ResolveError struct {
	Pool   string
	Index  uint32
	Len    int
	Cyclic bool
}

func (e *ResolveError) Error() string {
	if e.Cyclic {
		return fmt.Sprintf("abc: %s %d refers to itself", e.Pool, e.Index)
	}
	return fmt.Sprintf("abc: %s index %d out of range (%d entries)", e.Pool, e.Index, e.Len)
}

// String returns the string at a 1-based index. Index 0 yields "".
func (cp *ConstantPool) String(index uint32) (string, error) {
	if index == 0 {
		return "", nil
	}
	if int(index) > len(cp.Strings) {
		return "", &ResolveError{Pool: "string", Index: index, Len: len(cp.Strings)}
	}
	return cp.Strings[index-1], nil
}

// Namespace returns the namespace at a 1-based index. Index 0 yields nil.
func (cp *ConstantPool) Namespace(index uint32) (*NamespaceInfo, error) {
	if index == 0 {
		return nil, nil
	}
	if int(index) > len(cp.Namespaces) {
		return nil, &ResolveError{Pool: "namespace", Index: index, Len: len(cp.Namespaces)}
	}
	return &cp.Namespaces[index-1], nil
}

// Multiname returns the multiname at a 1-based index. Index 0 yields nil.
func (cp *ConstantPool) Multiname(index uint32) (*MultinameInfo, error) {
	if index == 0 {
		return nil, nil
	}
	if int(index) > len(cp.Multinames) {
		return nil, &ResolveError{Pool: "multiname", Index: index, Len: len(cp.Multinames)}
	}
	return &cp.Multinames[index-1], nil
}

func (cp *ConstantPool) Int(index uint32) (int32, error) {
	if index == 0 || int(index) > len(cp.Ints) {
		return 0, &ResolveError{Pool: "int", Index: index, Len: len(cp.Ints)}
	}
	return cp.Ints[index-1], nil
}

func (cp *ConstantPool) Uint(index uint32) (uint32, error) {
	if index == 0 || int(index) > len(cp.Uints) {
		return 0, &ResolveError{Pool: "uint", Index: index, Len: len(cp.Uints)}
	}
	return cp.Uints[index-1], nil
}

func (cp *ConstantPool) Double(index uint32) (float64, error) {
	if index == 0 || int(index) > len(cp.Doubles) {
		return 0, &ResolveError{Pool: "double", Index: index, Len: len(cp.Doubles)}
	}
	return cp.Doubles[index-1], nil
}
