package abc

// File is a decoded ABC block as found in a DoABC tag. Method bodies are
// not decoded.
type File struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	Methods      []MethodInfo
	Metadata     []MetadataInfo
	Instances    []InstanceInfo
	Classes      []ClassInfo
	Scripts      []ScriptInfo
}

type MethodInfo struct {
	ParamTypes []uint32
	ReturnType uint32
	Name       uint32
	Flags      MethodFlags
	Options    []OptionDetail
	ParamNames []uint32
}

type OptionDetail struct {
	Value uint32
	Kind  uint8
}

type MetadataInfo struct {
	Name  uint32
	Items []ItemInfo
}

// ItemInfo is one key/value pair of a metadata entry. A zero Key marks a
// keyless argument.
type ItemInfo struct {
	Key   uint32
	Value uint32
}

type InstanceInfo struct {
	Name        uint32
	SuperName   uint32
	Flags       InstanceFlags
	ProtectedNs uint32
	Interfaces  []uint32
	Init        uint32
	Traits      []Trait
}

type ClassInfo struct {
	Init   uint32
	Traits []Trait
}

type ScriptInfo struct {
	Init   uint32
	Traits []Trait
}

type Trait struct {
	Name       uint32
	Kind       TraitKind
	Attributes TraitAttributes

	// Slot and Const
	SlotID     uint32
	TypeName   uint32
	ValueIndex uint32
	ValueKind  uint8

	// Class
	ClassIndex uint32

	// Function
	Function uint32

	// Method, Getter and Setter
	DispID uint32
	Method uint32

	Metadata []uint32
}

func (t *Trait) IsSlot() bool {
	return t.Kind == TraitSlot || t.Kind == TraitConst
}

func (t *Trait) IsMethod() bool {
	return t.Kind == TraitMethod || t.Kind == TraitGetter || t.Kind == TraitSetter
}

func (f *File) MethodAt(index uint32) (*MethodInfo, error) {
	if int(index) >= len(f.Methods) {
		return nil, &ResolveError{Pool: "method", Index: index, Len: len(f.Methods)}
	}
	return &f.Methods[index], nil
}

func (f *File) MetadataAt(index uint32) (*MetadataInfo, error) {
	if int(index) >= len(f.Metadata) {
		return nil, &ResolveError{Pool: "metadata", Index: index, Len: len(f.Metadata)}
	}
	return &f.Metadata[index], nil
}

// ClassTrait returns the script-level Class trait that declares the class
// at classIndex, or nil.
func (f *File) ClassTrait(classIndex int) *Trait {
	for i := range f.Scripts {
		for j := range f.Scripts[i].Traits {
			t := &f.Scripts[i].Traits[j]
			if t.Kind == TraitClass && int(t.ClassIndex) == classIndex {
				return t
			}
		}
	}
	return nil
}
