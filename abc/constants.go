package abc

type NamespaceKind uint8

const (
	NamespaceKindPrivate         NamespaceKind = 0x05
	NamespaceKindNamespace       NamespaceKind = 0x08
	NamespaceKindPackage         NamespaceKind = 0x16
	NamespaceKindPackageInternal NamespaceKind = 0x17
	NamespaceKindProtected       NamespaceKind = 0x18
	NamespaceKindExplicit        NamespaceKind = 0x19
	NamespaceKindStaticProtected NamespaceKind = 0x1A
)

// IsPublic reports whether members in a namespace of this kind are visible
// to reflection. Only the packaged public namespace qualifies.
func (k NamespaceKind) IsPublic() bool { return k == NamespaceKindPackage }

type MultinameKind uint8

const (
	MultinameKindQName       MultinameKind = 0x07
	MultinameKindQNameA      MultinameKind = 0x0D
	MultinameKindRTQName     MultinameKind = 0x0F
	MultinameKindRTQNameA    MultinameKind = 0x10
	MultinameKindRTQNameL    MultinameKind = 0x11
	MultinameKindRTQNameLA   MultinameKind = 0x12
	MultinameKindMultiname   MultinameKind = 0x09
	MultinameKindMultinameA  MultinameKind = 0x0E
	MultinameKindMultinameL  MultinameKind = 0x1B
	MultinameKindMultinameLA MultinameKind = 0x1C
	MultinameKindTypeName    MultinameKind = 0x1D
)

func (k MultinameKind) IsQName() bool {
	return k == MultinameKindQName || k == MultinameKindQNameA
}

type MethodFlags uint8

const (
	MethodNeedArguments  MethodFlags = 0x01
	MethodNeedActivation MethodFlags = 0x02
	MethodNeedRest       MethodFlags = 0x04
	MethodHasOptional    MethodFlags = 0x08
	MethodSetDXNS        MethodFlags = 0x40
	MethodHasParamNames  MethodFlags = 0x80
)

func (f MethodFlags) HasOptional() bool   { return f&MethodHasOptional != 0 }
func (f MethodFlags) HasParamNames() bool { return f&MethodHasParamNames != 0 }

type InstanceFlags uint8

const (
	ClassSealed      InstanceFlags = 0x01
	ClassFinal       InstanceFlags = 0x02
	ClassInterface   InstanceFlags = 0x04
	ClassProtectedNs InstanceFlags = 0x08
)

func (f InstanceFlags) IsSealed() bool       { return f&ClassSealed != 0 }
func (f InstanceFlags) IsFinal() bool        { return f&ClassFinal != 0 }
func (f InstanceFlags) IsInterface() bool    { return f&ClassInterface != 0 }
func (f InstanceFlags) HasProtectedNs() bool { return f&ClassProtectedNs != 0 }

type TraitKind uint8

const (
	TraitSlot     TraitKind = 0
	TraitMethod   TraitKind = 1
	TraitGetter   TraitKind = 2
	TraitSetter   TraitKind = 3
	TraitClass    TraitKind = 4
	TraitFunction TraitKind = 5
	TraitConst    TraitKind = 6
)

func (k TraitKind) String() string {
	switch k {
	case TraitSlot:
		return "slot"
	case TraitMethod:
		return "method"
	case TraitGetter:
		return "getter"
	case TraitSetter:
		return "setter"
	case TraitClass:
		return "class"
	case TraitFunction:
		return "function"
	case TraitConst:
		return "const"
	}
	return "unknown"
}

type TraitAttributes uint8

const (
	AttrFinal    TraitAttributes = 0x1
	AttrOverride TraitAttributes = 0x2
	AttrMetadata TraitAttributes = 0x4
)

func (a TraitAttributes) IsFinal() bool     { return a&AttrFinal != 0 }
func (a TraitAttributes) IsOverride() bool  { return a&AttrOverride != 0 }
func (a TraitAttributes) HasMetadata() bool { return a&AttrMetadata != 0 }

// VectorNamespace is the reserved namespace of the built-in generic Vector type.
const VectorNamespace = "__AS3__.vec"
