package abc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// maxPrealloc bounds slice preallocation from counts read off the wire.
const maxPrealloc = 4096

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU8() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU16() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.LittleEndian.Uint16(buf[:])
}

// readU32 reads a variable length unsigned integer of up to five bytes.
func (r *reader) readU32() uint32 {
	var result uint32
	for i := 0; i < 5; i++ {
		b := r.readU8()
		if r.err != nil {
			return 0
		}
		result |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			break
		}
	}
	return result
}

func (r *reader) readU30() uint32 {
	return r.readU32() & 0x3fffffff
}

func (r *reader) readS32() int32 {
	var result uint32
	var shift uint
	for i := 0; i < 5; i++ {
		b := r.readU8()
		if r.err != nil {
			return 0
		}
		result |= uint32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if shift < 32 && result&(1<<(shift-1)) != 0 {
		result |= ^uint32(0) << shift
	}
	return int32(result)
}

func (r *reader) readD64() float64 {
	if r.err != nil {
		return 0
	}
	var buf [8]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	// Grow with the bytes actually present rather than the declared length.
	var buf bytes.Buffer
	_, r.err = io.CopyN(&buf, r.r, int64(n))
	if r.err == io.EOF {
		r.err = io.ErrUnexpectedEOF
	}
	return buf.Bytes()
}

func (r *reader) readU30s(n uint32) []uint32 {
	values := make([]uint32, 0, prealloc(n))
	for i := uint32(0); i < n && r.err == nil; i++ {
		values = append(values, r.readU30())
	}
	return values
}

func prealloc(n uint32) int {
	if n > maxPrealloc {
		return maxPrealloc
	}
	return int(n)
}

func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open abc file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func ParseBytes(data []byte) (*File, error) {
	return Parse(bytes.NewReader(data))
}

// Parse decodes an ABC block up to and including its script table.
func Parse(rd io.Reader) (*File, error) {
	r := &reader{r: rd}

	f := &File{
		MinorVersion: r.readU16(),
		MajorVersion: r.readU16(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read version: %w", r.err)
	}

	if err := readConstantPool(r, &f.ConstantPool); err != nil {
		return nil, fmt.Errorf("failed to read constant pool: %w", err)
	}

	methodCount := r.readU30()
	f.Methods = make([]MethodInfo, 0, prealloc(methodCount))
	for i := uint32(0); i < methodCount; i++ {
		f.Methods = append(f.Methods, readMethodInfo(r))
		if r.err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, r.err)
		}
	}

	metadataCount := r.readU30()
	f.Metadata = make([]MetadataInfo, 0, prealloc(metadataCount))
	for i := uint32(0); i < metadataCount; i++ {
		f.Metadata = append(f.Metadata, readMetadataInfo(r))
		if r.err != nil {
			return nil, fmt.Errorf("failed to read metadata %d: %w", i, r.err)
		}
	}

	classCount := r.readU30()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class count: %w", r.err)
	}

	f.Instances = make([]InstanceInfo, 0, prealloc(classCount))
	for i := uint32(0); i < classCount; i++ {
		instance, err := readInstanceInfo(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read instance %d: %w", i, err)
		}
		f.Instances = append(f.Instances, *instance)
	}

	f.Classes = make([]ClassInfo, 0, prealloc(classCount))
	for i := uint32(0); i < classCount; i++ {
		class := ClassInfo{Init: r.readU30()}
		traits, err := readTraits(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read class %d: %w", i, err)
		}
		class.Traits = traits
		f.Classes = append(f.Classes, class)
	}

	scriptCount := r.readU30()
	f.Scripts = make([]ScriptInfo, 0, prealloc(scriptCount))
	for i := uint32(0); i < scriptCount; i++ {
		script := ScriptInfo{Init: r.readU30()}
		traits, err := readTraits(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read script %d: %w", i, err)
		}
		script.Traits = traits
		f.Scripts = append(f.Scripts, script)
	}

	return f, nil
}

// poolCount converts an on-disk table count, which includes the implicit
// zero entry, into the number of stored entries.
func poolCount(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	return n - 1
}

func readConstantPool(r *reader, cp *ConstantPool) error {
	n := poolCount(r.readU30())
	cp.Ints = make([]int32, 0, prealloc(n))
	for i := uint32(0); i < n && r.err == nil; i++ {
		cp.Ints = append(cp.Ints, r.readS32())
	}
	if r.err != nil {
		return fmt.Errorf("ints: %w", r.err)
	}

	n = poolCount(r.readU30())
	cp.Uints = make([]uint32, 0, prealloc(n))
	for i := uint32(0); i < n && r.err == nil; i++ {
		cp.Uints = append(cp.Uints, r.readU32())
	}
	if r.err != nil {
		return fmt.Errorf("uints: %w", r.err)
	}

	n = poolCount(r.readU30())
	cp.Doubles = make([]float64, 0, prealloc(n))
	for i := uint32(0); i < n && r.err == nil; i++ {
		cp.Doubles = append(cp.Doubles, r.readD64())
	}
	if r.err != nil {
		return fmt.Errorf("doubles: %w", r.err)
	}

	n = poolCount(r.readU30())
	cp.Strings = make([]string, 0, prealloc(n))
	for i := uint32(0); i < n && r.err == nil; i++ {
		size := r.readU30()
		cp.Strings = append(cp.Strings, string(r.readBytes(int(size))))
	}
	if r.err != nil {
		return fmt.Errorf("strings: %w", r.err)
	}

	n = poolCount(r.readU30())
	cp.Namespaces = make([]NamespaceInfo, 0, prealloc(n))
	for i := uint32(0); i < n && r.err == nil; i++ {
		cp.Namespaces = append(cp.Namespaces, NamespaceInfo{
			Kind: NamespaceKind(r.readU8()),
			Name: r.readU30(),
		})
	}
	if r.err != nil {
		return fmt.Errorf("namespaces: %w", r.err)
	}

	n = poolCount(r.readU30())
	cp.NamespaceSets = make([][]uint32, 0, prealloc(n))
	for i := uint32(0); i < n && r.err == nil; i++ {
		cp.NamespaceSets = append(cp.NamespaceSets, r.readU30s(r.readU30()))
	}
	if r.err != nil {
		return fmt.Errorf("namespace sets: %w", r.err)
	}

	n = poolCount(r.readU30())
	cp.Multinames = make([]MultinameInfo, 0, prealloc(n))
	for i := uint32(0); i < n; i++ {
		mn, err := readMultiname(r)
		if err != nil {
			return fmt.Errorf("multiname %d: %w", i+1, err)
		}
		cp.Multinames = append(cp.Multinames, mn)
	}
	return r.err
}

func readMultiname(r *reader) (MultinameInfo, error) {
	mn := MultinameInfo{Kind: MultinameKind(r.readU8())}
	if r.err != nil {
		return mn, r.err
	}

	switch mn.Kind {
	case MultinameKindQName, MultinameKindQNameA:
		mn.Namespace = r.readU30()
		mn.Name = r.readU30()
	case MultinameKindRTQName, MultinameKindRTQNameA:
		mn.Name = r.readU30()
	case MultinameKindRTQNameL, MultinameKindRTQNameLA:
	case MultinameKindMultiname, MultinameKindMultinameA:
		mn.Name = r.readU30()
		mn.NamespaceSet = r.readU30()
	case MultinameKindMultinameL, MultinameKindMultinameLA:
		mn.NamespaceSet = r.readU30()
	case MultinameKindTypeName:
		mn.TypeDefinition = r.readU30()
		mn.Params = r.readU30s(r.readU30())
	default:
		return mn, fmt.Errorf("unknown multiname kind: 0x%02X", uint8(mn.Kind))
	}
	return mn, r.err
}

func readMethodInfo(r *reader) MethodInfo {
	paramCount := r.readU30()
	m := MethodInfo{ReturnType: r.readU30()}
	m.ParamTypes = r.readU30s(paramCount)
	m.Name = r.readU30()
	m.Flags = MethodFlags(r.readU8())

	if m.Flags.HasOptional() {
		optionCount := r.readU30()
		for i := uint32(0); i < optionCount && r.err == nil; i++ {
			m.Options = append(m.Options, OptionDetail{
				Value: r.readU30(),
				Kind:  r.readU8(),
			})
		}
	}
	if m.Flags.HasParamNames() {
		m.ParamNames = r.readU30s(paramCount)
	}
	return m
}

// readMetadataInfo reads a metadata entry. Compilers emit every key before
// every value, not interleaved pairs.
func readMetadataInfo(r *reader) MetadataInfo {
	md := MetadataInfo{Name: r.readU30()}
	itemCount := r.readU30()
	keys := r.readU30s(itemCount)
	values := r.readU30s(itemCount)
	if r.err != nil {
		return md
	}
	md.Items = make([]ItemInfo, len(keys))
	for i := range keys {
		md.Items[i] = ItemInfo{Key: keys[i], Value: values[i]}
	}
	return md
}

func readInstanceInfo(r *reader) (*InstanceInfo, error) {
	instance := &InstanceInfo{
		Name:      r.readU30(),
		SuperName: r.readU30(),
		Flags:     InstanceFlags(r.readU8()),
	}
	if instance.Flags.HasProtectedNs() {
		instance.ProtectedNs = r.readU30()
	}
	instance.Interfaces = r.readU30s(r.readU30())
	instance.Init = r.readU30()
	if r.err != nil {
		return nil, r.err
	}

	traits, err := readTraits(r)
	if err != nil {
		return nil, err
	}
	instance.Traits = traits
	return instance, nil
}

func readTraits(r *reader) ([]Trait, error) {
	count := r.readU30()
	if r.err != nil {
		return nil, r.err
	}

	traits := make([]Trait, 0, prealloc(count))
	for i := uint32(0); i < count; i++ {
		t, err := readTrait(r)
		if err != nil {
			return nil, fmt.Errorf("trait %d: %w", i, err)
		}
		traits = append(traits, t)
	}
	return traits, nil
}

func readTrait(r *reader) (Trait, error) {
	t := Trait{Name: r.readU30()}
	kind := r.readU8()
	t.Kind = TraitKind(kind & 0x0f)
	t.Attributes = TraitAttributes(kind >> 4)

	switch t.Kind {
	case TraitSlot, TraitConst:
		t.SlotID = r.readU30()
		t.TypeName = r.readU30()
		t.ValueIndex = r.readU30()
		if t.ValueIndex != 0 {
			t.ValueKind = r.readU8()
		}
	case TraitClass:
		t.SlotID = r.readU30()
		t.ClassIndex = r.readU30()
	case TraitFunction:
		t.SlotID = r.readU30()
		t.Function = r.readU30()
	case TraitMethod, TraitGetter, TraitSetter:
		t.DispID = r.readU30()
		t.Method = r.readU30()
	default:
		if r.err != nil {
			return t, r.err
		}
		return t, fmt.Errorf("unknown trait kind: %d", t.Kind)
	}

	if t.Attributes.HasMetadata() {
		t.Metadata = r.readU30s(r.readU30())
	}
	return t, r.err
}
