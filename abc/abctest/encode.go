package abctest

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/dhamidi/abcmeta/abc"
)

type writer struct {
	buf bytes.Buffer
}

func (w *writer) u8(v uint8) { w.buf.WriteByte(v) }

func (w *writer) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) u32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			w.buf.WriteByte(b)
			return
		}
		w.buf.WriteByte(b | 0x80)
	}
}

func (w *writer) s32(v int32) {
	// Sign-extended values always take the full five bytes.
	if v >= 0 {
		w.u32(uint32(v))
		return
	}
	u := uint32(v)
	for i := 0; i < 4; i++ {
		w.buf.WriteByte(byte(u&0x7f) | 0x80)
		u >>= 7
	}
	w.buf.WriteByte(byte(u & 0x0f))
}

func (w *writer) d64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf.Write(b[:])
}

func (w *writer) u30s(values []uint32) {
	for _, v := range values {
		w.u32(v)
	}
}

func (w *writer) count(n int) {
	if n == 0 {
		w.u32(0)
		return
	}
	w.u32(uint32(n + 1))
}

// Encode writes f in the ABC binary format understood by abc.Parse.
func Encode(f *abc.File) []byte {
	w := &writer{}
	w.u16(f.MinorVersion)
	w.u16(f.MajorVersion)

	cp := &f.ConstantPool
	w.count(len(cp.Ints))
	for _, v := range cp.Ints {
		w.s32(v)
	}
	w.count(len(cp.Uints))
	for _, v := range cp.Uints {
		w.u32(v)
	}
	w.count(len(cp.Doubles))
	for _, v := range cp.Doubles {
		w.d64(v)
	}
	w.count(len(cp.Strings))
	for _, s := range cp.Strings {
		w.u32(uint32(len(s)))
		w.buf.WriteString(s)
	}
	w.count(len(cp.Namespaces))
	for _, ns := range cp.Namespaces {
		w.u8(uint8(ns.Kind))
		w.u32(ns.Name)
	}
	w.count(len(cp.NamespaceSets))
	for _, set := range cp.NamespaceSets {
		w.u32(uint32(len(set)))
		w.u30s(set)
	}
	w.count(len(cp.Multinames))
	for _, mn := range cp.Multinames {
		w.u8(uint8(mn.Kind))
		switch mn.Kind {
		case abc.MultinameKindQName, abc.MultinameKindQNameA:
			w.u32(mn.Namespace)
			w.u32(mn.Name)
		case abc.MultinameKindRTQName, abc.MultinameKindRTQNameA:
			w.u32(mn.Name)
		case abc.MultinameKindMultiname, abc.MultinameKindMultinameA:
			w.u32(mn.Name)
			w.u32(mn.NamespaceSet)
		case abc.MultinameKindMultinameL, abc.MultinameKindMultinameLA:
			w.u32(mn.NamespaceSet)
		case abc.MultinameKindTypeName:
			w.u32(mn.TypeDefinition)
			w.u32(uint32(len(mn.Params)))
			w.u30s(mn.Params)
		}
	}

	w.u32(uint32(len(f.Methods)))
	for _, m := range f.Methods {
		w.u32(uint32(len(m.ParamTypes)))
		w.u32(m.ReturnType)
		w.u30s(m.ParamTypes)
		w.u32(m.Name)
		w.u8(uint8(m.Flags))
		if m.Flags.HasOptional() {
			w.u32(uint32(len(m.Options)))
			for _, o := range m.Options {
				w.u32(o.Value)
				w.u8(o.Kind)
			}
		}
		if m.Flags.HasParamNames() {
			w.u30s(m.ParamNames)
		}
	}

	w.u32(uint32(len(f.Metadata)))
	for _, md := range f.Metadata {
		w.u32(md.Name)
		w.u32(uint32(len(md.Items)))
		for _, item := range md.Items {
			w.u32(item.Key)
		}
		for _, item := range md.Items {
			w.u32(item.Value)
		}
	}

	w.u32(uint32(len(f.Instances)))
	for _, inst := range f.Instances {
		w.u32(inst.Name)
		w.u32(inst.SuperName)
		w.u8(uint8(inst.Flags))
		if inst.Flags.HasProtectedNs() {
			w.u32(inst.ProtectedNs)
		}
		w.u32(uint32(len(inst.Interfaces)))
		w.u30s(inst.Interfaces)
		w.u32(inst.Init)
		w.traits(inst.Traits)
	}
	for _, class := range f.Classes {
		w.u32(class.Init)
		w.traits(class.Traits)
	}

	w.u32(uint32(len(f.Scripts)))
	for _, script := range f.Scripts {
		w.u32(script.Init)
		w.traits(script.Traits)
	}

	// Method bodies are not decoded; an empty table keeps the block well formed.
	w.u32(0)
	return w.buf.Bytes()
}

func (w *writer) traits(traits []abc.Trait) {
	w.u32(uint32(len(traits)))
	for _, t := range traits {
		attrs := t.Attributes
		if len(t.Metadata) > 0 {
			attrs |= abc.AttrMetadata
		}
		w.u32(t.Name)
		w.u8(uint8(t.Kind) | uint8(attrs)<<4)
		switch t.Kind {
		case abc.TraitSlot, abc.TraitConst:
			w.u32(t.SlotID)
			w.u32(t.TypeName)
			w.u32(t.ValueIndex)
			if t.ValueIndex != 0 {
				w.u8(t.ValueKind)
			}
		case abc.TraitClass:
			w.u32(t.SlotID)
			w.u32(t.ClassIndex)
		case abc.TraitFunction:
			w.u32(t.SlotID)
			w.u32(t.Function)
		default:
			w.u32(t.DispID)
			w.u32(t.Method)
		}
		if attrs.HasMetadata() {
			w.u32(uint32(len(t.Metadata)))
			w.u30s(t.Metadata)
		}
	}
}
