package reflection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/abcmeta/abc"
	"github.com/dhamidi/abcmeta/abc/abctest"
	"github.com/dhamidi/abcmeta/as3"
)

func compute(t *testing.T, b *abctest.Builder, names, patterns []string) *Data {
	t.Helper()
	m, err := as3.Load([]*abc.File{b.File()})
	require.NoError(t, err)
	sel, err := NewSelector(names, patterns)
	require.NoError(t, err)
	data, err := Compute(m, sel)
	require.NoError(t, err)
	return data
}

func fieldsOf(data *Data, class string) []Field {
	var result []Field
	for _, i := range data.Types[class].FieldIndices {
		result = append(result, data.Fields[i])
	}
	return result
}

func accessorsOf(data *Data, class string) []Accessor {
	var result []Accessor
	for _, i := range data.Types[class].AccessorIndices {
		result = append(result, data.Accessors[i])
	}
	return result
}

func TestFieldOverride(t *testing.T) {
	b := abctest.New()
	b.Class("A", "").Slot("x", b.Type("int")).Slot("y", b.Type("Number"))
	b.Class("B", "A").Slot("x", b.Type("String"))

	data := compute(t, b, []string{"B"}, nil)

	assert.Equal(t, []Field{
		{Name: "x", Type: "String"},
		{Name: "y", Type: "Number"},
	}, fieldsOf(data, "B"))
	assert.Equal(t, []Field{
		{Name: "x", Type: "int"},
		{Name: "y", Type: "Number"},
	}, fieldsOf(data, "A"))
	assert.Len(t, data.Fields, 3, "y is shared between A and B")
}

func TestAncestorCompleteness(t *testing.T) {
	b := abctest.New()
	b.Class("com.game::Entity", "").Slot("id", b.Type("int"))
	b.Class("com.game::Actor", "com.game::Entity")
	b.Class("com.game::Unit", "com.game::Actor")
	b.Class("com.game::Player", "com.game::Unit").Slot("name", b.Type("String"))
	b.Class("com.game::Unrelated", "")

	data := compute(t, b, []string{"com.game::Player"}, nil)

	assert.Len(t, data.Types, 4)
	for _, name := range []string{"com.game::Entity", "com.game::Actor", "com.game::Unit", "com.game::Player"} {
		assert.Contains(t, data.Types, name)
	}
	assert.NotContains(t, data.Types, "com.game::Unrelated")

	assert.Equal(t, []Field{
		{Name: "name", Type: "String"},
		{Name: "id", Type: "int"},
	}, fieldsOf(data, "com.game::Player"))
	assert.Equal(t, []Field{{Name: "id", Type: "int"}}, fieldsOf(data, "com.game::Actor"))
}

func TestAncestorOutsideModule(t *testing.T) {
	b := abctest.New()
	b.Class("com.example::View", "flash.display::Sprite").Slot("label", b.Type("String"))

	data := compute(t, b, []string{"com.example::View"}, nil)

	assert.Len(t, data.Types, 1)
	assert.Equal(t, "View", data.Types["com.example::View"].Name)
}

func TestAccessors(t *testing.T) {
	b := abctest.New()
	str := b.Type("String")
	bindable := b.Metadata("Bindable")
	b.Class("Model", "").
		Setter("both", str).
		Getter("both", b.Type("Object"), bindable).
		Getter("readOnly", b.Type("int")).
		Setter("writeOnly", b.Type("Boolean")).
		Setter("annotated", str, b.Metadata("Inspectable", "category", "General")).
		Getter("annotated", str, bindable)

	data := compute(t, b, []string{"Model"}, nil)

	assert.Equal(t, []Accessor{
		{Name: "readOnly", Type: "int", Access: ReadOnly},
		{Name: "writeOnly", Type: "Boolean", Access: WriteOnly},
		{Name: "both", Type: "String", Access: ReadWrite, Metadata: []as3.Annotation{{Name: "Bindable"}}},
		{Name: "annotated", Type: "String", Access: ReadWrite, Metadata: []as3.Annotation{
			{Name: "Inspectable", Arguments: []as3.Argument{{Key: "category", Value: "General"}}},
		}},
	}, accessorsOf(data, "Model"))
}

func TestAccessorOverride(t *testing.T) {
	b := abctest.New()
	b.Class("A", "").Getter("value", b.Type("int")).Getter("label", b.Type("String"))
	b.Class("B", "A").Getter("value", b.Type("Number"))

	data := compute(t, b, []string{"A", "B"}, nil)

	assert.Equal(t, []Accessor{
		{Name: "value", Type: "Number", Access: ReadOnly},
		{Name: "label", Type: "String", Access: ReadOnly},
	}, accessorsOf(data, "B"))
}

func TestReflectType(t *testing.T) {
	b := abctest.New()
	b.Class("com.example::Config", "").
		Dynamic().
		Implements("com.example::IConfig", "flash.events::IEventDispatcher").
		Slot("visible", b.Type("String"), b.Metadata("__go_to_definition_help", "pos", "120")).
		Const("LIMIT", b.Type("int"), b.Metadata("Embed", "", "asset.png")).
		PrivateSlot("secret", b.Type("String")).
		Annotate(b.Metadata("RemoteClass", "alias", "Config"))
	b.Class("com.example::IConfig", "").Interface()
	b.Class("com.example::Empty", "")

	data := compute(t, b, nil, []string{`com\.example::.*Config`, "com.example::Emp"})

	cfg := data.Types["com.example::Config"]
	require.NotNil(t, cfg)
	assert.Equal(t, "Config", cfg.Name)
	assert.True(t, cfg.IsDynamic)
	assert.False(t, cfg.IsInterface)
	assert.Equal(t, []string{"com.example::IConfig", "flash.events::IEventDispatcher"}, cfg.Interfaces)
	assert.Equal(t, []as3.Annotation{{Name: "RemoteClass", Arguments: []as3.Argument{{Key: "alias", Value: "Config"}}}}, cfg.Metadata)
	assert.Equal(t, []Field{
		{Name: "visible", Type: "String"},
		{Name: "LIMIT", Type: "int", Metadata: []as3.Annotation{{Name: "Embed", Arguments: []as3.Argument{{Value: "asset.png"}}}}},
	}, fieldsOf(data, "com.example::Config"))
	assert.Nil(t, cfg.AccessorIndices)

	iface := data.Types["com.example::IConfig"]
	require.NotNil(t, iface)
	assert.True(t, iface.IsInterface)
	assert.False(t, iface.IsDynamic)
	assert.Nil(t, iface.FieldIndices)
	assert.Nil(t, iface.Interfaces)
	assert.Nil(t, iface.Metadata)

	assert.NotContains(t, data.Types, "com.example::Empty", "patterns match the whole name")
}

func TestSelector(t *testing.T) {
	sel, err := NewSelector([]string{"a::B", "a::B"}, []string{`x\..*`})
	require.NoError(t, err)
	assert.True(t, sel.Match("a::B"))
	assert.True(t, sel.Match("x.y::Z"))
	assert.False(t, sel.Match("a::BC"))
	assert.False(t, sel.Match("ax.y::Z"))
	assert.Equal(t, []string{"a::B"}, sel.Names())

	_, err = NewSelector(nil, []string{"("})
	assert.Error(t, err)
}

func TestComputeNothingSelected(t *testing.T) {
	b := abctest.New()
	b.Class("A", "")
	data := compute(t, b, []string{"Missing"}, nil)
	assert.Empty(t, data.Types)
	assert.Empty(t, data.Fields)
	assert.Empty(t, data.Accessors)
}

func TestClassMetadataNotPublic(t *testing.T) {
	b := abctest.New()
	b.Class("A", "").
		Trait(abc.Trait{
			Name:     b.QName(b.Namespace(abc.NamespaceKindPrivate, ""), "A"),
			Kind:     abc.TraitClass,
			Metadata: []uint32{b.Metadata("Secret")},
		})
	internal := b.Class("B", "").Annotate(b.Metadata("Internal"))
	b.File().Scripts[internal.Index()].Traits[0].Name = b.QName(b.Namespace(abc.NamespaceKindPackageInternal, ""), "B")
	b.Class("C", "").Annotate(b.Metadata("Visible"))

	data := compute(t, b, []string{"A", "B", "C"}, nil)

	assert.Nil(t, data.Types["A"].Metadata)
	assert.Nil(t, data.Types["B"].Metadata)
	assert.Equal(t, []as3.Annotation{{Name: "Visible"}}, data.Types["C"].Metadata)
}

func TestReflectDeclaredMembers(t *testing.T) {
	b := abctest.New()
	b.Class("Base", "").Slot("id", b.Type("int"))
	b.Class("Item", "Base").
		Slot("title", b.Type("String")).
		Getter("size", b.Type("Number"))
	m, err := as3.Load([]*abc.File{b.File()})
	require.NoError(t, err)

	item, ok := m.Lookup("Item")
	require.True(t, ok)
	typ, err := Reflect(item)
	require.NoError(t, err)

	assert.Equal(t, []Field{{Name: "title", Type: "String"}}, typ.Fields())
	assert.Equal(t, []Accessor{{Name: "size", Type: "Number", Access: ReadOnly}}, typ.Accessors())
	assert.Nil(t, typ.FieldIndices, "indices are assigned when the module is computed")
}
