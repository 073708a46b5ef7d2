package inject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/abcmeta/abc"
	"github.com/dhamidi/abcmeta/abc/abctest"
	"github.com/dhamidi/abcmeta/as3"
	"github.com/dhamidi/abcmeta/hierarchy"
)

func compute(t *testing.T, b *abctest.Builder) *Data {
	t.Helper()
	m, err := as3.Load([]*abc.File{b.File()})
	require.NoError(t, err)
	data, err := Compute(m)
	require.NoError(t, err)
	return data
}

func points(data *Data, class string) []Point {
	var result []Point
	for _, i := range data.Classes[class] {
		result = append(result, data.Points[i])
	}
	return result
}

func TestComputeEndToEnd(t *testing.T) {
	b := abctest.New()
	b.Class("P", "")
	b.Class("A", "P").Method("setup", nil, b.Metadata("PostConstruct", "order", "1"))
	b.Class("B", "A").Slot("svc", b.Type("IService"), b.Metadata("Inject"))

	data := compute(t, b)

	setup := PostConstruct{Method: "setup", Order: 1}
	svc := Property{Name: "svc", Type: "IService"}
	require.Len(t, data.Points, 2)

	x := indexOf(data.Points, setup)
	y := indexOf(data.Points, svc)
	require.NotEqual(t, -1, x)
	require.NotEqual(t, -1, y)

	assert.Equal(t, []int{y, x}, data.Classes["B"])
	assert.Equal(t, []int{x}, data.Classes["A"])
	assert.NotContains(t, data.Classes, "P")
}

func indexOf(points []Point, p Point) int {
	for i, q := range points {
		if q == p {
			return i
		}
	}
	return -1
}

func TestComputeDedup(t *testing.T) {
	b := abctest.New()
	logger := b.Type("com.example::Logger")
	b.Class("com.example::First", "").Slot("log", logger, b.Metadata("Inject"))
	b.Class("com.example::Second", "").Slot("log", logger, b.Metadata("Inject"))
	b.Class("com.example::Third", "").Slot("log", logger, b.Metadata("Inject", "name", "audit"))

	data := compute(t, b)

	require.Len(t, data.Points, 2)
	assert.Equal(t, data.Classes["com.example::First"], data.Classes["com.example::Second"])
	assert.NotEqual(t, data.Classes["com.example::First"], data.Classes["com.example::Third"])
	assert.Equal(t, Property{Name: "log", Type: "com.example::Logger", Qualifier: "audit"}, points(data, "com.example::Third")[0])
}

func TestComputePostConstructOverride(t *testing.T) {
	b := abctest.New()
	b.Class("A", "").Method("init", nil, b.Metadata("PostConstruct", "order", "1"))
	b.Class("B", "A").Method("init", nil, b.Metadata("PostConstruct", "order", "2"))
	b.Class("C", "B")

	data := compute(t, b)

	assert.Equal(t, []Point{PostConstruct{Method: "init", Order: 2}}, points(data, "B"))
	assert.Equal(t, []Point{PostConstruct{Method: "init", Order: 2}}, points(data, "C"))
	assert.Equal(t, []Point{PostConstruct{Method: "init", Order: 1}}, points(data, "A"))
}

func TestComputeOrdering(t *testing.T) {
	b := abctest.New()
	str := b.Type("String")
	b.Class("Widget", "").
		Method("five", nil, b.Metadata("PostConstruct", "order", "5")).
		Slot("a", str, b.Metadata("Inject")).
		Method("one", nil, b.Metadata("PostConstruct", "order", "1")).
		Slot("b", str, b.Metadata("Inject")).
		Method("three", nil, b.Metadata("PostConstruct", "order", "3")).
		Method("zero", nil, b.Metadata("PostConstruct"))

	data := compute(t, b)

	assert.Equal(t, []Point{
		Property{Name: "a", Type: "String"},
		Property{Name: "b", Type: "String"},
		PostConstruct{Method: "zero"},
		PostConstruct{Method: "one", Order: 1},
		PostConstruct{Method: "three", Order: 3},
		PostConstruct{Method: "five", Order: 5},
	}, points(data, "Widget"))
}

func TestComputeDuplicateInheritedProperty(t *testing.T) {
	b := abctest.New()
	svc := b.Type("IService")
	b.Class("A", "").Slot("svc", svc, b.Metadata("Inject"))
	b.Class("B", "A").Slot("svc", svc, b.Metadata("Inject"))

	data := compute(t, b)

	// Inherited properties are appended without a duplicate check.
	assert.Len(t, data.Points, 1)
	assert.Equal(t, []int{0, 0}, data.Classes["B"])
}

func TestExtract(t *testing.T) {
	b := abctest.New()
	logger := b.Type("Logger")
	b.Class("Target", "").
		Setter("logger", logger, b.Metadata("Inject", "name", "main")).
		Method("configure", []uint32{b.Type("Config"), b.Type("int")}, b.Metadata("Inject")).
		Slot("both", logger, b.Metadata("Inject"), b.Metadata("PostConstruct")).
		Getter("ignored", logger, b.Metadata("Inject")).
		Method("noArgs", nil, b.Metadata("Inject")).
		Slot("notAMethod", logger, b.Metadata("PostConstruct")).
		PrivateSlot("hidden", b.Vector(logger), b.Metadata("Inject")).
		Slot("plain", logger, b.Metadata("Bindable"))

	m, err := as3.Load([]*abc.File{b.File()})
	require.NoError(t, err)

	got, err := Extract(m.Classes[0])
	require.NoError(t, err)
	assert.Equal(t, []Point{
		Property{Name: "logger", Type: "Logger", Qualifier: "main"},
		Property{Name: "configure", Type: "Config"},
		Property{Name: "both", Type: "Logger"},
		Property{Name: "hidden", Type: "Vector.<Logger>"},
	}, got)
}

func TestExtractInvalidOrder(t *testing.T) {
	b := abctest.New()
	b.Class("Broken", "").Method("init", nil, b.Metadata("PostConstruct", "order", "first"))

	m, err := as3.Load([]*abc.File{b.File()})
	require.NoError(t, err)

	_, err = Compute(m)
	var ave *AnnotationValueError
	require.ErrorAs(t, err, &ave)
	assert.Equal(t, "Broken", ave.Class)
	assert.Equal(t, "init", ave.Member)
	assert.Equal(t, "order", ave.Key)
	assert.Equal(t, "first", ave.Value)
}

func TestComputeCyclicHierarchy(t *testing.T) {
	b := abctest.New()
	b.Class("A", "B")
	b.Class("B", "A")

	m, err := as3.Load([]*abc.File{b.File()})
	require.NoError(t, err)

	_, err = Compute(m)
	var die *hierarchy.DataIntegrityError
	assert.ErrorAs(t, err, &die)
}

func TestComputeEmpty(t *testing.T) {
	data := compute(t, abctest.New())
	assert.Empty(t, data.Points)
	assert.Empty(t, data.Classes)
}

func TestComputeRedeclaredWithoutSuperclass(t *testing.T) {
	first := abctest.New()
	first.Class("X", "").Slot("svc", first.Type("IService"), first.Metadata("Inject"))
	first.Class("A", "X")
	second := abctest.New()
	second.Class("A", "Object")

	m, err := as3.Load([]*abc.File{first.File(), second.File()})
	require.NoError(t, err)
	data, err := Compute(m)
	require.NoError(t, err)

	assert.Contains(t, data.Classes, "X")
	assert.NotContains(t, data.Classes, "A")
}

func TestBuilderPropagate(t *testing.T) {
	b := abctest.New()
	b.Class("Base", "").
		Slot("log", b.Type("ILogger"), b.Metadata("Inject")).
		Method("init", nil, b.Metadata("PostConstruct", "order", "1"))
	b.Class("Child", "Base").Method("init", nil, b.Metadata("PostConstruct", "order", "3"))
	m, err := as3.Load([]*abc.File{b.File()})
	require.NoError(t, err)

	builder := NewBuilder()
	for _, c := range m.Classes {
		require.NoError(t, builder.Add(c))
	}
	child, ok := builder.Points("Child")
	require.True(t, ok)
	assert.Equal(t, []Point{PostConstruct{Method: "init", Order: 3}}, child)

	tree, err := hierarchy.Build(m.Superclasses)
	require.NoError(t, err)
	require.NoError(t, builder.Propagate(tree))

	child, ok = builder.Points("Child")
	require.True(t, ok)
	assert.Equal(t, []Point{
		PostConstruct{Method: "init", Order: 3},
		Property{Name: "log", Type: "ILogger"},
	}, child)

	_, ok = builder.Points("Missing")
	assert.False(t, ok)
}
