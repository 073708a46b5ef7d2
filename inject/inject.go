package inject

import (
	"fmt"
	"slices"

	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/dhamidi/abcmeta/as3"
	"github.com/dhamidi/abcmeta/hierarchy"
	"github.com/dhamidi/abcmeta/intern"
)

// Data is the injection output: a table of distinct points and, per
// class, indices into that table with properties first and post-construct
// hooks last in ascending order.
type Data struct {
	Points  []Point
	Classes map[string][]int
}

// Builder accumulates per-class point lists in discovery order.
type Builder struct {
	classes *sequencedmap.Map[string, []Point]
}

func NewBuilder() *Builder {
	return &Builder{classes: sequencedmap.New[string, []Point]()}
}

// Add extracts the points declared on c. Classes without points are not
// recorded.
func (b *Builder) Add(c *as3.Class) error {
	points, err := Extract(c)
	if err != nil {
		return err
	}
	if len(points) > 0 {
		b.classes.Set(c.Name, points)
	}
	return nil
}

// Points returns the points currently recorded for class.
func (b *Builder) Points(class string) ([]Point, bool) {
	return b.classes.Get(class)
}

// Propagate pushes the points of every recorded class into its subclasses,
// parents before children. Properties are always inherited. A hook is only
// inherited when the subclass has no hook for the same method, so an
// overridden hook runs once with the subclass's order.
func (b *Builder) Propagate(tree *hierarchy.Tree) error {
	return tree.Walk(func(name string) error {
		inherited, ok := b.classes.Get(name)
		if !ok {
			return nil
		}
		for _, child := range tree.Children(name) {
			points, _ := b.classes.Get(child)
			for _, p := range inherited {
				if hook, ok := p.(PostConstruct); ok && hasHook(points, hook.Method) {
					continue
				}
				points = append(points, p)
			}
			b.classes.Set(child, points)
		}
		return nil
	})
}

func hasHook(points []Point, method string) bool {
	return slices.ContainsFunc(points, func(p Point) bool {
		hook, ok := p.(PostConstruct)
		return ok && hook.Method == method
	})
}

// Build interns the points of all classes in discovery order.
func (b *Builder) Build() (*Data, error) {
	table := intern.New[Point, Point](intern.Identity[Point])
	data := &Data{Classes: make(map[string][]int, b.classes.Len())}

	for class, points := range b.classes.All() {
		indices := make([]int, 0, len(points))
		for _, p := range points {
			i, err := table.Add(p)
			if err != nil {
				return nil, err
			}
			indices = append(indices, i)
		}
		data.Classes[class] = indices
	}

	data.Points = table.Values()
	for _, indices := range data.Classes {
		slices.SortStableFunc(indices, func(a, b int) int {
			return compare(data.Points[a], data.Points[b])
		})
	}
	return data, nil
}

// Compute runs extraction, propagation and interning over a module.
func Compute(m *as3.Module) (*Data, error) {
	b := NewBuilder()
	for _, c := range m.Classes {
		if err := b.Add(c); err != nil {
			return nil, err
		}
	}

	tree, err := hierarchy.Build(m.Superclasses)
	if err != nil {
		return nil, fmt.Errorf("failed to build inheritance tree: %w", err)
	}
	if err := b.Propagate(tree); err != nil {
		return nil, err
	}

	data, err := b.Build()
	if err != nil {
		return nil, err
	}
	log.Noticef("found %d unique injection points in %d classes", len(data.Points), len(data.Classes))
	return data, nil
}
