package as3

import "github.com/dhamidi/abcmeta/abc"

// Annotation is a resolved metadata entry such as [Inject(name="main")].
type Annotation struct {
	Name      string
	Arguments []Argument
}

// Argument is one metadata argument. Key is empty for keyless arguments.
type Argument struct {
	Key   string
	Value string
}

// Value returns the value of the first argument named key. Keyless
// arguments never match.
func (a *Annotation) Value(key string) (string, bool) {
	for _, arg := range a.Arguments {
		if arg.Key != "" && arg.Key == key {
			return arg.Value, true
		}
	}
	return "", false
}

// Annotation resolves the metadata entry at a 0-based metadata index.
func (c *Class) Annotation(index uint32) (Annotation, error) {
	md, err := c.File.MetadataAt(index)
	if err != nil {
		return Annotation{}, err
	}
	name, err := c.Resolver.String(md.Name)
	if err != nil {
		return Annotation{}, err
	}

	a := Annotation{Name: name}
	for _, item := range md.Items {
		key, err := c.Resolver.String(item.Key)
		if err != nil {
			return Annotation{}, err
		}
		value, err := c.Resolver.String(item.Value)
		if err != nil {
			return Annotation{}, err
		}
		a.Arguments = append(a.Arguments, Argument{Key: key, Value: value})
	}
	return a, nil
}

// Annotations resolves every metadata entry attached to a trait.
func (c *Class) Annotations(t *abc.Trait) ([]Annotation, error) {
	if len(t.Metadata) == 0 {
		return nil, nil
	}
	result := make([]Annotation, 0, len(t.Metadata))
	for _, index := range t.Metadata {
		a, err := c.Annotation(index)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}
