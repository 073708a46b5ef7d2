package inject

import (
	"fmt"
	"strconv"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/abcmeta/abc"
	"github.com/dhamidi/abcmeta/as3"
)

var log = commonlog.GetLogger("abcmeta.inject")

// Extract returns the injection points declared directly on c, in trait
// order. Inherited points are not included.
func Extract(c *as3.Class) ([]Point, error) {
	var points []Point
	traits := c.Instance().Traits
	for i := range traits {
		t := &traits[i]
		found, err := extractTrait(c, t)
		if err != nil {
			return nil, err
		}
		points = append(points, found...)
	}
	return points, nil
}

func extractTrait(c *as3.Class, t *abc.Trait) ([]Point, error) {
	var points []Point
	for _, index := range t.Metadata {
		a, err := c.Annotation(index)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve metadata of %s: %w", c.Name, err)
		}

		switch a.Name {
		case AnnotationInject:
			p, ok, err := property(c, t, &a)
			if err != nil {
				return nil, err
			}
			if ok {
				points = append(points, p)
			}
			// The remaining metadata of an injected member is not examined.
			return points, nil

		case AnnotationPostConstruct:
			p, ok, err := postConstruct(c, t, &a)
			if err != nil {
				return nil, err
			}
			if ok {
				points = append(points, p)
			}
		}
	}
	return points, nil
}

func property(c *as3.Class, t *abc.Trait, a *as3.Annotation) (Property, bool, error) {
	qualifier, _ := a.Value(argName)
	p := Property{Qualifier: qualifier}

	switch t.Kind {
	case abc.TraitSlot, abc.TraitConst:
		name, err := c.LocalName(t)
		if err != nil {
			return p, false, err
		}
		typ, err := c.Resolver.Name(t.TypeName, true)
		if err != nil {
			return p, false, err
		}
		p.Name, p.Type = name, typ

	case abc.TraitMethod, abc.TraitSetter:
		m, err := c.File.MethodAt(t.Method)
		if err != nil {
			return p, false, err
		}
		name, err := c.MethodName(t)
		if err != nil {
			return p, false, err
		}
		if len(m.ParamTypes) == 0 {
			log.Warningf("%s.%s: [Inject] on a method without parameters, skipping", c.Name, name)
			return p, false, nil
		}
		typ, err := c.Resolver.Name(m.ParamTypes[0], true)
		if err != nil {
			return p, false, err
		}
		p.Name, p.Type = name, typ

	default:
		name, _ := c.LocalName(t)
		log.Warningf("%s.%s: [Inject] on a %s trait, skipping", c.Name, name, t.Kind)
		return p, false, nil
	}
	return p, true, nil
}

func postConstruct(c *as3.Class, t *abc.Trait, a *as3.Annotation) (PostConstruct, bool, error) {
	if !t.IsMethod() {
		name, _ := c.LocalName(t)
		log.Warningf("%s.%s: [PostConstruct] on a %s trait, skipping", c.Name, name, t.Kind)
		return PostConstruct{}, false, nil
	}

	name, err := c.MethodName(t)
	if err != nil {
		return PostConstruct{}, false, err
	}
	p := PostConstruct{Method: name}

	if v, ok := a.Value(argOrder); ok {
		order, err := strconv.Atoi(v)
		if err != nil {
			return p, false, &AnnotationValueError{
				Class:      c.Name,
				Member:     name,
				Annotation: a.Name,
				Key:        argOrder,
				Value:      v,
				Err:        err,
			}
		}
		p.Order = order
	}
	return p, true, nil
}
