// Package inject computes the dependency injection points of every class,
// including those inherited from superclasses.
package inject

import "fmt"

const (
	AnnotationInject        = "Inject"
	AnnotationPostConstruct = "PostConstruct"

	argName  = "name"
	argOrder = "order"
)

// Point is an injection point. Points are compared by value: two points
// of the same kind with equal fields are the same point.
type Point interface {
	isPoint()
}

// Property asks the container to assign an instance of Type to the member
// Name. Qualifier selects a named binding and is empty when unqualified.
type Property struct {
	Name      string
	Type      string
	Qualifier string
}

// PostConstruct asks the container to call Method after injection. Lower
// orders run first.
type PostConstruct struct {
	Method string
	Order  int
}

func (Property) isPoint()      {}
func (PostConstruct) isPoint() {}

func (p Property) String() string {
	if p.Qualifier != "" {
		return fmt.Sprintf("%s:%s (%s)", p.Name, p.Type, p.Qualifier)
	}
	return p.Name + ":" + p.Type
}

func (p PostConstruct) String() string {
	return fmt.Sprintf("%s() order=%d", p.Method, p.Order)
}

// AnnotationValueError reports an annotation argument that is present but
// cannot be parsed.
type AnnotationValueError struct {
	Class      string
	Member     string
	Annotation string
	Key        string
	Value      string
	Err        error
}

func (e *AnnotationValueError) Error() string {
	return fmt.Sprintf("inject: %s.%s: [%s(%s=%q)]: %v", e.Class, e.Member, e.Annotation, e.Key, e.Value, e.Err)
}

func (e *AnnotationValueError) Unwrap() error { return e.Err }

// compare orders properties before post-construct hooks, and hooks by order.
func compare(a, b Point) int {
	pa, aHook := a.(PostConstruct)
	pb, bHook := b.(PostConstruct)
	switch {
	case !aHook && !bHook:
		return 0
	case !aHook:
		return -1
	case !bHook:
		return 1
	}
	switch {
	case pa.Order < pb.Order:
		return -1
	case pa.Order > pb.Order:
		return 1
	}
	return 0
}
