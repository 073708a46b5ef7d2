package format

import (
	"github.com/dhamidi/abcmeta/as3"
	"github.com/dhamidi/abcmeta/inject"
	"github.com/dhamidi/abcmeta/reflection"
)

const (
	pointProperty      = "property"
	pointPostConstruct = "postConstruct"
)

type injectionData struct {
	InjectionPoints      []injectionPoint `json:"injectionPoints"`
	ClassInjectionPoints map[string][]int `json:"classInjectionPoints"`
}

type injectionPoint struct {
	Type          string  `json:"type"`
	PropertyName  string  `json:"propertyName,omitempty"`
	PropertyType  string  `json:"propertyType,omitempty"`
	InjectionName *string `json:"injectionName,omitempty"`
	MethodName    string  `json:"methodName,omitempty"`
	Order         *int    `json:"order,omitempty"`
}

type reflectionData struct {
	Types     map[string]reflectedType `json:"types"`
	Fields    []field                  `json:"fields"`
	Accessors []accessor               `json:"accessors"`
}

type reflectedType struct {
	Name            string     `json:"name"`
	FullName        string     `json:"fullName"`
	IsDynamic       bool       `json:"isDynamic"`
	IsInterface     bool       `json:"isInterface"`
	Interfaces      []string   `json:"interfaces,omitempty"`
	FieldIndices    []int      `json:"fieldIndices,omitempty"`
	AccessorIndices []int      `json:"accessorIndices,omitempty"`
	Metadata        []metadata `json:"metadata,omitempty"`
}

type field struct {
	IsStatic bool       `json:"isStatic"`
	Name     string     `json:"name"`
	TypeName string     `json:"typeName"`
	Metadata []metadata `json:"metadata,omitempty"`
}

type accessor struct {
	IsStatic bool       `json:"isStatic"`
	Name     string     `json:"name"`
	TypeName string     `json:"typeName"`
	Access   string     `json:"access"`
	Metadata []metadata `json:"metadata,omitempty"`
}

type metadata struct {
	Name      string     `json:"name"`
	Arguments []argument `json:"arguments,omitempty"`
}

type argument struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

func buildInjection(d *inject.Data) injectionData {
	out := injectionData{
		InjectionPoints:      make([]injectionPoint, len(d.Points)),
		ClassInjectionPoints: d.Classes,
	}
	for i, p := range d.Points {
		switch p := p.(type) {
		case inject.Property:
			out.InjectionPoints[i] = injectionPoint{
				Type:          pointProperty,
				PropertyName:  p.Name,
				PropertyType:  p.Type,
				InjectionName: &p.Qualifier,
			}
		case inject.PostConstruct:
			out.InjectionPoints[i] = injectionPoint{
				Type:       pointPostConstruct,
				MethodName: p.Method,
				Order:      &p.Order,
			}
		}
	}
	return out
}

func buildReflection(d *reflection.Data) reflectionData {
	out := reflectionData{
		Types:     make(map[string]reflectedType, len(d.Types)),
		Fields:    make([]field, len(d.Fields)),
		Accessors: make([]accessor, len(d.Accessors)),
	}
	for name, t := range d.Types {
		out.Types[name] = reflectedType{
			Name:            t.Name,
			FullName:        t.FullName,
			IsDynamic:       t.IsDynamic,
			IsInterface:     t.IsInterface,
			Interfaces:      t.Interfaces,
			FieldIndices:    t.FieldIndices,
			AccessorIndices: t.AccessorIndices,
			Metadata:        buildMetadata(t.Metadata),
		}
	}
	for i, f := range d.Fields {
		out.Fields[i] = field{
			Name:     f.Name,
			TypeName: f.Type,
			Metadata: buildMetadata(f.Metadata),
		}
	}
	for i, a := range d.Accessors {
		out.Accessors[i] = accessor{
			Name:     a.Name,
			TypeName: a.Type,
			Access:   a.Access.String(),
			Metadata: buildMetadata(a.Metadata),
		}
	}
	return out
}

func buildMetadata(annotations []as3.Annotation) []metadata {
	if len(annotations) == 0 {
		return nil
	}
	result := make([]metadata, len(annotations))
	for i, a := range annotations {
		result[i] = metadata{Name: a.Name}
		for _, arg := range a.Arguments {
			result[i].Arguments = append(result[i].Arguments, argument{Key: arg.Key, Value: arg.Value})
		}
	}
	return result
}
