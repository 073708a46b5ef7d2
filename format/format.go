// Package format serializes injection and reflection results.
package format

import (
	"fmt"

	"github.com/dhamidi/abcmeta/inject"
	"github.com/dhamidi/abcmeta/reflection"
)

// Encoder writes *inject.Data or *reflection.Data.
type Encoder interface {
	Encode(data any) error
}

func wire(data any) (any, error) {
	switch d := data.(type) {
	case *inject.Data:
		return buildInjection(d), nil
	case *reflection.Data:
		return buildReflection(d), nil
	}
	return nil, fmt.Errorf("format: cannot encode %T", data)
}
