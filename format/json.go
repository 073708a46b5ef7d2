package format

import (
	"encoding/json"
	"io"
)

// JSONEncoder writes indented JSON without HTML escaping.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(data any) error {
	v, err := wire(data)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(e.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
