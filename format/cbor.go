package format

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

var cborMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborMode = em
}

// CBOREncoder writes canonical CBOR using the same field names as the JSON
// encoder.
type CBOREncoder struct {
	w io.Writer
}

func NewCBOREncoder(w io.Writer) *CBOREncoder {
	return &CBOREncoder{w: w}
}

func (e *CBOREncoder) Encode(data any) error {
	v, err := wire(data)
	if err != nil {
		return err
	}
	return cborMode.NewEncoder(e.w).Encode(v)
}
