// Package intern deduplicates values by structural equality while keeping
// the order in which they were first seen.
package intern

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/speakeasy-api/openapi/sequencedmap"
)

// KeyFunc maps a value to a comparable key. Values with equal keys are the
// same entry.
type KeyFunc[K comparable, V any] func(V) (K, error)

type entry[V any] struct {
	index int
	value V
}

type Table[K comparable, V any] struct {
	entries *sequencedmap.Map[K, entry[V]]
	key     KeyFunc[K, V]
}

func New[K comparable, V any](key KeyFunc[K, V]) *Table[K, V] {
	return &Table[K, V]{
		entries: sequencedmap.New[K, entry[V]](),
		key:     key,
	}
}

// Add returns the index of v, appending it when no equal value is present.
func (t *Table[K, V]) Add(v V) (int, error) {
	k, err := t.key(v)
	if err != nil {
		return 0, err
	}
	if e, ok := t.entries.Get(k); ok {
		return e.index, nil
	}
	i := t.entries.Len()
	t.entries.Set(k, entry[V]{index: i, value: v})
	return i, nil
}

func (t *Table[K, V]) Len() int {
	return t.entries.Len()
}

// Values returns the distinct values in first-seen order.
func (t *Table[K, V]) Values() []V {
	values := make([]V, 0, t.entries.Len())
	for _, e := range t.entries.All() {
		values = append(values, e.value)
	}
	return values
}

// Identity keys comparable values by themselves.
func Identity[V comparable](v V) (V, error) {
	return v, nil
}

var canonical cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	canonical = em
}

// CBORKey keys values by their canonical CBOR encoding, which makes values
// holding slices or maps usable as keys.
func CBORKey[V any](v V) (string, error) {
	b, err := canonical.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
