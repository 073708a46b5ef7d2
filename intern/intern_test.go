package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Name  string
	Order int
}

type record struct {
	Name string
	Tags []string
}

func TestTableIdentity(t *testing.T) {
	table := New[point, point](Identity[point])

	for i, p := range []point{{"a", 1}, {"b", 2}, {"a", 1}, {"c", 0}, {"b", 2}} {
		_, err := table.Add(p)
		require.NoError(t, err, "Add #%d", i)
	}

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []point{{"a", 1}, {"b", 2}, {"c", 0}}, table.Values())

	i, err := table.Add(point{"c", 0})
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestTableCBORKey(t *testing.T) {
	table := New[string, record](CBORKey[record])

	first, err := table.Add(record{Name: "x", Tags: []string{"a", "b"}})
	require.NoError(t, err)
	again, err := table.Add(record{Name: "x", Tags: []string{"a", "b"}})
	require.NoError(t, err)
	reordered, err := table.Add(record{Name: "x", Tags: []string{"b", "a"}})
	require.NoError(t, err)
	bare, err := table.Add(record{Name: "x"})
	require.NoError(t, err)

	assert.Equal(t, 0, first)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, reordered)
	assert.Equal(t, 2, bare)
	assert.Len(t, table.Values(), 3)
}

func TestTableEmpty(t *testing.T) {
	table := New[int, int](Identity[int])
	assert.Empty(t, table.Values())
	assert.Equal(t, 0, table.Len())
}
