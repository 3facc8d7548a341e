package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBasics(t *testing.T) {
	s := NewSet(1, 2, 3)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(2))
	assert.False(t, s.Has(4))

	s.Add(4)
	assert.True(t, s.Has(4))
	s.Delete(1)
	assert.False(t, s.Has(1))
}

func TestSetClone(t *testing.T) {
	s := NewSet("a", "b")
	c := s.Clone()
	c.Add("c")
	assert.True(t, c.Has("c"))
	assert.False(t, s.Has("c"))
}

func TestSetDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b Set[int]
		want Set[int]
	}{
		{"disjoint", NewSet(1, 2), NewSet(3), NewSet(1, 2)},
		{"overlap", NewSet(1, 2, 3), NewSet(2, 3), NewSet(1)},
		{"equal", NewSet(1, 2), NewSet(1, 2), NewSet[int]()},
		{"empty", NewSet[int](), NewSet(1), NewSet[int]()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.True(t, test.a.Diff(test.b).Equal(test.want))
		})
	}
}

func TestSetSubsetOf(t *testing.T) {
	assert.True(t, NewSet(1, 2).SubsetOf(NewSet(1, 2, 3)))
	assert.True(t, NewSet[int]().SubsetOf(NewSet(1)))
	assert.True(t, NewSet(1).SubsetOf(NewSet(1)))
	assert.False(t, NewSet(1, 4).SubsetOf(NewSet(1, 2, 3)))
}

func TestSetUnion(t *testing.T) {
	s := NewSet(1, 2)
	s.Union(NewSet(2, 3))
	assert.True(t, s.Equal(NewSet(1, 2, 3)))
}
