package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("a", "b")
	s.Add("c")
	s.Add("a")

	assert.True(t, s.Has("b"))
	assert.False(t, s.Has("d"))
	assert.Equal(t, 3, s.Len())
}

func TestUnique_KeepsFirstSeenOrder(t *testing.T) {
	assert.Equal(t, []string{"component", "beta", "new"}, Unique([]string{"component", "beta", "component", "new", "beta"}))
	assert.Empty(t, Unique[string](nil))
}
