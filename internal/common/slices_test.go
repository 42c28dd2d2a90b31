package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.True(t, IsEmpty([]string{}))
	assert.False(t, IsEmpty([]int{1}))
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = First([]string(nil))
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestIsInRange(t *testing.T) {
	tests := []struct {
		lo, value, hi int
		want          bool
	}{
		{0, 0, 3, true},
		{0, 3, 3, true},
		{0, 4, 3, false},
		{0, -1, 3, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsInRange(tt.lo, tt.value, tt.hi), "%d in [%d, %d]", tt.value, tt.lo, tt.hi)
	}
}
