package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmellor/mcsearch/position"
)

func TestSliceAdvanceCurrent(t *testing.T) {
	g := position.FromSlice([]int{10, 20, 30})
	require.True(t, g.HasNext())

	var got []int
	for g.Advance() {
		got = append(got, g.Current())
	}
	assert.Equal(t, []int{10, 20, 30}, got)
	assert.False(t, g.HasNext())
}

func TestSliceReset(t *testing.T) {
	g := position.FromSlice([]int{1, 2})
	g.Advance()
	g.Advance()
	assert.False(t, g.HasNext())
	g.Reset()
	assert.True(t, g.HasNext())
	require.True(t, g.Advance())
	assert.Equal(t, 1, g.Current())
}

func TestSliceEmpty(t *testing.T) {
	g := position.FromSlice[int](nil)
	assert.False(t, g.HasNext())
	assert.False(t, g.Advance())
}

func TestSliceCurrentBeforeAdvancePanics(t *testing.T) {
	g := position.FromSlice([]int{1})
	assert.Panics(t, func() { g.Current() })
}

func TestSliceCurrentPanicIsContractViolation(t *testing.T) {
	g := position.FromSlice([]int{1})
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*position.ContractViolation)
		assert.True(t, ok, "expected *ContractViolation, got %T", r)
	}()
	g.Current()
}

func TestSliceLen(t *testing.T) {
	g := position.FromSlice([]int{1, 2, 3})
	assert.Equal(t, 3, g.Len())
}
