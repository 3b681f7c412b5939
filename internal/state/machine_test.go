package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	first = iota
	second
	third
	broken
)

func TestMachine(t *testing.T) {
	t.Run("it should initialize with the first phase", func(t *testing.T) {
		m := New(broken, first, second, third)

		assert.Equal(t, first, m.Current())
		assert.False(t, m.Done())
		assert.False(t, m.Failed())
	})

	t.Run("Advance should accept only the next phase", func(t *testing.T) {
		m := New(broken, first, second, third)

		err := m.Advance(third)

		require.Error(t, err)
		assert.Equal(t, first, m.Current())

		require.NoError(t, m.Advance(second))
		require.NoError(t, m.Advance(third))
		assert.True(t, m.Done())
		assert.Equal(t, []int{first, second, third}, m.History)
	})

	t.Run("Advance past the last phase should fail", func(t *testing.T) {
		m := New(broken, first, second)
		require.NoError(t, m.Advance(second))

		assert.Error(t, m.Advance(second))
	})

	t.Run("Fail should be absorbing", func(t *testing.T) {
		m := New(broken, first, second, third)
		require.NoError(t, m.Advance(second))

		m.Fail()
		m.Fail()

		assert.True(t, m.Failed())
		assert.ErrorIs(t, m.Advance(third), ErrFailed)
		assert.Equal(t, second, m.LastGood())
		assert.Equal(t, []int{first, second, broken}, m.History)
	})
}
