package guard_test

import (
	"errors"
	"testing"

	"speedit/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard returns nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns custom error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")
		assert.Equal(t, expected, g.Validate(expected))
	})

	t.Run("zero value returns default error when nil", func(t *testing.T) {
		var g guard.ConstructorGuard
		require.ErrorIs(t, g.Validate(nil), guard.ErrDefaultConstructorGuard)
	})
}
