package errs_test

import (
	"errors"
	"testing"

	"speedit/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("stockRowId", "123")

		assert.Equal(t, "stockRowId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewObjectNotFoundErrorWithCause("orderItemId", "42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderItemId, ID is: 42 (cause: connection refused)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidError("quantity")
	assert.Equal(t, "value is invalid: quantity", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cause := errors.New("negative")
	withCause := errs.NewValueIsInvalidErrorWithCause("quantity", cause)
	assert.Equal(t, "value is invalid: quantity (cause: negative)", withCause.Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("latitude", 120, -90, 90)

	assert.Equal(t, "latitude", err.ParamName)
	assert.Equal(t, "value is invalid: 120 is latitude, min value is -90, max value is 90", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	t.Run("sanitizes newlines", func(t *testing.T) {
		multiline := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, multiline.Error(), "hello world")
		assert.NotContains(t, multiline.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("productId")
	assert.Equal(t, "value is required: productId", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
