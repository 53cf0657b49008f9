package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("load history: %w", Wrap(CodeStorage, "failed to load interactions", cause))

	require.True(t, IsCode(err, CodeStorage))
	require.False(t, IsCode(err, CodeNotFound))
	require.Equal(t, CodeStorage, CodeOf(err))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "failed to load interactions: connection reset")
}

func TestCodeOfPlainError(t *testing.T) {
	require.Empty(t, CodeOf(errors.New("boom")))
	require.Equal(t, "recipient not found", Wrap(CodeNotFound, "recipient not found", nil).Error())
}
