package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMatching(t *testing.T) {
	conflict := &ConflictError{CurrentStatus: "in_progress"}
	require.True(t, IsConflict(conflict))
	require.False(t, IsInvalidState(conflict))

	invalid := &InvalidStateError{CurrentStatus: "cancelled"}
	require.True(t, IsInvalidState(invalid))
	require.False(t, IsConflict(invalid))

	validation := &ValidationError{Field: "quantity", Reason: "必须为正"}
	require.True(t, IsValidation(validation))
}

func TestMatchingThroughWrapping(t *testing.T) {
	inner := &ConflictError{CurrentStatus: "in_progress"}
	wrapped := fmt.Errorf("认领失败: %w", inner)
	require.True(t, IsConflict(wrapped))

	var target *ConflictError
	require.True(t, errors.As(wrapped, &target))
	require.Equal(t, "in_progress", target.CurrentStatus)
}

func TestStoreUnavailableUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreUnavailable("protocol.Claim", cause)

	require.True(t, IsStoreUnavailable(err))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "protocol.Claim")
}
