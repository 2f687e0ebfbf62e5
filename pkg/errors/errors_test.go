package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrBridgeMissing, "brew not found on PATH")
	assert.Equal(t, "[BRIDGE_MISSING] brew not found on PATH", err.Error())
	assert.Equal(t, errors.ErrBridgeMissing, err.Code)
}

func TestWrapPreservesChain(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := errors.Wrap(cause, errors.ErrBridgeExec, "brew install failed")

	require.NotNil(t, err)
	assert.Equal(t, "[BRIDGE_EXEC] brew install failed: exit status 1", err.Error())
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrBridgeExec, "should be nil"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrBridgeExec, "should be %s", "nil"))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrMachineNotReady, "machine %q has no groups", "laptop")

	assert.True(t, errors.IsErrorCode(err, errors.ErrMachineNotReady))
	assert.False(t, errors.IsErrorCode(err, errors.ErrBridgeExec))

	// Wrapped in a plain error the code is still discoverable.
	wrapped := fmt.Errorf("running status: %w", err)
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrMachineNotReady))
	assert.Equal(t, errors.ErrMachineNotReady, errors.GetErrorCode(wrapped))
}

func TestGetErrorCodeUnknownForPlainErrors(t *testing.T) {
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrDeclarationSave, "write failed").
		WithDetail("path", "/tmp/packages.yaml")
	assert.Equal(t, "/tmp/packages.yaml", err.Details["path"])
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	a := errors.New(errors.ErrUnknownKind, "no such kind: gem")
	b := errors.New(errors.ErrUnknownKind, "different message")
	assert.True(t, stderrors.Is(a, b))
}
