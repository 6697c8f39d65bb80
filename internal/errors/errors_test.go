package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCode(t *testing.T) {
	base := LookupFailure("no entry for %q", "wine")
	wrapped := Wrap(base, "loading summary")

	assert.Equal(t, CodeLookupFailure, GetCode(wrapped))
	assert.True(t, HasCode(wrapped, CodeLookupFailure))
	assert.Contains(t, wrapped.Error(), "loading summary")
	assert.True(t, stderrors.Is(stderrors.Unwrap(wrapped), base))
}

func TestWrapForeignError(t *testing.T) {
	wrapped := Wrapf(stderrors.New("disk full"), "writing %s", "plot.png")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "writing plot.png")
	assert.Contains(t, wrapped.Error(), "disk full")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, Wrapf(nil, "nothing %d", 1))
}

func TestGetCodeUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
	assert.False(t, HasCode(stderrors.New("plain"), CodeIOFailure))
}
