package unfurl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/unfurl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := unfurl.Errorf(unfurl.ENOTFOUND, "preview %q not found", "https://example.com")

	assert.Equal(t, unfurl.ENOTFOUND, unfurl.ErrorCode(err))
	assert.Equal(t, "preview \"https://example.com\" not found", unfurl.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, unfurl.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, unfurl.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetching: %w", unfurl.Errorf(unfurl.EUNSUPPORTED, "content type %q", "image/png"))

	assert.Equal(t, unfurl.EUNSUPPORTED, unfurl.ErrorCode(err))
	assert.Equal(t, "content type \"image/png\"", unfurl.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, unfurl.EINTERNAL, unfurl.ErrorCode(err))
	assert.Equal(t, "Internal error.", unfurl.ErrorMessage(err))
}
