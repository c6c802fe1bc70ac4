package zipack

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := os.ErrNotExist
	err := &Error{Op: "unpack", Path: "a.zip", Kind: ErrSourceNotFound, Err: cause}

	assert.EqualError(t, err, `unpack "a.zip" error: source not found: file does not exist`)
	assert.ErrorIsf(t, err, ErrSourceNotFound, "errors.Is should match the category, error = %v", err)
	assert.ErrorIsf(t, err, cause, "errors.Is should reach the cause, error = %v", err)

	var e *Error
	assert.Truef(t, errors.As(err, &e), "errors.As should find *Error, error = %v", err)
	assert.Equal(t, "unpack", e.Op)
	assert.Equal(t, "a.zip", e.Path)

	// without a cause only the category is printed.
	err = &Error{Op: "pack", Path: "b.txt", Kind: ErrWriteFailed}
	assert.EqualError(t, err, `pack "b.txt" error: write failed`)
	assert.ErrorIsf(t, err, ErrWriteFailed, "errors.Is should match the category, error = %v", err)
}
