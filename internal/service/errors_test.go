package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Matching(t *testing.T) {
	cause := errors.New("boom")

	nf := fmt.Errorf("load: %w", &NotFoundError{Resource: "contact message", ID: "x"})
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.EqualError(t, errors.Unwrap(nf), `contact message "x" not found`)

	var se *StorageError
	assert.ErrorAs(t, fmt.Errorf("wrap: %w", &StorageError{Op: "put", Err: cause}), &se)
	assert.ErrorIs(t, se, cause)

	var pe *PersistenceError
	assert.ErrorAs(t, &PersistenceError{Op: "insert", Err: cause}, &pe)
	assert.ErrorIs(t, pe, cause)

	var ce *ConfigurationError
	assert.ErrorAs(t, &ConfigurationError{Setting: "CAPTCHA_SECRET"}, &ce)
}

func TestValidationError_Message(t *testing.T) {
	err := newValidationError("invalid input", map[string]string{"email": "must be a valid email", "name": "is required"})
	assert.Equal(t, "invalid input (email: must be a valid email; name: is required)", err.Error())

	assert.Equal(t, "bad", newValidationError("bad", nil).Error())
}
