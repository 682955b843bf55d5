package main

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjectError(t *testing.T) {
	err := NewError(CodeTreeID, "in.xml", "no tree", nil)
	assert.Equal(t, "no tree", err.Error())
	assert.Nil(t, errors.Unwrap(err))

	wrapped := NewError(CodeInputRead, "in.xml", "Input file not found.", os.ErrNotExist)
	assert.Equal(t, "Input file not found.\n\tfile does not exist", wrapped.Error())
	assert.True(t, errors.Is(wrapped, os.ErrNotExist))
	assert.Equal(t, int32(2), wrapped.Code)
}
